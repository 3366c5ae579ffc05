package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderRows(id uuid.UUID, status trade.OrderStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "surname", "phone", "product_name", "product_key", "package_count", "status"}).
		AddRow(id, "Ayşe", "Yılmaz", "5551112233", "Akıllı Saat", "akıllı saat", 2, status)
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, trade.OrderStatusAwaitingConfirmation))

		order, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "akıllı saat", order.ProductKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindActiveByPhoneSuffix(t *testing.T) {
	t.Run("matches trailing digits and skips returned orders", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE phone LIKE \$1 AND status <> \$2 ORDER BY created_at DESC, id,.* LIMIT .*`).
			WithArgs("%5551112233", trade.OrderStatusReturned, 1).
			WillReturnRows(orderRows(orderID, trade.OrderStatusConfirmed))

		order, err := repo.FindActiveByPhoneSuffix(context.Background(), "5551112233")

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no active order matches", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE phone LIKE \$1 AND status <> \$2`).
			WithArgs("%5550000000", trade.OrderStatusReturned, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindActiveByPhoneSuffix(context.Background(), "5550000000")

		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindPage(t *testing.T) {
	t.Run("filters by status and product with stable ordering", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status IN \(\$1\) AND product_key IN \(\$2\)`).
			WithArgs(trade.OrderStatusConfirmed, "akıllı saat").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE status IN \(\$1\) AND product_key IN \(\$2\) ORDER BY created_at DESC, id LIMIT .*`).
			WithArgs(trade.OrderStatusConfirmed, "akıllı saat", 20).
			WillReturnRows(orderRows(uuid.New(), trade.OrderStatusConfirmed))

		page, err := repo.FindPage(context.Background(), trade.OrderQuery{
			Statuses: []trade.OrderStatus{trade.OrderStatusConfirmed},
			Products: []string{"AKILLI Saat"},
		})

		assert.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, int64(1), page.Total)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("last page offsets past the full pages and returns the remainder", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		// 41 rows at 20 per page: page 3 holds the single remaining row
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

		mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY created_at DESC, id LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 40).
			WillReturnRows(orderRows(uuid.New(), trade.OrderStatusConfirmed))

		page, err := repo.FindPage(context.Background(), trade.OrderQuery{Page: 3, PageSize: 20})

		assert.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, int64(41), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

		mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY created_at DESC, id LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 60).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "surname", "phone", "product_name", "product_key", "package_count", "status"}))

		page, err := repo.FindPage(context.Background(), trade.OrderQuery{Page: 4, PageSize: 20})

		assert.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, int64(41), page.Total)
		assert.Empty(t, page.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CreateWithStockDeduction(t *testing.T) {
	newIntakeOrder := func(t *testing.T) *trade.Order {
		order, err := trade.NewOrder("Ayşe", "Yılmaz", "5551112233", "Akıllı Saat", 2)
		require.NoError(t, err)
		return order
	}

	t.Run("deducts stock from existing product in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := newIntakeOrder(t)
		productID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE name_key = \$1`).
			WithArgs("akıllı saat", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "name_key", "stock"}).
				AddRow(productID, "Akıllı Saat", "akıllı saat", 10))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WithArgs(2, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "orders"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithStockDeduction(context.Background(), order)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates unknown product with zero stock before deducting", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := newIntakeOrder(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE name_key = \$1`).
			WithArgs("akıllı saat", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "products"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "orders"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithStockDeduction(context.Background(), order)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and reports the failed stage", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := newIntakeOrder(t)
		productID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE name_key = \$1`).
			WithArgs("akıllı saat", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "name_key", "stock"}).
				AddRow(productID, "Akıllı Saat", "akıllı saat", 10))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.CreateWithStockDeduction(context.Background(), order)

		require.Error(t, err)
		var intakeErr *trade.IntakeError
		require.ErrorAs(t, err, &intakeErr)
		assert.Equal(t, trade.IntakeStageStockUpdate, intakeErr.Stage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_DeleteWithStockCompensation(t *testing.T) {
	t.Run("restores stock for a confirmed order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, trade.OrderStatusConfirmed))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE name_key = \$2`).
			WithArgs(2, "akıllı saat").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteWithStockCompensation(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips compensation for an unconfirmed order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID, trade.OrderStatusAwaitingConfirmation))
		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteWithStockCompensation(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockPurchaseRepository(t *testing.T) (*GormPurchaseRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPurchaseRepository(gormDB), mock, mockDB
}

func TestGormPurchaseRepository_FindAll(t *testing.T) {
	t.Run("pages history newest first and counts every row", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "purchases" ORDER BY date DESC, id LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "supplier_id", "product_id", "amount", "status"}).
				AddRow(uuid.New(), uuid.New(), uuid.New(), 50, trade.PurchaseStatusInTransit))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchases"$`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

		filter := shared.DefaultFilter()
		filter.Page = 2

		purchases, err := repo.FindAll(context.Background(), filter)
		require.NoError(t, err)
		assert.Len(t, purchases, 1)

		total, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(21), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseRepository_SaveAndAdjustStock(t *testing.T) {
	t.Run("saves purchase and increments stock atomically", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		purchase, err := trade.NewPurchase(uuid.New(), uuid.New(), 50,
			decimal.NewFromInt(12), decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)
		require.NoError(t, purchase.Receive())

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "purchases" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(50, purchase.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveAndAdjustStock(context.Background(), purchase, purchase.Amount)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the save when the stock update fails", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		purchase, err := trade.NewPurchase(uuid.New(), uuid.New(), 50,
			decimal.NewFromInt(12), decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "purchases" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WillReturnError(gorm.ErrInvalidDB)
		mock.ExpectRollback()

		err = repo.SaveAndAdjustStock(context.Background(), purchase, purchase.Amount)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseRepository_DeleteAndAdjustStock(t *testing.T) {
	t.Run("deletes purchase and reverses its stock in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		purchase, err := trade.NewPurchase(uuid.New(), uuid.New(), 30,
			decimal.NewFromInt(8), decimal.Zero, time.Now())
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "purchases" WHERE id = \$1`).
			WithArgs(purchase.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2`).
			WithArgs(-30, purchase.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.DeleteAndAdjustStock(context.Background(), purchase, -purchase.Amount)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

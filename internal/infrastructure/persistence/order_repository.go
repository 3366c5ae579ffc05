package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukkan/backoffice/internal/domain/catalog"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindPage returns one page of orders matching the query, newest first.
// The id tie-break keeps paging stable when orders share a timestamp.
func (r *GormOrderRepository) FindPage(ctx context.Context, query trade.OrderQuery) (*shared.Paginated[trade.Order], error) {
	query.Normalize()

	var total int64
	err := r.applyQuery(r.db.WithContext(ctx).Model(&trade.Order{}), query).
		Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []trade.Order
	err = r.applyQuery(r.db.WithContext(ctx).Model(&trade.Order{}), query).
		Order("created_at DESC, id").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	page := shared.NewPaginated(orders, total, query.Page, query.PageSize)
	return &page, nil
}

func (r *GormOrderRepository) FindInRange(ctx context.Context, start, end time.Time) ([]trade.Order, error) {
	var orders []trade.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC, id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindActiveByPhoneSuffix returns the newest order whose phone ends with the
// given digits and that is not already in a terminal return state.
func (r *GormOrderRepository) FindActiveByPhoneSuffix(ctx context.Context, suffix string) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).
		Where("phone LIKE ?", "%"+suffix).
		Where("status <> ?", trade.OrderStatusReturned).
		Order("created_at DESC, id").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by phone suffix: %w", err)
	}
	return &order, nil
}

func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&trade.Order{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CreateWithStockDeduction persists the order and deducts stock in a single
// transaction. A product unknown to the catalog is created on the fly with
// zero stock, so the deduction may drive stock negative; oversells surface in
// reporting instead of blocking intake.
func (r *GormOrderRepository) CreateWithStockDeduction(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product catalog.Product
		err := tx.Where("name_key = ?", order.ProductKey).First(&product).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return trade.NewIntakeError(trade.IntakeStageProductLookup, err)
			}
			created, err := catalog.NewProductFromIntake(order.ProductName)
			if err != nil {
				return trade.NewIntakeError(trade.IntakeStageProductLookup, err)
			}
			if err := tx.Create(created).Error; err != nil {
				return trade.NewIntakeError(trade.IntakeStageProductLookup, err)
			}
			product = *created
		}

		err = tx.Model(&catalog.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock - ?", order.PackageCount)).Error
		if err != nil {
			return trade.NewIntakeError(trade.IntakeStageStockUpdate, err)
		}

		if err := tx.Create(order).Error; err != nil {
			return trade.NewIntakeError(trade.IntakeStageOrderCreate, err)
		}
		return nil
	})
}

// DeleteWithStockCompensation removes the order and, when it had been
// confirmed, returns its units to stock in the same transaction.
func (r *GormOrderRepository) DeleteWithStockCompensation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order trade.Order
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return fmt.Errorf("failed to find order: %w", err)
		}
		if order.IsConfirmed() {
			err := tx.Model(&catalog.Product{}).
				Where("name_key = ?", order.ProductKey).
				UpdateColumn("stock", gorm.Expr("stock + ?", order.PackageCount)).Error
			if err != nil {
				return fmt.Errorf("failed to compensate stock: %w", err)
			}
		}
		result := tx.Where("id = ?", order.ID).Delete(&trade.Order{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormOrderRepository) applyQuery(db *gorm.DB, query trade.OrderQuery) *gorm.DB {
	if len(query.Statuses) > 0 {
		db = db.Where("status IN ?", query.Statuses)
	}
	if len(query.ExcludeStatuses) > 0 {
		db = db.Where("status NOT IN ?", query.ExcludeStatuses)
	}
	if len(query.Products) > 0 {
		db = db.Where("product_key IN ?", normalizeNames(query.Products))
	}
	if len(query.ExcludeProducts) > 0 {
		db = db.Where("product_key NOT IN ?", normalizeNames(query.ExcludeProducts))
	}
	if len(query.Tags) > 0 {
		// Tags live in a serialized JSON array; match the quoted element.
		conds := make([]string, 0, len(query.Tags))
		args := make([]interface{}, 0, len(query.Tags))
		for _, tag := range query.Tags {
			conds = append(conds, "tags LIKE ?")
			args = append(args, `%"`+tag+`"%`)
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR phone LIKE ?",
			pattern, pattern, "%"+query.Search+"%",
		)
	}
	if query.StartDate != nil {
		db = db.Where("created_at >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("created_at < ?", *query.EndDate)
	}
	return db
}

func normalizeNames(names []string) []string {
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = catalog.NormalizeName(name)
	}
	return keys
}

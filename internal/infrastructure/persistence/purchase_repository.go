package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukkan/backoffice/internal/domain/catalog"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new purchase repository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	return &purchase, nil
}

func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	db := r.db.WithContext(ctx).Model(&trade.Purchase{}).Order("date DESC, id")
	if filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := db.Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (r *GormPurchaseRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date DESC, id").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by product: %w", err)
	}
	return purchases, nil
}

func (r *GormPurchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Purchase{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	if err := r.db.WithContext(ctx).Save(purchase).Error; err != nil {
		return fmt.Errorf("failed to save purchase: %w", err)
	}
	return nil
}

func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&trade.Purchase{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete purchase: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveAndAdjustStock persists the purchase and moves its product's stock by
// stockDelta in one transaction, so a receive cannot land without the stock
// increment.
func (r *GormPurchaseRepository) SaveAndAdjustStock(ctx context.Context, purchase *trade.Purchase, stockDelta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(purchase).Error; err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}
		return adjustStock(tx, purchase.ProductID, stockDelta)
	})
}

// DeleteAndAdjustStock removes the purchase and moves its product's stock by
// stockDelta in one transaction.
func (r *GormPurchaseRepository) DeleteAndAdjustStock(ctx context.Context, purchase *trade.Purchase, stockDelta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", purchase.ID).Delete(&trade.Purchase{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete purchase: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return adjustStock(tx, purchase.ProductID, stockDelta)
	})
}

func adjustStock(tx *gorm.DB, productID uuid.UUID, delta int) error {
	result := tx.Model(&catalog.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

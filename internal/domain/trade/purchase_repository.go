package trade

import (
	"context"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseRepository defines the persistence interface for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// FindAll pages through purchase history, newest first. Purchases carry
	// no free-text columns, so only the paging fields of the filter apply.
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Purchase, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveAndAdjustStock saves the purchase and applies a stock delta to its
	// product in one transaction. Used when receiving a purchase into stock
	// and when deleting a received purchase.
	SaveAndAdjustStock(ctx context.Context, purchase *Purchase, stockDelta int) error

	// DeleteAndAdjustStock deletes the purchase and applies a stock delta to
	// its product in one transaction.
	DeleteAndAdjustStock(ctx context.Context, purchase *Purchase, stockDelta int) error
}

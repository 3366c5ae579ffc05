package trade

import (
	"context"
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderQuery captures the filters of an order listing. Include and exclude
// sets compose with AND semantics; empty slices mean the dimension is
// unconstrained.
type OrderQuery struct {
	Statuses        []OrderStatus
	ExcludeStatuses []OrderStatus
	Products        []string
	ExcludeProducts []string
	Tags            []string
	Search          string
	StartDate       *time.Time
	EndDate         *time.Time
	Page            int
	PageSize        int
}

// Normalize clamps paging values to usable defaults
func (q *OrderQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = shared.DefaultPageSize
	}
	if q.PageSize > shared.MaxPageSize {
		q.PageSize = shared.MaxPageSize
	}
}

// Offset returns the row offset of the requested page
func (q *OrderQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindPage(ctx context.Context, query OrderQuery) (*shared.Paginated[Order], error)
	FindInRange(ctx context.Context, start, end time.Time) ([]Order, error)
	FindActiveByPhoneSuffix(ctx context.Context, suffix string) (*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateWithStockDeduction runs the intake write path in one transaction:
	// upsert the product by normalized name (created with zero stock when
	// unknown), decrement its stock by the order quantity, insert the order.
	// Failures come back as *IntakeError naming the failed stage.
	CreateWithStockDeduction(ctx context.Context, order *Order) error

	// DeleteWithStockCompensation deletes the order and, only when its status
	// is onaylandi, adds the order quantity back to the product's stock, both
	// in one transaction.
	DeleteWithStockCompensation(ctx context.Context, id uuid.UUID) error
}

package trade

import (
	"context"
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService handles order listing and manual order operations
type OrderService struct {
	orderRepo trade.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListOrdersQuery carries the dashboard filter parameters
type ListOrdersQuery struct {
	Statuses        []string
	ExcludeStatuses []string
	Products        []string
	ExcludeProducts []string
	Tags            []string
	Search          string
	StartDate       *time.Time
	EndDate         *time.Time
	Page            int
	PageSize        int
}

func toOrderStatuses(values []string) ([]trade.OrderStatus, error) {
	statuses := make([]trade.OrderStatus, 0, len(values))
	for _, v := range values {
		status := trade.OrderStatus(v)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status "+v)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// List returns a filtered, paginated page of orders, newest first
func (s *OrderService) List(ctx context.Context, q ListOrdersQuery) (*shared.Paginated[OrderResponse], error) {
	statuses, err := toOrderStatuses(q.Statuses)
	if err != nil {
		return nil, err
	}
	excludeStatuses, err := toOrderStatuses(q.ExcludeStatuses)
	if err != nil {
		return nil, err
	}

	query := trade.OrderQuery{
		Statuses:        statuses,
		ExcludeStatuses: excludeStatuses,
		Products:        q.Products,
		ExcludeProducts: q.ExcludeProducts,
		Tags:            q.Tags,
		Search:          q.Search,
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		Page:            q.Page,
		PageSize:        q.PageSize,
	}
	query.Normalize()

	page, err := s.orderRepo.FindPage(ctx, query)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(page.Items), page.Total, page.Page, page.PageSize)
	return &result, nil
}

// GetByID retrieves a single order
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves the order to the given status. Transitions are not
// constrained; operators fix mislabeled orders by moving them backwards.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetStatus(trade.OrderStatus(status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateTags replaces the order's tag set
func (s *OrderService) UpdateTags(ctx context.Context, id uuid.UUID, tags []string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.SetTags(tags)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateOrderRequest carries a manual order edit. Phone format is not
// re-validated here; the strict GSM pattern applies to webhook intake only.
type UpdateOrderRequest struct {
	Name          string
	Surname       string
	Phone         string
	Address       string
	City          string
	District      string
	PaymentMethod string
	BasePrice     float64
	ShippingCost  float64
	TotalPrice    float64
}

// Update applies a manual edit to the order's customer and pricing fields
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Name = req.Name
	order.Surname = req.Surname
	order.Phone = req.Phone
	order.SetAddress(req.Address, req.City, req.District)
	order.SetPaymentMethod(req.PaymentMethod)
	order.SetPricing(
		decimal.NewFromFloat(req.BasePrice),
		decimal.NewFromFloat(req.ShippingCost),
		decimal.NewFromFloat(req.TotalPrice),
	)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes the order. When the order was confirmed its units had left
// stock, so the deletion adds them back; for any other status stock is
// untouched.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.DeleteWithStockCompensation(ctx, id)
}

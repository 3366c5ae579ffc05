package intake

import (
	"context"
	"errors"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// IntakeService turns webhook payloads into orders. The whole write path
// (product upsert, stock deduction, order insert) runs in one repository
// transaction, so a failed insert never leaves a dangling stock decrement.
type IntakeService struct {
	orderRepo  trade.OrderRepository
	sourceRepo integration.WebhookSourceRepository
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(orderRepo trade.OrderRepository, sourceRepo integration.WebhookSourceRepository) *IntakeService {
	return &IntakeService{
		orderRepo:  orderRepo,
		sourceRepo: sourceRepo,
	}
}

// CreateOrderRequest is an inbound webhook order
type CreateOrderRequest struct {
	Name          string
	Surname       string
	Phone         string
	Address       string
	City          string
	District      string
	Product       string
	Quantity      int
	PaymentMethod string
	ABVariant     string
	OrderSource   string
	TotalPrice    float64
	BasePrice     float64
	ShippingCost  float64

	// SourceCode is the optional webhook-source selector from the URL. When
	// it resolves, the bound product overrides req.Product; unknown codes
	// are ignored.
	SourceCode string
}

// CreateOrder validates the payload and persists the order with its stock
// deduction. Validation failures return *shared.DomainError; datastore
// failures return *trade.IntakeError naming the failed stage.
func (s *IntakeService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*trade.Order, error) {
	productName := req.Product
	if req.SourceCode != "" {
		source, err := s.sourceRepo.FindByCode(ctx, req.SourceCode)
		switch {
		case err == nil:
			productName = source.ProductName
		case errors.Is(err, shared.ErrNotFound):
			// stale landing pages may carry retired codes; fall through to
			// the declared product
		default:
			return nil, trade.NewIntakeError(trade.IntakeStageProductLookup, err)
		}
	}

	order, err := trade.NewOrder(req.Name, req.Surname, req.Phone, productName, req.Quantity)
	if err != nil {
		return nil, err
	}
	order.SetAddress(req.Address, req.City, req.District)
	order.SetPricing(
		decimal.NewFromFloat(req.BasePrice),
		decimal.NewFromFloat(req.ShippingCost),
		decimal.NewFromFloat(req.TotalPrice),
	)
	order.SetProvenance(req.OrderSource, req.ABVariant)
	order.SetPaymentMethod(req.PaymentMethod)

	if err := s.orderRepo.CreateWithStockDeduction(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

package trade

import (
	"context"
	"time"

	"github.com/dukkan/backoffice/internal/domain/catalog"
	"github.com/dukkan/backoffice/internal/domain/partner"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseService handles supplier purchases and their stock effects
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// CreatePurchaseRequest carries a new purchase entry
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID
	ProductID    uuid.UUID
	Amount       int
	UnitPrice    float64
	ShippingCost float64
	Date         time.Time
}

// Create records a new in-transit purchase. The total price is computed and
// frozen here; the referenced supplier and product must exist.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	purchase, err := trade.NewPurchase(
		req.SupplierID,
		req.ProductID,
		req.Amount,
		decimal.NewFromFloat(req.UnitPrice),
		decimal.NewFromFloat(req.ShippingCost),
		req.Date,
	)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Receive marks the purchase as received and adds its units to stock in one
// transaction
func (s *PurchaseService) Receive(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.Receive(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveAndAdjustStock(ctx, purchase, purchase.Amount); err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// List returns purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseResponse], error) {
	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToPurchaseResponses(purchases), total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetByID retrieves a single purchase
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Delete removes the purchase. Deleting a received purchase takes its units
// back out of stock so the counter stays consistent with purchase history.
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase.IsReceived() {
		return s.purchaseRepo.DeleteAndAdjustStock(ctx, purchase, -purchase.Amount)
	}
	return s.purchaseRepo.Delete(ctx, purchase.ID)
}

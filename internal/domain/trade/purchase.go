package trade

import (
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a supplier purchase
type PurchaseStatus string

const (
	PurchaseStatusInTransit PurchaseStatus = "yolda"
	PurchaseStatusReceived  PurchaseStatus = "stoga_girdi"
)

// IsValid checks if the status is a known PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	return s == PurchaseStatusInTransit || s == PurchaseStatusReceived
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// Purchase represents a stock purchase from a supplier. The total is
// computed once at creation and stored, so later unit-price edits on the
// product never rewrite purchase history.
type Purchase struct {
	shared.BaseEntity
	SupplierID   uuid.UUID
	ProductID    uuid.UUID
	Amount       int
	UnitPrice    decimal.Decimal
	ShippingCost decimal.Decimal
	TotalPrice   decimal.Decimal
	Status       PurchaseStatus
	Date         time.Time
}

// Purchase domain errors
var (
	ErrInvalidPurchaseAmount = shared.NewDomainError("INVALID_AMOUNT", "Purchase amount must be at least 1")
	ErrPurchaseReceived      = shared.NewDomainError("PURCHASE_RECEIVED", "Purchase has already been received into stock")
)

// NewPurchase creates a new in-transit purchase and computes its total price
func NewPurchase(supplierID, productID uuid.UUID, amount int, unitPrice, shippingCost decimal.Decimal, date time.Time) (*Purchase, error) {
	if amount < 1 {
		return nil, ErrInvalidPurchaseAmount
	}
	if unitPrice.IsNegative() || shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price and shipping cost cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Purchase{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		ProductID:    productID,
		Amount:       amount,
		UnitPrice:    unitPrice,
		ShippingCost: shippingCost,
		TotalPrice:   unitPrice.Mul(decimal.NewFromInt(int64(amount))).Add(shippingCost),
		Status:       PurchaseStatusInTransit,
		Date:         date,
	}, nil
}

// Receive marks the purchase as received into stock.
// The stock increment itself is the caller's responsibility.
func (p *Purchase) Receive() error {
	if p.Status == PurchaseStatusReceived {
		return ErrPurchaseReceived
	}
	p.Status = PurchaseStatusReceived
	p.UpdatedAt = time.Now()
	return nil
}

// IsReceived returns true if the purchase has entered stock
func (p *Purchase) IsReceived() bool {
	return p.Status == PurchaseStatusReceived
}

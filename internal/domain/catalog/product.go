package catalog

import (
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// Orders join against it by normalized name, not by foreign key, and Stock is
// a plain signed counter: selling below zero is allowed and tracked rather
// than prevented, so over-selling shows up as negative stock on the dashboard.
type Product struct {
	shared.BaseEntity
	Name     string
	NameKey  string `gorm:"uniqueIndex"`
	UnitCost decimal.Decimal
	Stock    int
}

// NewProduct creates a new product
func NewProduct(name string, unitCost decimal.Decimal, stock int) (*Product, error) {
	if NormalizeName(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		NameKey:    NormalizeName(name),
		UnitCost:   unitCost,
		Stock:      stock,
	}, nil
}

// NewProductFromIntake creates a placeholder product for an order whose
// product name is not yet in the catalog. Stock starts at zero and goes
// negative as soon as the triggering order is deducted.
func NewProductFromIntake(name string) (*Product, error) {
	return NewProduct(name, decimal.Zero, 0)
}

// AdjustStock applies a signed stock delta. Negative results are allowed.
func (p *Product) AdjustStock(delta int) {
	p.Stock += delta
	p.UpdatedAt = time.Now()
}

// SetUnitCost updates the unit cost
func (p *Product) SetUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}
	p.UnitCost = cost
	p.UpdatedAt = time.Now()
	return nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if NormalizeName(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.NameKey = NormalizeName(name)
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the stock counter with an absolute value
func (p *Product) SetStock(stock int) {
	p.Stock = stock
	p.UpdatedAt = time.Now()
}

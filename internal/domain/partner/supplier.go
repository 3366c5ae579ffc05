package partner

import (
	"context"
	"strings"
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier represents a stock supplier
type Supplier struct {
	shared.BaseEntity
	Name    string
	Contact string
	Phone   string
	Address string
	Notes   string
}

// ErrSupplierNameRequired indicates a missing supplier name
var ErrSupplierNameRequired = shared.NewDomainError("SUPPLIER_NAME_REQUIRED", "Supplier name cannot be empty")

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrSupplierNameRequired
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}, nil
}

// Update replaces the supplier's details
func (s *Supplier) Update(name, contact, phone, address, notes string) error {
	if strings.TrimSpace(name) == "" {
		return ErrSupplierNameRequired
	}
	s.Name = strings.TrimSpace(name)
	s.Contact = contact
	s.Phone = phone
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

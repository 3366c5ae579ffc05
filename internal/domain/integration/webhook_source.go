package integration

import (
	"context"
	"strings"
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// WebhookSource binds a short source code carried in the webhook URL to a
// product name. When an intake request names a resolvable source, the bound
// product overrides whatever product the payload declares. Unknown codes are
// ignored rather than rejected so a stale landing page cannot lose orders.
type WebhookSource struct {
	shared.BaseEntity
	Code        string
	ProductName string
	Description string
}

// Webhook source domain errors
var (
	ErrSourceCodeRequired    = shared.NewDomainError("SOURCE_CODE_REQUIRED", "Source code cannot be empty")
	ErrSourceProductRequired = shared.NewDomainError("SOURCE_PRODUCT_REQUIRED", "Bound product name cannot be empty")
)

// NewWebhookSource creates a new source-to-product binding
func NewWebhookSource(code, productName, description string) (*WebhookSource, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrSourceCodeRequired
	}
	if strings.TrimSpace(productName) == "" {
		return nil, ErrSourceProductRequired
	}
	return &WebhookSource{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		ProductName: productName,
		Description: description,
	}, nil
}

// Rebind points the source at a different product
func (w *WebhookSource) Rebind(productName, description string) error {
	if strings.TrimSpace(productName) == "" {
		return ErrSourceProductRequired
	}
	w.ProductName = productName
	w.Description = description
	w.UpdatedAt = time.Now()
	return nil
}

// WebhookSourceRepository defines the persistence interface for sources
type WebhookSourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WebhookSource, error)
	FindByCode(ctx context.Context, code string) (*WebhookSource, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]WebhookSource, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, source *WebhookSource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

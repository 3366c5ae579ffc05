package integration

import (
	"context"
	"errors"
	"time"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// WebhookSourceService manages source-code-to-product bindings
type WebhookSourceService struct {
	sourceRepo integration.WebhookSourceRepository
}

// NewWebhookSourceService creates a new WebhookSourceService
func NewWebhookSourceService(sourceRepo integration.WebhookSourceRepository) *WebhookSourceService {
	return &WebhookSourceService{sourceRepo: sourceRepo}
}

// WebhookSourceResponse is the outward representation of a source binding
type WebhookSourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Product     string    `json:"product"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToWebhookSourceResponse converts a domain source binding
func ToWebhookSourceResponse(source *integration.WebhookSource) WebhookSourceResponse {
	return WebhookSourceResponse{
		ID:          source.ID,
		Code:        source.Code,
		Product:     source.ProductName,
		Description: source.Description,
		CreatedAt:   source.CreatedAt,
	}
}

// WebhookSourceRequest carries a binding create or update
type WebhookSourceRequest struct {
	Code        string
	Product     string
	Description string
}

// Create adds a source binding; codes are unique
func (s *WebhookSourceService) Create(ctx context.Context, req WebhookSourceRequest) (*WebhookSourceResponse, error) {
	existing, err := s.sourceRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	source, err := integration.NewWebhookSource(req.Code, req.Product, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.sourceRepo.Save(ctx, source); err != nil {
		return nil, err
	}
	resp := ToWebhookSourceResponse(source)
	return &resp, nil
}

// Update rebinds a source to another product
func (s *WebhookSourceService) Update(ctx context.Context, id uuid.UUID, req WebhookSourceRequest) (*WebhookSourceResponse, error) {
	source, err := s.sourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := source.Rebind(req.Product, req.Description); err != nil {
		return nil, err
	}
	if err := s.sourceRepo.Save(ctx, source); err != nil {
		return nil, err
	}
	resp := ToWebhookSourceResponse(source)
	return &resp, nil
}

// List returns source bindings with filtering and pagination
func (s *WebhookSourceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WebhookSourceResponse], error) {
	sources, err := s.sourceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.sourceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]WebhookSourceResponse, len(sources))
	for i := range sources {
		responses[i] = ToWebhookSourceResponse(&sources[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a source binding
func (s *WebhookSourceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sourceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.sourceRepo.Delete(ctx, id)
}

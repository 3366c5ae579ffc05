package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWebhookSourceRepository implements integration.WebhookSourceRepository
type GormWebhookSourceRepository struct {
	db *gorm.DB
}

// NewGormWebhookSourceRepository creates a new webhook source repository
func NewGormWebhookSourceRepository(db *gorm.DB) *GormWebhookSourceRepository {
	return &GormWebhookSourceRepository{db: db}
}

func (r *GormWebhookSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.WebhookSource, error) {
	var source integration.WebhookSource
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find webhook source: %w", err)
	}
	return &source, nil
}

func (r *GormWebhookSourceRepository) FindByCode(ctx context.Context, code string) (*integration.WebhookSource, error) {
	var source integration.WebhookSource
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find webhook source by code: %w", err)
	}
	return &source, nil
}

func (r *GormWebhookSourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]integration.WebhookSource, error) {
	var sources []integration.WebhookSource
	db := r.db.WithContext(ctx).Model(&integration.WebhookSource{}).Order("code")
	if filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := db.Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhook sources: %w", err)
	}
	return sources, nil
}

func (r *GormWebhookSourceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&integration.WebhookSource{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count webhook sources: %w", err)
	}
	return count, nil
}

func (r *GormWebhookSourceRepository) Save(ctx context.Context, source *integration.WebhookSource) error {
	if err := r.db.WithContext(ctx).Save(source).Error; err != nil {
		return fmt.Errorf("failed to save webhook source: %w", err)
	}
	return nil
}

func (r *GormWebhookSourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&integration.WebhookSource{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete webhook source: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

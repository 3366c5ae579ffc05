package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"gorm.io/gorm"
)

// GormSettingsRepository implements integration.SettingsRepository
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new settings repository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the singleton settings row, or a fresh empty one when none
// has been saved yet.
func (r *GormSettingsRepository) Load(ctx context.Context) (*integration.Settings, error) {
	var settings integration.Settings
	err := r.db.WithContext(ctx).Order("created_at").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return integration.NewSettings(), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

func (r *GormSettingsRepository) Save(ctx context.Context, settings *integration.Settings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

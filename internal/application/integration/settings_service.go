package integration

import (
	"context"

	"github.com/dukkan/backoffice/internal/domain/integration"
)

// SettingsService manages the singleton integration settings
type SettingsService struct {
	settingsRepo integration.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo integration.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SettingsResponse exposes the settings without leaking the full token
type SettingsResponse struct {
	AdAccountID      string `json:"ad_account_id"`
	AdTokenConfigured bool  `json:"ad_token_configured"`
}

// Get loads the settings
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{
		AdAccountID:      settings.AdAccountID,
		AdTokenConfigured: settings.AdAccessToken != "",
	}, nil
}

// UpdateAdCredentials stores new ad-platform credentials
func (s *SettingsService) UpdateAdCredentials(ctx context.Context, accountID, accessToken string) error {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return err
	}
	settings.SetAdCredentials(accountID, accessToken)
	return s.settingsRepo.Save(ctx, settings)
}

package integration

import (
	"context"
	"time"

	"github.com/dukkan/backoffice/internal/domain/shared"
)

// Settings is the singleton row holding external integration credentials,
// currently the ad-platform API used for spend figures in reports.
type Settings struct {
	shared.BaseEntity
	AdAccountID   string
	AdAccessToken string
}

// NewSettings creates the settings row
func NewSettings() *Settings {
	return &Settings{BaseEntity: shared.NewBaseEntity()}
}

// SetAdCredentials stores the ad-platform account and token
func (s *Settings) SetAdCredentials(accountID, accessToken string) {
	s.AdAccountID = accountID
	s.AdAccessToken = accessToken
	s.UpdatedAt = time.Now()
}

// HasAdCredentials reports whether ad spend can be fetched
func (s *Settings) HasAdCredentials() bool {
	return s.AdAccountID != "" && s.AdAccessToken != ""
}

// SettingsRepository loads and stores the singleton settings row.
// Load returns a fresh empty Settings when none has been saved yet.
type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

package trellis

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/rs/zerolog"
)

// SettingsService reads and merges the user settings document.
type SettingsService struct {
	store settings.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store settings.Store, log zerolog.Logger) *SettingsService {
	return &SettingsService{
		store: store,
		log:   log.With().Str("component", "settings-service").Logger(),
		now:   time.Now,
	}
}

// Get returns the current settings, defaults when nothing has been saved.
func (s *SettingsService) Get(ctx context.Context) (settings.Settings, error) {
	return s.store.Load(ctx)
}

// Update shallow-merges the patch into the stored settings and bumps
// UpdatedAt.
func (s *SettingsService) Update(ctx context.Context, patch settings.Patch) (settings.Settings, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	merged := patch.Apply(current)
	merged.UpdatedAt = s.now()

	if err := s.store.Save(ctx, merged); err != nil {
		return settings.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.log.Debug().Msg("settings updated")
	return merged, nil
}

package trellis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/hay-kot/trellis/internal/store/jsonfile"
)

func newSettingsService(t *testing.T) *SettingsService {
	t.Helper()

	store := jsonfile.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	return NewSettingsService(store, zerolog.Nop())
}

func TestSettingsService_GetReturnsDefaults(t *testing.T) {
	svc := newSettingsService(t)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), got)
}

func TestSettingsService_UpdateMergesAndStampsUpdatedAt(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	theme := "dark"
	updated, err := svc.Update(ctx, settings.Patch{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, "dark", updated.Theme)
	assert.False(t, updated.UpdatedAt.IsZero())
	// untouched fields keep their defaults
	assert.True(t, updated.Notifications)
	assert.Equal(t, settings.Default().TaskManagement, updated.TaskManagement)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}

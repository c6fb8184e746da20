package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/hay-kot/trellis/pkg/randid"
)

var _ settings.Store = (*SettingsStore)(nil)

// SettingsStore persists the settings document as a single JSON file.
type SettingsStore struct {
	path string
	mu   sync.RWMutex
}

// NewSettingsStore creates a settings store backed by the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the settings document, returning defaults when nothing has been
// saved yet.
func (s *SettingsStore) Load(ctx context.Context) (settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings.Default(), nil
		}
		return settings.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	if len(data) == 0 {
		return settings.Default(), nil
	}

	var out settings.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return settings.Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	return out, nil
}

// Save replaces the stored settings document.
func (s *SettingsStore) Save(ctx context.Context, doc settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := s.path + ".tmp." + randid.Generate(6)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}

	return nil
}

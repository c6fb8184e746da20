package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "no-such-config.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "127.0.0.1:3001", cfg.Web.Listen)
	assert.Equal(t, 7, cfg.Brief.Days)
	assert.Equal(t, 5, cfg.Brief.FocusLimit)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_ReadsFileAndFillsGaps(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
storage:
  backend: sqlite
web:
  listen: 0.0.0.0:8080
`), 0o644))

	cfg, err := Load(configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.Web.Listen)
	// unspecified values fall back to defaults
	assert.Equal(t, 7, cfg.Brief.Days)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(":\n :b:\n"), 0o644))

	_, err := Load(configPath, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"bad listen address", func(c *Config) { c.Web.Listen = "not-an-addr" }, "web.listen"},
		{"negative brief days", func(c *Config) { c.Brief.Days = -1 }, "brief.days"},
		{"negative focus limit", func(c *Config) { c.Brief.FocusLimit = -2 }, "brief.focus_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateDeep_DataDirIsAFile(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = notADir

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
}

func TestValidateDeep_MissingDataDirIsFine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "not-created-yet")

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestDataFilePaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"

	assert.Equal(t, filepath.Join("/data", "tasks.json"), cfg.TasksFile())
	assert.Equal(t, filepath.Join("/data", "projects.json"), cfg.ProjectsFile())
	assert.Equal(t, filepath.Join("/data", "settings.json"), cfg.SettingsFile())
}

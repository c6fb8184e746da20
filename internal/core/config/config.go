// Package config handles configuration loading and validation for trellis.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Web     WebConfig     `yaml:"web"`
	Brief   BriefConfig   `yaml:"brief"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "json" (flat files in the data dir) or "sqlite".
	Backend string `yaml:"backend"`
}

// WebConfig holds HTTP API settings.
type WebConfig struct {
	Listen string `yaml:"listen"`
}

// BriefConfig controls the daily brief output.
type BriefConfig struct {
	// Days is the size of the daily activity window.
	Days int `yaml:"days"`
	// FocusLimit caps the number of tasks shown in today's focus list.
	FocusLimit int `yaml:"focus_limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendJSON},
		Web:     WebConfig{Listen: "127.0.0.1:3001"},
		Brief:   BriefConfig{Days: 7, FocusLimit: 5},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Web.Listen == "" {
		c.Web.Listen = defaults.Web.Listen
	}
	if c.Brief.Days == 0 {
		c.Brief.Days = defaults.Brief.Days
	}
	if c.Brief.FocusLimit == 0 {
		c.Brief.FocusLimit = defaults.Brief.FocusLimit
	}
}

// TasksFile returns the path of the JSON task collection file.
func (c *Config) TasksFile() string {
	return joinData(c.DataDir, "tasks.json")
}

// ProjectsFile returns the path of the JSON project collection file.
func (c *Config) ProjectsFile() string {
	return joinData(c.DataDir, "projects.json")
}

// SettingsFile returns the path of the settings document file.
func (c *Config) SettingsFile() string {
	return joinData(c.DataDir, "settings.json")
}

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = errs.Append("storage.backend", fmt.Errorf("must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend))
	}

	if c.Web.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Web.Listen); err != nil {
			errs = errs.Append("web.listen", fmt.Errorf("invalid host:port %q: %w", c.Web.Listen, err))
		}
	}

	if c.Brief.Days < 0 {
		errs = errs.Append("brief.days", fmt.Errorf("must be non-negative, got %d", c.Brief.Days))
	}
	if c.Brief.FocusLimit < 0 {
		errs = errs.Append("brief.focus_limit", fmt.Errorf("must be non-negative, got %d", c.Brief.FocusLimit))
	}

	return errs.ToError()
}

// ValidateDeep performs comprehensive validation including file accessibility.
// The configPath argument specifies the config file location to validate
// (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func (c *Config) validateFileAccess(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		// A missing config file means defaults; not an error.
		return nil
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}

	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("data dir is required")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first save
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	return nil
}

func joinData(dataDir, name string) string {
	return filepath.Join(dataDir, name)
}

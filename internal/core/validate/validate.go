// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

// Required validates a value is non-empty after trimming whitespace.
func Required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// RequiredField returns a criterio field error when s is blank.
func RequiredField(field, s string) error {
	return criterio.Run(field, s, Required)
}

// Date validates a YYYY-MM-DD date string. Empty strings pass; absence is
// expressed as the empty string throughout.
func Date(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return nil
}

// DateField returns a criterio field error when s is not a valid date.
func DateField(field, s string) error {
	return criterio.Run(field, s, Date)
}

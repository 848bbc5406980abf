package paths

import (
	"errors"
	"fmt"
)

// ErrMissingPlaceholder is returned when a path template has no Placeholder.
var ErrMissingPlaceholder = errors.New("path template must include " + Placeholder)

// ConfigurationError reports a user-facing pagination configuration problem.
// It disables pagination for the affected run only.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid pagination %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid pagination %s: %v", e.Field, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

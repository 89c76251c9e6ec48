package config

import "fmt"

// ConfigurationError reports invalid or contradictory settings. It is
// returned before any browser is launched.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("'%s' %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("config error: %s", msg)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

func invalid(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

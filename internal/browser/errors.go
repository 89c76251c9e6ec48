package browser

import (
	"context"
	"errors"
	"fmt"
)

// NavigationTimeoutError is returned when a navigation or settle wait exceeds its deadline.
type NavigationTimeoutError struct {
	URL    string
	Policy WaitPolicy
	Cause  error
}

func (e *NavigationTimeoutError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("navigation to %s timed out waiting for %s: %v", e.URL, e.Policy, e.Cause)
	}
	return fmt.Sprintf("navigation timed out waiting for %s: %v", e.Policy, e.Cause)
}

func (e *NavigationTimeoutError) Unwrap() error {
	return e.Cause
}

// ElementNotFoundError is returned when an expected element does not appear.
type ElementNotFoundError struct {
	Selector string
	Cause    error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found: %v", e.Selector, e.Cause)
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Cause
}

// Error represents any other browser failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("browser error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

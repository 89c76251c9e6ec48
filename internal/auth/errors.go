package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/codewars-scraper/internal/browser"
)

// ErrorKind classifies authentication failures.
type ErrorKind string

const (
	// KindNavigationTimeout means a page did not load or settle in time
	KindNavigationTimeout ErrorKind = "NavigationTimeout"
	// KindUnexpectedPageStructure means an expected form element was missing
	KindUnexpectedPageStructure ErrorKind = "UnexpectedPageStructure"
	// KindSecondFactorFailed means no verification code could be obtained
	KindSecondFactorFailed ErrorKind = "SecondFactorFailed"
	// KindNavigationFailed covers any other browser failure during login
	KindNavigationFailed ErrorKind = "NavigationFailed"
)

// AuthenticationError is returned when the login flow cannot complete.
type AuthenticationError struct {
	Kind  ErrorKind
	Step  string
	Cause error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication error: %s during %s: %v", e.Kind, e.Step, e.Cause)
	}
	return fmt.Sprintf("authentication error: %s during %s", e.Kind, e.Step)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an AuthenticationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr) && authErr.Kind == kind
}

// wrap classifies a browser error raised during step.
func wrap(step string, err error) error {
	if err == nil {
		return nil
	}

	var timeout *browser.NavigationTimeoutError
	var missing *browser.ElementNotFoundError
	kind := KindNavigationFailed
	switch {
	case errors.As(err, &missing):
		kind = KindUnexpectedPageStructure
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		kind = KindNavigationTimeout
	}
	return &AuthenticationError{Kind: kind, Step: step, Cause: err}
}

// Package types provides type definitions for structured data used throughout the codewars-scraper system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AuthMode selects which login protocol is used for the session.
type AuthMode string

const (
	// ModeCodewars signs in with the site's own email/password form
	ModeCodewars AuthMode = "codewars"
	// ModeGitHub signs in through GitHub, with an optional device-verification step
	ModeGitHub AuthMode = "github"
)

// String returns the mode name.
func (m AuthMode) String() string {
	return string(m)
}

// ParseAuthMode converts a mode name to an AuthMode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch AuthMode(s) {
	case ModeCodewars, ModeGitHub:
		return AuthMode(s), nil
	default:
		return "", fmt.Errorf("unknown auth mode %q (expected %q or %q)", s, ModeCodewars, ModeGitHub)
	}
}

// Credentials are the login inputs for one session. They are never mutated once built.
type Credentials struct {
	Mode     AuthMode `json:"mode" validate:"required,oneof=codewars github"`
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"-" validate:"required"`
}

// Validate validates the Credentials using the validator.
func (c *Credentials) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// SecondFactorChallenge is raised when the identity provider asks for a device verification code.
type SecondFactorChallenge struct {
	PromptMessage string `json:"prompt_message"`
}

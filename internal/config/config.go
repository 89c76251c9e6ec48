// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/codewars-scraper/internal/auth"
	"github.com/jonathan/codewars-scraper/internal/browser"
	"github.com/jonathan/codewars-scraper/internal/loading"
	"github.com/jonathan/codewars-scraper/internal/schemas"
	"github.com/jonathan/codewars-scraper/internal/types"
)

// DefaultOutputDirName is created under the user's home directory.
const DefaultOutputDirName = "my_codewars_solutions"

// Environment variables consulted when email or password are not given.
const (
	EnvEmail    = "CODEWARS_SCRAPER_EMAIL"
	EnvPassword = "CODEWARS_SCRAPER_PASSWORD"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Authentication
	Mode     string `json:"mode,omitempty"`     // "codewars" or "github"
	Username string `json:"username,omitempty"` // Codewars username whose solutions are listed
	Email    string `json:"email,omitempty"`    // Sign-in email
	Password string `json:"password,omitempty"` // Sign-in password

	// Output
	Output   string `json:"output,omitempty"`   // Root directory for solution folders
	Manifest bool   `json:"manifest,omitempty"` // Also write manifest.json

	// Browser
	BaseURL        string `json:"base_url,omitempty"`        // Codewars origin override
	Headed         bool   `json:"headed,omitempty"`          // Show the Chrome window; implied by Debug
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Per-step browser timeout

	// Loading; pointers because zero is meaningful for both
	ScrollDelayMs  *int `json:"scroll_delay_ms,omitempty"` // Wait after each growing scroll
	MaxScrolls     *int `json:"max_scrolls,omitempty"`     // 0 disables the cap
	StableReadings int  `json:"stable_readings,omitempty"` // Unchanged readings that end loading

	// Logging
	Verbose bool `json:"verbose,omitempty"`
	Debug   bool `json:"debug,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// The file is checked against the embedded schema before it is decoded.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, &ConfigurationError{Message: fmt.Sprintf("failed to parse config JSON in %s", path)}
	}
	if err := schemas.ValidateConfig(data); err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("config file %s does not match schema", path), Cause: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigurationError{Message: "failed to parse config JSON", Cause: err}
	}

	return &cfg, nil
}

// ResolveMode picks the auth mode from the -c/-g flags, falling back to
// the configured mode when neither flag is set.
func ResolveMode(codewars, github bool, fallback string) (types.AuthMode, error) {
	switch {
	case codewars && github:
		return "", &ConfigurationError{Message: "--codewars and --github are mutually exclusive"}
	case codewars:
		return types.ModeCodewars, nil
	case github:
		return types.ModeGitHub, nil
	case fallback == "":
		return "", &ConfigurationError{Message: "one of --codewars or --github is required"}
	}

	mode, err := types.ParseAuthMode(fallback)
	if err != nil {
		return "", &ConfigurationError{Field: "mode", Message: "is invalid", Cause: err}
	}
	return mode, nil
}

// Validate checks that the merged configuration is complete and in range.
func (c *Config) Validate() error {
	if _, err := types.ParseAuthMode(c.Mode); err != nil {
		return &ConfigurationError{Field: "mode", Message: "is invalid", Cause: err}
	}

	// Validate numeric ranges
	if c.ScrollDelayMs != nil && *c.ScrollDelayMs < 0 {
		return invalid("scroll_delay_ms", "must be non-negative")
	}
	if c.MaxScrolls != nil && *c.MaxScrolls < 0 {
		return invalid("max_scrolls", "must be non-negative")
	}
	if c.StableReadings < 0 {
		return invalid("stable_readings", "must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return invalid("timeout_seconds", "must be non-negative")
	}

	if c.Output == "" {
		return invalid("output", "is required")
	}

	creds := c.Credentials()
	if err := creds.Validate(); err != nil {
		return &ConfigurationError{Message: "invalid credentials", Cause: err}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.Username == "" {
		result.Username = defaults.Username
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Password == "" {
		result.Password = defaults.Password
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}

	// Int fields: use default if unset
	if result.ScrollDelayMs == nil {
		result.ScrollDelayMs = defaults.ScrollDelayMs
	}
	if result.MaxScrolls == nil {
		result.MaxScrolls = defaults.MaxScrolls
	}
	if result.StableReadings == 0 {
		result.StableReadings = defaults.StableReadings
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: true wins
	result.Headed = result.Headed || defaults.Headed
	result.Manifest = result.Manifest || defaults.Manifest
	result.Verbose = result.Verbose || defaults.Verbose
	result.Debug = result.Debug || defaults.Debug

	return result
}

// FromEnv returns a Config holding the email and password found in the environment.
func FromEnv() Config {
	return Config{
		Email:    os.Getenv(EnvEmail),
		Password: os.Getenv(EnvPassword),
	}
}

// DefaultOutputDir returns ~/my_codewars_solutions, or a relative directory
// when the home directory cannot be determined.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultOutputDirName
	}
	return filepath.Join(home, DefaultOutputDirName)
}

// Credentials converts the sign-in fields.
func (c *Config) Credentials() types.Credentials {
	return types.Credentials{
		Mode:     types.AuthMode(c.Mode),
		Username: c.Username,
		Email:    c.Email,
		Password: c.Password,
	}
}

// LoadingOptions converts the scroll settings, keeping loading defaults for unset values.
func (c *Config) LoadingOptions() loading.Options {
	opts := loading.DefaultOptions()
	if c.ScrollDelayMs != nil {
		opts.Delay = time.Duration(*c.ScrollDelayMs) * time.Millisecond
	}
	if c.MaxScrolls != nil {
		opts.MaxIterations = *c.MaxScrolls
	}
	if c.StableReadings > 0 {
		opts.StableReadings = c.StableReadings
	}
	return opts
}

// BrowserOptions converts the browser settings.
func (c *Config) BrowserOptions() browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = !c.Headed && !c.Debug
	if c.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return opts
}

// Endpoints returns the auth endpoints with the base URL override applied.
func (c *Config) Endpoints() auth.Endpoints {
	endpoints := auth.DefaultEndpoints()
	if c.BaseURL != "" {
		endpoints.BaseURL = c.BaseURL
	}
	return endpoints
}

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/codewars-scraper/internal/config"
)

// scrapeCommand builds a scrape invocation with the credential env vars cleared.
func scrapeCommand(t *testing.T, args ...string) *exec.Cmd {
	binaryPath := getBinaryPath(t)
	cmd := exec.Command(binaryPath, append([]string{"scrape"}, args...)...)
	cmd.Env = append(os.Environ(), config.EnvEmail+"=", config.EnvPassword+"=")
	cmd.Dir = t.TempDir()
	return cmd
}

func TestScrapeCommand_MissingAuthMode(t *testing.T) {
	cmd := scrapeCommand(t, "-u", "kata_fan", "-e", "fan@example.com", "-p", "pw", "-o", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "one of --codewars or --github is required")
}

func TestScrapeCommand_BothAuthModes(t *testing.T) {
	cmd := scrapeCommand(t, "-c", "-g", "-u", "kata_fan", "-e", "fan@example.com", "-p", "pw", "-o", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestScrapeCommand_MissingPassword(t *testing.T) {
	cmd := scrapeCommand(t, "--github", "-u", "kata_fan", "-e", "fan@example.com", "-o", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid credentials")
}

func TestScrapeCommand_MalformedEmail(t *testing.T) {
	cmd := scrapeCommand(t, "--codewars", "-u", "kata_fan", "-e", "not-an-email", "-p", "pw", "-o", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "Error:")
	assert.Contains(t, string(output), "invalid credentials")
}

func TestScrapeCommand_NegativeMaxScrolls(t *testing.T) {
	cmd := scrapeCommand(t, "--codewars", "-u", "kata_fan", "-e", "fan@example.com", "-p", "pw",
		"-o", t.TempDir(), "--max-scrolls", "-1")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "'max_scrolls' must be non-negative")
}

func TestScrapeCommand_InvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"mode": "gitlab"}`), 0644))

	cmd := scrapeCommand(t, "--config", cfgPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "does not match schema")
}

func TestScrapeCommand_ConfigFileSuppliesMode(t *testing.T) {
	// Mode comes from the file, the missing password still fails validation
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"mode": "github", "username": "kata_fan", "email": "fan@example.com"}`), 0644))

	cmd := scrapeCommand(t, "--config", cfgPath, "-o", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.NotContains(t, string(output), "one of --codewars or --github is required")
	assert.Contains(t, string(output), "invalid credentials")
}

func TestLanguagesCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "languages").CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "LANGUAGE EXTENSIONS")
	assert.Contains(t, string(output), "javascript")
	assert.Contains(t, string(output), ".js")
}

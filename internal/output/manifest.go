package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/codewars-scraper/internal/schemas"
)

// ManifestFile is the manifest's file name inside the output root.
const ManifestFile = "manifest.json"

// Manifest records what one run wrote.
type Manifest struct {
	RunID       string           `json:"run_id"`
	Username    string           `json:"username"`
	GeneratedAt time.Time        `json:"generated_at"`
	Root        string           `json:"root"`
	Written     []WrittenProblem `json:"written"`
	Skipped     []SkippedProblem `json:"skipped"`
}

// NewManifest builds a manifest from a write report.
func NewManifest(runID, username string, report *Report, now time.Time) *Manifest {
	return &Manifest{
		RunID:       runID,
		Username:    username,
		GeneratedAt: now.UTC(),
		Root:        report.Root,
		Written:     report.Written,
		Skipped:     report.Skipped,
	}
}

// WriteManifest validates m against the manifest schema and writes it to the
// output root, replacing any previous manifest.
func WriteManifest(root string, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", &PersistenceError{Path: root, Message: "failed to marshal manifest", Cause: err}
	}
	if err := schemas.ValidateManifest(data); err != nil {
		return "", &PersistenceError{Path: root, Message: "manifest failed schema validation", Cause: err}
	}

	path := filepath.Join(root, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &PersistenceError{Path: path, Message: "failed to write manifest", Cause: err}
	}
	return path, nil
}

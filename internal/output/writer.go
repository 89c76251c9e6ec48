// Package output lays extracted solutions out on disk.
package output

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/types"
)

// SkipReason explains why a record produced no files.
type SkipReason string

const (
	// SkipDuplicate means an earlier record in the same run had the same name
	SkipDuplicate SkipReason = "duplicate"
	// SkipExists means the problem directory was already on disk
	SkipExists SkipReason = "exists"
)

// WrittenProblem is a problem directory created by this run.
type WrittenProblem struct {
	ProblemID   string   `json:"problem_id"`
	ProblemName string   `json:"problem_name"`
	Files       []string `json:"files"`
}

// SkippedProblem is a record that was not written.
type SkippedProblem struct {
	ProblemID   string     `json:"problem_id"`
	ProblemName string     `json:"problem_name"`
	Reason      SkipReason `json:"reason"`
}

// Report summarizes a Write call.
type Report struct {
	Root    string           `json:"root"`
	Written []WrittenProblem `json:"written"`
	Skipped []SkippedProblem `json:"skipped"`
}

// FileCount returns the number of solution files written.
func (r *Report) FileCount() int {
	n := 0
	for _, w := range r.Written {
		n += len(w.Files)
	}
	return n
}

// Writer writes one directory per problem under Root.
type Writer struct {
	Root   string
	Logger *zap.Logger
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{Root: root, Logger: logger}
}

// Write persists records. Existing problem directories are never touched and
// the first record wins when two normalize to the same name.
func (w *Writer) Write(records []types.SolutionRecord) (*Report, error) {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(w.Root, 0755); err != nil {
		return nil, &PersistenceError{Path: w.Root, Message: "failed to create output directory", Cause: err}
	}

	report := &Report{Root: w.Root, Written: []WrittenProblem{}, Skipped: []SkippedProblem{}}
	seen := make(map[string]string, len(records))

	for _, rec := range records {
		if firstID, dup := seen[rec.ProblemName]; dup {
			log.Warn("skipping problem with duplicate name",
				zap.String("name", rec.ProblemName),
				zap.String("problem_id", rec.ProblemID),
				zap.String("kept_problem_id", firstID))
			report.Skipped = append(report.Skipped, SkippedProblem{ProblemID: rec.ProblemID, ProblemName: rec.ProblemName, Reason: SkipDuplicate})
			continue
		}
		seen[rec.ProblemName] = rec.ProblemID

		dir := filepath.Join(w.Root, rec.ProblemName)
		exists, err := dirExists(dir)
		if err != nil {
			return report, &PersistenceError{Path: dir, Message: "failed to inspect problem directory", Cause: err}
		}
		if exists {
			log.Info("problem directory already exists, leaving it untouched", zap.String("dir", dir))
			report.Skipped = append(report.Skipped, SkippedProblem{ProblemID: rec.ProblemID, ProblemName: rec.ProblemName, Reason: SkipExists})
			continue
		}

		written, err := writeProblem(dir, rec)
		if err != nil {
			return report, err
		}
		log.Debug("wrote problem", zap.String("dir", dir), zap.Strings("languages", rec.Languages()), zap.Int("files", len(written.Files)))
		report.Written = append(report.Written, written)
	}

	return report, nil
}

func writeProblem(dir string, rec types.SolutionRecord) (WrittenProblem, error) {
	written := WrittenProblem{ProblemID: rec.ProblemID, ProblemName: rec.ProblemName, Files: []string{}}

	if err := os.Mkdir(dir, 0755); err != nil {
		return written, &PersistenceError{Path: dir, Message: "failed to create problem directory", Cause: err}
	}
	for i, v := range rec.Variants {
		name := FileName(v.Language, i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(v.SourceText), 0644); err != nil {
			return written, &PersistenceError{Path: path, Message: "failed to write solution", Cause: err}
		}
		written.Files = append(written.Files, name)
	}
	return written, nil
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, errors.New("path exists and is not a directory")
		}
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(&Summary{
		Username:     "kata_fan",
		Mode:         "github",
		SecondFactor: true,
		Scrolls:      4,
		Height:       9000,
		Items:        3,
		Records:      2,
		Failures:     []string{"item 2: missing title link"},
		Root:         "/tmp/out",
		Written:      []string{"multiply"},
		Skipped:      []string{"sum_two_numbers (duplicate)"},
		Files:        2,
		Manifest:     "/tmp/out/manifest.json",
		Disabled:     []string{"write_manifest"},
	})
	output := buf.String()

	assert.Contains(t, output, "CODEWARS SOLUTIONS")
	assert.Contains(t, output, "kata_fan (github)")
	assert.Contains(t, output, "verification code accepted")
	assert.Contains(t, output, "Extracted:  2 of 3 items")
	assert.Contains(t, output, "Written:    1 problems, 2 files")
	assert.Contains(t, output, "sum_two_numbers (duplicate)")
	assert.Contains(t, output, "missing title link")
	assert.Contains(t, output, "manifest.json")
	assert.Contains(t, output, "Steps not run")
	assert.Contains(t, output, "write_manifest")
}

func TestPrintSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSummary_TruncatesLists(t *testing.T) {
	skipped := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		skipped = append(skipped, fmt.Sprintf("problem_%d (exists)", i))
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(&Summary{Username: "u", Mode: "codewars", Skipped: skipped})
	output := buf.String()

	assert.Contains(t, output, "problem_4 (exists)")
	assert.NotContains(t, output, "problem_5 (exists)")
	assert.Contains(t, output, "... and 3 more")
	assert.NotContains(t, output, "2FA")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 60))
}

func TestPrintBox_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "  • "+strings.Repeat("é", 80))
	output := buf.String()

	assert.True(t, utf8.ValidString(output))
	assert.Contains(t, output, strings.Repeat("é", boxWidth-4-7)+"...")
	assert.NotContains(t, output, strings.Repeat("é", boxWidth-4-6))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "日本語...", truncate("日本語テキストです", 6))
	assert.Equal(t, "abcdef", truncate("abcdef", 6))
}

func TestPrintLanguages(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintLanguages([]string{"go", "python"}, func(lang string) string {
		return map[string]string{"go": "go", "python": "py"}[lang]
	})

	assert.Contains(t, buf.String(), "LANGUAGE EXTENSIONS")
	assert.Contains(t, buf.String(), "python")
	assert.Contains(t, buf.String(), ".py")
	assert.Contains(t, buf.String(), "╭")
}

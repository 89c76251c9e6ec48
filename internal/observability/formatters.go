// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Summary is the printable outcome of one scrape.
type Summary struct {
	Username     string
	Mode         string
	SecondFactor bool
	Scrolls      int
	Height       int64
	Items        int
	Records      int
	Failures     []string
	Root         string
	Written      []string
	Skipped      []string
	Files        int
	Manifest     string
	// Disabled lists optional steps that were turned off.
	Disabled []string
}

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// writeList appends up to maxItemsToShow entries of items under heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", heading))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintSummary outputs what a scrape loaded, extracted and wrote.
func (p *Printer) PrintSummary(s *Summary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:       %s (%s)\n", s.Username, s.Mode))
	if s.SecondFactor {
		sb.WriteString("2FA:        verification code accepted\n")
	}
	sb.WriteString(fmt.Sprintf("Scrolls:    %d (height %dpx)\n", s.Scrolls, s.Height))
	sb.WriteString(fmt.Sprintf("Extracted:  %d of %d items\n", s.Records, s.Items))
	sb.WriteString(fmt.Sprintf("Written:    %d problems, %d files\n", len(s.Written), s.Files))
	sb.WriteString(fmt.Sprintf("Output:     %s\n", s.Root))
	if s.Manifest != "" {
		sb.WriteString(fmt.Sprintf("Manifest:   %s\n", s.Manifest))
	}

	writeList(&sb, "Skipped", s.Skipped)
	writeList(&sb, "Malformed items", s.Failures)
	writeList(&sb, "Steps not run", s.Disabled)

	p.printBox("CODEWARS SOLUTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLanguages outputs the language to file extension table.
func (p *Printer) PrintLanguages(langs []string, ext func(string) string) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(p.out)
	t.SetTitle("LANGUAGE EXTENSIONS")
	t.AppendHeader(table.Row{"Language", "Extension"})
	for _, lang := range langs {
		t.AppendRow(table.Row{lang, "." + ext(lang)})
	}
	t.Render()
}

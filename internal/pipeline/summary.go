package pipeline

import (
	"fmt"

	"github.com/jonathan/codewars-scraper/internal/observability"
)

// View flattens the summary for the run-summary printer.
func (s *Summary) View() *observability.Summary {
	if s == nil {
		return nil
	}

	v := &observability.Summary{
		Username: s.Username,
		Items:    s.Items,
		Records:  len(s.Records),
		Manifest: s.ManifestPath,
		Disabled: s.DisabledSteps,
	}
	if s.Auth != nil {
		v.Mode = s.Auth.Mode.String()
		v.SecondFactor = s.Auth.SecondFactor
	}
	if s.Loading != nil {
		v.Scrolls = s.Loading.Scrolls
		v.Height = s.Loading.Height
	}
	for _, f := range s.Failures {
		v.Failures = append(v.Failures, f.Error())
	}
	if s.Report != nil {
		v.Root = s.Report.Root
		v.Files = s.Report.FileCount()
		for _, w := range s.Report.Written {
			v.Written = append(v.Written, w.ProblemName)
		}
		for _, sk := range s.Report.Skipped {
			v.Skipped = append(v.Skipped, fmt.Sprintf("%s (%s)", sk.ProblemName, sk.Reason))
		}
	}
	return v
}

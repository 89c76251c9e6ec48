//nolint:revive // types is a standard Go package name pattern
package types

// Variant is one language submission of a solved problem.
type Variant struct {
	Language   string `json:"language"`
	SourceText string `json:"source_text"`
}

// SolutionRecord is everything extracted from one listing item.
type SolutionRecord struct {
	ProblemID   string    `json:"problem_id"`
	ProblemName string    `json:"problem_name"`
	Variants    []Variant `json:"variants"`
}

// Languages returns the variant languages in listing order.
func (r *SolutionRecord) Languages() []string {
	langs := make([]string, 0, len(r.Variants))
	for _, v := range r.Variants {
		langs = append(langs, v.Language)
	}
	return langs
}

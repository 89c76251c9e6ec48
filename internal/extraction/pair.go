package extraction

import (
	"fmt"

	"github.com/jonathan/codewars-scraper/internal/types"
)

// Pair zips two independently selected sequences by position. Unequal lengths
// are an error; nothing is truncated.
func Pair(languages, sources []string) ([]types.Variant, error) {
	if len(languages) != len(sources) {
		return nil, fmt.Errorf("%w: %d languages, %d code blocks", ErrLengthMismatch, len(languages), len(sources))
	}
	variants := make([]types.Variant, len(languages))
	for i := range languages {
		variants[i] = types.Variant{Language: languages[i], SourceText: sources[i]}
	}
	return variants, nil
}

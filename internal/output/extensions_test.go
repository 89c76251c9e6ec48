package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		language string
		index    int
		want     string
	}{
		{"python", 0, "solution.py"},
		{"java", 2, "solution_3.java"},
		{"brainfuck", 0, "solution.txt"},
		{"javascript", 1, "solution_2.js"},
		{"JavaScript", 0, "solution.js"},
		{" ruby ", 0, "solution.rb"},
		{"", 0, "solution.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.language, tt.index))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "cs", Extension("csharp"))
	assert.Equal(t, "ts", Extension("typescript"))
	assert.Equal(t, "hs", Extension("haskell"))
	assert.Equal(t, DefaultExtension, Extension("whitespace"))
}

func TestLanguages_Sorted(t *testing.T) {
	langs := Languages()
	assert.Len(t, langs, len(extensions))
	assert.IsIncreasing(t, langs)
	assert.Contains(t, langs, "python")
}

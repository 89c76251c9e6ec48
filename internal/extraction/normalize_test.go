package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Sum Two Numbers!!", "sum_two_numbers"},
		{"  Multiply  ", "multiply"},
		{"Who likes it?", "who_likes_it"},
		{"Don't give me five!", "dont_give_me_five"},
		{"Tab\tand\nnewline", "tab_and_newline"},
		{"snake_case_already", "snake_case_already"},
		{"Sum of Digits / Digital Root", "sum_of_digits_digital_root"},
		{"Café au lait", "caf_au_lait"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.title))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	titles := []string{
		"Sum Two Numbers!!",
		"  Leading and trailing  ",
		"Mixed_Under score",
		"Ünïcödé Kátá 42",
		"a  -  b",
		"__dunder__",
		"Tab\tSeparated\tWords",
	}

	for _, title := range titles {
		once := NormalizeName(title)
		assert.Equal(t, once, NormalizeName(once), "title %q", title)
	}
}

func TestProblemID(t *testing.T) {
	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/kata/5266876b8f4bf2da9b000362", "5266876b8f4bf2da9b000362", true},
		{"https://www.codewars.com/kata/5266876b8f4bf2da9b000362", "5266876b8f4bf2da9b000362", true},
		{"/kata/5266876b8f4bf2da9b000362/", "5266876b8f4bf2da9b000362", true},
		{"/kata/5266876b8f4bf2da9b000362?tab=solutions#x", "5266876b8f4bf2da9b000362", true},
		{"/kata/5266876B8F4BF2DA9B000362", "", false},
		{"/kata/sum-two-numbers", "", false},
		{"/kata/", "", false},
		{"https://www.codewars.com/kata/", "", false},
		{"/kata//", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := ProblemID(tt.href)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

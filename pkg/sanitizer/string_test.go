package sanitizer_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		rules    sanitizer.StringRules
		expected string
	}{
		{name: "trim and upper", input: "  hello world  ", rules: sanitizer.StringRules{Trim: true, Case: sanitizer.CaseUpper}, expected: "HELLO WORLD"},
		{name: "lower", input: "HeLLo", rules: sanitizer.StringRules{Case: sanitizer.CaseLower}, expected: "hello"},
		{name: "capitalize", input: "hELLO wORLD", rules: sanitizer.StringRules{Case: sanitizer.CaseCapitalize}, expected: "Hello world"},
		{name: "capitalize empty", input: "", rules: sanitizer.StringRules{Case: sanitizer.CaseCapitalize}, expected: ""},
		{name: "title", input: "the quick brown fox", rules: sanitizer.StringRules{Case: sanitizer.CaseTitle}, expected: "The Quick Brown Fox"},
		{name: "truncate with ellipsis", input: "Hello, World", rules: sanitizer.StringRules{Truncate: 8}, expected: "Hello..."},
		{name: "truncate custom marker", input: "Hello, World", rules: sanitizer.StringRules{Truncate: 6, Ellipsis: "…"}, expected: "Hello…"},
		{name: "truncate short enough", input: "Hello", rules: sanitizer.StringRules{Truncate: 5}, expected: "Hello"},
		{name: "truncate below marker size", input: "Hello", rules: sanitizer.StringRules{Truncate: 2}, expected: "He"},
		{name: "truncate counts runes", input: "héllo wörld", rules: sanitizer.StringRules{Truncate: 7}, expected: "héll..."},
		{
			name:     "replace in order",
			input:    "a-b_c",
			rules:    sanitizer.StringRules{Replace: []sanitizer.Replacement{{Pattern: regexp.MustCompile(`-`), With: "_"}, {Pattern: regexp.MustCompile(`_`), With: "."}}},
			expected: "a.b.c",
		},
		{name: "remove", input: "call 555-1234 now", rules: sanitizer.StringRules{Remove: []*regexp.Regexp{regexp.MustCompile(`\d`), regexp.MustCompile(`-`)}}, expected: "call  now"},
		{name: "strip tags", input: "<p>Fish &amp; <b>chips</b></p>", rules: sanitizer.StringRules{StripTags: true}, expected: "Fish & chips"},
		{name: "strip control", input: "a\x00b\tc", rules: sanitizer.StringRules{StripControl: true}, expected: "ab\tc"},
		{name: "slug", input: "Crème Brûlée Recipe!", rules: sanitizer.StringRules{Slug: true}, expected: "creme-brulee-recipe"},
		{name: "alphanumeric", input: "abc 123-xyz!", rules: sanitizer.StringRules{Alphanumeric: true}, expected: "abc123xyz"},
		{name: "alpha", input: "abc 123", rules: sanitizer.StringRules{Alpha: true}, expected: "abc"},
		{name: "numeric", input: "+1 (555) 123-4567", rules: sanitizer.StringRules{Numeric: true}, expected: "15551234567"},
		{name: "hex color short", input: "#ABC", rules: sanitizer.StringRules{HexColor: true}, expected: "#aabbcc"},
		{name: "hex color without hash", input: "FF8800", rules: sanitizer.StringRules{HexColor: true}, expected: "#ff8800"},
		{name: "hex color invalid", input: "#ggg", rules: sanitizer.StringRules{HexColor: true}, expected: ""},
		{name: "escape", input: `<a href="x">`, rules: sanitizer.StringRules{Escape: true}, expected: "&lt;a href=&#34;x&#34;&gt;"},
		{name: "normalize", input: "e\u0301", rules: sanitizer.StringRules{Normalize: true}, expected: "\u00e9"},
		{name: "collapse", input: "  too   many \n spaces ", rules: sanitizer.StringRules{Collapse: true}, expected: "too many spaces"},
		{name: "truncate before shortcuts", input: "Hello World", rules: sanitizer.StringRules{Truncate: 8, Alpha: true}, expected: "Hello"},

		{name: "coerce nil", input: nil, expected: ""},
		{name: "coerce absent", input: kind.Absent, expected: ""},
		{name: "coerce int", input: 42, expected: "42"},
		{name: "coerce float", input: 3.5, expected: "3.5"},
		{name: "coerce bool", input: true, expected: "true"},
		{name: "coerce map", input: map[string]any{"a": 1}, expected: `{"a":1}`},
		{name: "coerce slice", input: []any{1, "x"}, expected: `[1,"x"]`},
		{name: "coerce time", input: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), expected: "2024-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.SanitizeString(tt.input, tt.rules))
		})
	}
}

func TestSanitizeString_Idempotent(t *testing.T) {
	t.Parallel()

	rules := []sanitizer.StringRules{
		{Trim: true, Case: sanitizer.CaseLower},
		{Trim: true, Case: sanitizer.CaseTitle, Collapse: true},
		{Truncate: 10},
		{Slug: true},
		{HexColor: true},
		{StripTags: true, Collapse: true},
	}
	inputs := []string{"  Hello   World  ", "<b>Bold</b> statement here", "#FfF", "Ünïcödé text that is long"}

	for _, r := range rules {
		for _, in := range inputs {
			once := sanitizer.SanitizeString(in, r)
			assert.Equal(t, once, sanitizer.SanitizeString(once, r), "rules %+v input %q", r, in)
		}
	}
}

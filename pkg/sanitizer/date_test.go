package sanitizer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestSanitizeDate(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	lo := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	fallback := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    any
		rules    sanitizer.DateRules
		expected any
	}{
		{name: "time passes", input: ts, expected: ts},
		{name: "pointer", input: &ts, expected: ts},
		{name: "rfc3339", input: "2024-03-15T10:30:45Z", expected: ts},
		{name: "date only", input: " 2024-01-01 ", expected: lo},
		{name: "unix millis", input: ts.UnixMilli(), expected: ts},
		{name: "custom layout", input: "15/03/2024", rules: sanitizer.DateRules{Layouts: []string{"02/01/2006"}}, expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "invalid without default", input: "not a date", expected: nil},
		{name: "nil without default", input: nil, expected: nil},
		{name: "invalid with default", input: "not a date", rules: sanitizer.DateRules{Default: &fallback}, expected: fallback},
		{name: "truncate", input: ts, rules: sanitizer.DateRules{Truncate: time.Hour}, expected: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
		{name: "bounds without clamp", input: "2025-06-01", rules: sanitizer.DateRules{Max: &hi}, expected: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "clamp max", input: "2025-06-01", rules: sanitizer.DateRules{Max: &hi, Clamp: true}, expected: hi},
		{name: "clamp min", input: "2023-06-01", rules: sanitizer.DateRules{Min: &lo, Clamp: true}, expected: lo},
		{name: "format", input: ts, rules: sanitizer.DateRules{Format: time.DateOnly}, expected: "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.SanitizeDate(tt.input, tt.rules)
			if want, ok := tt.expected.(time.Time); ok {
				if assert.IsType(t, time.Time{}, got) {
					assert.True(t, want.Equal(got.(time.Time)), "want %s, got %s", want, got)
				}
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeDate_Location(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	got := sanitizer.SanitizeDate("2024-03-15T10:00:00Z", sanitizer.DateRules{Location: loc, Format: "15:04"})
	assert.Equal(t, "12:00", got)
}

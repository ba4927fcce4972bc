package sanitizer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestSanitizeNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		rules    sanitizer.NumberRules
		expected float64
	}{
		{name: "int passes", input: 42, expected: 42},
		{name: "numeric string", input: " 12.5 ", expected: 12.5},
		{name: "quoted string", input: `"7"`, expected: 7},
		{name: "single quoted string", input: "'-3'", expected: -3},
		{name: "hex", input: "0x1F", expected: 31},
		{name: "negative hex", input: "-0xff", expected: -255},
		{name: "bool true", input: true, expected: 1},
		{name: "bool false", input: false, expected: 0},
		{name: "garbage falls back to zero", input: "abc", expected: 0},
		{name: "garbage falls back to default", input: "abc", rules: sanitizer.NumberRules{Default: -1}, expected: -1},
		{name: "nil falls back", input: nil, rules: sanitizer.NumberRules{Default: 5}, expected: 5},
		{name: "object falls back", input: map[string]any{}, expected: 0},

		{name: "precision", input: 3.14159, rules: sanitizer.NumberRules{Precision: kind.Ptr(2)}, expected: 3.14},
		{name: "precision zero", input: 2.5, rules: sanitizer.NumberRules{Precision: kind.Ptr(0)}, expected: 3},
		{name: "integer round", input: 2.5, rules: sanitizer.NumberRules{Integer: true}, expected: 3},
		{name: "integer floor", input: 2.7, rules: sanitizer.NumberRules{Integer: true, Rounding: sanitizer.RoundFloor}, expected: 2},
		{name: "integer ceil", input: 2.1, rules: sanitizer.NumberRules{Integer: true, Rounding: sanitizer.RoundCeil}, expected: 3},
		{name: "integer trunc", input: -2.7, rules: sanitizer.NumberRules{Integer: true, Rounding: sanitizer.RoundTrunc}, expected: -2},

		{name: "positive zeroes", input: -5, rules: sanitizer.NumberRules{Positive: true}, expected: 0},
		{name: "positive mirrors", input: -5, rules: sanitizer.NumberRules{Positive: true, Absolute: true}, expected: 5},
		{name: "negative zeroes", input: 5, rules: sanitizer.NumberRules{Negative: true}, expected: 0},
		{name: "negative mirrors", input: 5, rules: sanitizer.NumberRules{Negative: true, Absolute: true}, expected: -5},

		{name: "max without clamp is informational", input: 15, rules: sanitizer.NumberRules{Max: kind.Ptr(10.0)}, expected: 15},
		{name: "max with clamp", input: 15, rules: sanitizer.NumberRules{Max: kind.Ptr(10.0), Clamp: true}, expected: 10},
		{name: "min with clamp", input: -3, rules: sanitizer.NumberRules{Min: kind.Ptr(0.0), Clamp: true}, expected: 0},
		{name: "in range with clamp", input: 4, rules: sanitizer.NumberRules{Min: kind.Ptr(0.0), Max: kind.Ptr(10.0), Clamp: true}, expected: 4},

		{name: "finite", input: math.Inf(1), rules: sanitizer.NumberRules{Finite: true, Default: 9}, expected: 9},
		{name: "finite string", input: "NaN", rules: sanitizer.NumberRules{Finite: true}, expected: 0},
		{name: "NaN text falls back", input: "NaN", rules: sanitizer.NumberRules{Default: 7}, expected: 7},
		{name: "lower nan text falls back", input: " nan ", rules: sanitizer.NumberRules{Default: 7}, expected: 7},
		{name: "signed nan text falls back", input: "-NaN", rules: sanitizer.NumberRules{Default: 7}, expected: 7},
		{name: "inf text parses", input: "inf", expected: math.Inf(1)},
		{name: "infinity text parses", input: "-Infinity", expected: math.Inf(-1)},
		{name: "inf text with finite", input: "Infinity", rules: sanitizer.NumberRules{Finite: true, Default: 7}, expected: 7},

		{name: "precision on huge value", input: 1e300, rules: sanitizer.NumberRules{Precision: kind.Ptr(10)}, expected: 1e300},
		{name: "precision beyond float digits", input: 1.5, rules: sanitizer.NumberRules{Precision: kind.Ptr(400)}, expected: 1.5},
		{name: "negative precision rounds to integer", input: 2.4, rules: sanitizer.NumberRules{Precision: kind.Ptr(-3)}, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.SanitizeNumber(tt.input, tt.rules))
		})
	}
}

func TestSanitizeNumber_Idempotent(t *testing.T) {
	t.Parallel()

	rules := sanitizer.NumberRules{Precision: kind.Ptr(2), Positive: true, Max: kind.Ptr(100.0), Clamp: true}
	for _, in := range []any{3.14159, "-7", 250, "0x10"} {
		once := sanitizer.SanitizeNumber(in, rules)
		assert.Equal(t, once, sanitizer.SanitizeNumber(once, rules))
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	f, ok := sanitizer.ParseNumber("1e3")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, f)

	_, ok = sanitizer.ParseNumber("")
	assert.False(t, ok)

	_, ok = sanitizer.ParseNumber("0xZZ")
	assert.False(t, ok)
}

package sanitizer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestRuleSet(t *testing.T) {
	t.Parallel()

	rs := sanitizer.RuleSet{
		String:  &sanitizer.StringRules{Trim: true},
		Number:  &sanitizer.NumberRules{Precision: kind.Ptr(1)},
		Boolean: &sanitizer.BooleanRules{},
		Array:   &sanitizer.ArrayRules{Compact: true},
		Object:  &sanitizer.ObjectRules{RemoveEmpty: true},
		Date:    &sanitizer.DateRules{Format: time.DateOnly},
		Default: "n/a",
	}

	assert.Equal(t, "x", rs.Sanitize(" x "))
	assert.Equal(t, 1.2, rs.Sanitize(1.23))
	assert.Equal(t, true, rs.Sanitize(true))
	assert.Equal(t, []any{"a"}, rs.Sanitize([]any{"a", nil}))
	assert.Equal(t, map[string]any{"a": 1}, rs.Sanitize(map[string]any{"a": 1, "b": ""}))
	assert.Equal(t, "2024-01-02", rs.Sanitize(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "n/a", rs.Sanitize(nil))
	assert.Equal(t, "n/a", rs.Sanitize(kind.Absent))

	type custom struct{ A int }
	assert.Equal(t, custom{A: 1}, rs.Sanitize(custom{A: 1}), "unknown kinds pass through")
}

func TestRuleSet_MissingFamilyPassesThrough(t *testing.T) {
	t.Parallel()

	rs := sanitizer.RuleSet{String: &sanitizer.StringRules{Trim: true}}
	assert.Equal(t, 42, rs.Sanitize(42))
	assert.Nil(t, rs.Sanitize(nil))
}

func TestRuleSet_DefaultProducer(t *testing.T) {
	t.Parallel()

	rs := sanitizer.RuleSet{Default: func() any { return map[string]any{} }}
	a := rs.Sanitize(nil).(map[string]any)
	a["x"] = 1
	assert.Equal(t, map[string]any{}, rs.Sanitize(nil))
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("nil rule is identity", func(t *testing.T) {
		assert.Equal(t, " x ", sanitizer.Sanitize(" x ", nil))
	})

	t.Run("func", func(t *testing.T) {
		upper := sanitizer.Func(func(v any) any { return strings.ToUpper(v.(string)) })
		assert.Equal(t, "ABC", sanitizer.Sanitize("abc", upper))
	})

	t.Run("chain", func(t *testing.T) {
		chain := sanitizer.Chain{
			sanitizer.StringRules{Trim: true},
			nil,
			sanitizer.Func(func(v any) any { return v.(string) + "!" }),
			sanitizer.StringRules{Case: sanitizer.CaseUpper},
		}
		assert.Equal(t, "HEY!", sanitizer.Sanitize("  hey ", chain))
	})

	t.Run("type specific rule through generic entry", func(t *testing.T) {
		assert.Equal(t, "HELLO WORLD", sanitizer.Sanitize("  hello world  ", sanitizer.StringRules{Trim: true, Case: sanitizer.CaseUpper}))
		assert.Equal(t, 10.0, sanitizer.Sanitize(15, sanitizer.NumberRules{Max: kind.Ptr(10.0), Clamp: true}))
	})
}

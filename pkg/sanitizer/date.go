package sanitizer

import (
	"math"
	"strings"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// DefaultLayouts are tried in order when DateRules.Layouts is empty.
var DefaultLayouts = []string{time.RFC3339Nano, time.DateOnly, time.DateTime, time.RFC1123, time.RFC1123Z}

// DateRules sanitize dates.
//
// Steps: parse, Location, Truncate, clamping, Format. time.Time values pass
// through, strings are parsed with Layouts and numbers are read as unix
// milliseconds. Unparseable input falls back to Default, or nil without one.
type DateRules struct {
	Layouts  []string
	Location *time.Location
	Truncate time.Duration

	// Min and Max are bounds. They change the value only when Clamp is set.
	Min   *time.Time
	Max   *time.Time
	Clamp bool

	// Format turns the result into a string with this layout.
	Format string

	Default *time.Time
}

// SanitizeDate applies rules to value. The result is a time.Time, a string
// when Format is set, or nil when the input is unusable and Default is unset.
func SanitizeDate(value any, rules DateRules) any {
	t, ok := rules.parse(value)
	if !ok {
		if rules.Default == nil {
			return nil
		}
		t = *rules.Default
	}

	if rules.Location != nil {
		t = t.In(rules.Location)
	}
	if rules.Truncate > 0 {
		t = t.Truncate(rules.Truncate)
	}
	if rules.Clamp {
		if rules.Min != nil && t.Before(*rules.Min) {
			t = *rules.Min
		}
		if rules.Max != nil && t.After(*rules.Max) {
			t = *rules.Max
		}
	}

	if rules.Format != "" {
		return t.Format(rules.Format)
	}
	return t
}

// Sanitize implements Rule.
func (r DateRules) Sanitize(value any) any {
	return SanitizeDate(value, r)
}

func (r DateRules) parse(value any) (time.Time, bool) {
	if t, ok := kind.Time(value); ok {
		return t, true
	}
	if f, ok := kind.Float(value); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).UTC(), true
	}

	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	layouts := r.Layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

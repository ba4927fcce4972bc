package sanitizer

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

var (
	defaultTruthy = []string{"true", "1", "yes", "on", "y"}
	defaultFalsy  = []string{"false", "0", "no", "off", "n"}
)

// BooleanRules sanitize booleans.
//
// Strings are matched case-insensitively after trimming against Truthy and
// Falsy, which replace the default sets (true/1/yes/on/y and
// false/0/no/off/n) when given. Non-zero numbers are true unless StrictNumeric
// restricts recognition to exactly 0 and 1. Anything unrecognised yields Default.
type BooleanRules struct {
	Truthy        []string
	Falsy         []string
	StrictNumeric bool
	Default       bool
}

// SanitizeBoolean applies rules to value.
func SanitizeBoolean(value any, rules BooleanRules) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if containsFold(rules.truthy(), s) {
			return true
		}
		if containsFold(rules.falsy(), s) {
			return false
		}
		return rules.Default
	}

	if f, ok := kind.Float(value); ok {
		if !rules.StrictNumeric {
			return f != 0
		}
		switch f {
		case 1:
			return true
		case 0:
			return false
		}
	}
	return rules.Default
}

// Sanitize implements Rule.
func (r BooleanRules) Sanitize(value any) any {
	return SanitizeBoolean(value, r)
}

func (r BooleanRules) truthy() []string {
	if len(r.Truthy) > 0 {
		return r.Truthy
	}
	return defaultTruthy
}

func (r BooleanRules) falsy() []string {
	if len(r.Falsy) > 0 {
		return r.Falsy
	}
	return defaultFalsy
}

func containsFold(set []string, s string) bool {
	return slices.ContainsFunc(set, func(candidate string) bool {
		return strings.EqualFold(strings.TrimSpace(candidate), s)
	})
}

package sanitizer

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// Rounding selects how Integer drops the fractional part.
type Rounding string

const (
	RoundNearest Rounding = "round"
	RoundFloor   Rounding = "floor"
	RoundCeil    Rounding = "ceil"
	RoundTrunc   Rounding = "trunc"
)

// NumberRules sanitize numbers. The result is always a float64.
//
// Steps: parse, Finite, Integer, Precision, Positive/Negative, then clamping.
// Numbers, booleans (1/0) and numeric strings are parsed; strings are trimmed,
// may be quoted and may be hexadecimal ("0x1F"). Anything else, "NaN" included,
// yields Default. Infinities parse and are replaced only with Finite.
type NumberRules struct {
	// Default is returned when the input cannot be parsed. Zero by default.
	Default float64

	// Finite replaces NaN and infinities with Default.
	Finite bool

	Integer  bool
	Rounding Rounding

	// Precision rounds to a fixed number of decimal digits. Values that would
	// overflow, and precisions past what a float64 holds, are left unchanged.
	Precision *int

	// Positive replaces negative values with zero, or mirrors them with Absolute.
	Positive bool
	// Negative replaces positive values with zero, or mirrors them with Absolute.
	Negative bool
	Absolute bool

	// Min and Max are bounds. They change the value only when Clamp is set.
	Min   *float64
	Max   *float64
	Clamp bool
}

// SanitizeNumber applies rules to value.
func SanitizeNumber(value any, rules NumberRules) float64 {
	f, ok := ParseNumber(value)
	if !ok {
		return rules.Default
	}

	if rules.Finite && (math.IsNaN(f) || math.IsInf(f, 0)) {
		f = rules.Default
	}
	if rules.Integer {
		f = round(f, rules.Rounding)
	}
	if rules.Precision != nil {
		f = roundToPlaces(f, *rules.Precision)
	}

	switch {
	case rules.Positive && f < 0:
		f = signFix(f, rules.Absolute)
	case rules.Negative && f > 0:
		f = signFix(f, rules.Absolute)
	}

	if rules.Clamp {
		if rules.Min != nil && f < *rules.Min {
			f = *rules.Min
		}
		if rules.Max != nil && f > *rules.Max {
			f = *rules.Max
		}
	}
	return f
}

// Sanitize implements Rule.
func (r NumberRules) Sanitize(value any) any {
	return SanitizeNumber(value, r)
}

// ParseNumber converts numbers, booleans and numeric strings to float64.
func ParseNumber(value any) (float64, bool) {
	if f, ok := kind.Float(value); ok {
		return f, true
	}
	switch v := value.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		return parseNumericString(v)
	}
	return 0, false
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return 0, false
	}

	sign := 1.0
	digits := s
	switch digits[0] {
	case '-':
		sign = -1
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		n, err := strconv.ParseUint(digits[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return sign * float64(n), true
	}

	// "inf" and "Infinity" parse to infinities and are left to Finite.
	// NaN is not a number.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func round(f float64, mode Rounding) float64 {
	switch mode {
	case RoundFloor:
		return math.Floor(f)
	case RoundCeil:
		return math.Ceil(f)
	case RoundTrunc:
		return math.Trunc(f)
	default:
		return math.Round(f)
	}
}

// maxPlaces is past the decimal digits a float64 can hold.
const maxPlaces = 17

func roundToPlaces(f float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	if places >= maxPlaces {
		return f
	}
	multiplier := math.Pow(10, float64(places))
	scaled := f * multiplier
	if math.IsInf(scaled, 0) {
		return f
	}
	return math.Round(scaled) / multiplier
}

func signFix(f float64, absolute bool) float64 {
	if absolute {
		return -f
	}
	return 0
}

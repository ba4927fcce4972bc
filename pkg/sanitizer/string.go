package sanitizer

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/slug"
)

// Case selects a case transform. The options are mutually exclusive.
type Case int

const (
	CaseNone Case = iota
	CaseLower
	CaseUpper
	// CaseCapitalize uppercases the first letter and lowercases the rest.
	CaseCapitalize
	// CaseTitle uppercases the first letter of every word.
	CaseTitle
)

// DefaultEllipsis marks a truncated string.
const DefaultEllipsis = "..."

// Replacement substitutes every match of Pattern with With.
// With may reference capture groups ($1).
type Replacement struct {
	Pattern *regexp.Regexp
	With    string
}

// StringRules sanitize strings. Steps run in a fixed order: coerce, Trim, Case,
// Truncate, Replace, Remove, the shortcuts (StripTags, StripControl, Slug,
// Alphanumeric, Alpha, Numeric, HexColor, Escape), Normalize and Collapse.
//
// Non-string input is coerced: nil becomes "", numbers their shortest decimal
// form, booleans "true"/"false", dates RFC 3339, objects and arrays JSON.
type StringRules struct {
	Trim bool
	Case Case

	// Truncate limits the result to N runes, ellipsis included. Zero disables it.
	Truncate int
	// Ellipsis replaces DefaultEllipsis when set.
	Ellipsis string

	Replace []Replacement
	Remove  []*regexp.Regexp

	StripTags    bool
	StripControl bool
	Slug         bool
	// Alphanumeric keeps letters and digits only.
	Alphanumeric bool
	// Alpha keeps letters only.
	Alpha bool
	// Numeric keeps digits only.
	Numeric bool
	// HexColor canonicalises "#ABC" to "#aabbcc". Anything else becomes "".
	HexColor bool
	Escape   bool

	// Normalize applies Unicode NFC normalization.
	Normalize bool
	// Collapse replaces whitespace runs with one space and trims the ends.
	Collapse bool
}

// SanitizeString applies rules to value.
func SanitizeString(value any, rules StringRules) string {
	s := ToString(value)

	if rules.Trim {
		s = strings.TrimSpace(s)
	}
	s = applyCase(s, rules.Case)
	if rules.Truncate > 0 {
		s = truncate(s, rules.Truncate, rules.ellipsis())
	}
	for _, r := range rules.Replace {
		if r.Pattern != nil {
			s = r.Pattern.ReplaceAllString(s, r.With)
		}
	}
	for _, re := range rules.Remove {
		if re != nil {
			s = re.ReplaceAllString(s, "")
		}
	}

	if rules.StripTags {
		s = StripTags(s)
	}
	if rules.StripControl {
		s = RemoveControlChars(s)
	}
	if rules.Slug {
		s = slug.Make(s)
	}
	if rules.Alphanumeric {
		s = keep(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
	}
	if rules.Alpha {
		s = keep(s, unicode.IsLetter)
	}
	if rules.Numeric {
		s = keep(s, unicode.IsDigit)
	}
	if rules.HexColor {
		s = HexColor(s)
	}
	if rules.Escape {
		s = html.EscapeString(s)
	}

	if rules.Normalize {
		s = norm.NFC.String(s)
	}
	if rules.Collapse {
		s = CollapseWhitespace(s)
	}
	return s
}

// Sanitize implements Rule.
func (r StringRules) Sanitize(value any) any {
	return SanitizeString(value, r)
}

func (r StringRules) ellipsis() string {
	if r.Ellipsis == "" {
		return DefaultEllipsis
	}
	return r.Ellipsis
}

// ToString converts any value into its string form.
func ToString(value any) string {
	if kind.IsAbsent(value) {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	}

	switch kind.Of(value) {
	case kind.Number:
		return fmt.Sprint(value)
	case kind.Object, kind.Array:
		b, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return fmt.Sprint(value)
}

var titleCaser = cases.Title(language.Und)

func applyCase(s string, c Case) string {
	switch c {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	case CaseCapitalize:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return s
		}
		return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
	case CaseTitle:
		return titleCaser.String(s)
	}
	return s
}

// truncate cuts s to n runes with the ellipsis counted in. When n leaves no
// room for the marker the string is cut without one.
func truncate(s string, n int, ellipsis string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	e := []rune(ellipsis)
	if n <= len(e) {
		return string(r[:n])
	}
	return string(r[:n-len(e)]) + ellipsis
}

func keep(s string, allowed func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
}

// StripTags removes HTML tags and unescapes entities.
func StripTags(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// RemoveControlChars drops control characters except newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// CollapseWhitespace replaces whitespace runs with a single space and trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// HexColor canonicalises a hex colour to lowercase "#rrggbb".
// Invalid input yields "".
func HexColor(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexDigitsRegex.MatchString(s) {
		return ""
	}
	s = strings.ToLower(s)
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return "#" + s
}

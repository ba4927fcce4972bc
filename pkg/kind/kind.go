package kind

import (
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Kind is a semantic value kind. Kinds are bit flags so a union of
// alternatives is expressed as a bitwise OR: String|Null.
type Kind uint16

const (
	String Kind = 1 << iota
	Number
	Boolean
	Object
	Array
	Date
	Null
	Undefined

	// Unknown marks values outside the closed set (channels, structs, ...).
	Unknown
)

// Any is the zero Kind. As a schema type it means "no type constraint".
const Any Kind = 0

var names = []struct {
	k    Kind
	name string
}{
	{String, "string"},
	{Number, "number"},
	{Boolean, "boolean"},
	{Object, "object"},
	{Array, "array"},
	{Date, "date"},
	{Null, "null"},
	{Undefined, "undefined"},
	{Unknown, "unknown"},
}

// String renders the kind name. Unions are joined with " or " in declaration order.
func (k Kind) String() string {
	if k == Any {
		return "any"
	}
	parts := make([]string, 0, 2)
	for _, n := range names {
		if k&n.k != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " or ")
}

// Has reports whether the single kind other is part of k.
// Any accepts everything.
func (k Kind) Has(other Kind) bool {
	if k == Any {
		return true
	}
	return k&other != 0
}

// Parse maps a kind name to its Kind.
func Parse(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range names {
		if n.name == name {
			return n.k, true
		}
	}
	return Any, false
}

type absent struct{}

func (absent) String() string { return "undefined" }

// Absent marks a value that is not present at all, as opposed to nil (null).
// Missing object properties are reported as Absent.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// Of returns the kind of a runtime value.
func Of(v any) Kind {
	switch t := v.(type) {
	case absent:
		return Undefined
	case nil:
		return Null
	case string:
		return String
	case bool:
		return Boolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return Number
	case time.Time:
		return Date
	case *time.Time:
		if t == nil {
			return Null
		}
		return Date
	case map[string]any:
		return Object
	case []any, []string, []int, []int64, []float64, []bool, []map[string]any:
		return Array
	default:
		return Unknown
	}
}

// Float converts any number kind to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// IsInteger reports whether f is finite and has no fractional part.
func IsInteger(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}

// Slice converts any array kind to a fresh []any.
func Slice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return append(make([]any, 0, len(s)), s...), true
	case []string:
		return convert(s), true
	case []int:
		return convert(s), true
	case []int64:
		return convert(s), true
	case []float64:
		return convert(s), true
	case []bool:
		return convert(s), true
	case []map[string]any:
		return convert(s), true
	default:
		return nil, false
	}
}

func convert[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// Time unwraps both time.Time and *time.Time.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

// IsEmpty reports nil, Absent and the empty string. Zero numbers and false are not empty.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil, absent:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

// Ptr returns a pointer to v. Handy for optional schema and rule fields.
func Ptr[T any](v T) *T {
	return &v
}

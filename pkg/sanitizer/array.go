package sanitizer

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// SortOrder selects array ordering.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// ArrayRules sanitize arrays. The result is always a fresh []any.
//
// Steps: wrap or Parse, Compact, Unique/UniqueBy, Items, Offset/Limit,
// Sort/Reverse, Flatten. Nil becomes an empty array; any other non-array value
// is wrapped as a single element.
type ArrayRules struct {
	// Parse reads string input as a JSON array, falling back to splitting on
	// Separator (default ",") with every part trimmed.
	Parse     bool
	Separator string

	// Compact drops nil, absent and empty-string elements. 0 and false stay.
	Compact bool

	Unique bool
	// UniqueBy dedups objects by the named property. Non-objects and objects
	// without the property are kept.
	UniqueBy string

	// Items sanitizes every element.
	Items Rule

	Offset int
	// Limit caps the number of elements. Zero means no limit.
	Limit int

	Sort SortOrder
	// SortBy orders objects by the named property.
	SortBy  string
	Reverse bool

	// Flatten splices nested arrays up to the given depth.
	Flatten int
}

// SanitizeArray applies rules to value.
func SanitizeArray(value any, rules ArrayRules) []any {
	items := rules.wrap(value)

	if rules.Compact {
		items = slices.DeleteFunc(items, kind.IsEmpty)
	}
	if rules.Unique {
		items = uniqueBy(items, func(v any) (any, bool) { return v, true })
	}
	if rules.UniqueBy != "" {
		items = uniqueBy(items, func(v any) (any, bool) {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			field, ok := obj[rules.UniqueBy]
			return field, ok
		})
	}
	if rules.Items != nil {
		for i, v := range items {
			items[i] = rules.Items.Sanitize(v)
		}
	}

	if rules.Offset > 0 {
		items = items[min(rules.Offset, len(items)):]
	}
	if rules.Limit > 0 && len(items) > rules.Limit {
		items = items[:rules.Limit]
	}

	if rules.Sort != SortNone {
		key := func(v any) any { return v }
		if rules.SortBy != "" {
			key = func(v any) any {
				if obj, ok := v.(map[string]any); ok {
					return obj[rules.SortBy]
				}
				return nil
			}
		}
		slices.SortStableFunc(items, func(a, b any) int {
			c := compareValues(key(a), key(b))
			if rules.Sort == SortDesc {
				return -c
			}
			return c
		})
	}
	if rules.Reverse {
		slices.Reverse(items)
	}

	if rules.Flatten > 0 {
		items = flatten(items, rules.Flatten)
	}
	return items
}

// Sanitize implements Rule.
func (r ArrayRules) Sanitize(value any) any {
	return SanitizeArray(value, r)
}

func (r ArrayRules) wrap(value any) []any {
	if items, ok := kind.Slice(value); ok {
		return items
	}
	if value == nil || kind.IsAbsent(value) {
		return []any{}
	}

	s, ok := value.(string)
	if !ok || !r.Parse {
		return []any{value}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return []any{}
	}
	if strings.HasPrefix(s, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return parsed
		}
	}

	sep := r.Separator
	if sep == "" {
		sep = ","
	}
	parts := strings.Split(s, sep)
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = strings.TrimSpace(p)
	}
	return items
}

// uniqueBy keeps the first element for every key. Elements for which key
// reports false are always kept.
func uniqueBy(items []any, key func(any) (any, bool)) []any {
	seen := make(map[any]struct{}, len(items))
	out := items[:0:0]
	for _, v := range items {
		k, ok := key(v)
		if !ok {
			out = append(out, v)
			continue
		}
		hk := hashKey(k)
		if _, dup := seen[hk]; dup {
			continue
		}
		seen[hk] = struct{}{}
		out = append(out, v)
	}
	return out
}

type numberKey float64

type encodedKey string

// hashKey turns a value into a comparable map key. Numbers of any Go type
// compare by value; objects and arrays by their JSON encoding.
func hashKey(v any) any {
	if f, ok := kind.Float(v); ok {
		return numberKey(f)
	}
	if v == nil || reflect.TypeOf(v).Comparable() {
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return encodedKey(fmt.Sprintf("%#v", v))
	}
	return encodedKey(b)
}

// kindOrder ranks mixed-kind elements when sorting.
var kindOrder = map[kind.Kind]int{
	kind.Number:  0,
	kind.String:  1,
	kind.Boolean: 2,
	kind.Date:    3,
	kind.Array:   4,
	kind.Object:  5,
	kind.Null:    6,
}

func compareValues(a, b any) int {
	ka, kb := kind.Of(a), kind.Of(b)
	if ka != kb {
		return cmp.Compare(rank(ka), rank(kb))
	}
	switch ka {
	case kind.Number:
		fa, _ := kind.Float(a)
		fb, _ := kind.Float(b)
		return cmp.Compare(fa, fb)
	case kind.String:
		return strings.Compare(a.(string), b.(string))
	case kind.Boolean:
		return cmp.Compare(boolRank(a.(bool)), boolRank(b.(bool)))
	case kind.Date:
		ta, _ := kind.Time(a)
		tb, _ := kind.Time(b)
		return ta.Compare(tb)
	}
	return strings.Compare(ToString(a), ToString(b))
}

func rank(k kind.Kind) int {
	if r, ok := kindOrder[k]; ok {
		return r
	}
	return len(kindOrder)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func flatten(items []any, depth int) []any {
	out := make([]any, 0, len(items))
	for _, v := range items {
		nested, ok := kind.Slice(v)
		if !ok || depth == 0 {
			out = append(out, v)
			continue
		}
		out = append(out, flatten(nested, depth-1)...)
	}
	return out
}

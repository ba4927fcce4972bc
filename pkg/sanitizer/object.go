package sanitizer

import (
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// ObjectRules sanitize map[string]any values. The input map is never modified.
//
// Steps: Parse, Pick, Omit, Rename, Defaults, Properties, MapKeys, MapValues,
// RemoveEmpty, MaxProperties. Input that is not an object (and cannot be
// parsed as one) yields an empty object.
//
// Go maps are unordered, so wherever order matters (key collisions,
// MaxProperties) keys are visited in sorted order.
type ObjectRules struct {
	// Parse reads string input as a JSON object.
	Parse bool

	Pick []string
	Omit []string

	// Rename maps old keys to new ones. A renamed key overwrites an existing
	// key of the same name.
	Rename map[string]string

	// Defaults fill keys that are missing. Present keys, even nil or "", keep
	// their value. A func() any default is called on every use.
	Defaults map[string]any

	// Properties sanitize the named keys when they are present.
	Properties map[string]Rule

	MapKeys   func(key string) string
	MapValues func(key string, value any) any

	// RemoveEmpty drops nil, absent and empty-string values. 0 and false stay.
	RemoveEmpty bool

	// MaxProperties keeps the first N keys in sorted order. Zero means no limit.
	MaxProperties int
}

// SanitizeObject applies rules to value.
func SanitizeObject(value any, rules ObjectRules) map[string]any {
	obj := rules.read(value)

	if len(rules.Pick) > 0 {
		picked := make(map[string]any, len(rules.Pick))
		for _, k := range rules.Pick {
			if v, ok := obj[k]; ok {
				picked[k] = v
			}
		}
		obj = picked
	}
	for _, k := range rules.Omit {
		delete(obj, k)
	}

	if len(rules.Rename) > 0 {
		obj = rename(obj, rules.Rename)
	}

	for k, def := range rules.Defaults {
		if _, ok := obj[k]; ok {
			continue
		}
		if fn, ok := def.(func() any); ok {
			def = fn()
		}
		obj[k] = def
	}

	for k, rule := range rules.Properties {
		if v, ok := obj[k]; ok && rule != nil {
			obj[k] = rule.Sanitize(v)
		}
	}

	if rules.MapKeys != nil {
		mapped := make(map[string]any, len(obj))
		for _, k := range sortedKeys(obj) {
			mapped[rules.MapKeys(k)] = obj[k]
		}
		obj = mapped
	}
	if rules.MapValues != nil {
		for k, v := range obj {
			obj[k] = rules.MapValues(k, v)
		}
	}

	if rules.RemoveEmpty {
		maps.DeleteFunc(obj, func(_ string, v any) bool { return kind.IsEmpty(v) })
	}

	if rules.MaxProperties > 0 && len(obj) > rules.MaxProperties {
		for _, k := range sortedKeys(obj)[rules.MaxProperties:] {
			delete(obj, k)
		}
	}
	return obj
}

// Sanitize implements Rule.
func (r ObjectRules) Sanitize(value any) any {
	return SanitizeObject(value, r)
}

// read returns a shallow copy of the input object.
func (r ObjectRules) read(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		if v != nil {
			return maps.Clone(v)
		}
	case string:
		if !r.Parse {
			break
		}
		var parsed map[string]any
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "{") && json.Unmarshal([]byte(s), &parsed) == nil && parsed != nil {
			return parsed
		}
	}
	return map[string]any{}
}

func rename(obj map[string]any, names map[string]string) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if _, renamed := names[k]; !renamed {
			out[k] = v
		}
	}
	for _, k := range sortedKeys(obj) {
		if to, ok := names[k]; ok {
			out[to] = obj[k]
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

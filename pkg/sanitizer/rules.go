package sanitizer

import "github.com/dmitrymomot/schemakit/pkg/kind"

// Rule transforms a value. Rules never fail: malformed input degrades to the
// fallback documented by each rule family.
type Rule interface {
	Sanitize(value any) any
}

// Sanitize applies rule to value. A nil rule returns the value unchanged.
func Sanitize(value any, rule Rule) any {
	if rule == nil {
		return value
	}
	return rule.Sanitize(value)
}

// Func adapts an ordinary function into a Rule.
type Func func(value any) any

// Sanitize calls f.
func (f Func) Sanitize(value any) any {
	if f == nil {
		return value
	}
	return f(value)
}

// Chain applies each rule to the output of the previous one. Nil entries are skipped.
type Chain []Rule

// Sanitize runs the chain.
func (c Chain) Sanitize(value any) any {
	for _, r := range c {
		if r != nil {
			value = r.Sanitize(value)
		}
	}
	return value
}

// RuleSet dispatches on the runtime kind of the value. A family without rules
// passes its values through, as do kinds with no family (functions, structs).
// Nil and absent values are replaced by Default; a func() any Default is
// called on every use.
type RuleSet struct {
	String  *StringRules
	Number  *NumberRules
	Boolean *BooleanRules
	Array   *ArrayRules
	Object  *ObjectRules
	Date    *DateRules

	Default any
}

// Sanitize applies the rules matching the kind of value.
func (rs RuleSet) Sanitize(value any) any {
	switch kind.Of(value) {
	case kind.Null, kind.Undefined:
		if fn, ok := rs.Default.(func() any); ok {
			return fn()
		}
		return rs.Default
	case kind.String:
		if rs.String != nil {
			return rs.String.Sanitize(value)
		}
	case kind.Number:
		if rs.Number != nil {
			return rs.Number.Sanitize(value)
		}
	case kind.Boolean:
		if rs.Boolean != nil {
			return rs.Boolean.Sanitize(value)
		}
	case kind.Array:
		if rs.Array != nil {
			return rs.Array.Sanitize(value)
		}
	case kind.Object:
		if rs.Object != nil {
			return rs.Object.Sanitize(value)
		}
	case kind.Date:
		if rs.Date != nil {
			return rs.Date.Sanitize(value)
		}
	}
	return value
}

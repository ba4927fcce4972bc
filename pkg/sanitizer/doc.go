// Package sanitizer transforms values according to declarative rules.
//
// Sanitization never fails. Each rule family coerces its input into the family
// type and degrades malformed input to a documented fallback:
//
//   - strings: "" (an invalid hex colour too)
//   - numbers: NumberRules.Default, zero unless set
//   - booleans: BooleanRules.Default, false unless set
//   - dates: DateRules.Default, nil unless set
//   - arrays: an empty array
//   - objects: an empty object
//
// # Rules
//
// Every rule implements Rule. StringRules, NumberRules, BooleanRules,
// ArrayRules, ObjectRules and DateRules are plain structs whose fields switch
// individual steps on; each struct documents the fixed order its steps run in.
// RuleSet dispatches on the runtime kind of a value, Func wraps an ad hoc
// function and Chain runs rules one after another.
//
// Rules hold no state. A rule built once can be shared across goroutines.
//
// # Usage
//
//	profile := sanitizer.ObjectRules{
//	    Pick: []string{"name", "email", "tags"},
//	    Defaults: map[string]any{"tags": func() any { return []any{} }},
//	    Properties: map[string]sanitizer.Rule{
//	        "name":  sanitizer.StringRules{Trim: true, Collapse: true, Case: sanitizer.CaseTitle},
//	        "email": sanitizer.StringRules{Trim: true, Case: sanitizer.CaseLower},
//	        "tags":  sanitizer.ArrayRules{Parse: true, Compact: true, Unique: true},
//	    },
//	}
//
//	clean := sanitizer.SanitizeObject(input, profile)
//
// The generic entry point accepts any Rule:
//
//	sanitizer.Sanitize("  hello world  ", sanitizer.StringRules{Trim: true, Case: sanitizer.CaseUpper})
//	// "HELLO WORLD"
package sanitizer

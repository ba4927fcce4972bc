// Package kind defines the closed set of semantic value kinds understood by the
// validator and sanitizer packages, and the single function that maps a Go
// runtime value to its kind.
//
// Kinds are bit flags, so a schema that accepts several alternatives simply
// ORs them together:
//
//	t := kind.String | kind.Null
//	t.Has(kind.Of(nil))    // true
//	t.String()             // "string or null"
//
// Objects are map[string]any and arrays are []any (plus a few common typed
// slices), which is exactly what encoding/json and yaml.v3 produce when
// decoding into any. The Absent marker represents a value that is not present
// at all, distinct from nil which represents null.
package kind

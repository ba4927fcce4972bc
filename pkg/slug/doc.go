// Package slug turns arbitrary text into URL-safe identifiers.
//
// Diacritics are removed through Unicode decomposition (golang.org/x/text), so
// "Café Ñandú" becomes "cafe-nandu". Everything that is not an ASCII letter or
// digit collapses into a single separator.
//
// # Usage
//
//	slug.Make("Hello World!")
//	// "hello-world"
//
//	slug.Make("Über Straße", slug.Separator("_"), slug.MaxLength(8))
//	// "uber_str"
//
// The sanitizer package uses Make for its Slug shortcut, and the validator's
// slug format accepts exactly what Make produces with default options.
package slug

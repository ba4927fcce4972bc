package schemafile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/schemafile"
)

func TestParseRules(t *testing.T) {
	t.Parallel()

	t.Run("single family coerces any input", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
number:
  integer: true
  rounding: floor
  min: 0
  max: 10
  clamp: true
`), nil)
		require.NoError(t, err)

		assert.Equal(t, 7.0, rule.Sanitize(" 7.9 "))
		assert.Equal(t, 10.0, rule.Sanitize(99))
		assert.Equal(t, 0.0, rule.Sanitize("abc"))
	})

	t.Run("several families dispatch on kind", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
string: {trim: true, case: upper}
boolean: {default: false}
default: n/a
`), nil)
		require.NoError(t, err)

		assert.Equal(t, "ABC", rule.Sanitize("  abc "))
		assert.Equal(t, true, rule.Sanitize(true))
		assert.Equal(t, 12, rule.Sanitize(12))
		assert.Equal(t, "n/a", rule.Sanitize(nil))
	})

	t.Run("string replace and remove", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
string:
  replace:
    - {pattern: "\\s+", with: "_"}
  remove: ["[0-9]"]
`), nil)
		require.NoError(t, err)
		assert.Equal(t, "order_no_", rule.Sanitize("order no 42"))
	})

	t.Run("nested object and array rules", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
object:
  omit: [password]
  rename: {e_mail: email}
  defaults: {role: member}
  properties:
    email:
      string: {trim: true, case: lower}
    tags:
      array:
        parse: true
        unique: true
        sort: asc
        items:
          string: {trim: true, case: lower}
`), nil)
		require.NoError(t, err)

		in := map[string]any{
			"e_mail":   " Bob@Example.COM ",
			"password": "secret",
			"tags":     "go, Rust ,go",
		}
		out := rule.Sanitize(in).(map[string]any)
		assert.Equal(t, map[string]any{
			"email": "bob@example.com",
			"role":  "member",
			"tags":  []any{"go", "rust"},
		}, out)
		assert.Equal(t, "secret", in["password"], "input is not modified")
	})

	t.Run("sequence becomes a chain", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
- string: {trim: true}
- string: {truncate: 5, ellipsis: "~"}
`), nil)
		require.NoError(t, err)
		require.IsType(t, sanitizer.Chain{}, rule)
		assert.Equal(t, "hell~", rule.Sanitize("  hello world  "))
	})

	t.Run("date rules", func(t *testing.T) {
		t.Parallel()

		rule, err := schemafile.ParseRules([]byte(`
date:
  location: UTC
  truncate: 24h
  min: "2020-01-01T00:00:00Z"
  clamp: true
  format: "2006-01-02"
`), nil)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-15", rule.Sanitize("2024-03-15T18:30:00Z"))
		assert.Equal(t, "2020-01-01", rule.Sanitize(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("use appends registered rules", func(t *testing.T) {
		t.Parallel()

		reg := schemafile.NewRegistry()
		reg.RegisterRule("exclaim", sanitizer.Func(func(v any) any {
			s, _ := v.(string)
			return s + "!"
		}))

		rule, err := schemafile.ParseRules([]byte(`{string: {trim: true}, use: [exclaim]}`), reg)
		require.NoError(t, err)
		assert.Equal(t, "hi!", rule.Sanitize(" hi "))
	})
}

func TestParseRules_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{"unknown key", "strings: {trim: true}", `unknown key "strings"`},
		{"unknown case", "string: {case: kebab}", `unknown case "kebab"`},
		{"unknown sort", "array: {sort: random}", `unknown order "random"`},
		{"unknown rounding", "number: {rounding: bankers}", `unknown mode "bankers"`},
		{"bad regexp", "string: {remove: ['(']}", "string.remove"},
		{"bad location", "date: {location: Mars/Olympus}", "date.location"},
		{"bad duration", "date: {truncate: daily}", "date.truncate"},
		{"bad bound", "date: {min: yesterday}", "date.min"},
		{"scalar", "trim", "expected a mapping or a sequence"},
		{"nested", "array: {items: {strng: {}}}", `unknown key "strng"`},
		{"unregistered rule", "use: [nope]", `rule "nope" is not registered`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := schemafile.ParseRules([]byte(tt.doc), schemafile.NewRegistry())
			require.Error(t, err)
			assert.ErrorIs(t, err, schemafile.ErrInvalidRules)
			assert.True(t, strings.Contains(err.Error(), tt.message), "error %q should mention %q", err, tt.message)
		})
	}
}

package validator

import (
	"context"
	"regexp"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// Predicate is a custom synchronous check. A nil error means the value passes;
// the error message becomes the ValidationError message.
type Predicate func(value any) error

// AsyncPredicate is a custom check that may block (database lookups, remote calls).
// It runs only after every synchronous check on its node has passed.
type AsyncPredicate func(ctx context.Context, value any) error

// Schema describes the expected shape of a value. A Schema is read-only once
// built and may be shared between goroutines.
type Schema struct {
	// Type is a single kind or a union (kind.String|kind.Null). kind.Any skips the check.
	Type kind.Kind

	// Required makes an absent value an error. Null is present.
	Required bool

	// Default is injected when the value is absent. A func() any is called
	// on every injection so mutable defaults are never shared.
	Default any

	// Properties are checked in declaration order. Object only.
	Properties []Property

	// Items is applied to every element. Array only.
	Items *Schema

	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp
	Formats   []Format

	Min     *float64
	Max     *float64
	Integer bool

	MinItems *int
	MaxItems *int

	// Enum restricts the value to one of the listed values.
	Enum []any

	// Trim strips surrounding whitespace from strings before any string check.
	// The trimmed string is what the result reports.
	Trim bool

	Validate      Predicate
	ValidateAsync AsyncPredicate

	// Messages overrides the default message per error type.
	Messages map[ErrorType]string
}

// Property binds a property name to its schema.
type Property struct {
	Name   string
	Schema Schema
}

// Prop is shorthand for building a Property.
func Prop(name string, schema Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Property returns the schema of the named property.
func (s Schema) Property(name string) (Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return Schema{}, false
}

func (s *Schema) defaultValue() any {
	if fn, ok := s.Default.(func() any); ok {
		return fn()
	}
	return s.Default
}

func (s *Schema) message(t ErrorType, fallback string) string {
	if msg, ok := s.Messages[t]; ok && msg != "" {
		return msg
	}
	return fallback
}

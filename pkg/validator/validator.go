package validator

import (
	"context"
	"slices"
)

// Validator is a schema bound to default options, built once and reused.
// It is safe for concurrent use.
type Validator struct {
	schema   Schema
	defaults []Option
}

// New binds schema and default options into a reusable validator.
func New(schema Schema, defaults ...Option) *Validator {
	return &Validator{schema: schema, defaults: slices.Clone(defaults)}
}

// Validate checks value. Per-call options are layered on top of the defaults.
func (v *Validator) Validate(value any, opts ...Option) Result {
	return Validate(value, v.schema, v.options(opts)...)
}

// Schema returns the bound schema.
func (v *Validator) Schema() Schema {
	return v.schema
}

func (v *Validator) options(opts []Option) []Option {
	if len(opts) == 0 {
		return v.defaults
	}
	return append(slices.Clone(v.defaults), opts...)
}

// AsyncValidator is the ValidateAsync counterpart of Validator.
type AsyncValidator struct {
	Validator
}

// NewAsync binds schema and default options into a reusable async validator.
func NewAsync(schema Schema, defaults ...Option) *AsyncValidator {
	return &AsyncValidator{Validator: Validator{schema: schema, defaults: slices.Clone(defaults)}}
}

// Validate runs the sync and async passes. Per-call options are layered on top of the defaults.
func (v *AsyncValidator) Validate(ctx context.Context, value any, opts ...Option) Result {
	return ValidateAsync(ctx, value, v.schema, v.options(opts)...)
}

// ValidateSync runs only the synchronous pass.
func (v *AsyncValidator) ValidateSync(value any, opts ...Option) Result {
	return v.Validator.Validate(value, opts...)
}

package pipeline

import (
	"context"
	"slices"

	"github.com/dmitrymomot/schemakit/pkg/async"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Stage is one step of a pipeline. It receives the value produced by the
// previous stage. A returned error aborts the pipeline.
type Stage func(ctx context.Context, value any, opts ...validator.Option) (validator.Result, error)

// New composes stages into a single Stage. Nil stages are ignored.
//
// Stages run in order, each on the previous stage's Value, and their errors
// are concatenated. With validator.AbortEarly the pipeline stops after the
// first stage that reports an invalid result. A stage that returns an error or
// panics adds one "pipeline" error carrying its message and stops the pipeline
// regardless of AbortEarly. The composed stage itself never returns an error,
// so pipelines nest.
func New(stages ...Stage) Stage {
	active := slices.DeleteFunc(slices.Clone(stages), func(s Stage) bool { return s == nil })

	return func(ctx context.Context, value any, opts ...validator.Option) (validator.Result, error) {
		abortEarly := validator.Resolve(opts...).AbortEarly
		res := validator.Result{Valid: true, Value: value}

		for _, stage := range active {
			out, err := run(ctx, stage, res.Value, opts)
			if err != nil {
				res.Valid = false
				res.Errors = append(res.Errors, validator.ValidationError{
					Path:    "",
					Message: err.Error(),
					Type:    validator.TypePipeline,
				})
				return res, nil
			}

			res.Value = out.Value
			res.Errors = append(res.Errors, out.Errors...)
			if !out.Valid || len(out.Errors) > 0 {
				res.Valid = false
				if abortEarly {
					break
				}
			}
		}
		return res, nil
	}
}

// run is the single point where a panicking stage is turned into an error.
func run(ctx context.Context, stage Stage, value any, opts []validator.Option) (res validator.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &async.PanicError{Value: r}
		}
	}()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return validator.Result{}, ctxErr
	}
	return stage(ctx, value, opts...)
}

// Transform wraps a plain value transformation.
func Transform(fn func(value any) any) Stage {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, value any, _ ...validator.Option) (validator.Result, error) {
		return validator.Result{Valid: true, Value: fn(value)}, nil
	}
}

// Func wraps a transformation that may block or fail.
func Func(fn func(ctx context.Context, value any) (any, error)) Stage {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, value any, _ ...validator.Option) (validator.Result, error) {
		out, err := fn(ctx, value)
		if err != nil {
			return validator.Result{}, err
		}
		return validator.Result{Valid: true, Value: out}, nil
	}
}

// Sanitize wraps a sanitizer rule.
func Sanitize(rule sanitizer.Rule) Stage {
	if rule == nil {
		return nil
	}
	return func(_ context.Context, value any, _ ...validator.Option) (validator.Result, error) {
		return validator.Result{Valid: true, Value: rule.Sanitize(value)}, nil
	}
}

// Validate wraps a synchronous validator. Pipeline options are passed through.
func Validate(v *validator.Validator) Stage {
	if v == nil {
		return nil
	}
	return func(_ context.Context, value any, opts ...validator.Option) (validator.Result, error) {
		return v.Validate(value, opts...), nil
	}
}

// ValidateAsync wraps an async validator. Pipeline options are passed through.
func ValidateAsync(v *validator.AsyncValidator) Stage {
	if v == nil {
		return nil
	}
	return func(ctx context.Context, value any, opts ...validator.Option) (validator.Result, error) {
		return v.Validate(ctx, value, opts...), nil
	}
}

// Await wraps a function that starts asynchronous work and returns its future.
// The stage waits for the future; its error aborts the pipeline.
func Await(fn func(ctx context.Context, value any) *async.Future[any]) Stage {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, value any, _ ...validator.Option) (validator.Result, error) {
		out, err := fn(ctx, value).Await()
		if err != nil {
			return validator.Result{}, err
		}
		return validator.Result{Valid: true, Value: out}, nil
	}
}

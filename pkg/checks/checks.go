package checks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

const (
	DefaultTakenMessage    = "Value is already taken"
	DefaultNotFoundMessage = "Value does not exist"
	DefaultFailedMessage   = "Value could not be verified"
)

type options struct {
	message       string
	failedMessage string
	log           *slog.Logger
}

// Option configures a check.
type Option func(*options)

// WithMessage sets the message reported when the value fails the check.
func WithMessage(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

// WithFailedMessage sets the message reported when the backend cannot answer.
// The backend error itself is only logged.
func WithFailedMessage(msg string) Option {
	return func(o *options) {
		o.failedMessage = msg
	}
}

// WithLogger sets the logger that receives backend errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(message string, opts []Option) options {
	o := options{
		message:       message,
		failedMessage: DefaultFailedMessage,
		log:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// backendFailed logs the cause and returns the user facing error.
// Context cancellation is passed through untouched.
func (o options) backendFailed(ctx context.Context, check string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	o.log.ErrorContext(ctx, "check backend failed",
		logger.Component("checks"),
		slog.String("check", check),
		logger.Error(errors.Join(ErrBackendFailed, err)),
	)
	return errors.New(o.failedMessage)
}

// scalar reports whether value can be looked up. Null and absent values are
// skipped: presence is the job of required, not of a lookup.
func scalar(value any) (any, bool) {
	switch kind.Of(value) {
	case kind.String, kind.Number, kind.Boolean:
		return value, true
	default:
		return nil, false
	}
}

func member(value any) (string, bool) {
	v, ok := scalar(value)
	if !ok {
		return "", false
	}
	return sanitizer.ToString(v), true
}

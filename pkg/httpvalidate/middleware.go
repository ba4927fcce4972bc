package httpvalidate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/pipeline"
)

// DefaultBodyLimit caps request bodies at 1 MiB.
const DefaultBodyLimit int64 = 1 << 20

type options struct {
	bodyLimit int64
	log       *slog.Logger
	schema    string
}

// Option configures Middleware and Handler.
type Option func(*options)

// WithBodyLimit sets the maximum accepted body size in bytes.
func WithBodyLimit(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.bodyLimit = n
		}
	}
}

// WithLogger sets the logger for rejected requests and stage failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSchemaName tags log records with the schema being enforced.
func WithSchemaName(name string) Option {
	return func(o *options) {
		o.schema = name
	}
}

func newOptions(opts []Option) options {
	o := options{
		bodyLimit: DefaultBodyLimit,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With(logger.Component("httpvalidate"))
	if o.schema != "" {
		o.log = o.log.With(logger.Schema(o.schema))
	}
	return o
}

type contextKey struct{}

// FromContext returns the sanitized and validated body stored by Middleware.
func FromContext(ctx context.Context) (any, bool) {
	v, ok := ctx.Value(contextKey{}).(validated)
	return v.value, ok
}

// dataResponse keeps "data" in the answer when the value is null.
type dataResponse struct {
	Data any `json:"data"`
}

// validated wraps the value so a nil body can be told apart from no value.
type validated struct{ value any }

// Middleware decodes the JSON body, runs stage on it and either rejects the
// request or passes the resulting value on through the request context.
// The stage usually comes from pipeline.New or schemafile.Document.Pipeline.
func Middleware(stage pipeline.Stage, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, ok := o.run(w, r, stage)
			if !ok {
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, validated{value})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Handler answers with the cleaned value as {"data": ...} or with the error
// envelope. It backs validation endpoints that do nothing else. An absent
// value is answered as {"data": null}.
func Handler(stage pipeline.Stage, opts ...Option) http.HandlerFunc {
	o := newOptions(opts)
	return func(w http.ResponseWriter, r *http.Request) {
		value, ok := o.run(w, r, stage)
		if !ok {
			return
		}
		if kind.IsAbsent(value) {
			value = nil
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(dataResponse{Data: value}); err != nil {
			o.log.ErrorContext(r.Context(), "write response", logger.Error(err))
		}
	}
}

// run writes the error response itself and reports false when the request
// must not continue.
func (o options) run(w http.ResponseWriter, r *http.Request, stage pipeline.Stage) (any, bool) {
	start := time.Now()
	ctx := r.Context()

	value, err := o.decode(w, r)
	if err != nil {
		status, code := http.StatusBadRequest, CodeInvalidJSON
		switch {
		case errors.Is(err, ErrBodyTooLarge):
			status, code = http.StatusRequestEntityTooLarge, CodeBodyTooLarge
		case errors.Is(err, ErrUnsupportedMIME):
			status, code = http.StatusUnsupportedMediaType, CodeUnsupportedMIME
		}
		o.log.DebugContext(ctx, "request body rejected", logger.Error(err))
		_ = WriteError(w, status, code, err.Error())
		return nil, false
	}

	if stage == nil {
		return value, true
	}
	res, err := stage(ctx, value)
	if err != nil {
		o.log.ErrorContext(ctx, "validation stage failed", logger.Error(err), logger.Duration(time.Since(start)))
		_ = WriteError(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
		return nil, false
	}
	if !res.Valid {
		o.log.InfoContext(ctx, "request rejected",
			logger.Invalid(len(res.Errors), res.Errors.Paths()),
			logger.Duration(time.Since(start)),
		)
		_ = WriteInvalid(w, res.Errors)
		return nil, false
	}
	return res.Value, true
}

// decode reads a JSON body. An empty body is the absent value, so required
// and default behave as for a missing property.
func (o options) decode(w http.ResponseWriter, r *http.Request) (any, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != "application/json" && !strings.HasSuffix(mt, "+json")) {
			return nil, ErrUnsupportedMIME
		}
	}
	if r.Body == nil {
		return kind.Absent, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, o.bodyLimit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return kind.Absent, nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, ErrInvalidJSON
	}
	return value, nil
}

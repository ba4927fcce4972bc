package schemafile

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Registry resolves the names used by documents (check, checkAsync, use)
// to Go functions. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]validator.Predicate
	async  map[string]validator.AsyncPredicate
	rules  map[string]sanitizer.Rule
	log    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report overridden registrations.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		checks: make(map[string]validator.Predicate),
		async:  make(map[string]validator.AsyncPredicate),
		rules:  make(map[string]sanitizer.Rule),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a synchronous predicate to name.
func (r *Registry) Register(name string, p validator.Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.checks[name]; ok {
		r.log.Warn("check overridden", logger.Component("schemafile"), slog.String("check", name))
	}
	r.checks[name] = p
}

// RegisterAsync binds an async predicate to name.
func (r *Registry) RegisterAsync(name string, p validator.AsyncPredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.async[name]; ok {
		r.log.Warn("async check overridden", logger.Component("schemafile"), slog.String("check", name))
	}
	r.async[name] = p
}

// RegisterRule binds a sanitizer rule to name.
func (r *Registry) RegisterRule(name string, rule sanitizer.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[name]; ok {
		r.log.Warn("rule overridden", logger.Component("schemafile"), slog.String("rule", name))
	}
	r.rules[name] = rule
}

func (r *Registry) check(name string) (validator.Predicate, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.checks[name]
	return p, ok
}

func (r *Registry) asyncCheck(name string) (validator.AsyncPredicate, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.async[name]
	return p, ok
}

func (r *Registry) rule(name string) (sanitizer.Rule, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

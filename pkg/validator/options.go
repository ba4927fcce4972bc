package validator

// Options controls a validation run.
type Options struct {
	// AbortEarly stops at the first recorded error anywhere in the tree.
	AbortEarly bool
}

// Option configures a validation run.
type Option func(*Options)

// AbortEarly toggles abort-early mode.
func AbortEarly(enabled bool) Option {
	return func(o *Options) { o.AbortEarly = enabled }
}

// Resolve applies opts in order on top of the zero Options.
// Later options win, so per-call options layered after defaults override them
// field by field.
func Resolve(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

package vegamdb

// options holds constructor-time configuration for a DB.
type options struct {
	logger *Logger
}

// Option configures a DB at construction time.
type Option func(*options)

// WithLogger configures structured logging for operations. Pass nil to
// disable logging, equivalent to not supplying WithLogger at all.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{logger: NoopLogger()}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

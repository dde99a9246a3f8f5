package expressmock

import "log/slog"

type config struct {
	overrides []override
	logger    *slog.Logger
}

type override struct {
	field Field
	value any
}

// Option customizes the mocks built by GetMockRes.
type Option func(c *config)

// WithValue overrides the default for a field. Method fields take a
// *mockfn.Fn, property fields take a value of the property's Go type.
// Unrecognized fields are copied to MockResponse.Extra. When the same field
// is given more than once the last value wins.
func WithValue(f Field, v any) Option {
	return func(c *config) {
		c.overrides = append(c.overrides, override{field: f, value: v})
	}
}

// WithValues applies WithValue for every entry in values.
func WithValues(values map[Field]any) Option {
	return func(c *config) {
		for f, v := range values {
			c.overrides = append(c.overrides, override{field: f, value: v})
		}
	}
}

// WithLogger logs every invocation of the generated stand-ins at debug
// level. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

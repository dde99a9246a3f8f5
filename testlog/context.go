package testlog

import (
	"context"
	"log/slog"
	"slices"
)

type attrsContextKey struct{}

// WithAttrs returns a context carrying attrs in addition to any already
// attached. Records logged with the context through a Handler include them.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	all := append(slices.Clone(AttrsFromContext(ctx)), attrs...)
	return context.WithValue(ctx, attrsContextKey{}, all)
}

// AttrsFromContext returns the attributes attached to ctx.
func AttrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsContextKey{}).([]slog.Attr)
	return attrs
}

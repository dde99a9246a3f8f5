package testlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Handler is a slog.Handler that writes records to a testing.TB, adding any
// attributes attached to the record's context.
type Handler struct {
	t       testing.TB
	handler slog.Handler
	mu      *sync.Mutex
	buf     *bytes.Buffer
}

// New returns a logger that writes debug and above to t.
func New(t testing.TB) *slog.Logger {
	return slog.New(NewHandler(t, slog.LevelDebug))
}

// NewHandler returns a handler logging records at or above level to t.
func NewHandler(t testing.TB, level slog.Leveler) *Handler {
	buf := &bytes.Buffer{}
	return &Handler{
		t: t,
		handler: slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				// t.Log prints its own position, times only add noise.
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}),
		mu:  &sync.Mutex{},
		buf: buf,
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := AttrsFromContext(ctx); len(attrs) > 0 {
		r = r.Clone()

		existing := make(map[string]struct{})
		r.Attrs(func(a slog.Attr) bool {
			existing[a.Key] = struct{}{}
			return true
		})

		for _, a := range attrs {
			if _, ok := existing[a.Key]; !ok {
				r.AddAttrs(a)
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.Reset()
	if err := h.handler.Handle(ctx, r); err != nil {
		return err
	}
	h.t.Helper()
	h.t.Log(strings.TrimSuffix(h.buf.String(), "\n"))
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{t: h.t, handler: h.handler.WithAttrs(attrs), mu: h.mu, buf: h.buf}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{t: h.t, handler: h.handler.WithGroup(name), mu: h.mu, buf: h.buf}
}

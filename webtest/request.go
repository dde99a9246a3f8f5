package webtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/goccy/go-json"

	"github.com/lstoll/expressmock/testlog"
)

type requestOpts struct {
	jsonBody any
	header   http.Header
	attrs    []slog.Attr
	ctx      context.Context
}

// RequestOpt configures a request built by NewRequest.
type RequestOpt func(opts *requestOpts) error

// RequestWithJSONBody encodes body as the request body and sets the
// Content-Type to application/json.
func RequestWithJSONBody(body any) RequestOpt {
	return func(opts *requestOpts) error {
		opts.jsonBody = body
		return nil
	}
}

// RequestWithHeader adds a header value to the request.
func RequestWithHeader(key, value string) RequestOpt {
	return func(opts *requestOpts) error {
		if opts.header == nil {
			opts.header = http.Header{}
		}
		opts.header.Add(key, value)
		return nil
	}
}

// RequestWithContext sets the base context of the request.
func RequestWithContext(ctx context.Context) RequestOpt {
	return func(opts *requestOpts) error {
		if ctx == nil {
			return fmt.Errorf("nil context")
		}
		opts.ctx = ctx
		return nil
	}
}

// RequestWithLogAttrs attaches attributes to the request context. They are
// added to records logged with the context through a testlog handler.
func RequestWithLogAttrs(attrs ...slog.Attr) RequestOpt {
	return func(opts *requestOpts) error {
		opts.attrs = append(opts.attrs, attrs...)
		return nil
	}
}

// NewRequest builds a request suitable for use as the mock response's req.
// It panics if an option fails, as a test helper it has no better way to
// report misuse.
func NewRequest(method string, target string, opts ...RequestOpt) *http.Request {
	ropts := &requestOpts{}
	for _, opt := range opts {
		if err := opt(ropts); err != nil {
			panic(fmt.Errorf("applying request opt: %w", err))
		}
	}

	var body io.Reader
	if ropts.jsonBody != nil {
		b, err := json.Marshal(ropts.jsonBody)
		if err != nil {
			panic(fmt.Errorf("marshalling json body: %w", err))
		}
		body = bytes.NewReader(b)
	}

	r := httptest.NewRequest(method, target, body)

	if ropts.jsonBody != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range ropts.header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}

	ctx := r.Context()
	if ropts.ctx != nil {
		ctx = ropts.ctx
	}
	if len(ropts.attrs) > 0 {
		ctx = testlog.WithAttrs(ctx, ropts.attrs...)
	}
	return r.WithContext(ctx)
}

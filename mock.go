package expressmock

import (
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/lstoll/expressmock/express"
	"github.com/lstoll/expressmock/internal"
	"github.com/lstoll/expressmock/mockfn"
	"github.com/lstoll/expressmock/testlog"
)

// Mocks is the result of GetMockRes.
type Mocks struct {
	// Res is the mocked response.
	Res *MockResponse
	// Next is the "next handler" callback to pass to a handler.
	Next express.NextFunc
	// NextMock records the calls made to Next.
	NextMock *mockfn.Fn
}

// GetMockRes builds a mocked response and next callback. Every property has
// its zero value or an empty map, every method is backed by a fresh stand-in
// named after it. Methods the framework documents as chainable return Res.
// Options override the defaults.
func GetMockRes(opts ...Option) *Mocks {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	res := &MockResponse{
		Props: defaultProps(),
		Extra: map[string]any{},
		id:    uuid.NewString(),
		fns:   make(map[Field]*mockfn.Fn, len(fieldTable)),
	}
	logger = logger.With("mock_id", res.id)
	res.Props.Req = res.Props.Req.WithContext(testlog.WithAttrs(res.Props.Req.Context(), slog.String("mock_id", res.id)))

	for _, fi := range fieldTable {
		if fi.Kind == KindFunc {
			res.fns[fi.Name] = mockfn.New(string(fi.Name)+" mock default", mockfn.WithLogger(logger))
		}
	}

	for _, o := range cfg.overrides {
		fi, ok := fieldIndex[o.field]
		if !ok {
			res.Extra[string(o.field)] = o.value
			continue
		}
		if !res.apply(fi, o.value) {
			logger.Debug("override has the wrong type, keeping the default",
				"field", string(fi.Name), "type", typeName(o.value))
			res.Extra[string(o.field)] = o.value
			continue
		}
		// a later valid override replaces an earlier malformed one
		delete(res.Extra, string(o.field))
	}

	for _, fi := range fieldTable {
		if fi.Chainable {
			res.fns[fi.Name].Return(res)
		}
	}

	nextMock := mockfn.New("next", mockfn.WithLogger(logger))
	next := func(err error) {
		nextMock.Invoke(err)
	}
	return &Mocks{
		Res:      res,
		Next:     next,
		NextMock: nextMock,
	}
}

func (r *MockResponse) apply(fi FieldInfo, v any) bool {
	if fi.Kind == KindFunc {
		f, ok := v.(*mockfn.Fn)
		if ok && f != nil {
			r.fns[fi.Name] = f
		}
		return ok && f != nil
	}
	return propSetters[fi.Name](&r.Props, v)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// MockClear resets the call history of every stand-in on Res and of Next.
// Properties, return values and implementations are kept.
func (m *Mocks) MockClear() {
	m.NextMock.Reset()
	for _, fi := range fieldTable {
		if fi.Kind == KindFunc {
			m.Res.fns[fi.Name].Reset()
		}
	}
}

// ClearMockRes is an alias for MockClear.
func (m *Mocks) ClearMockRes() {
	m.MockClear()
}

// NextErr returns the error passed to the most recent call of Next. It is
// nil if Next was called without an error or not called at all.
func (m *Mocks) NextErr() error {
	c, ok := m.NextMock.LastCall()
	if !ok {
		return nil
	}
	err, _ := c.Args[0].(error)
	return err
}

// FromResponse finds the MockResponse behind res, unwrapping any wrappers
// that implement Unwrap() express.Response.
func FromResponse(res express.Response) (*MockResponse, bool) {
	return internal.UnwrapTo[*MockResponse](res)
}

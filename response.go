package expressmock

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/lstoll/expressmock/express"
	"github.com/lstoll/expressmock/internal"
	"github.com/lstoll/expressmock/mockfn"
)

// Props holds the plain-value properties of a MockResponse. They are read
// through the response's getters and are not touched by clearing the mocks.
type Props struct {
	// express.Response
	HeadersSent bool
	Locals      map[string]any
	Charset     string
	App         map[string]any
	Req         *http.Request

	// http.ServerResponse
	StatusCode    int
	StatusMessage string

	// http.OutgoingMessage
	ChunkedEncoding             bool
	ShouldKeepAlive             bool
	UseChunkedEncodingByDefault bool
	SendDate                    bool
	Finished                    bool
	Connection                  net.Conn
	Socket                      net.Conn

	// stream.Writable
	Writable              bool
	WritableEnded         bool
	WritableFinished      bool
	WritableHighWaterMark int
	WritableLength        int
	WritableObjectMode    bool
	WritableCorked        int
	Destroyed             bool
}

func defaultProps() Props {
	return Props{
		Locals: map[string]any{},
		App:    map[string]any{},
		Req: &http.Request{
			URL:    &url.URL{},
			Header: http.Header{},
		},
		Connection: internal.NopConn{},
		Socket:     internal.NopConn{},
	}
}

func setter[T any](field func(p *Props) *T) func(p *Props, v any) bool {
	return func(p *Props, v any) bool {
		tv, ok := v.(T)
		if ok {
			*field(p) = tv
		}
		return ok
	}
}

var propSetters = map[Field]func(p *Props, v any) bool{
	FieldHeadersSent: setter(func(p *Props) *bool { return &p.HeadersSent }),
	FieldLocals:      setter(func(p *Props) *map[string]any { return &p.Locals }),
	FieldCharset:     setter(func(p *Props) *string { return &p.Charset }),
	FieldApp:         setter(func(p *Props) *map[string]any { return &p.App }),
	FieldReq:         setter(func(p *Props) **http.Request { return &p.Req }),

	FieldStatusCode:    setter(func(p *Props) *int { return &p.StatusCode }),
	FieldStatusMessage: setter(func(p *Props) *string { return &p.StatusMessage }),

	FieldChunkedEncoding:             setter(func(p *Props) *bool { return &p.ChunkedEncoding }),
	FieldShouldKeepAlive:             setter(func(p *Props) *bool { return &p.ShouldKeepAlive }),
	FieldUseChunkedEncodingByDefault: setter(func(p *Props) *bool { return &p.UseChunkedEncodingByDefault }),
	FieldSendDate:                    setter(func(p *Props) *bool { return &p.SendDate }),
	FieldFinished:                    setter(func(p *Props) *bool { return &p.Finished }),
	FieldConnection:                  setter(func(p *Props) *net.Conn { return &p.Connection }),
	FieldSocket:                      setter(func(p *Props) *net.Conn { return &p.Socket }),

	FieldWritable:              setter(func(p *Props) *bool { return &p.Writable }),
	FieldWritableEnded:         setter(func(p *Props) *bool { return &p.WritableEnded }),
	FieldWritableFinished:      setter(func(p *Props) *bool { return &p.WritableFinished }),
	FieldWritableHighWaterMark: setter(func(p *Props) *int { return &p.WritableHighWaterMark }),
	FieldWritableLength:        setter(func(p *Props) *int { return &p.WritableLength }),
	FieldWritableObjectMode:    setter(func(p *Props) *bool { return &p.WritableObjectMode }),
	FieldWritableCorked:        setter(func(p *Props) *int { return &p.WritableCorked }),
	FieldDestroyed:             setter(func(p *Props) *bool { return &p.Destroyed }),
}

// MockResponse is a fake express.Response. Every method is backed by a
// *mockfn.Fn reachable through Mock, every property reads from Props.
type MockResponse struct {
	// Props are the plain-value properties.
	Props Props
	// Extra holds override values that are not recognized fields, keyed by
	// the name they were given with.
	Extra map[string]any

	id  string
	fns map[Field]*mockfn.Fn
}

var _ express.Response = (*MockResponse)(nil)

// ID uniquely identifies this mock in log output.
func (r *MockResponse) ID() string {
	return r.id
}

// Mock returns the stand-in backing the named method, or nil if f is not a
// recognized method.
func (r *MockResponse) Mock(f Field) *mockfn.Fn {
	return r.fns[f]
}

func (r *MockResponse) call(f Field, args ...any) any {
	return r.fns[f].Invoke(args...)
}

func (r *MockResponse) chain(f Field, args ...any) express.Response {
	res, _ := r.call(f, args...).(express.Response)
	return res
}

// result converts a stand-in's return value, anything of the wrong type
// gives the zero value.
func result[T any](v any) T {
	t, _ := v.(T)
	return t
}

// spread flattens a variadic tail onto the leading args so the recorded
// arguments match what was written at the call site.
func spread[T any](head []any, tail []T) []any {
	for _, v := range tail {
		head = append(head, v)
	}
	return head
}

// express.Response methods.

func (r *MockResponse) Status(code int) express.Response {
	return r.chain(FieldStatus, code)
}

func (r *MockResponse) SendStatus(code int) express.Response {
	return r.chain(FieldSendStatus, code)
}

func (r *MockResponse) Links(links map[string]string) express.Response {
	return r.chain(FieldLinks, links)
}

func (r *MockResponse) Send(body any) express.Response {
	return r.chain(FieldSend, body)
}

func (r *MockResponse) JSON(body any) express.Response {
	return r.chain(FieldJSON, body)
}

func (r *MockResponse) JSONP(body any) express.Response {
	return r.chain(FieldJSONP, body)
}

func (r *MockResponse) SendFile(path string, args ...any) {
	r.call(FieldSendFile, spread([]any{path}, args)...)
}

func (r *MockResponse) Sendfile(path string, args ...any) {
	r.call(FieldSendfile, spread([]any{path}, args)...)
}

func (r *MockResponse) Download(path string, args ...any) {
	r.call(FieldDownload, spread([]any{path}, args)...)
}

func (r *MockResponse) ContentType(typ string) express.Response {
	return r.chain(FieldContentType, typ)
}

func (r *MockResponse) Type(typ string) express.Response {
	return r.chain(FieldType, typ)
}

func (r *MockResponse) Format(handlers map[string]func()) express.Response {
	return r.chain(FieldFormat, handlers)
}

func (r *MockResponse) Attachment(filename ...string) express.Response {
	return r.chain(FieldAttachment, spread(nil, filename)...)
}

func (r *MockResponse) Set(field string, value ...string) express.Response {
	return r.chain(FieldSet, spread([]any{field}, value)...)
}

func (r *MockResponse) Header(field string, value ...string) express.Response {
	return r.chain(FieldHeader, spread([]any{field}, value)...)
}

func (r *MockResponse) Get(field string) string {
	return result[string](r.call(FieldGet, field))
}

func (r *MockResponse) ClearCookie(name string, options ...express.CookieOptions) express.Response {
	return r.chain(FieldClearCookie, spread([]any{name}, options)...)
}

func (r *MockResponse) Cookie(name string, value any, options ...express.CookieOptions) express.Response {
	return r.chain(FieldCookie, spread([]any{name, value}, options)...)
}

func (r *MockResponse) Location(path string) express.Response {
	return r.chain(FieldLocation, path)
}

func (r *MockResponse) Redirect(path string, status ...int) {
	r.call(FieldRedirect, spread([]any{path}, status)...)
}

func (r *MockResponse) Render(view string, args ...any) {
	r.call(FieldRender, spread([]any{view}, args)...)
}

func (r *MockResponse) Vary(field string) express.Response {
	return r.chain(FieldVary, field)
}

func (r *MockResponse) Append(field string, value ...string) express.Response {
	return r.chain(FieldAppend, spread([]any{field}, value)...)
}

func (r *MockResponse) HeadersSent() bool      { return r.Props.HeadersSent }
func (r *MockResponse) Locals() map[string]any { return r.Props.Locals }
func (r *MockResponse) Charset() string        { return r.Props.Charset }
func (r *MockResponse) App() map[string]any    { return r.Props.App }
func (r *MockResponse) Req() *http.Request     { return r.Props.Req }

// http.ServerResponse methods.

func (r *MockResponse) StatusCode() int       { return r.Props.StatusCode }
func (r *MockResponse) StatusMessage() string { return r.Props.StatusMessage }

func (r *MockResponse) AssignSocket(socket net.Conn) {
	r.call(FieldAssignSocket, socket)
}

func (r *MockResponse) DetachSocket(socket net.Conn) {
	r.call(FieldDetachSocket, socket)
}

func (r *MockResponse) WriteContinue(callback ...func()) {
	r.call(FieldWriteContinue, spread(nil, callback)...)
}

func (r *MockResponse) WriteHead(statusCode int, args ...any) express.Response {
	return r.chain(FieldWriteHead, spread([]any{statusCode}, args)...)
}

func (r *MockResponse) WriteProcessing() {
	r.call(FieldWriteProcessing)
}

// http.OutgoingMessage methods.

func (r *MockResponse) ChunkedEncoding() bool             { return r.Props.ChunkedEncoding }
func (r *MockResponse) ShouldKeepAlive() bool             { return r.Props.ShouldKeepAlive }
func (r *MockResponse) UseChunkedEncodingByDefault() bool { return r.Props.UseChunkedEncodingByDefault }
func (r *MockResponse) SendDate() bool                    { return r.Props.SendDate }
func (r *MockResponse) Finished() bool                    { return r.Props.Finished }
func (r *MockResponse) Connection() net.Conn              { return r.Props.Connection }
func (r *MockResponse) Socket() net.Conn                  { return r.Props.Socket }

func (r *MockResponse) SetTimeout(d time.Duration, callback ...func()) express.Response {
	return r.chain(FieldSetTimeout, spread([]any{d}, callback)...)
}

func (r *MockResponse) SetHeader(name string, value any) {
	r.call(FieldSetHeader, name, value)
}

func (r *MockResponse) GetHeader(name string) any {
	return r.call(FieldGetHeader, name)
}

func (r *MockResponse) GetHeaders() http.Header {
	return result[http.Header](r.call(FieldGetHeaders))
}

func (r *MockResponse) GetHeaderNames() []string {
	return result[[]string](r.call(FieldGetHeaderNames))
}

func (r *MockResponse) HasHeader(name string) bool {
	return result[bool](r.call(FieldHasHeader, name))
}

func (r *MockResponse) RemoveHeader(name string) {
	r.call(FieldRemoveHeader, name)
}

func (r *MockResponse) AddTrailers(headers http.Header) {
	r.call(FieldAddTrailers, headers)
}

func (r *MockResponse) FlushHeaders() {
	r.call(FieldFlushHeaders)
}

// stream.Writable methods.

func (r *MockResponse) Writable() bool             { return r.Props.Writable }
func (r *MockResponse) WritableEnded() bool        { return r.Props.WritableEnded }
func (r *MockResponse) WritableFinished() bool     { return r.Props.WritableFinished }
func (r *MockResponse) WritableHighWaterMark() int { return r.Props.WritableHighWaterMark }
func (r *MockResponse) WritableLength() int        { return r.Props.WritableLength }
func (r *MockResponse) WritableObjectMode() bool   { return r.Props.WritableObjectMode }
func (r *MockResponse) WritableCorked() int        { return r.Props.WritableCorked }
func (r *MockResponse) Destroyed() bool            { return r.Props.Destroyed }

func (r *MockResponse) RawWrite(chunk any, encoding string, callback func(error)) {
	r.call(FieldRawWrite, chunk, encoding, callback)
}

func (r *MockResponse) RawWritev(chunks []any, callback func(error)) {
	r.call(FieldRawWritev, chunks, callback)
}

func (r *MockResponse) RawDestroy(err error, callback func(error)) {
	r.call(FieldRawDestroy, err, callback)
}

func (r *MockResponse) RawFinal(callback func(error)) {
	r.call(FieldRawFinal, callback)
}

func (r *MockResponse) Write(chunk any, args ...any) bool {
	return result[bool](r.call(FieldWrite, spread([]any{chunk}, args)...))
}

func (r *MockResponse) SetDefaultEncoding(encoding string) express.Response {
	return r.chain(FieldSetDefaultEncoding, encoding)
}

func (r *MockResponse) End(args ...any) {
	r.call(FieldEnd, args...)
}

func (r *MockResponse) Cork() {
	r.call(FieldCork)
}

func (r *MockResponse) Uncork() {
	r.call(FieldUncork)
}

func (r *MockResponse) Destroy(err ...error) {
	r.call(FieldDestroy, spread(nil, err)...)
}

// events.EventEmitter methods.

func (r *MockResponse) AddListener(event string, listener express.Listener) express.Response {
	return r.chain(FieldAddListener, event, listener)
}

func (r *MockResponse) On(event string, listener express.Listener) express.Response {
	return r.chain(FieldOn, event, listener)
}

func (r *MockResponse) Once(event string, listener express.Listener) express.Response {
	return r.chain(FieldOnce, event, listener)
}

func (r *MockResponse) RemoveListener(event string, listener express.Listener) express.Response {
	return r.chain(FieldRemoveListener, event, listener)
}

func (r *MockResponse) Off(event string, listener express.Listener) express.Response {
	return r.chain(FieldOff, event, listener)
}

func (r *MockResponse) RemoveAllListeners(events ...string) express.Response {
	return r.chain(FieldRemoveAllListeners, spread(nil, events)...)
}

func (r *MockResponse) SetMaxListeners(n int) express.Response {
	return r.chain(FieldSetMaxListeners, n)
}

func (r *MockResponse) GetMaxListeners() int {
	return result[int](r.call(FieldGetMaxListeners))
}

func (r *MockResponse) Listeners(event string) []express.Listener {
	return result[[]express.Listener](r.call(FieldListeners, event))
}

func (r *MockResponse) RawListeners(event string) []express.Listener {
	return result[[]express.Listener](r.call(FieldRawListeners, event))
}

func (r *MockResponse) Emit(event string, args ...any) bool {
	return result[bool](r.call(FieldEmit, spread([]any{event}, args)...))
}

func (r *MockResponse) ListenerCount(event string) int {
	return result[int](r.call(FieldListenerCount, event))
}

func (r *MockResponse) PrependListener(event string, listener express.Listener) express.Response {
	return r.chain(FieldPrependListener, event, listener)
}

func (r *MockResponse) PrependOnceListener(event string, listener express.Listener) express.Response {
	return r.chain(FieldPrependOnceListener, event, listener)
}

func (r *MockResponse) EventNames() []string {
	return result[[]string](r.call(FieldEventNames))
}

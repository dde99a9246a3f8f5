package express

import (
	"errors"
	"net"
	"net/http"
	"time"
)

var (
	// ErrRoute is passed to a NextFunc to skip the remaining handlers on the
	// current route.
	ErrRoute = errors.New("route")
	// ErrRouter is passed to a NextFunc to leave the current router.
	ErrRouter = errors.New("router")
)

// NextFunc advances to the next handler. A nil error continues the chain, a
// non-nil error switches to error handling.
type NextFunc func(err error)

// Handler is a request handler in the Express style.
type Handler func(req *http.Request, res Response, next NextFunc)

// Listener receives emitted event arguments.
type Listener func(args ...any)

// CookieOptions mirrors the options accepted by Response.Cookie and
// Response.ClearCookie.
type CookieOptions struct {
	MaxAge   time.Duration
	Signed   bool
	Expires  time.Time
	HTTPOnly bool
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	Priority string
}

// EventEmitter is the listener registration surface. Methods that return a
// Response return the receiver for chaining.
type EventEmitter interface {
	AddListener(event string, listener Listener) Response
	On(event string, listener Listener) Response
	Once(event string, listener Listener) Response
	RemoveListener(event string, listener Listener) Response
	Off(event string, listener Listener) Response
	RemoveAllListeners(events ...string) Response
	SetMaxListeners(n int) Response
	GetMaxListeners() int
	Listeners(event string) []Listener
	RawListeners(event string) []Listener
	Emit(event string, args ...any) bool
	ListenerCount(event string) int
	PrependListener(event string, listener Listener) Response
	PrependOnceListener(event string, listener Listener) Response
	EventNames() []string
}

// Writable is the writable stream surface.
type Writable interface {
	EventEmitter

	Writable() bool
	WritableEnded() bool
	WritableFinished() bool
	WritableHighWaterMark() int
	WritableLength() int
	WritableObjectMode() bool
	WritableCorked() int
	Destroyed() bool

	// RawWrite, RawWritev, RawDestroy and RawFinal are the stream
	// implementation hooks (_write, _writev, _destroy, _final).
	RawWrite(chunk any, encoding string, callback func(error))
	RawWritev(chunks []any, callback func(error))
	RawDestroy(err error, callback func(error))
	RawFinal(callback func(error))

	Write(chunk any, args ...any) bool
	SetDefaultEncoding(encoding string) Response
	End(args ...any)
	Cork()
	Uncork()
	Destroy(err ...error)
}

// OutgoingMessage is the HTTP outgoing message surface.
type OutgoingMessage interface {
	Writable

	ChunkedEncoding() bool
	ShouldKeepAlive() bool
	UseChunkedEncodingByDefault() bool
	SendDate() bool
	Finished() bool
	HeadersSent() bool
	Connection() net.Conn
	Socket() net.Conn

	SetTimeout(d time.Duration, callback ...func()) Response
	SetHeader(name string, value any)
	GetHeader(name string) any
	GetHeaders() http.Header
	GetHeaderNames() []string
	HasHeader(name string) bool
	RemoveHeader(name string)
	AddTrailers(headers http.Header)
	FlushHeaders()
}

// ServerResponse is the HTTP server response surface.
type ServerResponse interface {
	OutgoingMessage

	StatusCode() int
	StatusMessage() string

	AssignSocket(socket net.Conn)
	DetachSocket(socket net.Conn)
	WriteContinue(callback ...func())
	WriteHead(statusCode int, args ...any) Response
	WriteProcessing()
}

// Response is the full framework response object handed to handlers.
type Response interface {
	ServerResponse

	Status(code int) Response
	SendStatus(code int) Response
	Links(links map[string]string) Response
	Send(body any) Response
	JSON(body any) Response
	JSONP(body any) Response
	SendFile(path string, args ...any)
	// Sendfile is the deprecated spelling of SendFile.
	Sendfile(path string, args ...any)
	Download(path string, args ...any)
	ContentType(typ string) Response
	Type(typ string) Response
	Format(handlers map[string]func()) Response
	Attachment(filename ...string) Response
	Set(field string, value ...string) Response
	Header(field string, value ...string) Response
	Get(field string) string
	ClearCookie(name string, options ...CookieOptions) Response
	Cookie(name string, value any, options ...CookieOptions) Response
	Location(url string) Response
	Redirect(url string, status ...int)
	Render(view string, args ...any)
	Vary(field string) Response
	Append(field string, value ...string) Response

	Locals() map[string]any
	Charset() string
	App() map[string]any
	Req() *http.Request
}

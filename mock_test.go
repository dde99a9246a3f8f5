package expressmock

import (
	"bytes"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lstoll/expressmock/express"
	"github.com/lstoll/expressmock/internal"
	"github.com/lstoll/expressmock/mockfn"
	"github.com/lstoll/expressmock/testlog"
)

func TestDefaults(t *testing.T) {
	m := GetMockRes()
	res := m.Res

	wantProps := map[Field]any{
		FieldHeadersSent:                 false,
		FieldCharset:                     "",
		FieldStatusCode:                  0,
		FieldStatusMessage:               "",
		FieldChunkedEncoding:             false,
		FieldShouldKeepAlive:             false,
		FieldUseChunkedEncodingByDefault: false,
		FieldSendDate:                    false,
		FieldFinished:                    false,
		FieldWritable:                    false,
		FieldWritableEnded:               false,
		FieldWritableFinished:            false,
		FieldWritableHighWaterMark:       0,
		FieldWritableLength:              0,
		FieldWritableObjectMode:          false,
		FieldWritableCorked:              0,
		FieldDestroyed:                   false,
	}
	gotProps := map[Field]any{
		FieldHeadersSent:                 res.HeadersSent(),
		FieldCharset:                     res.Charset(),
		FieldStatusCode:                  res.StatusCode(),
		FieldStatusMessage:               res.StatusMessage(),
		FieldChunkedEncoding:             res.ChunkedEncoding(),
		FieldShouldKeepAlive:             res.ShouldKeepAlive(),
		FieldUseChunkedEncodingByDefault: res.UseChunkedEncodingByDefault(),
		FieldSendDate:                    res.SendDate(),
		FieldFinished:                    res.Finished(),
		FieldWritable:                    res.Writable(),
		FieldWritableEnded:               res.WritableEnded(),
		FieldWritableFinished:            res.WritableFinished(),
		FieldWritableHighWaterMark:       res.WritableHighWaterMark(),
		FieldWritableLength:              res.WritableLength(),
		FieldWritableObjectMode:          res.WritableObjectMode(),
		FieldWritableCorked:              res.WritableCorked(),
		FieldDestroyed:                   res.Destroyed(),
	}
	if diff := cmp.Diff(wantProps, gotProps); diff != "" {
		t.Errorf("default props mismatch (-want +got):\n%s", diff)
	}

	if res.Locals() == nil || len(res.Locals()) != 0 {
		t.Errorf("want empty locals, got %v", res.Locals())
	}
	if res.App() == nil || len(res.App()) != 0 {
		t.Errorf("want empty app, got %v", res.App())
	}
	if res.Req() == nil || res.Req().Header == nil || res.Req().URL == nil {
		t.Errorf("want an empty request, got %#v", res.Req())
	}
	if _, ok := res.Socket().(internal.NopConn); !ok {
		t.Errorf("want a no-op socket, got %T", res.Socket())
	}
	if _, ok := res.Connection().(internal.NopConn); !ok {
		t.Errorf("want a no-op connection, got %T", res.Connection())
	}
	if len(res.Extra) != 0 {
		t.Errorf("want no extras, got %v", res.Extra)
	}
}

func TestEveryMethodHasDistinctStandIn(t *testing.T) {
	res := GetMockRes().Res

	seen := map[*mockfn.Fn]Field{}
	for _, fi := range Fields() {
		f := res.Mock(fi.Name)
		if fi.Kind != KindFunc {
			if f != nil {
				t.Errorf("%s: property should not have a stand-in", fi.Name)
			}
			continue
		}
		if f == nil {
			t.Errorf("%s: missing stand-in", fi.Name)
			continue
		}
		if other, dup := seen[f]; dup {
			t.Errorf("%s shares its stand-in with %s", fi.Name, other)
		}
		seen[f] = fi.Name
		if want := string(fi.Name) + " mock default"; f.Name() != want {
			t.Errorf("want stand-in named %q, got %q", want, f.Name())
		}
	}
}

// invokeAll calls every method of res once, returning what each returned.
func invokeAll(res express.Response) map[Field]any {
	noop := func(...any) {}
	return map[Field]any{
		FieldStatus:      res.Status(http.StatusOK),
		FieldSendStatus:  res.SendStatus(http.StatusOK),
		FieldLinks:       res.Links(map[string]string{"next": "/p/2"}),
		FieldSend:        res.Send("hi"),
		FieldJSON:        res.JSON(map[string]int{"a": 1}),
		FieldJSONP:       res.JSONP(nil),
		FieldSendFile:    call(func() { res.SendFile("/tmp/x") }),
		FieldSendfile:    call(func() { res.Sendfile("/tmp/x") }),
		FieldDownload:    call(func() { res.Download("/tmp/x", "x.txt") }),
		FieldContentType: res.ContentType("json"),
		FieldType:        res.Type("html"),
		FieldFormat:      res.Format(map[string]func(){"text/plain": func() {}}),
		FieldAttachment:  res.Attachment("a.pdf"),
		FieldSet:         res.Set("X-A", "1"),
		FieldHeader:      res.Header("X-B", "2"),
		FieldGet:         res.Get("X-A"),
		FieldClearCookie: res.ClearCookie("sid"),
		FieldCookie:      res.Cookie("sid", "abc", express.CookieOptions{HTTPOnly: true}),
		FieldLocation:    res.Location("/home"),
		FieldRedirect:    call(func() { res.Redirect("/login", http.StatusFound) }),
		FieldRender:      call(func() { res.Render("index") }),
		FieldVary:        res.Vary("Accept"),
		FieldAppend:      res.Append("Link", "<a>"),

		FieldAssignSocket:    call(func() { res.AssignSocket(internal.NopConn{}) }),
		FieldDetachSocket:    call(func() { res.DetachSocket(internal.NopConn{}) }),
		FieldWriteContinue:   call(func() { res.WriteContinue() }),
		FieldWriteHead:       res.WriteHead(http.StatusOK),
		FieldWriteProcessing: call(res.WriteProcessing),

		FieldSetTimeout:     res.SetTimeout(0),
		FieldSetHeader:      call(func() { res.SetHeader("X-C", "3") }),
		FieldGetHeader:      res.GetHeader("X-C"),
		FieldGetHeaders:     res.GetHeaders(),
		FieldGetHeaderNames: res.GetHeaderNames(),
		FieldHasHeader:      res.HasHeader("X-C"),
		FieldRemoveHeader:   call(func() { res.RemoveHeader("X-C") }),
		FieldAddTrailers:    call(func() { res.AddTrailers(http.Header{}) }),
		FieldFlushHeaders:   call(res.FlushHeaders),

		FieldRawWrite:           call(func() { res.RawWrite("x", "utf8", nil) }),
		FieldRawWritev:          call(func() { res.RawWritev(nil, nil) }),
		FieldRawDestroy:         call(func() { res.RawDestroy(nil, nil) }),
		FieldRawFinal:           call(func() { res.RawFinal(nil) }),
		FieldWrite:              res.Write("chunk"),
		FieldSetDefaultEncoding: res.SetDefaultEncoding("utf8"),
		FieldEnd:                call(func() { res.End() }),
		FieldCork:               call(res.Cork),
		FieldUncork:             call(res.Uncork),
		FieldDestroy:            call(func() { res.Destroy() }),

		FieldAddListener:         res.AddListener("finish", noop),
		FieldOn:                  res.On("finish", noop),
		FieldOnce:                res.Once("finish", noop),
		FieldRemoveListener:      res.RemoveListener("finish", noop),
		FieldOff:                 res.Off("finish", noop),
		FieldRemoveAllListeners:  res.RemoveAllListeners(),
		FieldSetMaxListeners:     res.SetMaxListeners(10),
		FieldGetMaxListeners:     res.GetMaxListeners(),
		FieldListeners:           res.Listeners("finish"),
		FieldRawListeners:        res.RawListeners("finish"),
		FieldEmit:                res.Emit("finish"),
		FieldListenerCount:       res.ListenerCount("finish"),
		FieldPrependListener:     res.PrependListener("finish", noop),
		FieldPrependOnceListener: res.PrependOnceListener("finish", noop),
		FieldEventNames:          res.EventNames(),
	}
}

// call runs a method without a result, standing in for its return value.
func call(f func()) any {
	f()
	return nil
}

func TestChainable(t *testing.T) {
	m := GetMockRes()
	got := invokeAll(m.Res)

	for _, fi := range Fields() {
		if fi.Kind != KindFunc {
			continue
		}
		ret, ok := got[fi.Name]
		if !ok {
			t.Errorf("%s: method not exercised", fi.Name)
			continue
		}
		if n := m.Res.Mock(fi.Name).CallCount(); n != 1 {
			t.Errorf("%s: want 1 recorded call, got %d", fi.Name, n)
		}

		resRet, isRes := ret.(express.Response)
		if fi.Chainable {
			if !isRes || resRet != express.Response(m.Res) {
				t.Errorf("%s: chainable method should return the mock, got %#v", fi.Name, ret)
			}
			continue
		}
		if isRes && resRet != nil {
			t.Errorf("%s: non-chainable method should not return the mock", fi.Name)
		}
		if v := reflect.ValueOf(ret); ret != nil && !v.IsZero() {
			t.Errorf("%s: want zero value, got %#v", fi.Name, ret)
		}
	}

	if len(got) != countFuncs() {
		t.Errorf("exercised %d methods, field table has %d", len(got), countFuncs())
	}
}

func countFuncs() int {
	n := 0
	for _, fi := range Fields() {
		if fi.Kind == KindFunc {
			n++
		}
	}
	return n
}

func TestChainedCalls(t *testing.T) {
	m := GetMockRes()

	m.Res.Status(http.StatusCreated).Set("Location", "/items/1").JSON(map[string]string{"id": "1"})

	mockfn.AssertCalledWith(t, m.Res.Mock(FieldStatus), []any{http.StatusCreated})
	mockfn.AssertCalledWith(t, m.Res.Mock(FieldSet), []any{"Location", "/items/1"})
	mockfn.AssertCalledWith(t, m.Res.Mock(FieldJSON), []any{map[string]string{"id": "1"}})
}

func TestArgumentsRecordedFlat(t *testing.T) {
	m := GetMockRes()
	opts := express.CookieOptions{Path: "/", Secure: true}

	m.Res.Cookie("sid", "abc", opts)
	m.Res.Redirect("/login", http.StatusFound)
	m.Res.Attachment()

	mockfn.AssertCalledWith(t, m.Res.Mock(FieldCookie), []any{"sid", "abc", opts})
	mockfn.AssertCalledWith(t, m.Res.Mock(FieldRedirect), []any{"/login", http.StatusFound})
	mockfn.AssertCalledWith(t, m.Res.Mock(FieldAttachment), nil)
}

func TestRecordedArgsAreCopied(t *testing.T) {
	m := GetMockRes()
	args := []any{"body", "utf8"}
	m.Res.End(args...)
	args[0] = "changed"

	mockfn.AssertCalledWith(t, m.Res.Mock(FieldEnd), []any{"body", "utf8"})
}

func TestListenerArgs(t *testing.T) {
	m := GetMockRes()
	onFinish := express.Listener(func(...any) {})
	onClose := express.Listener(func(...any) {})

	m.Res.On("finish", onFinish).Once("close", onClose)
	m.Res.Off("finish", onFinish)

	for _, tt := range []struct {
		field Field
		want  []any
	}{
		{field: FieldOn, want: []any{"finish", onFinish}},
		{field: FieldOnce, want: []any{"close", onClose}},
		{field: FieldOff, want: []any{"finish", onFinish}},
	} {
		f := m.Res.Mock(tt.field)
		mockfn.AssertCalledWith(t, f, tt.want)
		if !f.CalledWith(tt.want...) {
			t.Errorf("%s: want CalledWith to match %v", tt.field, tt.want)
		}
	}
	if m.Res.Mock(FieldOn).CalledWith("finish", onClose) {
		t.Error("want a different listener not to match")
	}
}

func TestSocketArgs(t *testing.T) {
	m := GetMockRes()
	conn, peer := net.Pipe()
	t.Cleanup(func() {
		conn.Close()
		peer.Close()
	})

	m.Res.AssignSocket(conn)
	m.Res.DetachSocket(conn)

	mockfn.AssertCalledWith(t, m.Res.Mock(FieldAssignSocket), []any{conn})
	mockfn.AssertCalledWith(t, m.Res.Mock(FieldDetachSocket), []any{conn})
}

func TestConfiguredReturns(t *testing.T) {
	m := GetMockRes()
	m.Res.Mock(FieldGet).Return("application/json")
	m.Res.Mock(FieldHasHeader).Return(true)
	m.Res.Mock(FieldListenerCount).Return("not an int")

	if got := m.Res.Get("Content-Type"); got != "application/json" {
		t.Errorf("want configured get result, got %q", got)
	}
	if !m.Res.HasHeader("X") {
		t.Error("want configured hasHeader result")
	}
	if got := m.Res.ListenerCount("x"); got != 0 {
		t.Errorf("wrong typed result should give zero, got %d", got)
	}
}

func TestOverrides(t *testing.T) {
	redirect := mockfn.New("my redirect")
	status := mockfn.New("my status")
	req, _ := http.NewRequest(http.MethodPost, "/things", nil)

	m := GetMockRes(
		WithValue(FieldStatusCode, 404),
		WithValue(FieldRedirect, redirect),
		WithValue(FieldStatus, status),
		WithValues(map[Field]any{
			FieldLocals: map[string]any{"user": "u1"},
			FieldReq:    req,
		}),
		WithValue("myCustomField", "x"),
	)
	res := m.Res

	if res.StatusCode() != 404 {
		t.Errorf("want statusCode 404, got %d", res.StatusCode())
	}
	if res.StatusMessage() != "" || res.HeadersSent() {
		t.Error("other props should keep defaults")
	}
	if res.Mock(FieldRedirect) != redirect {
		t.Error("want redirect override in place")
	}
	if res.Locals()["user"] != "u1" {
		t.Errorf("want locals override, got %v", res.Locals())
	}
	if res.Req() != req {
		t.Error("want request override")
	}
	if diff := cmp.Diff(map[string]any{"myCustomField": "x"}, res.Extra); diff != "" {
		t.Errorf("extras mismatch (-want +got):\n%s", diff)
	}

	// overriding stand-ins for chainable methods are still wired to chain
	if got := res.Status(200); got != express.Response(res) {
		t.Errorf("overridden chainable stand-in should return the mock, got %v", got)
	}
	if !status.CalledWith(200) {
		t.Error("override stand-in should record the call")
	}

	res.Redirect("/x")
	mockfn.AssertCalledTimes(t, redirect, 1)
}

func TestOverridePrecedence(t *testing.T) {
	m := GetMockRes(
		WithValue(FieldStatusCode, 400),
		WithValue(FieldStatusCode, 401),
	)
	if got := m.Res.StatusCode(); got != 401 {
		t.Errorf("last override should win, got %d", got)
	}
}

func TestMalformedOverride(t *testing.T) {
	m := GetMockRes(
		WithValue(FieldStatusCode, "404"),
		WithValue(FieldSend, func() {}),
		WithValue(FieldCharset, "utf-8"),
	)
	res := m.Res

	if res.StatusCode() != 0 {
		t.Errorf("wrong typed override should keep default, got %d", res.StatusCode())
	}
	if res.Extra[string(FieldStatusCode)] != "404" {
		t.Errorf("wrong typed override should pass through to extras, got %v", res.Extra)
	}
	if res.Mock(FieldSend) == nil || res.Send("x") != express.Response(res) {
		t.Error("send should keep its default chainable stand-in")
	}
	if res.Charset() != "utf-8" {
		t.Errorf("valid override should apply, got %q", res.Charset())
	}
	if _, ok := res.Extra[string(FieldCharset)]; ok {
		t.Error("valid override should not land in extras")
	}

	fixed := GetMockRes(
		WithValue(FieldStatusCode, "404"),
		WithValue(FieldStatusCode, 404),
	).Res
	if fixed.StatusCode() != 404 || len(fixed.Extra) != 0 {
		t.Errorf("later valid override should win, got %d and extras %v", fixed.StatusCode(), fixed.Extra)
	}
}

func TestClear(t *testing.T) {
	m := GetMockRes(WithValue(FieldStatusCode, 500))
	m.Res.Mock(FieldGet).Return("v")

	m.Res.Status(http.StatusOK)
	m.Res.Get("X")
	m.Next(nil)

	for _, reset := range []func(){m.MockClear, m.ClearMockRes} {
		reset()

		for _, fi := range Fields() {
			if f := m.Res.Mock(fi.Name); f != nil && f.Called() {
				t.Errorf("%s: want no calls after clear, got %d", fi.Name, f.CallCount())
			}
		}
		mockfn.AssertNotCalled(t, m.NextMock)

		if m.Res.StatusCode() != 500 {
			t.Errorf("clear should not touch props, statusCode is %d", m.Res.StatusCode())
		}
		if got := m.Res.Status(http.StatusOK); got != express.Response(m.Res) {
			t.Error("clear should keep chaining")
		}
		if got := m.Res.Get("X"); got != "v" {
			t.Errorf("clear should keep return values, got %q", got)
		}
	}

	// clearing again is harmless
	m.MockClear()
	m.MockClear()
	mockfn.AssertNotCalled(t, m.Res.Mock(FieldStatus))
}

func TestNextIsIndependent(t *testing.T) {
	m := GetMockRes()

	m.Res.Status(http.StatusTeapot)
	mockfn.AssertNotCalled(t, m.NextMock)

	errBoom := errors.New("boom")
	m.Next(errBoom)
	mockfn.AssertCalledTimes(t, m.Res.Mock(FieldStatus), 1)
	mockfn.AssertCalledTimes(t, m.NextMock, 1)

	if got := m.NextErr(); !errors.Is(got, errBoom) {
		t.Errorf("want next error %v, got %v", errBoom, got)
	}

	m.Next(nil)
	if got := m.NextErr(); got != nil {
		t.Errorf("want nil next error, got %v", got)
	}
	if m.NextMock.Name() != "next" {
		t.Errorf("want next stand-in named next, got %q", m.NextMock.Name())
	}
}

func TestBuildsAreIndependent(t *testing.T) {
	a := GetMockRes()
	b := GetMockRes()

	if a.Res == b.Res || a.Res.ID() == b.Res.ID() {
		t.Fatal("builds should produce distinct responses")
	}

	a.Res.Status(http.StatusOK)
	a.Next(nil)
	a.Res.Locals()["k"] = "v"

	mockfn.AssertNotCalled(t, b.Res.Mock(FieldStatus))
	mockfn.AssertNotCalled(t, b.NextMock)
	if len(b.Res.Locals()) != 0 {
		t.Error("locals should not be shared between builds")
	}
	if b.Res.Status(http.StatusOK) != express.Response(b.Res) {
		t.Error("each build should chain to its own response")
	}
}

type wrappedResponse struct {
	express.Response
}

func (w *wrappedResponse) Unwrap() express.Response { return w.Response }

func TestFromResponse(t *testing.T) {
	m := GetMockRes()

	got, ok := FromResponse(&wrappedResponse{Response: &wrappedResponse{Response: m.Res}})
	if !ok || got != m.Res {
		t.Errorf("want the mock behind the wrappers, got %v (ok %t)", got, ok)
	}

	if _, ok := FromResponse(struct{ express.Response }{m.Res}); ok {
		t.Error("a wrapper without Unwrap should hide the mock")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := GetMockRes(WithLogger(l), WithValue(FieldStatusCode, "bad"))
	m.Res.Status(http.StatusOK)
	m.Next(nil)

	out := buf.String()
	for _, want := range []string{
		"mock_id=" + m.Res.ID(),
		`mock="status mock default"`,
		"mock=next",
		"field=statusCode",
		"type=string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("want %q in log output:\n%s", want, out)
		}
	}

	attrs := testlog.AttrsFromContext(m.Res.Req().Context())
	if len(attrs) != 1 || attrs[0].Value.String() != m.Res.ID() {
		t.Errorf("want mock_id on the default request context, got %v", attrs)
	}
}

package webtest

import (
	"testing"

	"github.com/lstoll/expressmock"
	"github.com/lstoll/expressmock/express"
	"github.com/lstoll/expressmock/testlog"
)

// Run builds fresh mocks that log to t, invokes h with them and returns the
// mocks for inspection. The request passed to h is the mock's req, set it
// with expressmock.WithValue(expressmock.FieldReq, NewRequest(...)).
func Run(t testing.TB, h express.Handler, opts ...expressmock.Option) *expressmock.Mocks {
	t.Helper()
	opts = append([]expressmock.Option{expressmock.WithLogger(testlog.New(t))}, opts...)
	m := expressmock.GetMockRes(opts...)
	h(m.Res.Req(), m.Res, m.Next)
	return m
}

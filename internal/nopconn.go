package internal

import (
	"io"
	"net"
	"time"
)

// NopConn is a net.Conn that is never connected. Reads report io.EOF, writes
// are discarded.
type NopConn struct{}

var _ net.Conn = NopConn{}

func (NopConn) Read([]byte) (int, error)         { return 0, io.EOF }
func (NopConn) Write(b []byte) (int, error)      { return len(b), nil }
func (NopConn) Close() error                     { return nil }
func (NopConn) LocalAddr() net.Addr              { return nopAddr{} }
func (NopConn) RemoteAddr() net.Addr             { return nopAddr{} }
func (NopConn) SetDeadline(time.Time) error      { return nil }
func (NopConn) SetReadDeadline(time.Time) error  { return nil }
func (NopConn) SetWriteDeadline(time.Time) error { return nil }

type nopAddr struct{}

func (nopAddr) Network() string { return "nop" }
func (nopAddr) String() string  { return "nop" }

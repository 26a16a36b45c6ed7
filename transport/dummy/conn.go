package dummy

import (
	"io"
	"net"
	"strconv"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a socket-less connection standing behind a synthesized request. Reads always
// return io.EOF, as the request body is delivered by the request itself. Writes are discarded.
type Conn struct {
	// RemoteAddress is the peer address as it is presented to the request handler.
	RemoteAddress string
}

func NewConn(remoteAddress string) *Conn {
	return &Conn{RemoteAddress: remoteAddress}
}

func (c *Conn) Read([]byte) (n int, err error) {
	return 0, io.EOF
}

func (c *Conn) Write(b []byte) (n int, err error) {
	return len(b), nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

// RemoteAddr returns the RemoteAddress as a TCP address if it is an IP literal (with or
// without a port), otherwise an address of an unnamed network holding the raw string.
func (c *Conn) RemoteAddr() net.Addr {
	return ParseAddr(c.RemoteAddress)
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Addr is a net.Addr of a non-IP remote address.
type Addr string

func (Addr) Network() string {
	return "inject"
}

func (a Addr) String() string {
	return string(a)
}

func ParseAddr(addr string) net.Addr {
	if ip := net.ParseIP(addr); ip != nil {
		return &net.TCPAddr{IP: ip}
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Addr(addr)
	}

	ip := net.ParseIP(host)
	portNum, err := strconv.Atoi(port)
	if ip == nil || err != nil {
		return Addr(addr)
	}

	return &net.TCPAddr{IP: ip, Port: portNum}
}

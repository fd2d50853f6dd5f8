// Package network holds listener wrappers used by the web server.
package network

import (
	"bufio"
	"net"
	"net/http"
	"time"
)

// tlsHandshake is the record type byte that starts every TLS ClientHello.
const tlsHandshake = 0x16

// HTTPSRedirectListener accepts plain HTTP and TLS on the same port. Plain
// HTTP requests are answered with a redirect to the https URL and closed; TLS
// connections are handed on untouched.
type HTTPSRedirectListener struct {
	net.Listener
}

func NewHTTPSRedirectListener(listener net.Listener) net.Listener {
	return &HTTPSRedirectListener{Listener: listener}
}

func (l *HTTPSRedirectListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &sniffConn{Conn: conn, reader: bufio.NewReader(conn)}, nil
}

// sniffConn looks at the first byte of the stream before the TLS layer does.
type sniffConn struct {
	net.Conn

	reader  *bufio.Reader
	checked bool
}

func (c *sniffConn) Read(buf []byte) (int, error) {
	if !c.checked {
		c.checked = true
		_ = c.Conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		first, err := c.reader.Peek(1)
		_ = c.Conn.SetReadDeadline(time.Time{})
		if err != nil {
			return 0, err
		}
		if first[0] != tlsHandshake {
			c.redirect()
			return 0, net.ErrClosed
		}
	}
	return c.reader.Read(buf)
}

func (c *sniffConn) redirect() {
	defer c.Conn.Close()
	req, err := http.ReadRequest(c.reader)
	if err != nil {
		return
	}
	resp := &http.Response{
		StatusCode: http.StatusPermanentRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", "https://"+req.Host+req.URL.RequestURI())
	resp.Header.Set("Connection", "close")
	_ = resp.Write(c.Conn)
}

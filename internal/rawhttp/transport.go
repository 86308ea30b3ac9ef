package rawhttp

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Transport is a connected byte stream to an HTTP server. Implementations
// are a plain TCP socket and a TLS session layered over one; the client is
// written once against this interface.
type Transport interface {
	// Connect resolves host to an IPv4 address and establishes the
	// connection (including the TLS handshake, if any).
	Connect(host string, port uint16) error

	// Read receives bytes from the peer. It honors any deadline set with
	// SetReadDeadline.
	Read(p []byte) (int, error)

	// Write sends bytes to the peer.
	Write(p []byte) (int, error)

	// SetReadDeadline bounds future Read calls.
	SetReadDeadline(t time.Time) error

	// Close tears the connection down. It is idempotent.
	Close() error
}

// dialIPv4 resolves host to its first IPv4 address and dials port on it.
// IPv6 addresses returned by the resolver are ignored.
func dialIPv4(host string, port uint16) (net.Conn, error) {
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, fmt.Errorf("couldn't resolve host %s: %w", host, err)
	}
	var ip net.IP
	for _, candidate := range ips {
		if v4 := candidate.To4(); v4 != nil {
			ip = v4
			break
		}
	}
	if ip == nil {
		return nil, fmt.Errorf("couldn't resolve host %s: no IPv4 address", host)
	}

	addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))
	conn, err := net.Dial("tcp4", addr)
	if err != nil {
		return nil, fmt.Errorf("failed connecting to %s (%s) port %d: %w",
			host, ip, port, err)
	}
	return conn, nil
}

// tcpTransport is the plaintext variant.
type tcpTransport struct {
	conn net.Conn
}

// NewTCPTransport returns an unconnected plaintext transport.
func NewTCPTransport() Transport {
	return &tcpTransport{}
}

func (t *tcpTransport) Connect(host string, port uint16) error {
	conn, err := dialIPv4(host, port)
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *tcpTransport) Read(p []byte) (int, error) {
	if t.conn == nil {
		return 0, net.ErrClosed
	}
	return t.conn.Read(p)
}

func (t *tcpTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, net.ErrClosed
	}
	return t.conn.Write(p)
}

func (t *tcpTransport) SetReadDeadline(d time.Time) error {
	if t.conn == nil {
		return net.ErrClosed
	}
	return t.conn.SetReadDeadline(d)
}

func (t *tcpTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// tlsTransport is the encrypted variant. The handshake runs during
// Connect; Go's tls.Conn retries internally on partial reads, so there is
// no explicit would-block loop here.
type tlsTransport struct {
	config *tls.Config
	conn   *tls.Conn
	raw    net.Conn
}

// NewTLSTransport returns an unconnected TLS transport. A nil config gets
// a permissive one: protocol floor TLS 1.0 and the default cipher set, for
// compatibility with legacy servers.
func NewTLSTransport(config *tls.Config) Transport {
	return &tlsTransport{config: config}
}

func (t *tlsTransport) Connect(host string, port uint16) error {
	raw, err := dialIPv4(host, port)
	if err != nil {
		return err
	}

	config := t.config
	if config == nil {
		config = &tls.Config{MinVersion: tls.VersionTLS10}
	} else {
		config = config.Clone()
	}
	if config.ServerName == "" {
		config.ServerName = host
	}

	conn := tls.Client(raw, config)
	if err := conn.Handshake(); err != nil {
		raw.Close()
		return fmt.Errorf("TLS handshake with %s failed: %w", host, err)
	}
	t.raw = raw
	t.conn = conn
	return nil
}

func (t *tlsTransport) Read(p []byte) (int, error) {
	if t.conn == nil {
		return 0, net.ErrClosed
	}
	return t.conn.Read(p)
}

func (t *tlsTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, net.ErrClosed
	}
	return t.conn.Write(p)
}

func (t *tlsTransport) SetReadDeadline(d time.Time) error {
	if t.conn == nil {
		return net.ErrClosed
	}
	return t.conn.SetReadDeadline(d)
}

func (t *tlsTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	// Closing the TLS session closes the socket under it.
	err := t.conn.Close()
	t.conn = nil
	t.raw = nil
	return err
}

package rawhttp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	// chunkSize is the capacity of the inbound staging buffer.
	chunkSize = 2048

	// readProbe is the deadline applied to each read attempt. It stands
	// in for a zero-timeout readiness poll: a read that cannot complete
	// within it reports "no data ready" instead of blocking.
	readProbe = time.Millisecond

	defaultUserAgent = "wxterm"
)

// ErrClosed is returned by Read when the Request's transport has been
// closed, either explicitly or after an earlier read error.
var ErrClosed = errors.New("rawhttp: connection closed")

// Request is a single HTTP exchange: a parsed URL, a connected transport
// with the GET request already sent, and a staging buffer the caller
// drains through the peek/read accessors. A Request is never reused; each
// fetch constructs a fresh one.
type Request struct {
	URL *URL

	transport Transport
	message   []byte
	status    int

	chunk    [chunkSize]byte
	chunkLen int
	chunkOff int
}

type options struct {
	userAgent string
	tlsConfig *tls.Config
}

// Option configures a Get call.
type Option func(*options)

// WithUserAgent sets the User-Agent header on the outgoing request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTLSConfig supplies the TLS configuration used for https URLs,
// replacing the permissive default.
func WithTLSConfig(config *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = config
	}
}

// Get parses rawurl, connects to its host (negotiating TLS for https),
// and writes a complete HTTP/1.0 GET request. On any failure every
// resource acquired so far is released before the error is returned.
func Get(rawurl string, opts ...Option) (*Request, error) {
	o := options{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := Parse(rawurl)
	if err != nil {
		return nil, err
	}

	req := &Request{URL: u}
	if u.Scheme == "https" {
		req.transport = NewTLSTransport(o.tlsConfig)
	} else {
		req.transport = NewTCPTransport()
	}

	if err := req.transport.Connect(u.Host, u.Port); err != nil {
		req.Close()
		return nil, err
	}

	req.message = []byte(fmt.Sprintf(
		"GET %s HTTP/1.0\r\nHost: %s\r\nUser-Agent: %s\r\nAccept: */*\r\n\r\n",
		u.Path, u.Host, o.userAgent))

	n, err := req.transport.Write(req.message)
	if err == nil && n != len(req.message) {
		err = io.ErrShortWrite
	}
	if err != nil {
		req.Close()
		return nil, fmt.Errorf("request write to %s failed: %w", u.Host, err)
	}

	return req, nil
}

// Read receives up to len(p) response bytes. It never blocks past the
// readiness probe: when the connection has nothing buffered it returns
// (0, nil) immediately, and callers that need more must call again. A
// transport error, end-of-stream included, closes and invalidates the
// transport before the error is returned; afterwards Read reports
// ErrClosed.
func (r *Request) Read(p []byte) (int, error) {
	if r == nil || r.transport == nil {
		return 0, ErrClosed
	}

	if err := r.transport.SetReadDeadline(time.Now().Add(readProbe)); err != nil {
		r.transport.Close()
		r.transport = nil
		return 0, ErrClosed
	}
	n, err := r.transport.Read(p)
	if n > 0 {
		return n, nil
	}
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			// Not ready; connection still alive.
			return 0, nil
		}
		r.transport.Close()
		r.transport = nil
		return 0, err
	}
	return 0, nil
}

// SkipHeader reads and discards the response headers, leaving any body
// bytes that arrived in the same reads staged for the accessors. The last
// 3 bytes of each read are carried over so a \r\n\r\n terminator split
// across reads is still found. Zero-byte reads keep the scan polling; a
// read error aborts it.
func (r *Request) SkipHeader() error {
	for {
		if r.chunkLen > 3 {
			copy(r.chunk[:3], r.chunk[r.chunkLen-3:r.chunkLen])
			r.chunkLen = 3
		}

		n, err := r.Read(r.chunk[r.chunkLen:])
		if err != nil {
			return fmt.Errorf("header terminator not found: %w", err)
		}
		if n == 0 {
			continue
		}
		r.chunkLen += n

		for i := 3; i < r.chunkLen; i++ {
			if r.chunk[i-3] != '\r' || r.chunk[i-2] != '\n' ||
				r.chunk[i-1] != '\r' || r.chunk[i] != '\n' {
				continue
			}

			// Everything past the terminator is body; shift it to
			// the front for the accessors.
			r.chunkLen = copy(r.chunk[:], r.chunk[i+1:r.chunkLen])
			r.chunkOff = 0
			return nil
		}
	}
}

// refill performs one Read into the chunk buffer when the caller has
// consumed everything staged. It reports whether any bytes are available.
func (r *Request) refill() bool {
	if r.chunkLen == 0 || r.chunkOff >= r.chunkLen {
		n, err := r.Read(r.chunk[:])
		if err != nil {
			r.chunkLen = 0
			r.chunkOff = 0
			return false
		}
		r.chunkLen = n
		r.chunkOff = 0
	}
	return r.chunkLen > 0 && r.chunkOff < r.chunkLen
}

// ChunkPeek returns a view of all currently unconsumed staged bytes
// without consuming them, refilling from the connection first if the
// buffer is exhausted. It returns nil when nothing is available.
func (r *Request) ChunkPeek() []byte {
	if !r.refill() {
		return nil
	}
	return r.chunk[r.chunkOff:r.chunkLen]
}

// ChunkRead returns the same view as ChunkPeek and consumes all of it.
// The view is only valid until the next accessor call.
func (r *Request) ChunkRead() []byte {
	chunk := r.ChunkPeek()
	if chunk == nil {
		return nil
	}
	r.chunkOff = r.chunkLen
	return chunk
}

// BytePeek returns the next body byte without consuming it, or 0 when
// nothing is available. A zero return conflates "nothing ready yet",
// "stream ended" and a literal NUL byte; callers inherit that ambiguity.
func (r *Request) BytePeek() byte {
	if !r.refill() {
		return 0
	}
	return r.chunk[r.chunkOff]
}

// ByteRead returns the next body byte and consumes it, or 0 when nothing
// is available.
func (r *Request) ByteRead() byte {
	c := r.BytePeek()
	if c == 0 {
		return 0
	}
	r.chunkOff++
	return c
}

// Close releases the Request: the transport is closed (TLS session first,
// then the socket, inside the transport) and the handle invalidated. It
// is safe on a nil Request, on one that failed mid-connect, and on one
// whose transport already died.
func (r *Request) Close() error {
	if r == nil {
		return nil
	}
	if r.transport == nil {
		return nil
	}
	err := r.transport.Close()
	r.transport = nil
	return err
}

// Closed reports whether the transport is gone, either released or
// invalidated by a read error.
func (r *Request) Closed() bool {
	return r == nil || r.transport == nil
}

// bodyReader adapts the pull accessors to io.Reader for streaming
// consumers. It spins on the readiness probe until data arrives or the
// connection dies, so Read only returns 0 bytes at end of stream.
type bodyReader struct {
	req *Request
}

// NewBodyReader returns an io.Reader over req's response body. SkipHeader
// should have been called first; otherwise the headers are part of the
// stream.
func NewBodyReader(req *Request) io.Reader {
	return &bodyReader{req: req}
}

func (b *bodyReader) Read(p []byte) (int, error) {
	for {
		chunk := b.req.ChunkPeek()
		if len(chunk) > 0 {
			n := copy(p, chunk)
			b.req.chunkOff += n
			return n, nil
		}
		if b.req.Closed() {
			return 0, io.EOF
		}
	}
}

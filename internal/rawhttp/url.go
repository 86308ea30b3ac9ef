package rawhttp

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedURL is returned by Parse when the input matches neither
// supported URL grammar, or uses a scheme with no known default port.
var ErrMalformedURL = errors.New("rawhttp: malformed URL")

// URL is a parsed scheme://host[:port]/path string. Path keeps everything
// from the first slash onward, query string included.
type URL struct {
	Scheme string
	Host   string
	Port   uint16
	Path   string
}

// String reassembles the URL with its explicit port.
func (u *URL) String() string {
	return u.Scheme + "://" + u.Host + ":" + strconv.Itoa(int(u.Port)) + u.Path
}

// Parse parses a URL of the form scheme://host:port/path or
// scheme://host/path. The first form accepts any scheme; the second
// defaults the port from the scheme and only knows http (80) and
// https (443). The host token may not contain ':' in the first form nor
// '/' in the second; the path must be present and non-empty.
func Parse(s string) (*URL, error) {
	sep := strings.Index(s, "://")
	if sep < 1 {
		return nil, ErrMalformedURL
	}
	scheme := s[:sep]
	rest := s[sep+3:]

	// scheme://host:port/path
	if colon := strings.IndexByte(rest, ':'); colon > 0 {
		host := rest[:colon]
		after := rest[colon+1:]
		digits := 0
		for digits < len(after) && after[digits] >= '0' && after[digits] <= '9' {
			digits++
		}
		if digits > 0 && digits < len(after) {
			port, err := strconv.ParseUint(after[:digits], 10, 16)
			if err != nil {
				// Digits followed the colon but don't fit a port.
				return nil, ErrMalformedURL
			}
			return &URL{
				Scheme: scheme,
				Host:   host,
				Port:   uint16(port),
				Path:   after[digits:],
			}, nil
		}
		// Fall through: the ':' belonged to the path, not a port.
	}

	// scheme://host/path
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 {
		return nil, ErrMalformedURL
	}
	host := rest[:slash]
	path := rest[slash:]

	var port uint16
	switch scheme {
	case "http":
		port = 80
	case "https":
		port = 443
	default:
		return nil, ErrMalformedURL
	}

	return &URL{Scheme: scheme, Host: host, Port: port, Path: path}, nil
}

// unreserved reports whether b needs no percent-encoding.
func unreserved(b byte) bool {
	return b >= 'A' && b <= 'Z' ||
		b >= 'a' && b <= 'z' ||
		b >= '0' && b <= '9' ||
		b == '-' || b == '_' || b == '.' || b == '~'
}

const hexUpper = "0123456789ABCDEF"

// Encode percent-encodes every byte outside the unreserved set
// (A-Z a-z 0-9 - _ . ~) as an uppercase %XX triplet. The output length is
// computed in a first pass and filled in a second; the two must agree.
func Encode(b []byte) string {
	n := 0
	for _, c := range b {
		if unreserved(c) {
			n++
		} else {
			n += 3
		}
	}

	out := make([]byte, 0, n)
	for _, c := range b {
		if unreserved(c) {
			out = append(out, c)
		} else {
			out = append(out, '%', hexUpper[c>>4], hexUpper[c&0x0f])
		}
	}
	if len(out) != n {
		panic("rawhttp: Encode length passes disagree")
	}
	return string(out)
}

// EncodeString is Encode for string input.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

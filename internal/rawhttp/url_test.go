package rawhttp

import (
	"strconv"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		scheme string
		host   string
		port   uint16
		path   string
	}{
		{
			name:   "http with default port",
			input:  "http://example.com/status",
			scheme: "http",
			host:   "example.com",
			port:   80,
			path:   "/status",
		},
		{
			name:   "https with default port",
			input:  "https://example.com/status",
			scheme: "https",
			host:   "example.com",
			port:   443,
			path:   "/status",
		},
		{
			name:   "https with explicit port",
			input:  "https://api.example.com:8443/v2/data",
			scheme: "https",
			host:   "api.example.com",
			port:   8443,
			path:   "/v2/data",
		},
		{
			name:   "non-http scheme with explicit port",
			input:  "gopher://example.com:70/1",
			scheme: "gopher",
			host:   "example.com",
			port:   70,
			path:   "/1",
		},
		{
			name:   "query string kept in path",
			input:  "http://example.com/weather?zip=60601&mode=json",
			scheme: "http",
			host:   "example.com",
			port:   80,
			path:   "/weather?zip=60601&mode=json",
		},
		{
			name:   "root path only",
			input:  "http://example.com/",
			scheme: "http",
			host:   "example.com",
			port:   80,
			path:   "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if u.Scheme != tt.scheme {
				t.Errorf("Scheme = %q, want %q", u.Scheme, tt.scheme)
			}
			if u.Host != tt.host {
				t.Errorf("Host = %q, want %q", u.Host, tt.host)
			}
			if u.Port != tt.port {
				t.Errorf("Port = %d, want %d", u.Port, tt.port)
			}
			if u.Path != tt.path {
				t.Errorf("Path = %q, want %q", u.Path, tt.path)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unsupported scheme without port", input: "ftp://example.com/file"},
		{name: "no scheme separator", input: "example.com/file"},
		{name: "empty scheme", input: "://example.com/file"},
		{name: "no path", input: "http://example.com"},
		{name: "no path with port", input: "http://example.com:8080"},
		{name: "empty string", input: ""},
		{name: "empty host", input: "http:///path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if u, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) = %+v, want error", tt.input, u)
			}
		})
	}
}

func TestParsePortOutOfRange(t *testing.T) {
	// Port must fit in 16 bits; an oversized one cannot fall back to the
	// defaulted grammar because the host token would still contain ':'.
	if u, err := Parse("http://example.com:70000/x"); err == nil {
		t.Errorf("Parse with port 70000 = %+v, want error", u)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "a b/c", expected: "a%20b%2Fc"},
		{input: "abc-XYZ_0.9~", expected: "abc-XYZ_0.9~"},
		{input: "", expected: ""},
		{input: "100%", expected: "100%25"},
		{input: "\x00\xff", expected: "%00%FF"},
	}

	for _, tt := range tests {
		if got := EncodeString(tt.input); got != tt.expected {
			t.Errorf("Encode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// decodePercent applies the inverse of Encode.
func decodePercent(t *testing.T, s string) []byte {
	t.Helper()
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) {
			t.Fatalf("truncated escape in %q", s)
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			t.Fatalf("bad escape in %q: %v", s, err)
		}
		out = append(out, byte(v))
		i += 2
	}
	return out
}

func TestEncodeRoundTrip(t *testing.T) {
	// Every byte value, plus a few mixed sequences.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	inputs := [][]byte{
		all,
		[]byte("zip=60601&appid=secret key"),
		[]byte("émoji ☂"),
	}

	for _, in := range inputs {
		encoded := Encode(in)
		for i := 0; i < len(encoded); i++ {
			c := encoded[i]
			if c == '%' {
				i += 2
				continue
			}
			if !unreserved(c) {
				t.Errorf("Encode(%q) leaked reserved byte %q", in, c)
			}
		}
		if got := decodePercent(t, encoded); string(got) != string(in) {
			t.Errorf("round trip of %q = %q", in, got)
		}
		if !strings.ContainsAny(encoded, "%") && len(encoded) != len(in) {
			t.Errorf("unescaped output length changed: %q -> %q", in, encoded)
		}
	}
}

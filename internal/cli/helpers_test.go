package cli

import (
	"bytes"
	"net"
	"testing"
)

// serveRaw answers up to n sequential raw HTTP/1.0 exchanges with body
// and then closes the listener, so later connections fail fast instead
// of hanging.
func serveRaw(t *testing.T, n int, body string) string {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	if n == 0 {
		// Caller wants a refusing address.
		ln.Close()
		return "http://" + ln.Addr().String() + "/test"
	}

	go func() {
		defer ln.Close()
		for i := 0; i < n; i++ {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 4096)
			total := 0
			for !bytes.Contains(buf[:total], []byte("\r\n\r\n")) {
				read, err := conn.Read(buf[total:])
				if err != nil {
					break
				}
				total += read
			}
			conn.Write([]byte("HTTP/1.0 200 OK\r\nContent-Type: application/json\r\n\r\n" + body))
			conn.Close()
		}
	}()

	return "http://" + ln.Addr().String() + "/test"
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()

	// Cobra flag values stick between Execute calls; put the get and
	// bench flags back so tests don't leak into each other.
	for _, reset := range []struct{ cmd, flag, value string }{
		{"get", "extract", ""},
		{"get", "schema", ""},
		{"get", "verbose", "false"},
		{"get", "insecure", "false"},
		{"get", "user-agent", "wxterm"},
		{"bench", "requests", "10"},
		{"bench", "insecure", "false"},
	} {
		for _, sub := range RootCmd.Commands() {
			if sub.Name() == reset.cmd {
				sub.Flags().Set(reset.flag, reset.value)
			}
		}
	}

	return stdout.String(), stderr.String(), err
}

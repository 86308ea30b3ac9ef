// Package rawhttp implements a minimal blocking HTTP/1.0 client over raw
// TCP or TLS transports, with an incremental byte/line-oriented read
// interface.
//
// It deliberately speaks only as much HTTP as a streaming consumer needs:
// a Request is created by Get, the caller skips the response headers with
// SkipHeader, and then pulls body bytes one at a time (ByteRead/BytePeek)
// or in buffered chunks (ChunkRead/ChunkPeek). There is no keep-alive, no
// chunked transfer decoding, no redirect following and no header parsing
// beyond locating the header/body boundary.
//
// Basic usage:
//
//	req, err := rawhttp.Get("https://api.example.com/v2/data")
//	if err != nil {
//	    return err
//	}
//	defer req.Close()
//
//	if err := req.SkipHeader(); err != nil {
//	    return err
//	}
//	for {
//	    b := req.ByteRead()
//	    if b == 0 {
//	        break
//	    }
//	    // consume b
//	}
//
// Reads are gated by a zero-timeout readiness probe: when the connection
// has nothing buffered, Read returns 0 bytes immediately rather than
// blocking, and the byte-level accessors return 0. Callers therefore see
// "nothing available yet", "stream ended" and "literal NUL byte" through
// the same coarse zero value; consumers that need to keep going must loop.
package rawhttp

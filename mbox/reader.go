package mbox

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// Envelope wraps one message alongside the error encountered while parsing
// it. A stream of envelopes keeps per-message failures from terminating the
// whole read.
type Envelope struct {
	Message Message
	Err     error
}

// Reader streams messages out of a single mbox file. It is lazy, finite, and
// non-restartable: each message is held in memory only while it is the
// current one.
type Reader struct {
	path string
	f    *os.File
	br   *bufio.Reader
	buf  bytes.Buffer
	in   bool
	done bool
}

// Open opens an mbox file for streaming. Failure to open is the one fatal
// error of the pipeline; everything after this is reported per message.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, f: f, br: bufio.NewReader(f)}, nil
}

// Path returns the file the reader was opened on.
func (r *Reader) Path() string { return r.path }

// Next returns the next message envelope. The second return is false once
// the stream is exhausted.
func (r *Reader) Next() (Envelope, bool) {
	if r.done {
		return Envelope{}, false
	}
	for {
		line, err := r.br.ReadString('\n')
		if err != nil && err != io.EOF {
			r.done = true
			return Envelope{Err: err}, true
		}
		atEOF := err == io.EOF

		if strings.HasPrefix(line, "From ") {
			if r.in && r.buf.Len() > 0 {
				raw := r.buf.String()
				r.buf.Reset()
				r.buf.WriteString(line)
				return r.parse(raw), true
			}
			r.in = true
			r.buf.WriteString(line)
		} else if r.in {
			r.buf.WriteString(line)
		}

		if atEOF {
			r.done = true
			// A file ending in a bare separator line carries no final
			// message; flushing it would report a phantom parse error.
			if r.in && strings.TrimSpace(stripSeparator(r.buf.String())) != "" {
				return r.parse(r.buf.String()), true
			}
			return Envelope{}, false
		}
	}
}

// stripSeparator drops the "From " separator line, leaving the raw message.
func stripSeparator(raw string) string {
	if i := strings.IndexByte(raw, '\n'); i != -1 {
		return raw[i+1:]
	}
	return ""
}

// parse strips the "From " separator line and parses the rest.
func (r *Reader) parse(raw string) Envelope {
	msg, err := ParseMessage(stripSeparator(raw), r.path)
	if err != nil {
		return Envelope{Err: err}
	}
	return Envelope{Message: msg}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

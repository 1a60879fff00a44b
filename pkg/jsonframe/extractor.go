// Package jsonframe extracts complete JSON objects from an unbounded,
// chunk-fragmented byte stream. The upstream generator emits concatenated
// partial JSON objects with no framing of its own (not a JSON document, not
// newline-delimited), and chunk boundaries fall anywhere, including inside
// string literals and escape sequences.
package jsonframe

import "bytes"

// Extractor accumulates upstream bytes and yields complete top-level JSON
// objects as they become available. One Extractor serves exactly one relay
// session; it is not safe for concurrent use.
type Extractor struct {
	buf []byte
}

// New returns an empty Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Feed appends a chunk of upstream bytes to the internal buffer.
func (e *Extractor) Feed(p []byte) {
	e.buf = append(e.buf, p...)
}

// Pending returns the number of buffered, not-yet-consumed bytes.
func (e *Extractor) Pending() int {
	return len(e.buf)
}

// Next extracts the earliest complete JSON object from the buffer. It
// returns (object, true) when one is available, consuming the object and any
// non-object bytes preceding it (inter-object commas, brackets, whitespace).
// It returns (nil, false) when the buffer holds at most an incomplete object;
// the partial tail is retained untouched for the next Feed.
func (e *Extractor) Next() ([]byte, bool) {
	start := bytes.IndexByte(e.buf, '{')
	if start < 0 {
		// No object can ever start in these bytes; drop them so a
		// garbage-only stream cannot grow the buffer without bound.
		e.buf = e.buf[:0]
		return nil, false
	}

	depth := 0
	inString := false
	escapeNext := false

	for i := start; i < len(e.buf); i++ {
		c := e.buf[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if c == '\\' {
			escapeNext = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				obj := append([]byte(nil), e.buf[start:i+1]...)
				e.buf = e.buf[i+1:]
				return obj, true
			}
		}
	}

	// Incomplete object: keep everything from its opening brace onward and
	// wait for more bytes.
	e.buf = e.buf[start:]
	return nil, false
}

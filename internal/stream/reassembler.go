// Package stream provides the chunked streaming layer: BOM handling and
// the reassembler that turns arbitrarily-sized chunks into complete logical
// lines without ever splitting a field value mid-stream.
package stream

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// Reassembler accumulates chunks and emits complete logical lines. A parity
// flag tracks whether the scan position is inside a quoted span; that flag
// persists across chunk boundaries, so a quoted field may legitimately span
// any number of chunks. Row terminators are recognized only outside quoted
// spans.
type Reassembler struct {
	buf      []byte
	scanned  int
	inQuoted bool

	line      int
	spanStart int
}

// NewReassembler returns an empty Reassembler positioned at line 1.
func NewReassembler() *Reassembler {
	return &Reassembler{line: 1, spanStart: 1}
}

// Feed appends a chunk and returns every logical line whose terminator has
// now arrived, in order, with terminators removed. The remainder, including
// any still-open quoted span, is retained for the next chunk.
func (r *Reassembler) Feed(chunk []byte) []string {
	r.buf = append(r.buf, chunk...)

	var lines []string
	start := 0
	i := r.scanned
	for i < len(r.buf) {
		c := r.buf[i]
		switch c {
		case '"':
			if !r.inQuoted {
				r.spanStart = r.line
			}
			r.inQuoted = !r.inQuoted
		case '\n':
			r.line++
			if !r.inQuoted {
				lines = append(lines, trimLine(r.buf[start:i]))
				start = i + 1
			}
		}
		i++
	}

	if start > 0 {
		r.buf = append(r.buf[:0], r.buf[start:]...)
	}
	r.scanned = len(r.buf)
	return lines
}

// Flush returns the final unterminated line at end of input. ok is false
// when the buffer is empty. An unterminated quoted span is a terminal parse
// error carrying the line the span opened on.
func (r *Reassembler) Flush() (line string, ok bool, err error) {
	if r.inQuoted {
		return "", false, &types.ParsingError{
			Line:    r.spanStart,
			Message: "unclosed quotes at end of input",
			Err:     types.ErrUnclosedQuote,
		}
	}
	if len(r.buf) == 0 {
		return "", false, nil
	}
	line = trimLine(r.buf)
	r.buf = nil
	r.scanned = 0
	return line, line != "", nil
}

// Buffered returns the text currently withheld (used for lazy detection on
// the first chunks).
func (r *Reassembler) Buffered() string {
	return string(r.buf)
}

// trimLine strips a trailing carriage return left by CRLF terminators.
func trimLine(b []byte) string {
	return strings.TrimSuffix(string(b), "\r")
}

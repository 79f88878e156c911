package serialize

import (
	"io"
	"strings"
)

// Encoder writes records to an io.Writer one at a time, under the same
// escaping rules as Marshal. It writes only when asked, so output pacing is
// controlled entirely by the caller.
type Encoder struct {
	w         io.Writer
	s         *Serializer
	headers   []string
	wroteBOM  bool
	wroteHead bool
}

// NewEncoder binds the serializer to w with a fixed header order. Headers
// must be derived (or chosen) by the caller up front: a streaming encoder
// cannot revisit earlier output when a late record introduces a new key.
// Unknown keys in later records are silently dropped; missing keys render
// as empty fields.
func (s *Serializer) NewEncoder(w io.Writer, headers []string) *Encoder {
	return &Encoder{w: w, s: s, headers: headers}
}

// WriteHeader emits the BOM (when configured) and the renamed header row.
// It is called implicitly by the first Encode.
func (e *Encoder) WriteHeader() error {
	if e.wroteHead {
		return nil
	}
	e.wroteHead = true

	var buf strings.Builder
	if e.s.bom && !e.wroteBOM {
		buf.Write(utf8BOM)
		e.wroteBOM = true
	}
	e.s.writeRow(&buf, renamedAll(e.s, e.headers))
	_, err := io.WriteString(e.w, buf.String())
	return err
}

// Encode writes one record as a delimited row in header order.
func (e *Encoder) Encode(record map[string]any) error {
	if !e.wroteHead {
		if err := e.WriteHeader(); err != nil {
			return err
		}
	}
	row := make([]string, len(e.headers))
	for i, h := range e.headers {
		row[i] = FormatValue(record[h])
	}
	var buf strings.Builder
	e.s.writeRow(&buf, row)
	_, err := io.WriteString(e.w, buf.String())
	return err
}

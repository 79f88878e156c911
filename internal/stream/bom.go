package stream

import (
	"bytes"
	"io"
)

// utf8BOM is the UTF-8 byte-order mark some producers (notably spreadsheet
// exports on Windows) prepend to delimited text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark, if present.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// BOMSkippingReader wraps an io.Reader and removes a UTF-8 BOM from the
// start of the stream. Only the first bytes are inspected; everything after
// passes through untouched.
type BOMSkippingReader struct {
	reader  io.Reader
	checked bool
	held    []byte
}

// NewBOMSkippingReader wraps r.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		if err := b.check(); err != nil {
			return 0, err
		}
	}
	if len(b.held) > 0 {
		n := copy(p, b.held)
		b.held = b.held[n:]
		return n, nil
	}
	return b.reader.Read(p)
}

// check reads up to the BOM length from the stream and discards the BOM if
// it is there, holding any other bytes for the next Read.
func (b *BOMSkippingReader) check() error {
	b.checked = true
	head := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(b.reader, head)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		b.held = head[:n]
		return nil
	}
	if err != nil {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		return nil
	}
	b.held = head
	return nil
}

package jtcsv

import (
	"io"

	"github.com/Linol-Hamelton/jtcsv-sub000/internal/serialize"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// Marshal serializes records to delimited text using the default engine.
// See Engine.Marshal.
func Marshal(records []map[string]any, opts *types.Options) ([]byte, error) {
	return defaultEngine.Marshal(records, opts)
}

// Marshal serializes records into one delimited-text blob. Header order is
// the template order first, then remaining keys in first-seen order; the
// rename map applies to the emitted header names only. Values containing
// the delimiter, a quote, or a line terminator are quoted with doubled
// internal quotes; formula triggers are neutralized before the quoting
// decision. A nil opts uses DefaultOptions.
func (e *Engine) Marshal(records []map[string]any, opts *types.Options) ([]byte, error) {
	if opts == nil {
		opts = types.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return serialize.New(opts).Marshal(records)
}

// Encoder streams records to an io.Writer as delimited rows. See
// Engine.NewEncoder.
type Encoder struct {
	enc *serialize.Encoder
}

// NewEncoder creates a streaming encoder writing to w with a fixed header
// order. The header row (and BOM, when configured) is written before the
// first record. A nil opts uses DefaultOptions.
func (e *Engine) NewEncoder(w io.Writer, headers []string, opts *types.Options) (*Encoder, error) {
	if w == nil {
		return nil, &types.ValidationError{Argument: "w", Message: "writer cannot be nil"}
	}
	if len(headers) == 0 {
		return nil, &types.ValidationError{Argument: "headers", Message: "header set cannot be empty"}
	}
	if opts == nil {
		opts = types.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{enc: serialize.New(opts).NewEncoder(w, headers)}, nil
}

// Encode writes one record as a delimited row in header order.
func (e *Encoder) Encode(record map[string]any) error {
	return e.enc.Encode(record)
}

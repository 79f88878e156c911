package jtcsv

import (
	"context"
	"encoding/json"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// convertBuffer bounds the in-flight rows between the parse and write
// stages. The bound is what gives the pipeline its backpressure: the parser
// stalls once the writer falls this far behind.
const convertBuffer = 64

// Convert streams delimited text from r into a JSON array on w: a parse
// stage feeds decoded rows through a bounded channel to a write stage, with
// the first error from either side cancelling the other. Objects mode
// yields an array of records, compact mode an array of string arrays. A
// nil opts uses DefaultOptions.
func (e *Engine) Convert(ctx context.Context, r io.Reader, w io.Writer, opts *types.Options) error {
	if opts == nil {
		opts = types.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	rows := make(chan any, convertBuffer)

	g.Go(func() error {
		defer close(rows)
		dec, err := e.NewDecoder(r, opts)
		if err != nil {
			return err
		}
		for dec.Next() {
			var v any
			if opts.OutputMode == types.OutputObjects {
				v = dec.Record()
			} else {
				v = dec.Fields()
			}
			select {
			case rows <- v:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return dec.Err()
	})

	g.Go(func() error {
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		first := true
		for v := range rows {
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			if !first {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			first = false
			if _, err := w.Write(b); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	})

	return g.Wait()
}

// Convert streams delimited text into a JSON array using the default
// engine. See Engine.Convert.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opts *types.Options) error {
	return defaultEngine.Convert(ctx, r, w, opts)
}

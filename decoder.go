package jtcsv

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/internal/analyze"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/normalize"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/repair"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/rowparse"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/stream"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

const (
	// decoderChunkSize is how much the decoder pulls from upstream per read.
	decoderChunkSize = 4096
	// detectSampleLines is how many complete logical lines are withheld for
	// delimiter detection and structure analysis. Logical lines are
	// invariant under chunk splits, so the detection sample — and therefore
	// the whole row sequence — does not depend on how the input was chunked.
	detectSampleLines = 10
)

// pendingLine is a logical line withheld until the parser is compiled.
type pendingLine struct {
	text string
	line int
}

// Decoder is the streaming parse surface: a pull-based, forward-only,
// non-restartable row sequence over an io.Reader. It reads another chunk
// from upstream only when the already-emitted rows have been consumed, so
// flow control is driven entirely by the caller. Delimiter detection and
// structure analysis run lazily on the first buffered logical lines.
//
//	dec, err := engine.NewDecoder(r, nil)
//	for dec.Next() {
//	    rec := dec.Record()
//	    ...
//	}
//	if err := dec.Err(); err != nil { ... }
type Decoder struct {
	engine *Engine
	opts   *types.Options
	logger *slog.Logger
	src    io.Reader

	reasm    *stream.Reassembler
	parser   *rowparse.Parser
	norm     *normalize.Normalizer
	repairer *repair.Repairer

	headers  []string
	haveHead bool

	buf      []byte
	pending  []pendingLine
	queue    []types.Row
	current  types.Row
	nextLine int
	rowCount int
	eof      bool
	done     bool
	err      error
}

// NewDecoder creates a streaming decoder using the default engine. See
// Engine.NewDecoder.
func NewDecoder(r io.Reader, opts *types.Options) (*Decoder, error) {
	return defaultEngine.NewDecoder(r, opts)
}

// NewDecoder creates a streaming decoder over r. A nil opts uses
// DefaultOptions. A leading byte-order mark is stripped before detection.
func (e *Engine) NewDecoder(r io.Reader, opts *types.Options) (*Decoder, error) {
	if r == nil {
		return nil, &types.ValidationError{Argument: "r", Message: "reader cannot be nil"}
	}
	if opts == nil {
		opts = types.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder{
		engine:   e,
		opts:     opts,
		logger:   e.log(opts),
		src:      stream.NewBOMSkippingReader(r),
		reasm:    stream.NewReassembler(),
		norm:     normalize.New(opts),
		buf:      make([]byte, decoderChunkSize),
		nextLine: 1,
	}
	if opts.OutputMode == types.OutputObjects && opts.RepairRowShifts {
		d.repairer = &repair.Repairer{}
	}
	return d, nil
}

// Next advances to the next row. It returns false at end of input or on
// error; check Err afterwards. Once it has returned false the decoder is
// consumed and stays false.
func (d *Decoder) Next() bool {
	for {
		if d.err != nil {
			return false
		}
		if len(d.queue) > 0 {
			d.current = d.queue[0]
			d.queue = d.queue[1:]
			return true
		}
		if d.done {
			return false
		}
		if d.eof {
			d.finish()
			continue
		}

		n, err := d.src.Read(d.buf)
		if n > 0 {
			for _, line := range d.reasm.Feed(d.buf[:n]) {
				if d.offerLine(line); d.err != nil {
					return false
				}
			}
		}
		if err == io.EOF {
			d.eof = true
		} else if err != nil {
			d.err = err
			return false
		}
	}
}

// offerLine accepts one complete logical line, withholding it while the
// detection sample is still filling.
func (d *Decoder) offerLine(text string) {
	p := pendingLine{text: text, line: d.nextLine}
	d.nextLine += strings.Count(text, "\n") + 1

	if d.parser == nil {
		d.pending = append(d.pending, p)
		if len(d.pending) >= detectSampleLines {
			d.compileAndDrain()
		}
		return
	}
	d.parseLine(p)
}

// compileAndDrain runs detection and analysis over the withheld sample,
// compiles the parser, and replays the withheld lines through it.
func (d *Decoder) compileAndDrain() {
	parts := make([]string, len(d.pending))
	for i, p := range d.pending {
		parts[i] = p.text
	}
	sample := strings.Join(parts, "\n")

	delim := d.engine.resolveDelimiter(sample, d.opts)
	desc := analyze.Analyze(sample, delim)
	d.parser = d.engine.compiler.Compile(desc)

	pending := d.pending
	d.pending = nil
	for _, p := range pending {
		if d.parseLine(p); d.err != nil {
			return
		}
	}
}

// parseLine runs one logical line through the compiled parser.
func (d *Decoder) parseLine(p pendingLine) {
	err := d.parser.ParseIncremental(p.text, func(row types.Row) error {
		row.Line = p.line
		return d.acceptRow(row)
	})
	if err != nil {
		d.err = err
	}
}

// finish drains the final reassembler line, any withheld sample lines, and
// the pending repair row at end of input.
func (d *Decoder) finish() {
	d.done = true
	line, ok, err := d.reasm.Flush()
	if err != nil {
		d.err = err
		return
	}
	if ok {
		if d.offerLine(line); d.err != nil {
			return
		}
	}
	if d.parser == nil && len(d.pending) > 0 {
		if d.compileAndDrain(); d.err != nil {
			return
		}
	}
	if d.repairer != nil {
		d.queue = append(d.queue, d.repairer.Flush()...)
	}
}

// acceptRow applies header establishment and per-row policy, then queues
// the row (through the repairer when enabled).
func (d *Decoder) acceptRow(row types.Row) error {
	if !d.haveHead {
		d.haveHead = true
		if d.opts.HasHeaders {
			if len(d.opts.HeaderTemplate) > 0 {
				d.headers = headerNames(d.opts.HeaderTemplate, d.opts)
			} else {
				d.headers = headerNames(row.Fields, d.opts)
			}
			return nil
		}
		if len(d.opts.HeaderTemplate) > 0 {
			d.headers = headerNames(d.opts.HeaderTemplate, d.opts)
		} else {
			d.headers = make([]string, len(row.Fields))
			for i := range d.headers {
				d.headers[i] = fmt.Sprintf("column_%d", i+1)
			}
		}
	}

	d.rowCount++
	if d.opts.MaxRows > 0 && d.rowCount > d.opts.MaxRows {
		return &types.LimitError{Limit: d.opts.MaxRows, Actual: d.rowCount}
	}

	fixed, err := reconcileRow(row, len(d.headers), d.opts, d.logger, nil)
	if err != nil {
		return err
	}

	if d.repairer != nil {
		d.queue = append(d.queue, d.repairer.Push(*fixed)...)
		return nil
	}
	d.queue = append(d.queue, *fixed)
	return nil
}

// Headers returns the header set once it has been established, which is
// after the first row has cleared the detection sample.
func (d *Decoder) Headers() []string {
	return d.headers
}

// Record returns the current row as a normalized, header-keyed record.
// Valid only in objects mode after Next returned true.
func (d *Decoder) Record() map[string]any {
	return normalizeRow(d.norm, d.headers, d.current)
}

// Fields returns the current row's raw reconciled fields. This is the
// compact-mode accessor but is valid in either mode.
func (d *Decoder) Fields() []string {
	return d.current.Fields
}

// Err returns the terminal error, if any. A clean end of input returns nil.
func (d *Decoder) Err() error {
	return d.err
}

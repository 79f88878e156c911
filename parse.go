package jtcsv

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/internal/analyze"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/normalize"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/repair"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/stream"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// advisoryRowDefault is the advisory streaming threshold when no row
// ceiling is configured.
const advisoryRowDefault = 50000

// Parse converts one in-memory buffer of delimited text using the default
// engine. See Engine.Parse.
func Parse(data []byte, opts *types.Options) (*types.ParseResult, error) {
	return defaultEngine.Parse(data, opts)
}

// Parse converts one in-memory buffer of delimited text: detect the
// delimiter, classify the structure, run the compiled parser, reconcile row
// lengths to the header set, repair mis-split rows, and normalize values.
// A nil opts uses DefaultOptions.
//
// Structural failures before headers are established, and row-limit
// violations, are always fatal. Per-row field-count overruns follow
// opts.OnError.
func (e *Engine) Parse(data []byte, opts *types.Options) (*types.ParseResult, error) {
	if opts == nil {
		opts = types.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := e.log(opts)

	text := string(stream.StripBOM(data))
	result := &types.ParseResult{}
	if strings.TrimSpace(text) == "" {
		return result, nil
	}

	delim := e.resolveDelimiter(text, opts)
	desc := analyze.Analyze(text, delim)
	parser := e.compiler.Compile(desc)

	// Row/record ceiling: always fatal, never subject to OnError. Checked
	// while rows are emitted so oversized input aborts before it is all
	// materialized, matching the streaming decoder.
	ceiling := 0
	if opts.MaxRows > 0 {
		ceiling = opts.MaxRows
		if opts.HasHeaders {
			ceiling++
		}
	}
	var rows []types.Row
	err := parser.ParseIncremental(text, func(row types.Row) error {
		if ceiling > 0 && len(rows) >= ceiling {
			return &types.LimitError{Limit: opts.MaxRows, Actual: opts.MaxRows + 1}
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return result, nil
	}

	headers, dataRows := deriveHeaders(rows, opts)
	result.Headers = headers
	if adv := advisoryThreshold(opts); len(dataRows) > adv {
		msg := fmt.Sprintf("parsed %d rows in bulk mode; consider the streaming decoder", len(dataRows))
		logger.Warn(msg, "rows", len(dataRows), "advisory", adv)
		result.Warnings = append(result.Warnings, msg)
	}

	kept := dataRows[:0]
	for _, row := range dataRows {
		row, err := reconcileRow(row, len(headers), opts, logger, result)
		if err != nil {
			return nil, err
		}
		if row != nil {
			kept = append(kept, *row)
		}
	}
	dataRows = kept

	if opts.OutputMode == types.OutputObjects && opts.RepairRowShifts {
		dataRows = repair.Rows(dataRows)
	}

	if opts.OutputMode == types.OutputCompact {
		result.Rows = make([][]string, len(dataRows))
		for i, row := range dataRows {
			result.Rows[i] = row.Fields
		}
		return result, nil
	}

	norm := normalize.New(opts)
	result.Records = make([]map[string]any, len(dataRows))
	for i, row := range dataRows {
		result.Records[i] = normalizeRow(norm, headers, row)
	}
	return result, nil
}

// advisoryThreshold is the row count past which bulk mode suggests
// streaming: half the ceiling when one is set, a fixed default otherwise.
func advisoryThreshold(opts *types.Options) int {
	if opts.MaxRows > 0 {
		return opts.MaxRows / 2
	}
	return advisoryRowDefault
}

// deriveHeaders fixes the header set for the run: a supplied template wins,
// the first row is next when HasHeaders is set (and is consumed either
// way), and generated column names are the last resort. Headers are fixed
// once derived and not revisited.
func deriveHeaders(rows []types.Row, opts *types.Options) ([]string, []types.Row) {
	if opts.HasHeaders {
		if len(opts.HeaderTemplate) > 0 {
			return headerNames(opts.HeaderTemplate, opts), rows[1:]
		}
		return headerNames(rows[0].Fields, opts), rows[1:]
	}
	if len(opts.HeaderTemplate) > 0 {
		return headerNames(opts.HeaderTemplate, opts), rows
	}
	headers := make([]string, len(rows[0].Fields))
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i+1)
	}
	return headers, rows
}

// headerNames trims, de-escapes, renames, and de-duplicates header cells.
func headerNames(cells []string, opts *types.Options) []string {
	seen := make(map[string]int, len(cells))
	headers := make([]string, len(cells))
	for i, h := range cells {
		h = normalize.Deneutralize(strings.TrimSpace(h))
		if to, ok := opts.RenameMap[h]; ok {
			h = to
		}
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[h]; n > 0 {
			h = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[h]++
		headers[i] = h
	}
	return headers
}

// reconcileRow forces a row to the header length: extras truncate, missing
// fields pad. Padding is always benign; truncation follows OnError — Throw
// aborts with the expected and actual counts, Warn logs and truncates, Skip
// truncates silently. A nil row result means the row was dropped.
func reconcileRow(row types.Row, headerLen int, opts *types.Options, logger *slog.Logger, result *types.ParseResult) (*types.Row, error) {
	switch {
	case len(row.Fields) > headerLen:
		switch opts.OnError {
		case types.ErrorThrow:
			return nil, &types.FieldCountError{
				Line:     row.Line,
				Expected: headerLen,
				Actual:   len(row.Fields),
			}
		case types.ErrorWarn:
			msg := fmt.Sprintf("line %d: %d fields truncated to %d", row.Line, len(row.Fields), headerLen)
			logger.Warn(msg)
			if result != nil {
				result.Warnings = append(result.Warnings, msg)
			}
		}
		row.Fields = row.Fields[:headerLen]
		if len(row.Quoted) > headerLen {
			row.Quoted = row.Quoted[:headerLen]
		}
	case len(row.Fields) < headerLen:
		for len(row.Fields) < headerLen {
			row.Fields = append(row.Fields, "")
			row.Quoted = append(row.Quoted, false)
		}
	}
	return &row, nil
}

// normalizeRow applies the value pipeline and keys the result by header.
func normalizeRow(norm *normalize.Normalizer, headers []string, row types.Row) map[string]any {
	rec := make(map[string]any, len(headers))
	for i, h := range headers {
		quoted := i < len(row.Quoted) && row.Quoted[i]
		rec[h] = norm.Value(row.Fields[i], quoted)
	}
	return rec
}

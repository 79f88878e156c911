// Package serialize converts field-name-keyed records back into delimited
// text with RFC-4180 escaping and spreadsheet-injection neutralization.
package serialize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/internal/normalize"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// utf8BOM is prepended when IncludeBOM is set so spreadsheet applications
// decode the output as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Serializer converts records to delimited text under one fixed option set.
type Serializer struct {
	delim      byte
	crlf       bool
	bom        bool
	neutralize bool
	template   []string
	rename     map[string]string
}

// New builds a Serializer from options. A zero delimiter falls back to ','.
func New(opts *types.Options) *Serializer {
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}
	return &Serializer{
		delim:      delim,
		crlf:       opts.CRLF,
		bom:        opts.IncludeBOM,
		neutralize: opts.NeutralizeFormulas,
		template:   opts.HeaderTemplate,
		rename:     opts.RenameMap,
	}
}

// Headers derives the output column order: template order first, then any
// remaining record keys in first-seen order (keys within one record are
// visited sorted, since Go maps carry no insertion order). The rename map
// applies to the final header names only, not to record lookup keys.
func (s *Serializer) Headers(records []map[string]any) []string {
	seen := make(map[string]bool, len(s.template))
	headers := make([]string, 0, len(s.template))
	for _, h := range s.template {
		if !seen[h] {
			seen[h] = true
			headers = append(headers, h)
		}
	}
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			headers = append(headers, k)
		}
	}
	return headers
}

// renameHeader maps one header to its output name.
func (s *Serializer) renameHeader(h string) string {
	if to, ok := s.rename[h]; ok {
		return to
	}
	return h
}

// terminator returns the configured row terminator.
func (s *Serializer) terminator() string {
	if s.crlf {
		return "\r\n"
	}
	return "\n"
}

// Marshal serializes records into one delimited-text blob: header row
// first, then one row per record in header order.
func (s *Serializer) Marshal(records []map[string]any) ([]byte, error) {
	headers := s.Headers(records)

	var buf strings.Builder
	if s.bom {
		buf.Write(utf8BOM)
	}
	s.writeRow(&buf, renamedAll(s, headers))
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = FormatValue(rec[h])
		}
		s.writeRow(&buf, row)
	}
	return []byte(buf.String()), nil
}

// writeRow escapes and writes one row with the configured terminator.
func (s *Serializer) writeRow(buf *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(s.delim)
		}
		buf.WriteString(s.escapeField(f))
	}
	buf.WriteString(s.terminator())
}

// escapeField applies injection neutralization first, then the RFC-4180
// quoting decision: wrap in quotes and double internal quotes when the
// value contains the delimiter, a quote, or a line terminator.
func (s *Serializer) escapeField(f string) string {
	if s.neutralize {
		f = normalize.NeutralizeFormula(f)
	}
	if strings.IndexByte(f, s.delim) < 0 &&
		!strings.ContainsAny(f, "\"\n\r") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

// renamedAll applies the rename map across a header list.
func renamedAll(s *Serializer, headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = s.renameHeader(h)
	}
	return out
}

// FormatValue renders a record value as field text. Nil renders empty;
// numbers and booleans use their canonical lexical forms.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

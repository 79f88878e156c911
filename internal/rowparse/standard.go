package rowparse

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// parseStandard is the fallback strategy: physical lines are reassembled
// into logical lines by tracking quote parity, then each logical line is
// split by the quote-aware field splitter. Quoted fields may contain raw
// newlines.
func parseStandard(text string, delim byte, emit func(types.Row) error) error {
	var (
		pending   strings.Builder
		openSpan  bool
		startLine int
		prevTerm  string
	)
	line := 0

	flush := func() error {
		logical := pending.String()
		pending.Reset()
		if logical == "" {
			return nil
		}
		fields, quoted, open := splitFields(logical, delim)
		if open {
			return &types.ParsingError{
				Line:    startLine,
				Message: "unclosed quotes",
				Err:     types.ErrUnclosedQuote,
			}
		}
		row := types.Row{Fields: fields, Quoted: quoted, Line: startLine}
		if row.IsBlank() {
			return nil
		}
		return emit(row)
	}

	for text != "" {
		raw := text
		term := ""
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			raw = text[:idx]
			text = text[idx+1:]
			term = "\n"
		} else {
			text = ""
		}
		line++
		if strings.HasSuffix(raw, "\r") {
			raw = raw[:len(raw)-1]
			if term == "\n" {
				term = "\r\n"
			}
		}

		if !openSpan {
			startLine = line
			pending.WriteString(raw)
		} else {
			// Continuation of a quoted span: the line break is field data,
			// kept with its original terminator so CRLF survives.
			pending.WriteString(prevTerm)
			pending.WriteString(raw)
		}
		prevTerm = term

		if strings.Count(raw, `"`)%2 == 1 {
			openSpan = !openSpan
		}
		if openSpan {
			continue
		}
		if err := flush(); err != nil {
			return err
		}
	}

	if openSpan {
		return &types.ParsingError{
			Line:    startLine,
			Message: "unclosed quotes",
			Err:     types.ErrUnclosedQuote,
		}
	}
	return flush()
}

// splitFields splits one logical line into fields with the two-state quote
// machine. open reports that the line ended inside a quoted span.
func splitFields(line string, delim byte) (fields []string, quoted []bool, open bool) {
	var cur strings.Builder
	curQuoted := false
	inQuotes := false

	flush := func() {
		fields = append(fields, cur.String())
		quoted = append(quoted, curQuoted)
		cur.Reset()
		curQuoted = false
	}

	i := 0
	for i < len(line) {
		c := line[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			cur.WriteByte(c)
			i++
			continue
		}
		switch c {
		case delim:
			flush()
		case '"':
			if cur.Len() == 0 && !curQuoted {
				inQuotes = true
				curQuoted = true
			} else {
				cur.WriteByte(c)
			}
		default:
			cur.WriteByte(c)
		}
		i++
	}
	flush()
	return fields, quoted, inQuotes
}

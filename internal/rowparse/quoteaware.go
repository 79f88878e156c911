package rowparse

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// parseQuoteAware runs the single-pass two-state machine. While Unquoted, a
// quote at field start enters the Quoted state; while Quoted, a doubled
// quote is an escaped literal quote and any other quote exits. Delimiters
// and line terminators separate fields and rows only while Unquoted, so a
// newline inside quotes is consumed into the field even though this
// strategy is selected when the sample showed none.
func parseQuoteAware(text string, delim byte, emit func(types.Row) error) error {
	var (
		fields []string
		quoted []bool
		cur    strings.Builder

		curQuoted     bool
		inQuotes      bool
		quoteOpenLine int
	)
	line := 1
	rowLine := 1

	flushField := func() {
		fields = append(fields, cur.String())
		quoted = append(quoted, curQuoted)
		cur.Reset()
		curQuoted = false
	}

	emitRow := func() error {
		flushField()
		row := types.Row{Fields: fields, Quoted: quoted, Line: rowLine}
		fields = nil
		quoted = nil
		if row.IsBlank() {
			return nil
		}
		return emit(row)
	}

	i := 0
	for i < len(text) {
		c := text[i]

		if inQuotes {
			switch c {
			case '"':
				if i+1 < len(text) && text[i+1] == '"' {
					// Escaped literal quote: emit one, advance two.
					cur.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
			case '\n':
				cur.WriteByte(c)
				line++
				i++
			default:
				cur.WriteByte(c)
				i++
			}
			continue
		}

		switch c {
		case delim:
			flushField()
			i++
		case '\n':
			if err := emitRow(); err != nil {
				return err
			}
			line++
			rowLine = line
			i++
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			if err := emitRow(); err != nil {
				return err
			}
			line++
			rowLine = line
			i++
		case '"':
			if cur.Len() == 0 && !curQuoted {
				inQuotes = true
				curQuoted = true
				quoteOpenLine = line
				i++
				continue
			}
			// Stray quote mid-field: keep it literal rather than failing,
			// since the analyzer can under-estimate input complexity.
			cur.WriteByte(c)
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}

	if inQuotes {
		return &types.ParsingError{
			Line:    quoteOpenLine,
			Message: "unclosed quotes",
			Err:     types.ErrUnclosedQuote,
		}
	}
	// Flush a trailing row when the input did not end with a newline.
	if cur.Len() > 0 || curQuoted || len(fields) > 0 {
		return emitRow()
	}
	return nil
}

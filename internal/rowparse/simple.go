package rowparse

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// parseSimple is the fast path: no quote awareness, direct splits on the
// delimiter and line terminators.
func parseSimple(text string, delim byte, emit func(types.Row) error) error {
	sep := string(delim)
	for line := 1; text != ""; line++ {
		raw := text
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			raw = text[:idx]
			text = text[idx+1:]
		} else {
			text = ""
		}
		raw = strings.TrimSuffix(raw, "\r")
		if raw == "" {
			continue
		}

		fields := strings.Split(raw, sep)
		row := types.Row{
			Fields: fields,
			Quoted: make([]bool, len(fields)),
			Line:   line,
		}
		if row.IsBlank() {
			continue
		}
		if err := emit(row); err != nil {
			return err
		}
	}
	return nil
}

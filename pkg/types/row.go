package types

// Row is one parsed row before normalization: raw field strings plus a
// per-field flag recording whether the field was quoted in the source.
// Line is the 1-based physical line the row started on.
type Row struct {
	Fields []string
	Quoted []bool
	Line   int
}

// IsBlank reports whether every field is empty and unquoted. Blank rows are
// dropped during parsing.
func (r Row) IsBlank() bool {
	for i, f := range r.Fields {
		if f != "" {
			return false
		}
		if i < len(r.Quoted) && r.Quoted[i] {
			return false
		}
	}
	return true
}

// ParseResult is the output of a bulk parse. Records is populated in objects
// mode, Rows in compact mode. Headers is set whenever headers were derived
// or supplied. Warnings collects non-fatal notices (truncated rows, padded
// rows, advisory thresholds) in the order they occurred.
type ParseResult struct {
	Headers  []string
	Records  []map[string]any
	Rows     [][]string
	Warnings []string
}

// Len returns the number of data rows in the result regardless of mode.
func (r *ParseResult) Len() int {
	if len(r.Records) > 0 {
		return len(r.Records)
	}
	return len(r.Rows)
}

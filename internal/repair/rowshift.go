// Package repair implements the heuristic row-shift repair pass.
//
// A quoted field containing a raw newline can, under a simplistic upstream
// parser, be mis-split into two rows: the first ends with a truncated,
// still-quoted value and the second carries the continuation in its leading
// columns. Repair merges such a pair back into one logical row.
//
// This is best-effort by design. It can under-merge (leave a genuinely
// split record) and, on adversarial data, over-merge (join two unrelated
// rows that happen to match the predicate). The predicate is intentionally
// general: an unbalanced quote in the last populated field, followed by a
// row with a non-empty head and an all-empty tail.
package repair

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// lastNonEmpty returns the index of the last non-empty field, or -1.
func lastNonEmpty(fields []string) int {
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] != "" {
			return i
		}
	}
	return -1
}

// unbalancedQuote reports whether the field holds a quote that was never
// closed: an odd quote count, or any quote without a closing quote at the
// end of the field.
func unbalancedQuote(field string) bool {
	n := strings.Count(field, `"`)
	if n == 0 {
		return false
	}
	if n%2 == 1 {
		return true
	}
	return !strings.HasSuffix(field, `"`)
}

// NeedsMerge applies the detection predicate to a row pair: cur's last
// populated field carries an unbalanced quote, and next has a non-empty
// head with an all-empty tail shorter than the full row.
func NeedsMerge(cur, next types.Row) bool {
	i := lastNonEmpty(cur.Fields)
	if i < 0 || !unbalancedQuote(cur.Fields[i]) {
		return false
	}
	j := lastNonEmpty(next.Fields)
	if j < 0 || next.Fields[0] == "" {
		return false
	}
	// The synthetic row only fills its leading columns; a fully populated
	// row is real data, not a continuation.
	return j < len(next.Fields)-1
}

// Merge folds next into cur: the continuation (next's first field) is
// newline-joined onto cur's truncated field, and the remaining leading
// values shift into the following column positions. The merged field loses
// its stray quote characters.
func Merge(cur, next types.Row) types.Row {
	i := lastNonEmpty(cur.Fields)
	merged := cur.Fields[i] + "\n" + next.Fields[0]
	cur.Fields[i] = strings.ReplaceAll(merged, `"`, "")

	j := lastNonEmpty(next.Fields)
	for k := 1; k <= j && i+k < len(cur.Fields); k++ {
		cur.Fields[i+k] = next.Fields[k]
	}
	return cur
}

// Rows runs the bulk pairwise scan, merging each detected pair and
// discarding the synthetic second row.
func Rows(rows []types.Row) []types.Row {
	if len(rows) < 2 {
		return rows
	}
	out := make([]types.Row, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		if i+1 < len(rows) && NeedsMerge(rows[i], rows[i+1]) {
			out = append(out, Merge(rows[i], rows[i+1]))
			i++
			continue
		}
		out = append(out, rows[i])
	}
	return out
}

// Repairer is the streaming variant: it holds back at most one pending row
// until the next row arrives, so the merge decision always has its one-row
// lookahead. Flush must be called at end of stream.
type Repairer struct {
	pending *types.Row
}

// Push offers the next parsed row and returns zero or more rows that are
// now known to be final.
func (r *Repairer) Push(row types.Row) []types.Row {
	if r.pending == nil {
		r.pending = &row
		return nil
	}
	if NeedsMerge(*r.pending, row) {
		merged := Merge(*r.pending, row)
		r.pending = &merged
		return nil
	}
	done := *r.pending
	r.pending = &row
	return []types.Row{done}
}

// Flush releases the pending row, if any, at end of stream.
func (r *Repairer) Flush() []types.Row {
	if r.pending == nil {
		return nil
	}
	done := *r.pending
	r.pending = nil
	return []types.Row{done}
}

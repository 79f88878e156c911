package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

func row(fields ...string) types.Row {
	return types.Row{Fields: fields, Quoted: make([]bool, len(fields))}
}

func TestNeedsMerge_SplitQuotedField(t *testing.T) {
	cur := row("1", "Widget", `"big`, "")
	next := row("red widget", "9.99", "", "")
	assert.True(t, NeedsMerge(cur, next))
}

func TestNeedsMerge_BalancedQuotesNoMerge(t *testing.T) {
	cur := row("1", "Widget", `"fine"`, "x")
	next := row("2", "Gadget", "", "")
	assert.False(t, NeedsMerge(cur, next))
}

func TestNeedsMerge_NoQuotesNoMerge(t *testing.T) {
	cur := row("1", "Widget", "plain", "")
	next := row("continuation", "", "", "")
	assert.False(t, NeedsMerge(cur, next))
}

func TestNeedsMerge_FullyPopulatedNextIsRealRow(t *testing.T) {
	cur := row("1", `"open`, "", "")
	next := row("2", "Gadget", "3.50", "blue")
	assert.False(t, NeedsMerge(cur, next))
}

func TestNeedsMerge_EmptyHeadNoMerge(t *testing.T) {
	cur := row("1", `"open`)
	next := row("", "tail", "")
	assert.False(t, NeedsMerge(cur, next))
}

func TestMerge_JoinsAndShifts(t *testing.T) {
	cur := row("1", `"line1`, "", "")
	next := row("line2", "9.99", "", "")
	got := Merge(cur, next)
	assert.Equal(t, []string{"1", "line1\nline2", "9.99", ""}, got.Fields)
}

func TestRows_PairwiseScan(t *testing.T) {
	rows := []types.Row{
		row("id", "note", "price"),
		row("1", `"part one`, ""),
		row("part two", "5.00", ""),
		row("2", "plain", "3.00"),
	}
	got := Rows(rows)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "part one\npart two", "5.00"}, got[1].Fields)
	assert.Equal(t, []string{"2", "plain", "3.00"}, got[2].Fields)
}

func TestRows_NoFalseMerge(t *testing.T) {
	rows := []types.Row{
		row("1", "a", "b"),
		row("2", "c", "d"),
	}
	got := Rows(rows)
	assert.Equal(t, rows, got)
}

func TestRepairer_HoldsOnePendingRow(t *testing.T) {
	var r Repairer

	out := r.Push(row("1", `"open`, ""))
	assert.Empty(t, out, "first row must be withheld for lookahead")

	out = r.Push(row("closed", "2.50", ""))
	assert.Empty(t, out, "merged row stays pending")

	out = r.Push(row("2", "plain", "x"))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"1", "open\nclosed", "2.50"}, out[0].Fields)

	out = r.Flush()
	require.Len(t, out, 1)
	assert.Equal(t, []string{"2", "plain", "x"}, out[0].Fields)

	assert.Empty(t, r.Flush())
}

func TestRepairer_MatchesBulk(t *testing.T) {
	rows := []types.Row{
		row("id", "note", "price"),
		row("1", `"part one`, ""),
		row("part two", "5.00", ""),
		row("2", "plain", "3.00"),
	}
	bulk := Rows(cloneRows(rows))

	var r Repairer
	var streamed []types.Row
	for _, rr := range cloneRows(rows) {
		streamed = append(streamed, r.Push(rr)...)
	}
	streamed = append(streamed, r.Flush()...)

	require.Equal(t, len(bulk), len(streamed))
	for i := range bulk {
		assert.Equal(t, bulk[i].Fields, streamed[i].Fields)
	}
}

func cloneRows(rows []types.Row) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		fields := make([]string, len(r.Fields))
		copy(fields, r.Fields)
		out[i] = types.Row{Fields: fields, Quoted: r.Quoted, Line: r.Line}
	}
	return out
}

package jtcsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

func TestMarshal_Basic(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"id", "name"}

	out, err := Marshal([]map[string]any{
		{"id": int64(1), "name": "John"},
		{"id": int64(2), "name": "Jane"},
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,John\n2,Jane\n", string(out))
}

func TestMarshal_HeaderOrderWithoutTemplate(t *testing.T) {
	out, err := Marshal([]map[string]any{{"b": "2", "a": "1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(out))
}

func TestMarshal_RenameAppliesToHeadersOnly(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"name"}
	opts.RenameMap = map[string]string{"name": "full_name"}

	out, err := Marshal([]map[string]any{{"name": "John"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "full_name\nJohn\n", string(out))
}

func TestMarshal_QuotingRules(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"v"}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"delimiter", "a,b", "\"a,b\""},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "a\nb", "\"a\nb\""},
		{"plain", "plain", "plain"},
		{"nil", nil, ""},
		{"float", 3.5, "3.5"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal([]map[string]any{{"v": tt.in}}, opts)
			require.NoError(t, err)
			assert.Equal(t, "v\n"+tt.want+"\n", string(out))
		})
	}
}

func TestMarshal_NeutralizesFormulaTriggers(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"v"}

	out, err := Marshal([]map[string]any{{"v": "=SUM(A1)"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "v\n'=SUM(A1)\n", string(out))

	// Neutralization runs before the quoting decision.
	out, err = Marshal([]map[string]any{{"v": "=a,b"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "v\n\"'=a,b\"\n", string(out))
}

func TestMarshal_NeutralizationDisabled(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"v"}
	opts.NeutralizeFormulas = false

	out, err := Marshal([]map[string]any{{"v": "=SUM(A1)"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "v\n=SUM(A1)\n", string(out))
}

func TestMarshal_CRLFAndBOM(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"a"}
	opts.CRLF = true
	opts.IncludeBOM = true

	out, err := Marshal([]map[string]any{{"a": "1"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFa\r\n1\r\n", string(out))
}

func TestMarshal_CustomDelimiter(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"a", "b"}
	opts.Delimiter = ';'

	out, err := Marshal([]map[string]any{{"a": "1", "b": "x;y"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;\"x;y\"\n", string(out))
}

func TestRoundTrip_RecordsSurviveSerializeThenParse(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"id", "name", "score", "active", "note"}

	records := []map[string]any{
		{"id": int64(1), "name": "John", "score": 3.5, "active": true, "note": "line1\nline2"},
		{"id": int64(-2), "name": "say \"hi\"", "score": 0.25, "active": false, "note": nil},
		{"id": int64(3), "name": "=SUM(A1)", "score": 1.5, "active": true, "note": "a,b"},
	}

	out, err := Marshal(records, opts)
	require.NoError(t, err)

	result, err := Parse(out, opts)
	require.NoError(t, err)
	assert.Equal(t, records, result.Records)
}

func TestRoundTrip_CRLFInsideQuotedField(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"id", "note"}

	records := []map[string]any{{"id": int64(1), "note": "a\r\nb"}}

	out, err := Marshal(records, opts)
	require.NoError(t, err)
	assert.Equal(t, "id,note\n1,\"a\r\nb\"\n", string(out))

	result, err := Parse(out, opts)
	require.NoError(t, err)
	assert.Equal(t, records, result.Records)

	again, err := Marshal(result.Records, opts)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestRoundTrip_SerializeParseSerializeIsIdentity(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"id", "v"}

	records := []map[string]any{
		{"id": int64(1), "v": "plain"},
		{"id": int64(2), "v": "with \"quotes\" inside"},
		{"id": int64(3), "v": "=danger"},
		{"id": int64(4), "v": "a,b\nc"},
	}

	first, err := Marshal(records, opts)
	require.NoError(t, err)
	parsed, err := Parse(first, opts)
	require.NoError(t, err)
	second, err := Marshal(parsed.Records, opts)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestEncoder_MatchesMarshal(t *testing.T) {
	opts := types.DefaultOptions()
	opts.HeaderTemplate = []string{"id", "name"}
	records := []map[string]any{
		{"id": int64(1), "name": "John"},
		{"id": int64(2), "name": "a,b"},
	}

	want, err := Marshal(records, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	enc, err := New().NewEncoder(&buf, []string{"id", "name"}, opts)
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, enc.Encode(rec))
	}
	assert.Equal(t, string(want), buf.String())
}

func TestNewEncoder_Validation(t *testing.T) {
	var verr *types.ValidationError

	_, err := New().NewEncoder(nil, []string{"a"}, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "w", verr.Argument)

	_, err = New().NewEncoder(&strings.Builder{}, nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "headers", verr.Argument)
}

package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// feedAll pushes the input in the given chunk sizes and collects every
// emitted line plus the flush remainder.
func feedAll(t *testing.T, input string, chunkSize int) []string {
	t.Helper()
	r := NewReassembler()
	var lines []string
	for len(input) > 0 {
		n := chunkSize
		if n > len(input) {
			n = len(input)
		}
		lines = append(lines, r.Feed([]byte(input[:n]))...)
		input = input[n:]
	}
	last, ok, err := r.Flush()
	require.NoError(t, err)
	if ok {
		lines = append(lines, last)
	}
	return lines
}

func TestReassembler_WholeInputAtOnce(t *testing.T) {
	lines := feedAll(t, "a,b\nc,d\ne,f", 1024)
	assert.Equal(t, []string{"a,b", "c,d", "e,f"}, lines)
}

func TestReassembler_ChunkBoundaryInvariance(t *testing.T) {
	input := "id,note\n1,\"multi\nline\"\n2,\"quoted,comma\"\n3,plain\n"
	want := feedAll(t, input, len(input))

	for size := 1; size <= len(input); size++ {
		assert.Equal(t, want, feedAll(t, input, size), "chunk size %d", size)
	}
}

func TestReassembler_QuotedSpanAcrossChunks(t *testing.T) {
	r := NewReassembler()

	lines := r.Feed([]byte("1,\"beginning"))
	assert.Empty(t, lines, "open quoted span must be withheld")

	lines = r.Feed([]byte(" and end\"\n2,x\n"))
	assert.Equal(t, []string{"1,\"beginning and end\"", "2,x"}, lines)
}

func TestReassembler_NewlineInsideQuotesWithheld(t *testing.T) {
	r := NewReassembler()
	lines := r.Feed([]byte("1,\"a\nb"))
	assert.Empty(t, lines)

	lines = r.Feed([]byte("\"\n"))
	require.Len(t, lines, 1)
	assert.Equal(t, "1,\"a\nb\"", lines[0])
}

func TestReassembler_CRLF(t *testing.T) {
	lines := feedAll(t, "a,b\r\nc,d\r\n", 3)
	assert.Equal(t, []string{"a,b", "c,d"}, lines)
}

func TestReassembler_FlushUnterminatedQuote(t *testing.T) {
	r := NewReassembler()
	r.Feed([]byte("ok,row\n1,\"never closed"))
	_, _, err := r.Flush()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnclosedQuote))

	var perr *types.ParsingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestReassembler_FlushEmpty(t *testing.T) {
	r := NewReassembler()
	line, ok, err := r.Flush()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, line)
}

func TestReassembler_EscapedQuotesKeepParity(t *testing.T) {
	lines := feedAll(t, "1,\"say \"\"hi\"\"\"\n2,x\n", 4)
	assert.Equal(t, []string{"1,\"say \"\"hi\"\"\"", "2,x"}, lines)
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, []byte("a,b"), StripBOM([]byte("\xEF\xBB\xBFa,b")))
	assert.Equal(t, []byte("a,b"), StripBOM([]byte("a,b")))
	assert.Empty(t, StripBOM([]byte("\xEF\xBB\xBF")))
}

func TestBOMSkippingReader(t *testing.T) {
	r := NewBOMSkippingReader(bytes.NewReader([]byte("\xEF\xBB\xBFid,name\n")))
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n", string(data))
}

func TestBOMSkippingReader_NoBOM(t *testing.T) {
	r := NewBOMSkippingReader(strings.NewReader("id,name\n"))
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n", string(data))
}

func TestBOMSkippingReader_ShortInput(t *testing.T) {
	r := NewBOMSkippingReader(strings.NewReader("ab"))
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}

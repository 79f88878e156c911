package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

func defaultNormalizer() *Normalizer {
	return New(types.DefaultOptions())
}

func TestValue_Numbers(t *testing.T) {
	n := defaultNormalizer()

	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"+3", int64(3)},
		{"3.14", 3.14},
		{"-0.5", -0.5},
		{".5", 0.5},
		{"1e3", 1000.0},
		{"2E-2", 0.02},
		{" 42 ", int64(42)},
		{"1.2.3", "1.2.3"},
		{"42abc", "42abc"},
		{"0x1F", "0x1F"},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Value(tt.in, false), "input %q", tt.in)
	}
}

func TestValue_Booleans(t *testing.T) {
	n := defaultNormalizer()

	assert.Equal(t, true, n.Value("true", false))
	assert.Equal(t, false, n.Value("FALSE", false))
	assert.Equal(t, true, n.Value("True", false))
	// Literal match only, never heuristic.
	assert.Equal(t, "yes", n.Value("yes", false))
	assert.Equal(t, int64(1), n.Value("1", false))
	assert.Equal(t, "truthy", n.Value("truthy", false))
}

func TestValue_EmptyHandling(t *testing.T) {
	n := defaultNormalizer()

	assert.Nil(t, n.Value("", false))
	// Quoted empty stays an empty string under the default options.
	assert.Equal(t, "", n.Value("", true))

	opts := types.DefaultOptions()
	opts.EmptyQuotedAsString = false
	strict := New(opts)
	assert.Nil(t, strict.Value("", true))
}

func TestValue_TrimDisabled(t *testing.T) {
	opts := types.DefaultOptions()
	opts.TrimValues = false
	n := New(opts)

	assert.Equal(t, " 42 ", n.Value(" 42 ", false))
	assert.Equal(t, " text", n.Value(" text", false))
}

func TestValue_CoercionDisabled(t *testing.T) {
	opts := types.DefaultOptions()
	opts.CoerceNumbers = false
	opts.CoerceBooleans = false
	n := New(opts)

	assert.Equal(t, "42", n.Value("42", false))
	assert.Equal(t, "true", n.Value("true", false))
}

func TestValue_StripsProtectionMarker(t *testing.T) {
	n := defaultNormalizer()

	// A previously-neutralized formula comes back as the bare value, so a
	// second round trip does not accumulate markers.
	assert.Equal(t, "=SUM(A1)", n.Value("'=SUM(A1)", false))
	assert.Equal(t, int64(-5), n.Value("'-5", false))
	// An apostrophe guarding nothing is ordinary data.
	assert.Equal(t, "'hello", n.Value("'hello", false))
}

// Package normalize implements the per-field value pipeline and the
// spreadsheet formula-injection neutralizer.
//
// The pipeline order matters: trim, strip a previously-applied protection
// marker (so round-tripping twice does not accumulate escapes), numeric
// coercion, boolean coercion, then empty handling. Coercion is lexical
// only: numbers must match an integer/decimal pattern and booleans must be
// literal true/false, never heuristic.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// numberPattern matches integer and decimal lexical forms, including
// exponent notation.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Normalizer applies the configured field pipeline.
type Normalizer struct {
	trim            bool
	coerceNumbers   bool
	coerceBooleans  bool
	quotedEmptyKept bool
}

// New builds a Normalizer from parse options.
func New(opts *types.Options) *Normalizer {
	return &Normalizer{
		trim:            opts.TrimValues,
		coerceNumbers:   opts.CoerceNumbers,
		coerceBooleans:  opts.CoerceBooleans,
		quotedEmptyKept: opts.EmptyQuotedAsString,
	}
}

// Value runs one field through the pipeline. quoted reports whether the
// field was quoted in the source; it decides whether an empty value becomes
// "" or nil. The returned value is nil, string, bool, int64, or float64.
func (n *Normalizer) Value(raw string, quoted bool) any {
	v := raw
	if n.trim {
		v = strings.TrimSpace(v)
	}
	v = Deneutralize(v)

	if v == "" {
		if quoted && n.quotedEmptyKept {
			return ""
		}
		return nil
	}

	if n.coerceNumbers && numberPattern.MatchString(v) {
		if !strings.ContainsAny(v, ".eE") {
			if i, err := strconv.ParseInt(v, 10, 64); err == nil {
				return i
			}
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	if n.coerceBooleans {
		switch strings.ToLower(v) {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return v
}

// IsNumeric reports whether s matches the numeric lexical pattern used for
// coercion.
func IsNumeric(s string) bool {
	return numberPattern.MatchString(s)
}

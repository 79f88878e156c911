package types

import "fmt"

// Strategy identifies one of the three row-parsing strategies. The set is
// closed; dispatch is a switch, not runtime polymorphism.
type Strategy int

const (
	// StrategySimple splits on delimiters and line terminators directly.
	// Used only when analysis found no quoting at all.
	StrategySimple Strategy = iota
	// StrategyQuoteAware runs the two-state quote machine on input without
	// embedded newlines.
	StrategyQuoteAware
	// StrategyStandard is the fallback: logical-line reassembly plus
	// quote-aware field splitting, tolerating embedded newlines.
	StrategyStandard
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "simple"
	case StrategyQuoteAware:
		return "quote-aware"
	case StrategyStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// StructureDescriptor is the analyzer's classification of an input sample.
// Derived once per distinct input signature and immutable afterwards.
type StructureDescriptor struct {
	Delimiter           byte
	HasQuotes           bool
	HasEscapedQuotes    bool
	HasNewlinesInFields bool
	FieldConsistency    bool
	RecommendedStrategy Strategy
}

// Key serializes the descriptor into a stable cache key.
func (d StructureDescriptor) Key() string {
	return fmt.Sprintf("%c|%t|%t|%t|%t|%s",
		d.Delimiter, d.HasQuotes, d.HasEscapedQuotes, d.HasNewlinesInFields,
		d.FieldConsistency, d.RecommendedStrategy)
}

// Package types provides shared type definitions for the jtcsv engine.
//
// This package defines the domain types used across the engine's components:
// parse options, the structure descriptor produced by input analysis, raw and
// normalized row representations, and the error taxonomy.
//
// # Core Types
//
// Options is the configuration surface recognized by every entry point:
//
//	opts := types.DefaultOptions()
//	opts.OutputMode = types.OutputObjects
//	opts.MaxRows = 10000
//
// StructureDescriptor classifies an input sample and selects a parsing
// strategy:
//
//	desc := analyze.Analyze(sample, ',')
//	switch desc.RecommendedStrategy {
//	case types.StrategySimple:      // no quoting anywhere
//	case types.StrategyQuoteAware:  // quotes, no embedded newlines
//	case types.StrategyStandard:    // embedded newlines or inconsistent fields
//	}
//
// # Error Taxonomy
//
// The engine reports failures through structured error types rather than
// prose messages:
//
//   - ValidationError: malformed call arguments
//   - ConfigurationError: invalid option combination or value
//   - ParsingError: structural input failure, carries line/column context
//   - FieldCountError: row length does not match the header count
//   - LimitError: row ceiling exceeded, carries limit and actual count
//
// All implement error and support errors.As; the parse-side types
// additionally unwrap to sentinel errors for errors.Is checks:
//
//	if errors.Is(err, types.ErrUnclosedQuote) {
//	    // quoted field left open at end of input
//	}
package types

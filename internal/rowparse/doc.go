// Package rowparse turns raw delimited text into ordered field sequences.
//
// Three strategies share one contract. Simple splits on delimiters and line
// terminators directly and is used only when analysis found no quoting.
// QuoteAware runs a single-pass two-state machine handling RFC-4180 quoting.
// Standard reassembles logical lines by quote parity before field splitting,
// tolerating newlines embedded in quoted fields.
//
// The strategy set is closed: a Parser is compiled once per structure
// descriptor and dispatches through a switch. Compiled parsers are memoized
// in a bounded LRU cache keyed by the descriptor's serialized form.
package rowparse

// Package analyze classifies an input sample so the engine can pick a
// parsing strategy. The scan is bounded, so classification stays O(sample)
// regardless of total input size. The result is a heuristic: the selected
// parser must still tolerate inputs more complex than the sample suggested.
package analyze

import (
	"strings"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

const (
	// maxSampleBytes bounds how much input the analyzer scans.
	maxSampleBytes = 8192
	// maxSampleLines bounds how many lines contribute to classification.
	maxSampleLines = 20
)

// Analyze inspects a bounded prefix of sample and returns a structure
// descriptor recommending one of the three parsing strategies:
//
//   - no quotes and no embedded newlines: Simple
//   - quotes present, no embedded newlines: QuoteAware
//   - anything else (embedded newlines, inconsistent fields): Standard
func Analyze(sample string, delim byte) types.StructureDescriptor {
	if len(sample) > maxSampleBytes {
		sample = sample[:maxSampleBytes]
	}

	desc := types.StructureDescriptor{
		Delimiter:        delim,
		FieldConsistency: true,
	}

	desc.HasQuotes = strings.IndexByte(sample, '"') >= 0
	if desc.HasQuotes {
		desc.HasEscapedQuotes = strings.Contains(sample, `""`)
	}

	lines := strings.Split(sample, "\n")
	if len(lines) > maxSampleLines {
		lines = lines[:maxSampleLines]
	}

	wantFields := -1
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		// An odd quote count on a physical line signals a quoted field
		// spanning a line break.
		if strings.Count(line, `"`)%2 == 1 {
			desc.HasNewlinesInFields = true
		}
		n := strings.Count(line, string(delim)) + 1
		if wantFields == -1 {
			wantFields = n
		} else if n != wantFields {
			desc.FieldConsistency = false
		}
	}

	switch {
	case !desc.HasQuotes && !desc.HasNewlinesInFields:
		desc.RecommendedStrategy = types.StrategySimple
	case desc.HasQuotes && !desc.HasNewlinesInFields && desc.FieldConsistency:
		desc.RecommendedStrategy = types.StrategyQuoteAware
	default:
		desc.RecommendedStrategy = types.StrategyStandard
	}
	return desc
}

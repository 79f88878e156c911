package detect

import (
	"strings"
)

const (
	// sampleLimit bounds how much of the input is scanned for scoring.
	sampleLimit = 4096
	// consistencyLines is how many leading lines are checked for a
	// consistent field count.
	consistencyLines = 5
	// DefaultDelimiter is returned when no candidate occurs in the sample.
	DefaultDelimiter = byte(',')
)

// Score computes the detection score for one candidate: its occurrence
// count in the bounded prefix, doubled when splitting the leading lines by
// the candidate yields a consistent field count above one.
func Score(sample string, candidate byte) int {
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	count := strings.Count(sample, string(candidate))
	if count == 0 {
		return 0
	}
	if consistentFieldCount(sample, candidate) {
		count *= 2
	}
	return count
}

// consistentFieldCount reports whether the first few lines split into the
// same field count greater than one.
func consistentFieldCount(sample string, candidate byte) bool {
	lines := strings.Split(sample, "\n")
	want := -1
	checked := 0
	for _, line := range lines {
		if checked >= consistencyLines {
			break
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		n := strings.Count(line, string(candidate)) + 1
		if n < 2 {
			return false
		}
		if want == -1 {
			want = n
		} else if n != want {
			return false
		}
		checked++
	}
	return want > 1 && checked > 0
}

// Detect scores every candidate against the sample and returns the winner.
// Ties resolve to candidate order; a sample with no candidate occurrences
// returns fallback. An empty candidate set also returns fallback.
func Detect(sample string, candidates []byte, fallback byte) byte {
	if fallback == 0 {
		fallback = DefaultDelimiter
	}
	best := fallback
	bestScore := 0
	for _, c := range candidates {
		if s := Score(sample, c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	if bestScore == 0 {
		return fallback
	}
	return best
}

// Package detect implements delimiter auto-detection with a bounded,
// fingerprint-keyed LRU cache.
//
// Detection scores each candidate delimiter against a bounded prefix of the
// input: raw occurrence count plus a consistency bonus when the candidate
// splits the first few lines into an equal field count greater than one.
// The highest score wins; ties resolve to candidate list order. A sample in
// which no candidate occurs yields the configured fallback delimiter.
//
// Results are memoized keyed by an xxhash fingerprint of the sample prefix
// and candidate set, so repeated detection over identical content returns
// without rescanning. The cache is bounded with least-recently-used
// eviction and is safe for concurrent use.
package detect

package detect

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the detection cache capacity when none is configured.
const DefaultCacheSize = 256

// Detector memoizes delimiter detection keyed by a fingerprint of the
// sample prefix and candidate set. The cache is bounded with LRU eviction;
// the mutex covers the compound lookup-then-insert so concurrent callers
// with the same fingerprint do not race on insertion.
type Detector struct {
	fallback byte

	mu    sync.Mutex
	cache *lru.Cache[uint64, byte]
}

// NewDetector creates a Detector with the given cache capacity. A capacity
// of zero or less uses DefaultCacheSize.
func NewDetector(capacity int) *Detector {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	cache, err := lru.New[uint64, byte](capacity)
	if err != nil {
		// Only reachable with a non-positive size, which is handled above.
		cache, _ = lru.New[uint64, byte](DefaultCacheSize)
	}
	return &Detector{
		fallback: DefaultDelimiter,
		cache:    cache,
	}
}

// Detect returns the detected delimiter for the sample, serving repeated
// calls for identical (sample, candidates) pairs from the cache.
func (d *Detector) Detect(sample string, candidates []byte) byte {
	key := fingerprint(sample, candidates)

	d.mu.Lock()
	defer d.mu.Unlock()

	if delim, ok := d.cache.Get(key); ok {
		return delim
	}
	delim := Detect(sample, candidates, d.fallback)
	d.cache.Add(key, delim)
	return delim
}

// Size returns the current number of cached detections.
func (d *Detector) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.Len()
}

// fingerprint hashes the bounded sample prefix and the candidate set. The
// zero byte separator cannot occur in a candidate list.
func fingerprint(sample string, candidates []byte) uint64 {
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	h := xxhash.New()
	_, _ = h.WriteString(sample)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(candidates)
	return h.Sum64()
}

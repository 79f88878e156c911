package rowparse

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// DefaultCompilerCacheSize is the compiled-parser cache capacity when none
// is configured.
const DefaultCompilerCacheSize = 64

// Compiler memoizes compiled parsers keyed by the descriptor's serialized
// form. Entries are immutable and replaced wholesale on LRU eviction; the
// mutex covers the compound lookup-then-insert.
type Compiler struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Parser]
}

// NewCompiler creates a Compiler with the given cache capacity. A capacity
// of zero or less uses DefaultCompilerCacheSize.
func NewCompiler(capacity int) *Compiler {
	if capacity <= 0 {
		capacity = DefaultCompilerCacheSize
	}
	cache, err := lru.New[string, *Parser](capacity)
	if err != nil {
		cache, _ = lru.New[string, *Parser](DefaultCompilerCacheSize)
	}
	return &Compiler{cache: cache}
}

// Compile returns the parser for desc, reusing a cached instance when the
// descriptor was seen before.
func (c *Compiler) Compile(desc types.StructureDescriptor) *Parser {
	key := desc.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.cache.Get(key); ok {
		return p
	}
	p := New(desc)
	c.cache.Add(key, p)
	return p
}

// Size returns the current number of cached parsers.
func (c *Compiler) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

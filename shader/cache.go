package shader

import "sync"

// Cache memoizes generated sources per variant. Generation is pure, so
// the variant alone is a sufficient key; parameter changes flow through
// uniforms and never invalidate the text.
type Cache struct {
	mu      sync.RWMutex
	sources map[Variant]Source
}

// NewCache returns an empty source cache.
func NewCache() *Cache {
	return &Cache{sources: make(map[Variant]Source, 2)}
}

// Get returns the cached source for a variant, generating it on first use.
func (c *Cache) Get(v Variant) Source {
	c.mu.RLock()
	src, ok := c.sources[v]
	c.mu.RUnlock()
	if ok {
		return src
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok = c.sources[v]; ok {
		return src
	}
	src = Build(v)
	c.sources[v] = src
	return src
}

package config

import "sync"

type cacheKey struct {
	namespace string
	item      string
}

// Cache is the process-local resolved-value cache: a read-mostly map keyed by
// (namespace, item), node dimension already stripped. Entries live until
// Clear — there is no eviction and no per-entry expiry; the setting space is
// small and never shrinks. Clear is reserved for the node bootstrap.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]any
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]any)}
}

func (c *Cache) Get(namespace, item string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey{namespace, item}]
	return v, ok
}

func (c *Cache) Put(namespace, item string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{namespace, item}] = value
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]any)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

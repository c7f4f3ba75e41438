package main

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
)

const defaultCacheCapacity = 1000

// responseCache memoizes LLM responses by prompt hash. Eviction is by
// insertion order, not LRU: when capacity is exceeded the oldest-inserted
// entries are removed until the cache is back under capacity. Stale entries
// are acceptable since keys are content hashes of the full prompt.
type responseCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]string
	order    []string // insertion order, oldest first
}

func newResponseCache(capacity int) *responseCache {
	if capacity < 1 {
		capacity = defaultCacheCapacity
	}
	return &responseCache{
		capacity: capacity,
		entries:  make(map[string]string, capacity),
	}
}

// cacheKey returns the content hash used as a cache key for a prompt.
func cacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *responseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *responseCache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = value
		return
	}

	if len(c.entries) >= c.capacity {
		drop := len(c.entries) - c.capacity + 1
		for _, old := range c.order[:drop] {
			delete(c.entries, old)
		}
		c.order = c.order[drop:]
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

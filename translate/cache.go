package translate

import (
	"container/list"
	"sync"
)

// KV is the injectable key-value store backing the translation cache.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// LRUCache is a bounded, thread-safe KV. When the cache is full the least
// recently used entry is evicted, keeping memory bounded for long sessions.
type LRUCache struct {
	capacity int
	mu       sync.Mutex
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type lruEntry struct {
	key   string
	value string
}

// NewLRUCache creates a cache bounded to capacity entries. A capacity of
// zero or less falls back to a default of 1024.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = 1024
	}
	return &LRUCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get retrieves a cached value and marks it recently used.
func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRUCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).value = value
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, value: value})
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

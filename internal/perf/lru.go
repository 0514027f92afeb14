package perf

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a fixed-capacity cache that evicts the least recently used
// entry on insert. It is safe for concurrent use.
type LRUCache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

// NewLRUCache returns a cache holding at most capacity entries. Capacities
// below one are raised to one.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	cache, err := lru.New[K, V](capacity)
	if err != nil {
		panic(fmt.Sprintf("perf: lru.New(%d): %v", capacity, err))
	}
	return &LRUCache[K, V]{cache: cache}
}

// Get returns the cached value and marks it most recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// Put inserts or replaces key, reporting whether an entry was evicted.
func (c *LRUCache[K, V]) Put(key K, value V) bool {
	return c.cache.Add(key, value)
}

// Contains checks for key without touching its recency.
func (c *LRUCache[K, V]) Contains(key K) bool {
	return c.cache.Contains(key)
}

func (c *LRUCache[K, V]) Len() int {
	return c.cache.Len()
}

func (c *LRUCache[K, V]) Purge() {
	c.cache.Purge()
}

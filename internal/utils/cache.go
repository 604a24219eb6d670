package utils

import (
	"log"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem wraps cached data with its expiry.
type cacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache is a size-bounded LRU whose entries also expire after a TTL.
type Cache[V any] struct {
	lruCache *lru.Cache[string, cacheItem[V]]
	now      func() time.Time
}

// NewCache creates a cache holding at most size entries.
func NewCache[V any](size int) *Cache[V] {
	l, err := lru.New[string, cacheItem[V]](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &Cache[V]{lruCache: l, now: time.Now}
}

// Set stores data under key for ttl.
func (c *Cache[V]) Set(key string, data V, ttl time.Duration) {
	c.lruCache.Add(key, cacheItem[V]{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get returns the entry for key; missing or expired entries report false.
func (c *Cache[V]) Get(key string) (V, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}

	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		var zero V
		return zero, false
	}

	return val.Data, true
}

func (c *Cache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}

// DeleteSuffix removes every key ending in suffix and returns how many went.
func (c *Cache[V]) DeleteSuffix(suffix string) int {
	removed := 0
	for _, key := range c.lruCache.Keys() {
		if strings.HasSuffix(key, suffix) && c.lruCache.Remove(key) {
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) Len() int {
	return c.lruCache.Len()
}

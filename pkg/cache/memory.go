package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds a MemoryCache created with size <= 0.
const DefaultMemoryEntries = 4096

// MemoryCache is an in-process LRU cache. Expired entries are dropped
// lazily on Get; the LRU bound keeps memory in check in between.
type MemoryCache struct {
	lru *lru.Cache[string, cacheEntry]
	now func() time.Time
}

// NewMemoryCache creates an LRU cache holding at most size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	l, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l, now: time.Now}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if entry.expired(c.now()) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a copy of data in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, entry)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) (int, error) {
	n := c.lru.Len()
	c.lru.Purge()
	return n, nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Close releases the entries.
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)

// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package ttlcache

import (
	"sync"
	"time"
)

var _ Cacher[struct{}, struct{}] = (*MapCache[struct{}, struct{}])(nil)

type mapEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// MapCache is an unbounded TTL map cache. It keeps the full Cacher contract
// (lazy expiration, hit/miss/eviction accounting) but never evicts for
// capacity; use it for key spaces that are naturally small. Stats reports a
// MaxSize of 0.
type MapCache[K comparable, V any] struct {
	mu         sync.RWMutex
	defaultTTL time.Duration
	items      map[K]mapEntry[V]
	hits       uint64
	misses     uint64
	evictions  uint64
	now        func() time.Time
}

// NewMapCache creates an unbounded map cache whose entries expire
// defaultTTL after insertion. A negative defaultTTL fails with
// ErrNegativeTTL.
func NewMapCache[K comparable, V any](defaultTTL time.Duration) (*MapCache[K, V], error) {
	if defaultTTL < 0 {
		return nil, ErrNegativeTTL
	}
	return &MapCache[K, V]{
		defaultTTL: defaultTTL,
		items:      make(map[K]mapEntry[V]),
		now:        time.Now,
	}, nil
}

// Put inserts or replaces an element with the default TTL.
func (c *MapCache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, c.defaultTTL)
}

// PutWithTTL inserts or replaces an element that expires ttl from now.
func (c *MapCache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = mapEntry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

// Get returns the entry with the key, if it exists and has not expired.
// An expired entry is removed and counted as a miss plus an eviction.
func (c *MapCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		if c.now().Before(e.expiresAt) {
			c.hits++
			return e.value, true
		}
		delete(c.items, key)
		c.evictions++
	}
	c.misses++
	var zero V
	return zero, false
}

// GetMany returns the resident, unexpired entries for keys.
func (c *MapCache[K, V]) GetMany(keys []K) map[K]V {
	result := make(map[K]V, len(keys))
	for _, key := range keys {
		if value, ok := c.Get(key); ok {
			result[key] = value
		}
	}
	return result
}

// PutMany inserts the items in order with the default TTL.
func (c *MapCache[K, V]) PutMany(items []Item[K, V]) {
	for _, item := range items {
		c.Put(item.Key, item.Value)
	}
}

// PutManyWithTTL inserts the items in order with the given TTL.
func (c *MapCache[K, V]) PutManyWithTTL(items []Item[K, V], ttl time.Duration) {
	for _, item := range items {
		c.PutWithTTL(item.Key, item.Value, ttl)
	}
}

// Evict removes the specified entry from the cache.
func (c *MapCache[K, V]) Evict(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Flush removes all entries and resets the statistics counters.
func (c *MapCache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]mapEntry[V])
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Len returns the number of elements in the cache.
func (c *MapCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns a consistent snapshot of the cache counters.
func (c *MapCache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Evictions: c.evictions,
		Size:      len(c.items),
	}
}

// PortionFilled returns fraction of cache currently filled. With no bound
// there is no meaningful ratio, so this reports 0 for an empty cache and 1
// otherwise.
func (c *MapCache[K, V]) PortionFilled() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items) == 0 {
		return 0
	}
	return 1
}

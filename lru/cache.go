// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lru provides the bounded expiring LRU cache.
package lru

import (
	"container/list"
	"sync"
	"time"

	"github.com/luxfi/ttlcache"
)

var _ ttlcache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// entry is a cache entry with its expiration instant.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe LRU cache with per-entry TTL and hit/miss/eviction
// accounting. A single mutex guards the entry map, the recency order, and
// the counters, so Stats always observes a consistent state.
//
// Expiration is lazy: an expired entry stays resident, and counted by Len,
// until the next Get for its key discovers it. There is no background sweep.
type Cache[K comparable, V any] struct {
	lock       sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	elements   map[K]*list.Element
	order      *list.List // Front = most recently used
	hits       uint64
	misses     uint64
	evictions  uint64
	now        func() time.Time
}

// New creates an LRU cache holding at most maxSize entries, each expiring
// defaultTTL after insertion unless PutWithTTL overrides it. maxSize must be
// at least 1 and defaultTTL must not be negative; invalid values fail with
// an error wrapping ttlcache.ErrConfig.
func New[K comparable, V any](maxSize int, defaultTTL time.Duration) (*Cache[K, V], error) {
	if maxSize < 1 {
		return nil, ttlcache.ErrInvalidMaxSize
	}
	if defaultTTL < 0 {
		return nil, ttlcache.ErrNegativeTTL
	}
	return &Cache[K, V]{
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		elements:   make(map[K]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}, nil
}

// Get returns the entry with the key, if it exists and has not expired.
// A live entry is moved to the most-recently-used position and counts a
// hit. An expired entry is removed and counts both a miss and an eviction.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		e := elem.Value.(*entry[K, V])
		if c.now().Before(e.expiresAt) {
			c.order.MoveToFront(elem)
			c.hits++
			return e.value, true
		}
		c.removeElement(elem)
		c.evictions++
	}
	c.misses++
	var zero V
	return zero, false
}

// Put inserts an element into the cache with the default TTL.
func (c *Cache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, c.defaultTTL)
}

// PutWithTTL inserts an element that expires ttl from now. A zero ttl
// expires the entry immediately: the next Get for it is a miss.
//
// An existing entry for the key is removed first, so the new entry always
// lands at the most-recently-used position. After insertion the cache
// evicts from the least-recently-used end until it is back within maxSize.
func (c *Cache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.removeElement(elem)
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: c.now().Add(ttl)}
	c.elements[key] = c.order.PushFront(e)

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		c.removeElement(oldest)
		c.evictions++
	}
}

// GetMany returns the resident, unexpired entries for keys. Each key is
// looked up with Get, so hits, misses, evictions, and recency are updated
// exactly as repeated Get calls would.
func (c *Cache[K, V]) GetMany(keys []K) map[K]V {
	result := make(map[K]V, len(keys))
	for _, key := range keys {
		if value, ok := c.Get(key); ok {
			result[key] = value
		}
	}
	return result
}

// PutMany inserts the items in order with the default TTL. Each item is its
// own admission step: later items observe the capacity state left by
// earlier ones, including any evictions they caused.
func (c *Cache[K, V]) PutMany(items []ttlcache.Item[K, V]) {
	for _, item := range items {
		c.Put(item.Key, item.Value)
	}
}

// PutManyWithTTL inserts the items in order, each expiring ttl from the
// time of its own insertion.
func (c *Cache[K, V]) PutManyWithTTL(items []ttlcache.Item[K, V], ttl time.Duration) {
	for _, item := range items {
		c.PutWithTTL(item.Key, item.Value, ttl)
	}
}

// Evict removes the specified entry from the cache. Explicit invalidation
// does not change any counter.
func (c *Cache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.removeElement(elem)
	}
}

// Flush removes all entries and resets the statistics counters. The
// configured max size and default TTL are unchanged.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.elements = make(map[K]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Len returns the number of elements in the cache, including entries that
// expired but have not yet been discovered by a Get.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.order.Len()
}

// Stats returns a consistent snapshot of the cache counters.
func (c *Cache[K, V]) Stats() ttlcache.Stats {
	c.lock.Lock()
	defer c.lock.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return ttlcache.Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
	}
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return float64(c.order.Len()) / float64(c.maxSize)
}

func (c *Cache[K, V]) removeElement(elem *list.Element) {
	e := elem.Value.(*entry[K, V])
	delete(c.elements, e.key)
	c.order.Remove(elem)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bytecache provides a sharded expiring LRU cache for serialized
// results. It trades the single-snapshot statistics of the lru package for
// lower lock contention under heavy concurrent load.
package bytecache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/ttlcache"
)

const (
	numShards = 256
	shardMask = numShards - 1
)

// Stats contains cache performance metrics. Counters are maintained with
// atomics, so a snapshot may interleave with concurrent operations; use the
// lru package where a fully consistent snapshot is required.
type Stats struct {
	EntriesCount uint64
	BytesSize    uint64
	GetCalls     uint64
	SetCalls     uint64
	Hits         uint64
	Misses       uint64
	Evictions    uint64
}

// Cache is a high-performance sharded LRU byte cache with per-entry
// expiration. Each shard holds its own intrusive recency list under its own
// lock; expired entries are discovered lazily on read.
type Cache struct {
	shards     [numShards]*byteShard
	maxBytes   int64
	defaultTTL time.Duration
	getCalls   uint64
	setCalls   uint64
	hits       uint64
	misses     uint64
	evictions  uint64
}

type byteShard struct {
	mu          sync.RWMutex
	items       map[string]*byteEntry
	head, tail  *byteEntry
	currentSize int64
	maxSize     int64
}

type byteEntry struct {
	key        string
	value      []byte
	size       int
	expiresAt  time.Time
	prev, next *byteEntry
}

// New creates a byte cache bounded by maxBytes of key+value data, with
// entries expiring defaultTTL after insertion unless SetWithTTL overrides
// it. maxBytes must be at least 1 and defaultTTL must not be negative.
func New(maxBytes int, defaultTTL time.Duration) (*Cache, error) {
	if maxBytes < 1 {
		return nil, ttlcache.ErrInvalidMaxSize
	}
	if defaultTTL < 0 {
		return nil, ttlcache.ErrNegativeTTL
	}
	c := &Cache{maxBytes: int64(maxBytes), defaultTTL: defaultTTL}
	perShard := int64(maxBytes) / numShards
	if perShard < 1 {
		perShard = 1
	}
	for i := range c.shards {
		c.shards[i] = &byteShard{
			items:   make(map[string]*byteEntry),
			maxSize: perShard,
		}
	}
	return c, nil
}

func (c *Cache) shard(key []byte) *byteShard {
	h := uint8(0)
	for _, b := range key {
		h ^= b
	}
	return c.shards[h&shardMask]
}

// Reset clears all cached entries and zeroes the statistics counters.
func (c *Cache) Reset() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.items = make(map[string]*byteEntry)
		s.head, s.tail = nil, nil
		s.currentSize = 0
		s.mu.Unlock()
	}
	atomic.StoreUint64(&c.getCalls, 0)
	atomic.StoreUint64(&c.setCalls, 0)
	atomic.StoreUint64(&c.hits, 0)
	atomic.StoreUint64(&c.misses, 0)
	atomic.StoreUint64(&c.evictions, 0)
}

// Del removes a key from the cache. Explicit invalidation is not counted
// as an eviction.
func (c *Cache) Del(key []byte) {
	s := c.shard(key)
	k := string(key)
	s.mu.Lock()
	if e, ok := s.items[k]; ok {
		s.unlink(e)
		s.currentSize -= int64(e.size)
		delete(s.items, k)
	}
	s.mu.Unlock()
}

// Has reports whether an unexpired entry exists for the key. It is a pure
// peek: no counters change and no expired entry is removed.
func (c *Cache) Has(key []byte) bool {
	s := c.shard(key)
	k := string(key)
	s.mu.RLock()
	e, ok := s.items[k]
	live := ok && time.Now().Before(e.expiresAt)
	s.mu.RUnlock()
	return live
}

// Get looks up a value by key, appending it to dst if provided. An expired
// entry is removed and counted as a miss plus an eviction.
func (c *Cache) Get(dst, key []byte) ([]byte, bool) {
	atomic.AddUint64(&c.getCalls, 1)
	s := c.shard(key)
	k := string(key)

	s.mu.Lock()
	e, ok := s.items[k]
	if ok {
		if time.Now().Before(e.expiresAt) {
			s.moveToFront(e)
			val := e.value
			s.mu.Unlock()
			atomic.AddUint64(&c.hits, 1)
			if dst == nil {
				return append([]byte(nil), val...), true
			}
			return append(dst[:0], val...), true
		}
		s.unlink(e)
		s.currentSize -= int64(e.size)
		delete(s.items, k)
		atomic.AddUint64(&c.evictions, 1)
	}
	s.mu.Unlock()

	atomic.AddUint64(&c.misses, 1)
	if dst == nil {
		return nil, false
	}
	return dst[:0], false
}

// Set stores a key/value pair with the default TTL.
func (c *Cache) Set(key, value []byte) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a key/value pair that expires ttl from now. A zero ttl
// expires the entry immediately. Entries larger than a shard are dropped.
func (c *Cache) SetWithTTL(key, value []byte, ttl time.Duration) {
	atomic.AddUint64(&c.setCalls, 1)
	s := c.shard(key)
	k := string(key)
	v := append([]byte(nil), value...)
	entrySize := len(k) + len(v)
	expiresAt := time.Now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Entry too large for shard
	if int64(entrySize) > s.maxSize {
		return
	}

	// Overwrite replaces the entry in place and refreshes its recency.
	if e, ok := s.items[k]; ok {
		s.currentSize -= int64(e.size)
		e.value = v
		e.size = entrySize
		e.expiresAt = expiresAt
		s.currentSize += int64(entrySize)
		s.moveToFront(e)
		return
	}

	// Evict from the cold end until the new entry fits.
	for s.currentSize+int64(entrySize) > s.maxSize && s.tail != nil {
		old := s.tail
		s.unlink(old)
		s.currentSize -= int64(old.size)
		delete(s.items, old.key)
		atomic.AddUint64(&c.evictions, 1)
	}

	e := &byteEntry{key: k, value: v, size: entrySize, expiresAt: expiresAt}
	s.items[k] = e
	s.pushFront(e)
	s.currentSize += int64(entrySize)
}

// UpdateStats populates the provided stats struct.
func (c *Cache) UpdateStats(s *Stats) {
	if s == nil {
		return
	}
	var entries, size uint64
	for _, sh := range c.shards {
		sh.mu.RLock()
		entries += uint64(len(sh.items))
		size += uint64(sh.currentSize)
		sh.mu.RUnlock()
	}
	s.EntriesCount = entries
	s.BytesSize = size
	s.GetCalls = atomic.LoadUint64(&c.getCalls)
	s.SetCalls = atomic.LoadUint64(&c.setCalls)
	s.Hits = atomic.LoadUint64(&c.hits)
	s.Misses = atomic.LoadUint64(&c.misses)
	s.Evictions = atomic.LoadUint64(&c.evictions)
}

// Doubly-linked list operations for LRU

func (s *byteShard) pushFront(e *byteEntry) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *byteShard) unlink(e *byteEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (s *byteShard) moveToFront(e *byteEntry) {
	if s.head == e {
		return
	}
	s.unlink(e)
	s.pushFront(e)
}

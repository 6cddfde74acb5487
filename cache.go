// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ttlcache provides bounded, time-aware caching interfaces and
// implementations for memoizing expensive keyed computations.
package ttlcache

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfig is the base error for invalid cache configuration.
// Constructors fail with an error wrapping ErrConfig; no clamping is applied.
var ErrConfig = errors.New("invalid cache configuration")

var (
	// ErrInvalidMaxSize is returned when a cache is constructed with a
	// maximum entry count below 1.
	ErrInvalidMaxSize = fmt.Errorf("%w: max size must be at least 1", ErrConfig)

	// ErrNegativeTTL is returned when a cache is constructed with a
	// negative default time-to-live.
	ErrNegativeTTL = fmt.Errorf("%w: default ttl must not be negative", ErrConfig)
)

// Item is a single key/value pair for batch insertion. Batch puts take a
// slice rather than a map so the caller controls insertion order.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// Stats is a point-in-time snapshot of cache counters. Hits plus Misses
// equals the number of Get calls issued since construction or the last
// Flush; Evictions counts entries removed for capacity or discovered
// expired on access.
type Stats struct {
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
	Size      int
	MaxSize   int
}

// Cacher acts as a best effort key value store with per-entry expiration.
type Cacher[K comparable, V any] interface {
	// Put inserts an element into the cache with the default TTL.
	Put(key K, value V)

	// PutWithTTL inserts an element that expires ttl from now.
	// A zero ttl expires the entry immediately.
	PutWithTTL(key K, value V, ttl time.Duration)

	// Get returns the entry with the key, if it exists and has not
	// expired. An expired entry is removed and reported as absent.
	Get(key K) (V, bool)

	// GetMany returns the resident, unexpired entries for keys.
	// Absent and expired keys are omitted from the result.
	GetMany(keys []K) map[K]V

	// PutMany inserts the items in order with the default TTL.
	PutMany(items []Item[K, V])

	// PutManyWithTTL inserts the items in order, each expiring ttl
	// from the time of its own insertion.
	PutManyWithTTL(items []Item[K, V], ttl time.Duration)

	// Evict removes the specified entry from the cache.
	Evict(key K)

	// Flush removes all entries and resets the statistics counters.
	Flush()

	// Len returns the number of elements in the cache, including
	// entries that expired but have not yet been discovered.
	Len() int

	// Stats returns a consistent snapshot of the cache counters.
	Stats() Stats

	// PortionFilled returns fraction of cache currently filled (0 --> 1).
	PortionFilled() float64
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metercacher provides metered cache implementations.
package metercacher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/ttlcache"
)

var _ ttlcache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Cache wraps a Cacher with Prometheus metrics.
type Cache[K comparable, V any] struct {
	ttlcache.Cacher[K, V]
	metrics *cacheMetrics
}

// New creates a new metered cache wrapper, registering its metrics with the
// given registerer under the given namespace.
func New[K comparable, V any](
	namespace string,
	registerer prometheus.Registerer,
	c ttlcache.Cacher[K, V],
) *Cache[K, V] {
	return &Cache[K, V]{
		Cacher:  c,
		metrics: newMetrics(namespace, registerer),
	}
}

func (c *Cache[K, V]) Put(key K, value V) {
	start := time.Now()
	c.Cacher.Put(key, value)
	putDuration := time.Since(start)

	c.metrics.putCount.Inc()
	c.metrics.putTime.Add(putDuration.Seconds())
	c.refreshGauges()
}

func (c *Cache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	start := time.Now()
	c.Cacher.PutWithTTL(key, value, ttl)
	putDuration := time.Since(start)

	c.metrics.putCount.Inc()
	c.metrics.putTime.Add(putDuration.Seconds())
	c.refreshGauges()
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	start := time.Now()
	value, has := c.Cacher.Get(key)
	getDuration := time.Since(start)

	if has {
		c.metrics.getCount.With(hitLabels).Inc()
		c.metrics.getTime.With(hitLabels).Add(getDuration.Seconds())
	} else {
		c.metrics.getCount.With(missLabels).Inc()
		c.metrics.getTime.With(missLabels).Add(getDuration.Seconds())
	}
	c.refreshGauges()

	return value, has
}

// GetMany composes the wrapper's own Get so every lookup in the batch is
// metered individually.
func (c *Cache[K, V]) GetMany(keys []K) map[K]V {
	result := make(map[K]V, len(keys))
	for _, key := range keys {
		if value, ok := c.Get(key); ok {
			result[key] = value
		}
	}
	return result
}

func (c *Cache[K, V]) PutMany(items []ttlcache.Item[K, V]) {
	for _, item := range items {
		c.Put(item.Key, item.Value)
	}
}

func (c *Cache[K, V]) PutManyWithTTL(items []ttlcache.Item[K, V], ttl time.Duration) {
	for _, item := range items {
		c.PutWithTTL(item.Key, item.Value, ttl)
	}
}

func (c *Cache[K, _]) Evict(key K) {
	c.Cacher.Evict(key)
	c.refreshGauges()
}

func (c *Cache[_, _]) Flush() {
	c.Cacher.Flush()
	c.refreshGauges()
}

func (c *Cache[K, V]) refreshGauges() {
	stats := c.Cacher.Stats()
	c.metrics.evictions.Set(float64(stats.Evictions))
	c.metrics.hitRate.Set(stats.HitRate)
	c.metrics.len.Set(float64(stats.Size))
	c.metrics.portionFilled.Set(c.Cacher.PortionFilled())
}

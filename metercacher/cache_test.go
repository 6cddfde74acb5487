package metercacher

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ttlcache"
	"github.com/luxfi/ttlcache/lru"
)

func newTestCache(t *testing.T, maxSize int) *Cache[string, string] {
	inner, err := lru.New[string, string](maxSize, time.Minute)
	require.NoError(t, err)
	return New[string, string]("test", prometheus.NewRegistry(), inner)
}

func TestMeteredGetCounts(t *testing.T) {
	require := require.New(t)

	c := newTestCache(t, 4)

	c.Put("k", "v")
	_, ok := c.Get("k")
	require.True(ok)
	_, ok = c.Get("absent")
	require.False(ok)

	require.Equal(1.0, testutil.ToFloat64(c.metrics.getCount.With(hitLabels)))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.getCount.With(missLabels)))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.putCount))
	require.Equal(0.5, testutil.ToFloat64(c.metrics.hitRate))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.len))
}

func TestMeteredEvictionGauge(t *testing.T) {
	require := require.New(t)

	c := newTestCache(t, 2)

	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("c", "3") // evicts a

	require.Equal(1.0, testutil.ToFloat64(c.metrics.evictions))
	require.Equal(2.0, testutil.ToFloat64(c.metrics.len))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.portionFilled))

	c.Flush()
	require.Equal(0.0, testutil.ToFloat64(c.metrics.evictions))
	require.Equal(0.0, testutil.ToFloat64(c.metrics.len))
}

func TestMeteredBatchMetersEachKey(t *testing.T) {
	require := require.New(t)

	c := newTestCache(t, 4)

	c.PutMany([]ttlcache.Item[string, string]{
		{Key: "k1", Value: "1"},
		{Key: "k2", Value: "2"},
	})
	got := c.GetMany([]string{"k1", "k2", "k3"})
	require.Len(got, 2)

	require.Equal(2.0, testutil.ToFloat64(c.metrics.putCount))
	require.Equal(2.0, testutil.ToFloat64(c.metrics.getCount.With(hitLabels)))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.getCount.With(missLabels)))
}

func TestMeteredPassThrough(t *testing.T) {
	require := require.New(t)

	c := newTestCache(t, 4)

	c.Put("k", "v")
	require.Equal(1, c.Len())

	c.Evict("k")
	require.Equal(0, c.Len())
	require.Equal(0.0, testutil.ToFloat64(c.metrics.len))

	stats := c.Stats()
	require.Equal(4, stats.MaxSize)
}

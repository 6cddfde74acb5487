package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMapCacheBasicOperations(t *testing.T) {
	require := require.New(t)

	c, err := NewMapCache[string, string](time.Minute)
	require.NoError(err)

	c.Put("a", "apple")
	c.Put("b", "banana")
	require.Equal(2, c.Len())
	require.Equal(1.0, c.PortionFilled())

	val, ok := c.Get("a")
	require.True(ok)
	require.Equal("apple", val)

	c.Evict("a")
	_, ok = c.Get("a")
	require.False(ok)

	c.Flush()
	require.Zero(c.Len())
	require.Equal(0.0, c.PortionFilled())

	stats := c.Stats()
	require.Zero(stats.Hits)
	require.Zero(stats.Misses)
	require.Zero(stats.Evictions)
}

func TestMapCacheRejectsNegativeTTL(t *testing.T) {
	require := require.New(t)

	_, err := NewMapCache[string, int](-time.Second)
	require.ErrorIs(err, ErrNegativeTTL)
	require.ErrorIs(err, ErrConfig)
}

func TestMapCacheExpiry(t *testing.T) {
	require := require.New(t)

	c, err := NewMapCache[string, int](time.Minute)
	require.NoError(err)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put("k", 1)
	c.PutWithTTL("long", 2, time.Hour)
	current = current.Add(2 * time.Minute)

	// Expired but undiscovered entries still count toward Len.
	require.Equal(2, c.Len())

	_, ok := c.Get("k")
	require.False(ok)
	_, ok = c.Get("long")
	require.True(ok)

	stats := c.Stats()
	require.Equal(uint64(1), stats.Hits)
	require.Equal(uint64(1), stats.Misses)
	require.Equal(uint64(1), stats.Evictions)
	require.Equal(0.5, stats.HitRate)
	require.Equal(1, stats.Size)
	require.Zero(stats.MaxSize)
}

func TestMapCacheBatch(t *testing.T) {
	require := require.New(t)

	c, err := NewMapCache[string, int](time.Minute)
	require.NoError(err)

	c.PutMany([]Item[string, int]{
		{Key: "k1", Value: 1},
		{Key: "k2", Value: 2},
	})
	got := c.GetMany([]string{"k1", "k2", "k3"})
	require.Equal(map[string]int{"k1": 1, "k2": 2}, got)
}

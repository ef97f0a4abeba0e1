package cms_test

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(10)
	ctx := context.Background()

	entry := &cms.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "abc123",
	}

	require.NoError(t, cache.Set(ctx, "key1", entry))

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
	assert.True(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, cms.ErrKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(10)
	ctx := context.Background()

	entry := &cms.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	require.NoError(t, cache.Set(ctx, "key1", entry))

	_, err := cache.Get(ctx, "key1")
	require.ErrorIs(t, err, cms.ErrEntryExpired)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_NoExpiry(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key1", &cms.CacheEntry{Data: []byte("x")}))
	assert.True(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(2)
	ctx := context.Background()
	entry := &cms.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "a", entry))
	require.NoError(t, cache.Set(ctx, "b", entry))

	// Touch a so that b becomes the oldest.
	_, err := cache.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "c", entry))

	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Has(ctx, "a"))
	assert.False(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_OverwriteDoesNotGrow(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &cms.CacheEntry{Data: []byte("1")}))
	require.NoError(t, cache.Set(ctx, "a", &cms.CacheEntry{Data: []byte("2")}))

	assert.Equal(t, 1, cache.Len())

	entry, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), entry.Data)
}

func TestMemoryCache_DeleteClearCleanup(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "live", &cms.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "stale", &cms.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, cache.Set(ctx, "gone", &cms.CacheEntry{}))

	require.NoError(t, cache.Delete(ctx, "gone"))
	require.NoError(t, cache.Delete(ctx, "never-set"))
	assert.Equal(t, 2, cache.Len())

	cache.Cleanup()
	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "live"))

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := cms.NewMemoryCache(50)
	ctx := context.Background()

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			key := string(rune('a' + n))
			_ = cache.Set(ctx, key, &cms.CacheEntry{Data: []byte(key)})
			_, _ = cache.Get(ctx, key)
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 20, cache.Len())
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := cms.CacheKey("GET", "https://x/api/v1/news/abc", url.Values{"fields": {"id"}, "depth": {"1"}})
	b := cms.CacheKey("GET", "https://x/api/v1/news/abc", url.Values{"depth": {"1"}, "fields": {"id"}})
	c := cms.CacheKey("GET", "https://x/api/v1/news/abc", url.Values{"depth": {"2"}, "fields": {"id"}})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "GET https://x/api/v1/news/abc", cms.CacheKey("GET", "https://x/api/v1/news/abc", nil))
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	stats := &cms.CacheStats{}
	assert.InDelta(t, 0.0, stats.GetHitRate(), 0.0001)

	stats = &cms.CacheStats{Hits: 3, Misses: 1}
	assert.InDelta(t, 0.75, stats.GetHitRate(), 0.0001)
}

package cms_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *cms.CacheConfig
		expected interface{}
		err      error
	}{
		{"nil config", nil, &cms.MemoryCache{}, nil},
		{"default", cms.DefaultCacheConfig(), &cms.MemoryCache{}, nil},
		{"empty type", &cms.CacheConfig{}, &cms.MemoryCache{}, nil},
		{"none", &cms.CacheConfig{Type: cms.CacheTypeNone}, &cms.NoOpCache{}, nil},
		{"nats without config", &cms.CacheConfig{Type: cms.CacheTypeNATS}, nil, cms.ErrNATSConfigRequired},
		{"redis without config", &cms.CacheConfig{Type: cms.CacheTypeRedis}, nil, cms.ErrRedisConfigRequired},
		{"unknown", &cms.CacheConfig{Type: "memcached"}, nil, cms.ErrUnsupportedCacheType},
		{"tiered nats without config", &cms.CacheConfig{Type: cms.CacheTypeMemoryNATS}, nil, cms.ErrNATSConfigRequired},
		{"tiered redis without config", &cms.CacheConfig{Type: cms.CacheTypeMemoryRedis}, nil, cms.ErrRedisConfigRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache, err := cms.NewCacheFromConfig(tt.config)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.expected, cache)
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := cms.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &cms.CacheEntry{Data: []byte("x")}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, cms.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))
	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheChain_PopulatesEarlierLevels(t *testing.T) {
	t.Parallel()

	l1 := cms.NewMemoryCache(10)
	l2 := cms.NewMemoryCache(10)
	chain := cms.NewCacheChain(l1, l2)
	ctx := context.Background()

	entry := &cms.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, l2.Set(ctx, "key", entry))

	got, err := chain.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.True(t, l1.Has(ctx, "key"))

	require.NoError(t, chain.Delete(ctx, "key"))
	assert.False(t, chain.Has(ctx, "key"))

	_, err = chain.Get(ctx, "key")
	require.ErrorIs(t, err, cms.ErrKeyNotFoundInAnyCache)

	require.NoError(t, chain.Set(ctx, "other", entry))
	assert.True(t, l1.Has(ctx, "other"))
	assert.True(t, l2.Has(ctx, "other"))

	require.NoError(t, chain.Clear(ctx))
	assert.Equal(t, 0, l1.Len()+l2.Len())
}

func TestNewCacheFromConfig_MemoryInFrontOfRedis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()

	cache, err := cms.NewCacheFromConfig(&cms.CacheConfig{
		Type:  cms.CacheTypeMemoryRedis,
		Redis: &cms.RedisCacheConfig{URL: "redis://" + mr.Addr()},
	})
	require.NoError(t, err)
	require.IsType(t, &cms.CacheChain{}, cache)

	entry := &cms.CacheEntry{Data: []byte(`{"id":"n1"}`), ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, cache.Set(ctx, "news", entry))
	assert.True(t, mr.Exists("cms:content:news"))

	got, err := cache.Get(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)

	chain, _ := cache.(*cms.CacheChain)
	require.NoError(t, chain.Close())
}

func TestCacheChain_CleanupAndClose(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()

	l1 := cms.NewMemoryCache(10)
	l2, err := cms.NewRedisCache(&cms.RedisCacheConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)

	chain := cms.NewCacheChain(l1, l2)

	require.NoError(t, l1.Set(ctx, "stale", &cms.CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, l1.Set(ctx, "live", &cms.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))

	chain.Cleanup()
	assert.Equal(t, 1, l1.Len())

	require.NoError(t, chain.Close())

	_, err = l2.Get(ctx, "live")
	require.Error(t, err)
}

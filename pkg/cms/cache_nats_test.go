package cms_test

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// runJetStream starts an in-process NATS server with JetStream enabled.
func runJetStream(t *testing.T) *natsserver.Server {
	t.Helper()

	srv, err := natsserver.NewServer(&natsserver.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server did not start")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestNATSKVCache(t *testing.T) {
	t.Parallel()

	srv := runJetStream(t)
	ctx := context.Background()

	cache, err := cms.NewNATSKVCache(&cms.NATSKVConfig{URL: srv.ClientURL(), Bucket: "test_contents"})
	require.NoError(t, err)

	t.Cleanup(func() { _ = cache.Close() })

	key := cms.CacheKey("GET", "https://example.microcms.io/api/v1/news/abc", nil)

	_, err = cache.Get(ctx, key)
	require.ErrorIs(t, err, cms.ErrKeyNotFound)

	entry := &cms.CacheEntry{Data: []byte(`{"id":"abc"}`), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Set(ctx, key, entry))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.True(t, cache.Has(ctx, key))

	require.NoError(t, cache.Delete(ctx, key))
	assert.False(t, cache.Has(ctx, key))
}

func TestNATSKVCache_ExpiredEntry(t *testing.T) {
	t.Parallel()

	srv := runJetStream(t)
	ctx := context.Background()

	cache, err := cms.NewNATSKVCache(&cms.NATSKVConfig{URL: srv.ClientURL()})
	require.NoError(t, err)

	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, cache.Set(ctx, "stale", &cms.CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}))

	_, err = cache.Get(ctx, "stale")
	require.ErrorIs(t, err, cms.ErrEntryExpired)
}

func TestNATSKVCache_SharedConnectionAndClear(t *testing.T) {
	t.Parallel()

	srv := runJetStream(t)
	ctx := context.Background()

	conn, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)

	t.Cleanup(conn.Close)

	first, err := cms.NewNATSKVCache(&cms.NATSKVConfig{Conn: conn, Bucket: "shared"})
	require.NoError(t, err)

	second, err := cms.NewNATSKVCache(&cms.NATSKVConfig{Conn: conn, Bucket: "shared"})
	require.NoError(t, err)

	entry := &cms.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, first.Set(ctx, "a", entry))
	require.NoError(t, first.Set(ctx, "b", entry))

	assert.True(t, second.Has(ctx, "a"))

	require.NoError(t, second.Clear(ctx))
	assert.False(t, first.Has(ctx, "a"))
	assert.False(t, first.Has(ctx, "b"))

	// Closing a cache on a borrowed connection leaves it open.
	require.NoError(t, first.Close())
	assert.True(t, conn.IsConnected())
}

func TestNewCacheFromConfig_NATS(t *testing.T) {
	t.Parallel()

	srv := runJetStream(t)

	cache, err := cms.NewCacheFromConfig(&cms.CacheConfig{
		Type: cms.CacheTypeNATS,
		NATS: &cms.NATSKVConfig{URL: srv.ClientURL()},
	})
	require.NoError(t, err)
	assert.IsType(t, &cms.NATSKVCache{}, cache)

	natsCache, _ := cache.(*cms.NATSKVCache)
	require.NoError(t, natsCache.Close())
}

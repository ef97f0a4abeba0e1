package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/cms-content/internal/client"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), nil)
		require.ErrorIs(t, err, cms.ErrConfigRequired)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &cms.Config{APIKey: "key"})
		require.ErrorIs(t, err, ErrBaseURLRequired)
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &cms.Config{BaseURL: "https://example.microcms.io/api/v1"})
		require.ErrorIs(t, err, cms.ErrAPIKeyRequired)
	})

	t.Run("creates client with resource clients", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &cms.Config{
			BaseURL:      "https://example.microcms.io/api/v1/",
			APIKey:       "key",
			HTTPTimeout:  5 * time.Second,
			PageInterval: time.Millisecond,
			UserAgent:    "test-agent",
			Debug:        true,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://example.microcms.io/api/v1", client.BaseURL())
		assert.NotNil(t, client.Members())
		assert.NotNil(t, client.News())
		assert.NotNil(t, client.Categories())
		assert.Equal(t, cms.CacheStats{}, client.CacheStats())
	})
}

func TestClient_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ cms.Client = (*Client)(nil)
}

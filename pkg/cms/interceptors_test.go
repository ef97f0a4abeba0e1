package cms_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

var errInterceptor = errors.New("interceptor error")

type memoryLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *memoryLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
}

func (l *memoryLogger) Debug(msg string, _ map[string]interface{}) { l.log(msg) }
func (l *memoryLogger) Info(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *memoryLogger) Warn(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *memoryLogger) Error(msg string, _ map[string]interface{}) { l.log(msg) }

func TestInterceptorChain_Order(t *testing.T) {
	t.Parallel()

	chain := cms.NewInterceptorChain()

	var order []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *cms.Request) error {
		order = append(order, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *cms.Request) error {
		order = append(order, "second")

		return nil
	})

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &cms.Request{}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := cms.NewInterceptorChain()
	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *cms.Request) error {
		return errInterceptor
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *cms.Request) error {
		called = true

		return nil
	})
	chain.AddResponseInterceptor(func(ctx context.Context, req *cms.Request, resp *cms.Response) error {
		return errInterceptor
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &cms.Request{})
	require.ErrorIs(t, err, errInterceptor)
	assert.False(t, called)

	err = chain.ExecuteResponseInterceptors(context.Background(), &cms.Request{}, &cms.Response{})
	require.ErrorIs(t, err, errInterceptor)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &cms.Request{}
	err := cms.HeaderInterceptor(map[string]string{"X-Trace": "abc"})(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "abc", req.Headers.Get("X-Trace"))
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := cms.NewMetricsCollector()
	chain := cms.NewObservedChain(nil, collector)
	ctx := context.Background()

	var changes int

	collector.SetOnChange(func(endpoint string, metrics cms.Metrics) {
		changes++
	})

	send := func(path string, resp *cms.Response) {
		req := &cms.Request{Method: http.MethodGet, Path: path}
		require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
		require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, resp))
	}

	send("/news", &cms.Response{StatusCode: http.StatusOK})
	send("/news", &cms.Response{StatusCode: http.StatusOK, Cached: true})
	send("/news", &cms.Response{StatusCode: http.StatusInternalServerError})
	send("/members", &cms.Response{Error: errInterceptor})

	news, ok := collector.GetMetrics("GET /news")
	require.True(t, ok)
	assert.Equal(t, int64(3), news.TotalRequests)
	assert.Equal(t, int64(1), news.CacheHits)
	assert.Equal(t, int64(1), news.TotalErrors)
	assert.False(t, news.LastRequestTime.IsZero())

	members, ok := collector.GetMetrics("GET /members")
	require.True(t, ok)
	assert.Equal(t, int64(1), members.TotalErrors)

	_, ok = collector.GetMetrics("GET /categories")
	assert.False(t, ok)

	assert.Equal(t, []string{"GET /members", "GET /news"}, collector.Endpoints())
	assert.Len(t, collector.Snapshot(), 2)
	assert.Equal(t, 4, changes)
}

func TestNewObservedChain_Logging(t *testing.T) {
	t.Parallel()

	logger := &memoryLogger{}
	chain := cms.NewObservedChain(logger, nil)
	ctx := context.Background()
	req := &cms.Request{Method: http.MethodGet, Path: "/news"}

	require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
	require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, &cms.Response{StatusCode: http.StatusOK}))
	require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, &cms.Response{Error: errInterceptor}))

	assert.Equal(t, []string{"API Request", "API Response", "API Response Error"}, logger.messages)
}

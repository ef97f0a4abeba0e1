// Package http is the transport shared by all content endpoints. It wraps
// go-retryablehttp configured for a single attempt, attaches the API key,
// maps error responses to cms.APIError and honors revalidation hints with a
// response cache.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// Request is a request relative to the client's base URL.
type Request struct {
	Method     string
	Path       string
	Query      url.Values
	Headers    map[string]string
	Revalidate cms.Revalidation
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Cached     bool
}

// Client performs requests against the CMS API.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *retryablehttp.Client
	logger       cms.Logger
	debug        bool
	userAgent    string
	cache        cms.Cache
	interceptors *cms.InterceptorChain
	now          func() time.Time

	statsMu sync.Mutex
	stats   cms.CacheStats
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger cms.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithCache sets the response cache used for cacheable revalidation hints.
func WithCache(cache cms.Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithInterceptors sets the interceptor chain.
func WithInterceptors(chain *cms.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL that authenticates with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		cache:      cms.NewNoOpCache(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// noRetry keeps every request to a single attempt while still surfacing
// context cancellation.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CacheStats returns a copy of the response cache counters.
func (c *Client) CacheStats() cms.CacheStats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	return c.stats
}

// Get performs a GET request without a revalidation hint.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// GetWithRevalidation performs a GET request carrying a revalidation hint.
func (c *Client) GetWithRevalidation(ctx context.Context, path string, query url.Values, revalidate cms.Revalidation) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:     http.MethodGet,
		Path:       path,
		Query:      query,
		Revalidate: revalidate,
	})
}

// Do performs a request. For error statuses the response is returned together
// with a *cms.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	cacheable := req.Method == http.MethodGet && req.Revalidate.Cacheable()
	cacheKey := cms.CacheKey(req.Method, c.baseURL+req.Path, req.Query)

	intercepted := &cms.Request{
		Method:  req.Method,
		Path:    req.Path,
		Query:   req.Query,
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	if cacheable {
		resp, ok := c.lookup(ctx, cacheKey)
		if ok {
			c.afterResponse(ctx, intercepted, resp, nil)

			return resp, nil
		}
	}

	resp, err := c.send(ctx, req, intercepted.Headers)
	if err != nil {
		c.afterResponse(ctx, intercepted, resp, err)

		return resp, err
	}

	if cacheable {
		c.store(ctx, cacheKey, resp, req.Revalidate)
	}

	c.afterResponse(ctx, intercepted, resp, nil)

	return resp, nil
}

func (c *Client) send(ctx context.Context, req *Request, headers http.Header) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(constants.APIKeyHeader, c.apiKey)

	if req.Revalidate.AlwaysStale() {
		httpReq.Header.Set("Cache-Control", "no-cache")
	}

	requestID := uuid.NewString()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        fullURL,
			"revalidate": req.Revalidate.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id":  requestID,
			"status_code": httpResp.StatusCode,
			"bytes":       len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, cms.ParseAPIError(httpResp.StatusCode, req.Method, req.Path, body)
	}

	return resp, nil
}

func (c *Client) lookup(ctx context.Context, key string) (*Response, bool) {
	entry, err := c.cache.Get(ctx, key)

	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	if err != nil {
		c.stats.Misses++

		return nil, false
	}

	c.stats.Hits++

	headers := make(http.Header)
	if entry.ETag != "" {
		headers.Set("ETag", entry.ETag)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       entry.Data,
		Cached:     true,
	}, true
}

func (c *Client) store(ctx context.Context, key string, resp *Response, revalidate cms.Revalidation) {
	err := c.cache.Set(ctx, key, &cms.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: c.now().Add(revalidate.After()),
		ETag:      resp.Headers.Get("ETag"),
	})

	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	if err != nil {
		c.stats.Errors++

		if c.logger != nil {
			c.logger.Warn("storing response in cache failed", map[string]interface{}{
				"error": err.Error(),
			})
		}

		return
	}

	c.stats.Sets++
}

func (c *Client) afterResponse(ctx context.Context, req *cms.Request, resp *Response, err error) {
	if c.interceptors == nil {
		return
	}

	intercepted := &cms.Response{Error: err}
	if resp != nil {
		intercepted.StatusCode = resp.StatusCode
		intercepted.Headers = resp.Headers
		intercepted.Body = resp.Body
		intercepted.Cached = resp.Cached
	}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, intercepted)
}

// leveledLogger adapts cms.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger cms.Logger
}

func (l *leveledLogger) fields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		if strings.EqualFold(key, constants.APIKeyHeader) {
			continue
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, l.fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, l.fields(keysAndValues))
}

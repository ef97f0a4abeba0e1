package cms

import (
	"context"
	"time"
)

// ContentsClient provides read access to one list-type endpoint.
type ContentsClient[T any] interface {
	// List returns one page of records.
	List(ctx context.Context, query *Query) (*ListResult[T], error)
	// Get returns a single record. The revalidation hint travels with the
	// request and is honored by the transport cache.
	Get(ctx context.Context, contentID string, query *Query, revalidate Revalidation) (*T, error)
	// ListAll returns every record of the endpoint, paging internally.
	ListAll(ctx context.Context, query *Query) ([]T, error)
}

// Client provides access to all content endpoints.
type Client interface {
	Members() ContentsClient[Member]
	News() ContentsClient[News]
	Categories() ContentsClient[Category]
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cms.Client.
//
// ServiceDomain and APIKey are required. The API key is sent in a private
// header on every request and is never logged.
//
// # Retries
//
// Requests are attempted exactly once. Resilience belongs to the caller: the
// content package absorbs list failures into empty results.
//
// # Caching
//
// Cache holds responses for requests that carry a cacheable Revalidation
// hint. When nil, a bounded in-memory cache is used. Use NewNoOpCache to
// disable caching entirely.
type Config struct {
	// ServiceDomain is the CMS service subdomain ("example" for
	// example.microcms.io).
	ServiceDomain string
	// APIKey is the read API key.
	APIKey string

	// BaseURL overrides the API base derived from ServiceDomain. Useful for
	// compatible self-hosted endpoints and tests.
	BaseURL string
	// HTTPTimeout bounds a single request. Zero uses the default.
	HTTPTimeout time.Duration
	// PageInterval is the pause between pages of a get-all operation.
	PageInterval time.Duration
	// Debug enables verbose request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Cache stores responses for cacheable requests.
	Cache Cache
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}

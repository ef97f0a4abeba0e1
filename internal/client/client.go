package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/internal/http"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("API base URL is required")
)

// Client implements the cms.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     cms.Logger

	// Resource clients
	members    *ContentsClient[cms.Member]
	news       *ContentsClient[cms.News]
	categories *ContentsClient[cms.Category]
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cms.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	cache := config.Cache
	if cache == nil {
		cache = cms.NewMemoryCache(constants.DefaultCacheSize)
	}

	httpOpts = append(httpOpts, http.WithCache(cache))

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a client for the API at config.BaseURL.
func New(_ context.Context, config *cms.Config) (*Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	if config.APIKey == "" {
		return nil, cms.ErrAPIKeyRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
	}

	client.initializeResourceClients(&cms.PaginationOptions{
		PageSize: constants.AllContentsPageSize,
		Interval: config.PageInterval,
	})

	return client, nil
}

func (c *Client) initializeResourceClients(pagination *cms.PaginationOptions) {
	c.members = NewContentsClient[cms.Member](c.httpClient, constants.EndpointMembers, "members", pagination)
	c.news = NewContentsClient[cms.News](c.httpClient, constants.EndpointNews, "news", pagination)
	c.categories = NewContentsClient[cms.Category](c.httpClient, constants.EndpointCategories, "categories", pagination)
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CacheStats returns the response cache counters.
func (c *Client) CacheStats() cms.CacheStats {
	return c.httpClient.CacheStats()
}

// Members implements cms.Client.Members.
func (c *Client) Members() cms.ContentsClient[cms.Member] {
	return c.members
}

// News implements cms.Client.News.
func (c *Client) News() cms.ContentsClient[cms.News] {
	return c.news
}

// Categories implements cms.Client.Categories.
func (c *Client) Categories() cms.ContentsClient[cms.Category] {
	return c.categories
}

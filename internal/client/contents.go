package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/cms-content/internal/http"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// ContentsClient provides a generic client for one list-type endpoint.
type ContentsClient[T cms.Entry] struct {
	httpClient *http.Client
	endpoint   string
	kind       string
	pagination *cms.PaginationOptions
}

// NewContentsClient creates a new generic contents client.
func NewContentsClient[T cms.Entry](httpClient *http.Client, endpoint, kind string, pagination *cms.PaginationOptions) *ContentsClient[T] {
	if pagination == nil {
		pagination = cms.DefaultPaginationOptions()
	}

	return &ContentsClient[T]{
		httpClient: httpClient,
		endpoint:   endpoint,
		kind:       kind,
		pagination: pagination,
	}
}

// List retrieves one page of records.
func (c *ContentsClient[T]) List(ctx context.Context, query *cms.Query) (*cms.ListResult[T], error) {
	var values url.Values
	if query != nil {
		values = query.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, "/"+c.endpoint, values)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.kind, err)
	}

	var result cms.ListResult[T]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.kind, err)
	}

	if result.Contents == nil {
		result.Contents = []T{}
	}

	return &result, nil
}

// Get retrieves a single record by content ID.
func (c *ContentsClient[T]) Get(ctx context.Context, contentID string, query *cms.Query, revalidate cms.Revalidation) (*T, error) {
	if contentID == "" {
		return nil, cms.ErrContentIDRequired
	}

	var values url.Values
	if query != nil {
		values = query.ToValues()
	}

	path := "/" + c.endpoint + "/" + url.PathEscape(contentID)

	resp, err := c.httpClient.GetWithRevalidation(ctx, path, values, revalidate)
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", c.kind, contentID, err)
	}

	var record T

	err = json.Unmarshal(resp.Body, &record)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.kind, err)
	}

	return &record, nil
}

// ListAll retrieves every record of the endpoint. Limit and offset of query
// are replaced while paging; all other parameters are sent with every page.
func (c *ContentsClient[T]) ListAll(ctx context.Context, query *cms.Query) ([]T, error) {
	base := query.Clone()

	fetch := func(ctx context.Context, offset, limit int) (*cms.ListResult[T], error) {
		values := base.ToValues()
		values.Set("offset", strconv.Itoa(offset))
		values.Set("limit", strconv.Itoa(limit))

		resp, err := c.httpClient.Get(ctx, "/"+c.endpoint, values)
		if err != nil {
			return nil, err
		}

		var page cms.ListResult[T]

		err = json.Unmarshal(resp.Body, &page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s list response: %w", c.kind, err)
		}

		return &page, nil
	}

	all, err := cms.FetchAll(ctx, fetch, c.pagination)
	if err != nil {
		return nil, fmt.Errorf("listing all %s: %w", c.kind, err)
	}

	return all, nil
}

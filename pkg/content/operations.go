package content

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// ListMembers returns one page of members. It never fails: without a client
// or on any error the empty envelope is returned.
func (s *Service) ListMembers(ctx context.Context, query *cms.Query) cms.ListResult[cms.Member] {
	if s.client == nil {
		return cms.EmptyListResult[cms.Member](query, constants.DefaultListLimit)
	}

	return absorbList(ctx, s, OpListMembers, query, s.client.Members().List)
}

// ListNews returns one page of news. It never fails.
func (s *Service) ListNews(ctx context.Context, query *cms.Query) cms.ListResult[cms.News] {
	if s.client == nil {
		return cms.EmptyListResult[cms.News](query, constants.DefaultListLimit)
	}

	return absorbList(ctx, s, OpListNews, query, s.client.News().List)
}

// GetNewsDetail returns one news item. Without a client the error wraps
// cms.ErrUnavailable; a CMS error is returned as is. A draft key in query
// makes the request bypass the response cache.
func (s *Service) GetNewsDetail(ctx context.Context, contentID string, query *cms.Query) (*cms.News, error) {
	if s.client == nil {
		return nil, unavailable(OpGetNewsDetail)
	}

	return s.client.News().Get(ctx, contentID, query, NewsDetailRevalidation(query))
}

// GetCategoryDetail returns one category. Errors follow GetNewsDetail.
func (s *Service) GetCategoryDetail(ctx context.Context, contentID string, query *cms.Query) (*cms.Category, error) {
	if s.client == nil {
		return nil, unavailable(OpGetCategoryDetail)
	}

	return s.client.Categories().Get(ctx, contentID, query, cms.NoRevalidation)
}

// GetAllNews returns every news item, or an empty slice on any failure.
func (s *Service) GetAllNews(ctx context.Context, query *cms.Query) []cms.News {
	if s.client == nil {
		return []cms.News{}
	}

	return absorbAll(ctx, s, OpGetAllNews, query, s.client.News().ListAll)
}

// GetAllCategories returns every category, or an empty slice on any failure.
func (s *Service) GetAllCategories(ctx context.Context, query *cms.Query) []cms.Category {
	if s.client == nil {
		return []cms.Category{}
	}

	return absorbAll(ctx, s, OpGetAllCategories, query, s.client.Categories().ListAll)
}

func unavailable(op Operation) error {
	return fmt.Errorf("%s: %w", op, cms.ErrUnavailable)
}

func absorbList[T any](
	ctx context.Context,
	s *Service,
	op Operation,
	query *cms.Query,
	list func(context.Context, *cms.Query) (*cms.ListResult[T], error),
) cms.ListResult[T] {
	result, err := list(ctx, query)
	if err != nil {
		s.absorbed(op, err)

		return cms.EmptyListResult[T](query, constants.DefaultListLimit)
	}

	if result == nil {
		return cms.EmptyListResult[T](query, constants.DefaultListLimit)
	}

	if result.Contents == nil {
		result.Contents = []T{}
	}

	return *result
}

func absorbAll[T any](
	ctx context.Context,
	s *Service,
	op Operation,
	query *cms.Query,
	listAll func(context.Context, *cms.Query) ([]T, error),
) []T {
	all, err := listAll(ctx, query)
	if err != nil {
		s.absorbed(op, err)

		return []T{}
	}

	if all == nil {
		return []T{}
	}

	return all
}

func (s *Service) absorbed(op Operation, err error) {
	s.logger.Warn("content request failed, serving empty result", map[string]interface{}{
		"operation": string(op),
		"endpoint":  op.Endpoint(),
		"strategy":  op.Policy().String(),
		"error":     err.Error(),
	})
}

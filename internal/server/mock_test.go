package server_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fivetwenty-io/cms-content/internal/logging"
	"github.com/fivetwenty-io/cms-content/internal/server"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
	"github.com/fivetwenty-io/cms-content/pkg/content"
)

// MockCategories is a mock implementation of cms.ContentsClient[cms.Category]
type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) List(ctx context.Context, query *cms.Query) (*cms.ListResult[cms.Category], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	result, _ := args.Get(0).(*cms.ListResult[cms.Category])

	return result, args.Error(1)
}

func (m *MockCategories) Get(ctx context.Context, contentID string, query *cms.Query, revalidate cms.Revalidation) (*cms.Category, error) {
	args := m.Called(ctx, contentID, query, revalidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	category, _ := args.Get(0).(*cms.Category)

	return category, args.Error(1)
}

func (m *MockCategories) ListAll(ctx context.Context, query *cms.Query) ([]cms.Category, error) {
	args := m.Called(ctx, query)

	all, _ := args.Get(0).([]cms.Category)

	return all, args.Error(1)
}

// MockClient serves categories only.
type MockClient struct {
	categories *MockCategories
}

func (c *MockClient) Members() cms.ContentsClient[cms.Member]      { return nil }
func (c *MockClient) News() cms.ContentsClient[cms.News]            { return nil }
func (c *MockClient) Categories() cms.ContentsClient[cms.Category] { return c.categories }

func TestServer_CategoryRoutesForwardQuery(t *testing.T) {
	t.Parallel()

	categories := &MockCategories{}
	svc := content.NewWithClient(&MockClient{categories: categories}, logging.Nop())
	srv := server.New(svc, nil, zerolog.Nop())

	withFields := mock.MatchedBy(func(query *cms.Query) bool {
		return len(query.Fields) == 2 && query.Fields[0] == "id" && query.Fields[1] == "name"
	})

	categories.On("Get", mock.Anything, "c1", withFields, cms.NoRevalidation).
		Return(&cms.Category{Content: cms.Content{ID: "c1"}, Name: "Company"}, nil)
	categories.On("Get", mock.Anything, "down", mock.Anything, cms.NoRevalidation).
		Return(nil, errors.New("connection refused"))
	categories.On("Get", mock.Anything, "all", mock.Anything, cms.NoRevalidation).
		Return(&cms.Category{Content: cms.Content{ID: "all"}, Name: "Everything"}, nil)
	categories.On("ListAll", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	rec := get(t, srv, "/categories/c1?fields=id,name")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Company"`)

	rec = get(t, srv, "/categories/down")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = get(t, srv, "/categories/all")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Everything"`)

	rec = get(t, srv, "/all/categories")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	categories.AssertExpectations(t)
}

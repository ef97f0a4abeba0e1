package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// TestAPIKey is the key every test client sends.
const TestAPIKey = "test-api-key"

// NewTestClient creates a new test client with the given base URL and no cache.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(context.Background(), &cms.Config{
		BaseURL: baseURL,
		APIKey:  TestAPIKey,
		Cache:   cms.NewNoOpCache(),
	})
	require.NoError(t, err)

	return client
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ContentID    string
	ExpectedPath string
	StatusCode   int
	Response     *TResponse
	WantErr      bool
	ErrMessage   string
}

// TestListOperation represents a generic list operation test case.
type TestListOperation[TResponse any] struct {
	Name          string
	Query         *cms.Query
	ExpectedPath  string
	ExpectedQuery map[string]string
	StatusCode    int
	Response      *cms.ListResult[TResponse]
	WantErr       bool
	ErrMessage    string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string, *cms.Query, cms.Revalidation) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				assert.Equal(t, TestAPIKey, request.Header.Get(constants.APIKeyHeader))
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					_ = json.NewEncoder(writer).Encode(map[string]string{"message": "Content is not found."})
				} else if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			getFn := getFunc(client)
			result, err := getFn(context.Background(), testCase.ContentID, nil, cms.NoRevalidation)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testCase.Response, result)
			}
		})
	}
}

// RunListTests runs a series of list operation tests.
func RunListTests[TResponse any](
	t *testing.T,
	tests []TestListOperation[TResponse],
	listFunc func(*Client) func(context.Context, *cms.Query) (*cms.ListResult[TResponse], error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)

				for key, value := range testCase.ExpectedQuery {
					assert.Equal(t, value, request.URL.Query().Get(key), "query parameter %s", key)
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			listFn := listFunc(client)
			result, err := listFn(context.Background(), testCase.Query)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testCase.Response.TotalCount, result.TotalCount)
				assert.Len(t, result.Contents, len(testCase.Response.Contents))
			}
		})
	}
}

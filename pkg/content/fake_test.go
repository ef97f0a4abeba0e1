package content_test

import (
	"context"
	"sync"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// getCall records one Get invocation.
type getCall struct {
	ContentID  string
	Query      *cms.Query
	Revalidate cms.Revalidation
}

// fakeContents is a scripted cms.ContentsClient.
type fakeContents[T any] struct {
	mu sync.Mutex

	listResult *cms.ListResult[T]
	listErr    error
	item       *T
	getErr     error
	all        []T
	allErr     error

	listQueries []*cms.Query
	getCalls    []getCall
	allQueries  []*cms.Query
}

func (f *fakeContents[T]) List(_ context.Context, query *cms.Query) (*cms.ListResult[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listQueries = append(f.listQueries, query)

	return f.listResult, f.listErr
}

func (f *fakeContents[T]) Get(_ context.Context, contentID string, query *cms.Query, revalidate cms.Revalidation) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls = append(f.getCalls, getCall{ContentID: contentID, Query: query, Revalidate: revalidate})

	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.item, nil
}

func (f *fakeContents[T]) ListAll(_ context.Context, query *cms.Query) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.allQueries = append(f.allQueries, query)

	return f.all, f.allErr
}

func (f *fakeContents[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.listQueries) + len(f.getCalls) + len(f.allQueries)
}

// fakeClient is a cms.Client over scripted endpoints.
type fakeClient struct {
	members    *fakeContents[cms.Member]
	news       *fakeContents[cms.News]
	categories *fakeContents[cms.Category]
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		members:    &fakeContents[cms.Member]{},
		news:       &fakeContents[cms.News]{},
		categories: &fakeContents[cms.Category]{},
	}
}

func (c *fakeClient) Members() cms.ContentsClient[cms.Member]      { return c.members }
func (c *fakeClient) News() cms.ContentsClient[cms.News]            { return c.news }
func (c *fakeClient) Categories() cms.ContentsClient[cms.Category] { return c.categories }

// recordingLogger keeps every entry for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{Level: level, Msg: msg, Fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func (l *recordingLogger) warnings() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []logEntry

	for _, entry := range l.entries {
		if entry.Level == "warn" {
			out = append(out, entry)
		}
	}

	return out
}

package cms

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/cms-content/internal/constants"
)

// PageFetcher fetches one page of records at the given offset and limit.
type PageFetcher[T any] func(ctx context.Context, offset, limit int) (*ListResult[T], error)

// PaginationOptions configures FetchAll.
type PaginationOptions struct {
	// PageSize is the limit requested for each page.
	PageSize int
	// Interval is the pause between two page requests.
	Interval time.Duration
}

// DefaultPaginationOptions returns the default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.AllContentsPageSize,
		Interval: constants.DefaultPageInterval,
	}
}

// FetchAll collects every record of an endpoint. It first asks for zero
// records to learn the total count, then walks the pages in order. A short
// page that comes back empty ends the walk early so that a shrinking
// collection cannot loop forever.
func FetchAll[T any](ctx context.Context, fetch PageFetcher[T], options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = constants.AllContentsPageSize
	}

	head, err := fetch(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching total count: %w", err)
	}

	total := head.TotalCount
	all := make([]T, 0, total)

	for offset := 0; len(all) < total; offset += pageSize {
		if offset > 0 && options.Interval > 0 {
			err = sleep(ctx, options.Interval)
			if err != nil {
				return nil, err
			}
		}

		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching page at offset %d: %w", offset, err)
		}

		if len(page.Contents) == 0 {
			break
		}

		all = append(all, page.Contents...)
	}

	return all, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting between pages: %w", ctx.Err())
	}
}

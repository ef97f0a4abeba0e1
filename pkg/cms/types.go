package cms

import (
	"time"
)

// Content represents the fields the CMS attaches to every list-API record.
type Content struct {
	ID          string     `json:"id"                    yaml:"id"`
	CreatedAt   time.Time  `json:"createdAt"             yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt"             yaml:"updated_at"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"published_at,omitempty"`
	RevisedAt   *time.Time `json:"revisedAt,omitempty"   yaml:"revised_at,omitempty"`
}

// Published reports whether the record carries a publication timestamp.
func (c Content) Published() bool {
	return c.PublishedAt != nil
}

// Image represents an image reference served by the CMS.
type Image struct {
	URL    string `json:"url"              yaml:"url"`
	Width  int    `json:"width,omitempty"  yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Member represents a member profile.
type Member struct {
	Content

	Name     string `json:"name"     yaml:"name"`
	Position string `json:"position" yaml:"position"`
	Profile  string `json:"profile"  yaml:"profile"`
	Image    Image  `json:"image"    yaml:"image"`
}

// Category represents a news category.
type Category struct {
	Content

	Name string `json:"name" yaml:"name"`
}

// News represents a news item. The owning category is embedded by the CMS.
type News struct {
	Content

	Title       string   `json:"title"               yaml:"title"`
	Description string   `json:"description"         yaml:"description"`
	Body        string   `json:"content"             yaml:"content"`
	Thumbnail   *Image   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Category    Category `json:"category"            yaml:"category"`
}

// Entry constrains the record types served by the content endpoints.
type Entry interface {
	Member | News | Category
}

// ListResult is the envelope returned by list endpoints.
type ListResult[T any] struct {
	Contents   []T `json:"contents"   yaml:"contents"`
	TotalCount int `json:"totalCount" yaml:"total_count"`
	Offset     int `json:"offset"     yaml:"offset"`
	Limit      int `json:"limit"      yaml:"limit"`
}

// EmptyListResult returns the degraded envelope for a list request: no
// contents and the requested limit, or defaultLimit when none was requested.
func EmptyListResult[T any](query *Query, defaultLimit int) ListResult[T] {
	return ListResult[T]{
		Contents:   []T{},
		TotalCount: 0,
		Offset:     0,
		Limit:      query.LimitOr(defaultLimit),
	}
}

// MemberList represents a list of Member records.
type MemberList = ListResult[Member]

// NewsList represents a list of News records.
type NewsList = ListResult[News]

// CategoryList represents a list of Category records.
type CategoryList = ListResult[Category]

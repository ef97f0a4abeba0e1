package cms

import (
	"net/url"
	"strconv"
	"strings"
)

// Query holds the optional parameters of a content request. The access layer
// forwards it verbatim; only Limit and DraftKey are ever read.
type Query struct {
	// Limit is the page size. Nil means the CMS default.
	Limit *int
	// Offset is the number of records to skip. Nil means zero.
	Offset *int
	// Orders is a comma separated list of fields, "-" prefixed for descending.
	Orders string
	// Q is a full text search term.
	Q string
	// Fields restricts the returned fields.
	Fields []string
	// IDs restricts the result to the given content IDs.
	IDs []string
	// Filters is a filter expression such as "category[equals]abc".
	Filters string
	// Depth is the reference expansion depth (1-3). Zero leaves it unset.
	Depth int
	// RichEditorFormat selects the rich text encoding ("html" or "object").
	RichEditorFormat string
	// DraftKey requests unpublished content. Nil means no draft key was
	// given; a non-nil empty key still counts as a draft request.
	DraftKey *string
	// Extra carries any other parameter, such as pagination cursors.
	Extra url.Values
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// WithLimit sets the limit.
func (q *Query) WithLimit(limit int) *Query {
	q.Limit = &limit

	return q
}

// WithOffset sets the offset.
func (q *Query) WithOffset(offset int) *Query {
	q.Offset = &offset

	return q
}

// WithOrders sets the ordering.
func (q *Query) WithOrders(orders string) *Query {
	q.Orders = orders

	return q
}

// WithFilters sets the filter expression.
func (q *Query) WithFilters(filters string) *Query {
	q.Filters = filters

	return q
}

// WithDraftKey sets the draft key.
func (q *Query) WithDraftKey(draftKey string) *Query {
	q.DraftKey = &draftKey

	return q
}

// WithParam sets an arbitrary parameter.
func (q *Query) WithParam(key, value string) *Query {
	if q.Extra == nil {
		q.Extra = url.Values{}
	}

	q.Extra.Set(key, value)

	return q
}

// LimitOr returns the requested limit, or def when the query is nil or has none.
func (q *Query) LimitOr(def int) int {
	if q == nil || q.Limit == nil {
		return def
	}

	return *q.Limit
}

// HasDraftKey reports whether the query carries a draft key, empty or not.
func (q *Query) HasDraftKey() bool {
	return q != nil && q.DraftKey != nil
}

// Clone returns a deep copy of the query. A nil query clones to an empty one.
func (q *Query) Clone() *Query {
	if q == nil {
		return NewQuery()
	}

	clone := *q

	if q.Limit != nil {
		limit := *q.Limit
		clone.Limit = &limit
	}

	if q.Offset != nil {
		offset := *q.Offset
		clone.Offset = &offset
	}

	if q.DraftKey != nil {
		draftKey := *q.DraftKey
		clone.DraftKey = &draftKey
	}

	clone.Fields = append([]string(nil), q.Fields...)
	clone.IDs = append([]string(nil), q.IDs...)

	if q.Extra != nil {
		clone.Extra = make(url.Values, len(q.Extra))
		for key, values := range q.Extra {
			clone.Extra[key] = append([]string(nil), values...)
		}
	}

	return &clone
}

// ToValues converts the query to URL query values.
func (q *Query) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	for key, vals := range q.Extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	if q.Limit != nil {
		values.Set("limit", strconv.Itoa(*q.Limit))
	}

	if q.Offset != nil {
		values.Set("offset", strconv.Itoa(*q.Offset))
	}

	if q.Orders != "" {
		values.Set("orders", q.Orders)
	}

	if q.Q != "" {
		values.Set("q", q.Q)
	}

	if len(q.Fields) > 0 {
		values.Set("fields", strings.Join(q.Fields, ","))
	}

	if len(q.IDs) > 0 {
		values.Set("ids", strings.Join(q.IDs, ","))
	}

	if q.Filters != "" {
		values.Set("filters", q.Filters)
	}

	if q.Depth > 0 {
		values.Set("depth", strconv.Itoa(q.Depth))
	}

	if q.RichEditorFormat != "" {
		values.Set("richEditorFormat", q.RichEditorFormat)
	}

	if q.DraftKey != nil {
		values.Set("draftKey", *q.DraftKey)
	}

	return values
}

// ParseQuery builds a Query from URL values, the inverse of ToValues.
// Unknown keys are kept in Extra; malformed numbers are kept there too so
// that they still reach the CMS untouched.
func ParseQuery(values url.Values) *Query {
	q := NewQuery()

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}

		value := vals[0]

		switch key {
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				q.WithLimit(n)

				continue
			}
		case "offset":
			if n, err := strconv.Atoi(value); err == nil {
				q.WithOffset(n)

				continue
			}
		case "depth":
			if n, err := strconv.Atoi(value); err == nil {
				q.Depth = n

				continue
			}
		case "orders":
			q.Orders = value

			continue
		case "q":
			q.Q = value

			continue
		case "fields":
			q.Fields = splitList(value)

			continue
		case "ids":
			q.IDs = splitList(value)

			continue
		case "filters":
			q.Filters = value

			continue
		case "richEditorFormat":
			q.RichEditorFormat = value

			continue
		case "draftKey":
			q.WithDraftKey(value)

			continue
		}

		for _, v := range vals {
			if q.Extra == nil {
				q.Extra = url.Values{}
			}

			q.Extra.Add(key, v)
		}
	}

	return q
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

package content

import (
	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// Strategy says what an operation does with a failure.
type Strategy int

const (
	// AbsorbToDefault logs the failure and returns the operation's empty value.
	AbsorbToDefault Strategy = iota + 1
	// PropagateAsIs returns the failure to the caller unchanged.
	PropagateAsIs
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case AbsorbToDefault:
		return "absorb-to-default"
	case PropagateAsIs:
		return "propagate-as-is"
	default:
		return "unknown"
	}
}

// Operation names one of the content access operations.
type Operation string

// Content access operations.
const (
	OpListMembers       Operation = "ListMembers"
	OpListNews          Operation = "ListNews"
	OpGetNewsDetail     Operation = "GetNewsDetail"
	OpGetCategoryDetail Operation = "GetCategoryDetail"
	OpGetAllNews        Operation = "GetAllNews"
	OpGetAllCategories  Operation = "GetAllCategories"
)

// Operations returns every operation in declaration order.
func Operations() []Operation {
	return []Operation{
		OpListMembers,
		OpListNews,
		OpGetNewsDetail,
		OpGetCategoryDetail,
		OpGetAllNews,
		OpGetAllCategories,
	}
}

// Policy returns the failure strategy of the operation. Detail operations
// propagate; everything that returns a list absorbs.
func (o Operation) Policy() Strategy {
	switch o {
	case OpGetNewsDetail, OpGetCategoryDetail:
		return PropagateAsIs
	default:
		return AbsorbToDefault
	}
}

// Endpoint returns the CMS endpoint the operation reads.
func (o Operation) Endpoint() string {
	switch o {
	case OpListMembers:
		return constants.EndpointMembers
	case OpGetCategoryDetail, OpGetAllCategories:
		return constants.EndpointCategories
	default:
		return constants.EndpointNews
	}
}

// NewsDetailRevalidation returns the revalidation hint for a news detail
// request: immediate when the query carries a draft key, otherwise a fixed
// window.
func NewsDetailRevalidation(query *cms.Query) cms.Revalidation {
	if query.HasDraftKey() {
		return cms.RevalidateImmediately()
	}

	return cms.RevalidateAfter(constants.NewsDetailRevalidateAfter)
}

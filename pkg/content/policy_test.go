package content_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
	"github.com/fivetwenty-io/cms-content/pkg/content"
)

func TestOperation_Policy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op       content.Operation
		strategy content.Strategy
		endpoint string
	}{
		{content.OpListMembers, content.AbsorbToDefault, "members"},
		{content.OpListNews, content.AbsorbToDefault, "news"},
		{content.OpGetNewsDetail, content.PropagateAsIs, "news"},
		{content.OpGetCategoryDetail, content.PropagateAsIs, "categories"},
		{content.OpGetAllNews, content.AbsorbToDefault, "news"},
		{content.OpGetAllCategories, content.AbsorbToDefault, "categories"},
	}

	ops := content.Operations()
	assert.Len(t, ops, len(tests))

	for i, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.op, ops[i])
			assert.Equal(t, tt.strategy, tt.op.Policy())
			assert.Equal(t, tt.endpoint, tt.op.Endpoint())
		})
	}
}

func TestStrategy_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "absorb-to-default", content.AbsorbToDefault.String())
	assert.Equal(t, "propagate-as-is", content.PropagateAsIs.String())
	assert.Equal(t, "unknown", content.Strategy(0).String())
}

func TestNewsDetailRevalidation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cms.RevalidateAfter(60*time.Second), content.NewsDetailRevalidation(nil))
	assert.Equal(t, cms.RevalidateAfter(60*time.Second), content.NewsDetailRevalidation(cms.NewQuery().WithLimit(1)))
	assert.Equal(t, cms.RevalidateImmediately(), content.NewsDetailRevalidation(cms.NewQuery().WithDraftKey("xyz")))
	assert.Equal(t, cms.RevalidateImmediately(), content.NewsDetailRevalidation(cms.NewQuery().WithDraftKey("")))
}

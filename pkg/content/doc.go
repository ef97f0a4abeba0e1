// Package content is the access layer between page rendering and the CMS.
//
// A Service is built once from a Gate, which holds the two credentials read
// from MICROCMS_SERVICE_DOMAIN and MICROCMS_API_KEY. When either is missing
// the Service has no client and every operation returns its fallback without
// a network call:
//
//	svc := content.Default()
//
//	members := svc.ListMembers(ctx, cms.NewQuery().WithLimit(5))
//	// {Contents: [], TotalCount: 0, Offset: 0, Limit: 5} when unconfigured
//
//	news, err := svc.GetNewsDetail(ctx, id, nil)
//	switch {
//	case cms.IsUnavailable(err): // not configured
//	case cms.IsNotFound(err):    // no such item
//	case err != nil:             // any other CMS failure
//	}
//
// List and get-all operations absorb failures into an empty result
// (AbsorbToDefault). Detail operations return failures to the caller
// unchanged (PropagateAsIs). Operation.Policy reports the strategy of each
// operation.
//
// News detail requests carry a revalidation hint: a 60 second window for
// published content and immediate revalidation when the query has a draft
// key. Category detail requests carry none.
package content

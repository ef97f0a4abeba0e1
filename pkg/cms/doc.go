// Package cms defines the types and interfaces of a hosted headless CMS
// content API: the member, news and category records, the list envelope,
// query parameters and the per-request revalidation hint.
//
// It also carries the pieces shared by every client implementation: the
// response cache backends (in-memory LRU, NATS JetStream KV and Redis), the
// request and response interceptor chain with its metrics collector, the
// offset walker behind FetchAll, and the error kinds callers branch on:
//
//	news, err := cli.News().Get(ctx, id, nil, cms.RevalidateAfter(time.Minute))
//	switch {
//	case cms.IsNotFound(err):
//	case cms.IsUnauthorized(err), cms.IsForbidden(err):
//	case err != nil:
//	}
//
// A concrete client is built by the cmsclient package.
package cms

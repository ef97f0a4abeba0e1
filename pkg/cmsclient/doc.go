// Package cmsclient provides the primary entry point for constructing a
// client for a hosted headless CMS content API that implements the
// cms.Client interface.
//
// It layers configuration, HTTP transport, API key handling and response
// caching on top of the resource interfaces and types defined in the cms
// package. Most applications do not use cmsclient directly: the content
// package reads the credentials from the environment, builds the client once
// and applies the degradation policy. Use cmsclient when you need the raw
// errors of every endpoint.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/cms-content/pkg/cms"
//	  "github.com/fivetwenty-io/cms-content/pkg/cmsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := cmsclient.New(ctx, &cms.Config{
//	    ServiceDomain: "example", // example.microcms.io
//	    APIKey:        "read-key",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  news, err := cli.News().List(ctx, cms.NewQuery().WithLimit(5))
//	  if err != nil { log.Fatal(err) }
//	  _ = news
//	}
//
// # Caching
//
// Detail requests may carry a cms.Revalidation hint. Cacheable hints are served
// from Config.Cache (an in-memory LRU by default; NATS JetStream KV and Redis
// backends are available through cms.NewCacheFromConfig).
//
// # Retries
//
// Every request is attempted once. Failures are reported to the caller as
// returned errors; error responses are *cms.APIError values.
package cmsclient

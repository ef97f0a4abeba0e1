package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0o750
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for requests to the CMS.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second

	// ServerReadHeaderTimeout bounds header reads on the content HTTP surface.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerShutdownTimeout is the grace period for draining the content HTTP surface.
	ServerShutdownTimeout = 10 * time.Second
)

// CMS API layout.
const (
	// APIBaseURLFormat builds the microCMS API base URL from a service domain.
	APIBaseURLFormat = "https://%s.microcms.io/api/v1"

	// APIKeyHeader carries the private API key.
	APIKeyHeader = "X-MICROCMS-API-KEY" // #nosec G101 -- header name, not a credential

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "cms-content-go"
)

// CMS endpoints.
const (
	EndpointMembers    = "members"
	EndpointNews       = "news"
	EndpointCategories = "categories"
)

// Paging.
const (
	// DefaultListLimit is the limit reported by an empty fallback envelope
	// when the caller did not ask for one. It matches the CMS default.
	DefaultListLimit = 10

	// AllContentsPageSize is the page size used by get-all operations.
	// It is the largest limit the CMS accepts.
	AllContentsPageSize = 100

	// DefaultPageInterval is the pause between get-all pages.
	DefaultPageInterval time.Duration = 0
)

// Caching.
const (
	// DefaultCacheSize is the default number of entries kept by the memory cache.
	DefaultCacheSize = 1000

	// CacheSweepInterval is how often serve evicts expired memory cache entries.
	CacheSweepInterval = 5 * time.Minute

	// NewsDetailRevalidateAfter is the staleness window for published news detail.
	NewsDetailRevalidateAfter = 60 * time.Second

	// DefaultNATSBucket is the JetStream KV bucket used by the NATS cache.
	DefaultNATSBucket = "cms_content_cache"

	// DefaultRedisPrefix namespaces keys written by the Redis cache.
	DefaultRedisPrefix = "cms:content:"
)

// UI and display constants.
const (
	// NotAvailable is shown for empty optional values.
	NotAvailable = "N/A"

	// StringTruncationLimit is the width at which long table cells are cut.
	StringTruncationLimit = 60
)

// Format constants.
const (
	// FormatJSON is the JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"

	// FormatTable is the table output format.
	FormatTable = "table"
)

package content

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fivetwenty-io/cms-content/internal/logging"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
	"github.com/fivetwenty-io/cms-content/pkg/cmsclient"
)

// DefaultEnvFiles are the files Default reads in addition to the process
// environment, lowest precedence first.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Service applies the degradation policy to a backing client. The client is
// fixed at construction and nil when the CMS is not configured. A Service is
// safe for concurrent use.
type Service struct {
	client cms.Client
	logger cms.Logger
}

type options struct {
	logger       cms.Logger
	cache        cms.Cache
	httpTimeout  time.Duration
	userAgent    string
	debug        bool
	baseURL      string
	pageInterval time.Duration
	interceptors *cms.InterceptorChain
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger for diagnostics.
func WithLogger(logger cms.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCache sets the response cache used for revalidation hints.
func WithCache(cache cms.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithHTTPTimeout bounds a single CMS request.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = timeout
	}
}

// WithUserAgent overrides the User-Agent sent to the CMS.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithDebug logs every CMS request and response at debug level.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithBaseURL replaces the API base derived from the service domain.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithPageInterval pauses between pages of the get-all operations.
func WithPageInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pageInterval = interval
	}
}

// WithInterceptors runs chain around every CMS request.
func WithInterceptors(chain *cms.InterceptorChain) Option {
	return func(o *options) {
		o.interceptors = chain
	}
}

func defaultLogger() cms.Logger {
	return logging.New(os.Stderr, "info").Component("content")
}

// New builds a Service for gate. When the gate is closed no client is built
// and a single warning is logged. A client that cannot be built is logged
// and treated the same way.
func New(ctx context.Context, gate Gate, opts ...Option) *Service {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = defaultLogger()
	}

	if !gate.Available() {
		warnUnavailable(o.logger, gate)

		return &Service{logger: o.logger}
	}

	client, err := cmsclient.New(ctx, &cms.Config{
		ServiceDomain: gate.ServiceDomain(),
		APIKey:        gate.APIKey(),
		BaseURL:       o.baseURL,
		HTTPTimeout:   o.httpTimeout,
		PageInterval:  o.pageInterval,
		Debug:         o.debug,
		Logger:        o.logger,
		UserAgent:     o.userAgent,
		Cache:         o.cache,
		Interceptors:  o.interceptors,
	})
	if err != nil {
		o.logger.Warn("content API unavailable: client construction failed", map[string]interface{}{
			"service_domain": gate.ServiceDomain(),
			"error":          err.Error(),
		})

		return &Service{logger: o.logger}
	}

	return &Service{client: client, logger: o.logger}
}

// NewWithClient builds a Service around an explicit client. A nil client
// yields an unconfigured Service.
func NewWithClient(client cms.Client, logger cms.Logger) *Service {
	if logger == nil {
		logger = defaultLogger()
	}

	if client == nil {
		warnUnavailable(logger, Gate{})
	}

	return &Service{client: client, logger: logger}
}

var defaultService = sync.OnceValue(func() *Service {
	logger := defaultLogger()

	gate, err := LoadGate(DefaultEnvFiles...)
	if err != nil {
		logger.Warn("reading CMS environment failed", map[string]interface{}{"error": err.Error()})
	}

	return New(context.Background(), gate, WithLogger(logger))
})

// Default returns the process-wide Service, built from the environment on
// first use.
func Default() *Service {
	return defaultService()
}

// Available reports whether the Service has a backing client.
func (s *Service) Available() bool {
	return s.client != nil
}

// Client returns the backing client, or nil when unconfigured.
func (s *Service) Client() cms.Client {
	return s.client
}

// CacheStats returns the response cache counters of the backing client. ok
// is false when the Service is unconfigured or its client keeps no counters.
func (s *Service) CacheStats() (stats cms.CacheStats, ok bool) {
	counter, ok := s.client.(interface{ CacheStats() cms.CacheStats })
	if !ok {
		return cms.CacheStats{}, false
	}

	return counter.CacheStats(), true
}

func warnUnavailable(logger cms.Logger, gate Gate) {
	logger.Warn("content API unavailable: CMS credentials are not configured", map[string]interface{}{
		"service_domain_set": gate.ServiceDomain() != "",
		"api_key_set":        gate.APIKey() != "",
	})
}

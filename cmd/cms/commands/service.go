package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/internal/logging"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
	"github.com/fivetwenty-io/cms-content/pkg/content"
)

// runtime bundles what a command needs to reach the CMS.
type runtime struct {
	service *content.Service
	gate    content.Gate
	logger  *logging.Logger
	metrics *cms.MetricsCollector
	cache   cms.Cache
}

// Close releases the cache connection, if any.
func (r *runtime) Close() {
	if closer, ok := r.cache.(io.Closer); ok {
		_ = closer.Close()
	}
}

// sweepExpired evicts expired cache entries every interval until ctx is done.
// Caches without a Cleanup method expire entries on their own.
func (r *runtime) sweepExpired(ctx context.Context, interval time.Duration) {
	cleaner, ok := r.cache.(interface{ Cleanup() })
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleaner.Cleanup()
		}
	}
}

func newLogger() *logging.Logger {
	level := viper.GetString("log-level")
	if viper.GetBool("verbose") {
		level = "debug"
	}

	return logging.NewConsole(os.Stderr, level).Component("cli")
}

// cacheConfig builds the response cache configuration from viper.
func cacheConfig() *cms.CacheConfig {
	config := &cms.CacheConfig{
		Type:   cms.CacheType(viper.GetString("cache")),
		Memory: &cms.MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
	}

	switch config.Type {
	case cms.CacheTypeNATS, cms.CacheTypeMemoryNATS:
		config.NATS = &cms.NATSKVConfig{
			URL:    viper.GetString("nats-url"),
			Bucket: constants.DefaultNATSBucket,
		}
	case cms.CacheTypeRedis, cms.CacheTypeMemoryRedis:
		config.Redis = &cms.RedisCacheConfig{
			URL:    viper.GetString("redis-url"),
			Prefix: constants.DefaultRedisPrefix,
		}
	}

	return config
}

// newRuntime reads the gate and builds the content service.
func newRuntime(ctx context.Context) (*runtime, error) {
	logger := newLogger()

	gate, err := content.LoadGate(viper.GetStringSlice("env-file")...)
	if err != nil {
		return nil, fmt.Errorf("loading CMS credentials: %w", err)
	}

	cache, err := cms.NewCacheFromConfig(cacheConfig())
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}

	metrics := cms.NewMetricsCollector()

	var chainLogger cms.Logger
	if viper.GetBool("verbose") {
		chainLogger = logger
	}

	interceptors := cms.NewObservedChain(chainLogger, metrics)
	if headers := viper.GetStringMapString("header"); len(headers) > 0 {
		interceptors.AddRequestInterceptor(cms.HeaderInterceptor(headers))
	}

	service := content.New(ctx, gate,
		content.WithLogger(logger),
		content.WithCache(cache),
		content.WithBaseURL(viper.GetString("base-url")),
		content.WithHTTPTimeout(viper.GetDuration("timeout")),
		content.WithPageInterval(viper.GetDuration("page-interval")),
		content.WithDebug(viper.GetBool("verbose")),
		content.WithInterceptors(interceptors),
	)

	return &runtime{
		service: service,
		gate:    gate,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
	}, nil
}

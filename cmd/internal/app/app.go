// ABOUTME: Shared wiring for the API server and the CLI
// ABOUTME: Builds cache, HTTP client, corpus provider, pipeline, metrics and publishers from config

package app

import (
	"context"
	"errors"
	"io"
	"time"

	"kgraph-api/api/middleware"
	"kgraph-api/core/corpus"
	"kgraph-api/core/interfaces"
	"kgraph-api/core/pipeline"
	"kgraph-api/infrastructure/cache/memory"
	"kgraph-api/infrastructure/cache/redis"
	"kgraph-api/infrastructure/cache/sqlite"
	stdhttp "kgraph-api/infrastructure/http/standard"
	"kgraph-api/infrastructure/metrics/prometheus"
	"kgraph-api/infrastructure/storage/local"
	"kgraph-api/infrastructure/storage/s3"
	"kgraph-api/pkg/config"
	"kgraph-api/pkg/featureflags"
)

// MetricsNamespace prefixes every exported metric
const MetricsNamespace = "kgraph"

// App holds the wired services
type App struct {
	Config   *config.Config
	Flags    featureflags.Manager
	Deps     interfaces.Dependencies
	Corpus   *corpus.Service
	Pipeline *pipeline.Service

	// Metrics is nil when the metrics_enabled flag is off
	Metrics *prometheus.Collector

	closers []io.Closer
}

// New wires every service described by cfg
func New(cfg *config.Config, logger interfaces.Logger, flags featureflags.Manager) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if flags == nil {
		flags = featureflags.NewEnvManagerWithDefaults("FEATURE_", featureflags.DefaultFlags)
	}

	a := &App{Config: cfg, Flags: flags}
	ctx := context.Background()

	cache, closer := newCache(cfg.Cache, logger)
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	var opts []stdhttp.Option
	opts = append(opts, stdhttp.WithTransport(middleware.NewLoggingRoundTripper(nil, logger)))
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		opts = append(opts, stdhttp.WithRateLimit(cfg.Fetch.RatePerSecond, 1))
	}
	httpClient := stdhttp.NewStandardHTTPClient(cfg.Fetch.Timeout, opts...)

	a.Deps = interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	if flags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		a.Metrics = prometheus.NewCollector(MetricsNamespace)
		a.Deps.Metrics = a.Metrics
	}

	a.Corpus = corpus.NewService(a.Deps, corpus.Config{
		FeedBaseURL:    cfg.Fetch.FeedBaseURL,
		ProfileBaseURL: cfg.Fetch.ProfileBaseURL,
		CacheTTL:       cfg.Cache.CorpusTTL,
		Workers:        cfg.Graph.Workers,
	})
	a.Corpus.SetFlags(flags)
	a.Corpus.SetProfileScraper(corpus.NewProfileScraper(logger, cfg.Fetch.Timeout))

	p, err := pipeline.NewService(a.Deps, a.Corpus, pipeline.Config{
		Workers:    cfg.Graph.Workers,
		Exclusions: cfg.Graph.ExcludePatterns,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Pipeline = p

	return a, nil
}

// newCache picks the configured backend, falling back to memory when Redis or SQLite fail
func newCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, io.Closer) {
	fallback := func() interfaces.Cache {
		expiration := time.Duration(cfg.Memory.DefaultExpiration) * time.Second
		return memory.NewMemoryCache(expiration, 10*time.Minute)
	}

	switch cfg.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return fallback(), nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return c, c

	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"path":  cfg.SQLite.Path,
				"error": err.Error(),
			})
			return fallback(), nil
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return c, c

	default:
		logger.Info("Using memory cache", nil)
		return fallback(), nil
	}
}

// Publisher returns the S3 publisher when useS3 is set, the local one otherwise
func (a *App) Publisher(ctx context.Context, useS3 bool) (interfaces.Publisher, error) {
	if useS3 {
		return s3.NewPublisher(ctx, s3.Config{
			Bucket: a.Config.Output.S3Bucket,
			Prefix: a.Config.Output.S3Prefix,
		})
	}
	return local.NewPublisher(a.Config.Output.Dir)
}

// Close releases cache connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Package infrastructure provides concrete implementations of the interfaces
// defined in core/interfaces.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory cache on patrickmn/go-cache
// - cache/redis: Redis cache on redis/go-redis
// - cache/sqlite: SQLite cache on mattn/go-sqlite3
// - http/standard: net/http client with retries and an outbound rate limiter
// - logger/logrus: logrus logger with optional lumberjack file rotation
// - metrics/prometheus: Prometheus collector for builds, fetches and HTTP requests
// - storage/local, storage/s3: publishers for rendered graph pages
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(time.Hour, 10*time.Minute)
//	err := cache.Set(ctx, "corpus:justdataplease:0", data, 24*time.Hour)
//	value, err := cache.Get(ctx, "corpus:justdataplease:0")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "kgraph:",
//	})
//
// # HTTP Client
//
// Feed and page fetches retry 5xx responses and share a token bucket:
//
//	client := standard.NewStandardHTTPClient(15*time.Second, standard.WithRateLimit(5, 1))
//	resp, err := client.Get(ctx, "https://medium.com/feed/@justdataplease")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrus.NewLogger(logrus.Config{Level: "info", Format: "json"})
//	logger.Info("Graph built", map[string]interface{}{
//	    "username": "justdataplease",
//	    "nodes":    42,
//	})
package infrastructure

// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines server, cache, logging, graph, fetch and output settings

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logging configuration
	Log LogConfig

	// Graph contains graph build defaults
	Graph GraphConfig

	// Fetch contains corpus source configuration
	Fetch FetchConfig

	// Output contains publishing configuration
	Output OutputConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per window
	RateLimit int

	// RateWindow is the rate limiting window
	RateWindow time.Duration
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig

	// CorpusTTL is how long a fetched corpus is reused
	CorpusTTL time.Duration
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key
	KeyPrefix string
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// GraphConfig holds graph build defaults
type GraphConfig struct {
	// Isolate scopes domain dedup to each article
	Isolate bool

	// MaxArticles limits the corpus; 0 keeps every article
	MaxArticles int

	// Workers bounds concurrent link classification
	Workers int

	// ExcludePatterns replaces the built-in exclusion list when non-empty
	ExcludePatterns []string
}

// FetchConfig holds corpus source configuration
type FetchConfig struct {
	// FeedBaseURL is prefixed to "@<username>" to form the feed URL
	FeedBaseURL string

	// ProfileBaseURL is prefixed to "@<username>" to form the profile URL
	ProfileBaseURL string

	// RatePerSecond limits outbound requests; 0 disables limiting
	RatePerSecond float64

	// Timeout is the per-request timeout
	Timeout time.Duration
}

// OutputConfig holds publishing configuration
type OutputConfig struct {
	// Dir is the local output directory
	Dir string

	// S3Bucket enables S3 publishing when set
	S3Bucket string

	// S3Prefix is prepended to object keys
	S3Prefix string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8000"),
			RateLimit:  getEnvAsIntOrDefault("RATE_LIMIT", 60),
			RateWindow: getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "kgraph:"),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "kgraph-cache.db"),
			},
			CorpusTTL: getEnvAsDurationOrDefault("CORPUS_CACHE_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		Graph: GraphConfig{
			Isolate:         getEnvAsBoolOrDefault("GRAPH_ISOLATE", false),
			MaxArticles:     getEnvAsIntOrDefault("GRAPH_MAX_ARTICLES", 0),
			Workers:         getEnvAsIntOrDefault("GRAPH_WORKERS", 8),
			ExcludePatterns: getEnvAsListOrDefault("EXCLUDE_PATTERNS", nil),
		},
		Fetch: FetchConfig{
			FeedBaseURL:    getEnvOrDefault("FEED_BASE_URL", "https://medium.com/feed/"),
			ProfileBaseURL: getEnvOrDefault("PROFILE_BASE_URL", "https://medium.com/"),
			RatePerSecond:  getEnvAsFloatOrDefault("FETCH_RATE_PER_SECOND", 5),
			Timeout:        getEnvAsDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
		},
		Output: OutputConfig{
			Dir:      getEnvOrDefault("OUTPUT_DIR", "output"),
			S3Bucket: getEnvOrDefault("S3_BUCKET", ""),
			S3Prefix: getEnvOrDefault("S3_PREFIX", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("30s") or whole seconds ("30")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable, dropping empty items
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request")
	}

	if c.Server.RateWindow <= 0 {
		return errors.New("rate window must be positive")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Graph.MaxArticles < 0 {
		return errors.New("max articles cannot be negative")
	}

	if c.Graph.Workers < 1 {
		return errors.New("graph workers must be at least 1")
	}

	if c.Fetch.FeedBaseURL == "" {
		return errors.New("feed base URL cannot be empty")
	}

	if c.Fetch.RatePerSecond < 0 {
		return errors.New("fetch rate cannot be negative")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

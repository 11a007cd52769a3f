package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Address)
	assert.Equal(t, 3600, cfg.Cache.Memory.DefaultExpiration)
	assert.Equal(t, 24*time.Hour, cfg.Cache.CorpusTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Graph.Isolate)
	assert.Equal(t, 0, cfg.Graph.MaxArticles)
	assert.Nil(t, cfg.Graph.ExcludePatterns)
	assert.Equal(t, "https://medium.com/feed/", cfg.Fetch.FeedBaseURL)
	assert.Equal(t, "https://medium.com/", cfg.Fetch.ProfileBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Empty(t, cfg.Output.S3Bucket)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PORT", "3000")
	t.Setenv("CACHE_TYPE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/c.db")
	t.Setenv("GRAPH_ISOLATE", "true")
	t.Setenv("GRAPH_MAX_ARTICLES", "25")
	t.Setenv("GRAPH_WORKERS", "2")
	t.Setenv("EXCLUDE_PATTERNS", `unsplash, \.svg ,,`)
	t.Setenv("FETCH_RATE_PER_SECOND", "1.5")
	t.Setenv("FETCH_TIMEOUT", "30")
	t.Setenv("RATE_WINDOW", "90s")
	t.Setenv("S3_BUCKET", "graphs")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Type)
	assert.Equal(t, "/tmp/c.db", cfg.Cache.SQLite.Path)
	assert.True(t, cfg.Graph.Isolate)
	assert.Equal(t, 25, cfg.Graph.MaxArticles)
	assert.Equal(t, 2, cfg.Graph.Workers)
	assert.Equal(t, []string{"unsplash", `\.svg`}, cfg.Graph.ExcludePatterns)
	assert.Equal(t, 1.5, cfg.Fetch.RatePerSecond)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, "graphs", cfg.Output.S3Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_InvalidNumbersFallBack(t *testing.T) {
	os.Clearenv()
	t.Setenv("GRAPH_MAX_ARTICLES", "lots")
	t.Setenv("GRAPH_ISOLATE", "maybe")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Graph.MaxArticles)
	assert.False(t, cfg.Graph.Isolate)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	os.Clearenv()
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "port"},
		{name: "zero rate limit", mutate: func(c *Config) { c.Server.RateLimit = 0 }, wantErr: "rate limit"},
		{name: "zero window", mutate: func(c *Config) { c.Server.RateWindow = 0 }, wantErr: "rate window"},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Type = "disk" }, wantErr: "cache type"},
		{name: "redis without address", mutate: func(c *Config) {
			c.Cache.Type = "redis"
			c.Cache.Redis.Address = ""
		}, wantErr: "redis address"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Cache.Type = "sqlite"
			c.Cache.SQLite.Path = ""
		}, wantErr: "sqlite path"},
		{name: "negative max articles", mutate: func(c *Config) { c.Graph.MaxArticles = -1 }, wantErr: "max articles"},
		{name: "no workers", mutate: func(c *Config) { c.Graph.Workers = 0 }, wantErr: "workers"},
		{name: "no feed url", mutate: func(c *Config) { c.Fetch.FeedBaseURL = "" }, wantErr: "feed base URL"},
		{name: "negative rate", mutate: func(c *Config) { c.Fetch.RatePerSecond = -1 }, wantErr: "fetch rate"},
		{name: "zero timeout", mutate: func(c *Config) { c.Fetch.Timeout = 0 }, wantErr: "timeout"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

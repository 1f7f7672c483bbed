package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, time.Minute, cfg.Auth.CacheTTL)
	assert.Equal(t, 720*time.Hour, cfg.Usage.Retention)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://hw:hw@localhost:5432/hw?sslmode=disable")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("AUTH_CACHE_TTL", "5m")
	t.Setenv("USAGE_PRUNE_INTERVAL", "15m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 5*time.Minute, cfg.Auth.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.Usage.PruneInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("USAGE_RETENTION", "forever")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.Usage.Retention)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", Port: 8080, RequestTimeout: time.Second},
			Auth:   AuthConfig{KeysFile: "keys.yaml"},
			Usage:  UsageConfig{Retention: time.Hour, PruneInterval: time.Minute},
			Log:    LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"no key source", func(c *Config) { c.Auth.KeysFile = "" }, "keys file"},
		{"dsn without key file", func(c *Config) { c.Auth.KeysFile = ""; c.Database.DSN = "postgres://x" }, ""},
		{"zero retention", func(c *Config) { c.Usage.Retention = 0 }, "retention"},
		{"zero prune interval", func(c *Config) { c.Usage.PruneInterval = 0 }, "prune interval"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

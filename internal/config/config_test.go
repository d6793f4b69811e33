package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "DB_PATH", "DATABASE_URL", "EVENTS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "app.db", cfg.DBPath)
	require.Empty(t, cfg.DBURL)
	require.False(t, cfg.Events)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/todos.db")
	t.Setenv("DATABASE_URL", "user:pass@tcp(db:3306)/todos?parseTime=true")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg := Load()
	require.Equal(t, "testing", cfg.Env)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "/tmp/todos.db", cfg.DBPath)
	require.Equal(t, "user:pass@tcp(db:3306)/todos?parseTime=true", cfg.DBURL)
	require.True(t, cfg.Events)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	for _, key := range []string{"CACHE_ENABLED", "CACHE_TTL", "CACHE_PREFIX", "CACHE_MAX_BODY_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, 30*time.Second, cfg.TTL)
	require.Equal(t, "cache", cfg.Prefix)
	require.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigBadDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := LoadCacheConfig()
	require.Equal(t, time.Second, cfg.TTL)
}

func TestLoadRateLimitConfigClampsInvalid(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_MAX", "-5")
	t.Setenv("RATE_LIMIT_WINDOW", "-3s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 1, cfg.Limit)
	require.Equal(t, time.Minute, cfg.Window)
}

func TestEnvBoolVariants(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "off")
	require.False(t, LoadRateLimitConfig().Enabled)

	t.Setenv("RATE_LIMIT_ENABLED", "YES")
	require.True(t, LoadRateLimitConfig().Enabled)

	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	require.True(t, LoadRateLimitConfig().Enabled) // unknown values keep the default
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"todoapi/internal/config"
	"todoapi/internal/middleware"
)

// Without a Redis client both middlewares must be transparent: every request
// reaches the handler untouched.

func invoke(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCachePassthroughWithoutRedis(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}

	rec := invoke(t, middleware.NewResponseCache(cfg, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
	require.Empty(t, rec.Header().Get("X-Cache"))
}

func TestResponseCachePassthroughWhenDisabled(t *testing.T) {
	cfg := config.CacheConfig{Enabled: false}

	rec := invoke(t, middleware.NewResponseCache(cfg, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
}

func TestRateLimiterPassthroughWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute, Prefix: "rl"}
	mw := middleware.NewRateLimiter(cfg, nil)

	// Limit is 1 but without Redis nothing is counted.
	for range 3 {
		rec := invoke(t, mw)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestInvalidatorNilWhenDisabled(t *testing.T) {
	require.Nil(t, middleware.NewInvalidator(config.CacheConfig{Enabled: false}, nil))
	require.Nil(t, middleware.NewInvalidator(config.CacheConfig{Enabled: true}, nil))
}

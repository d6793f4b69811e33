package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"todoapi/internal/config"
)

// NewRateLimiter enforces a fixed-window request limit per client IP using
// a Redis counter. Limiter trouble never blocks traffic: if Redis fails
// mid-request the request is allowed through. A disabled config or nil
// client yields a passthrough.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s", cfg.Prefix, c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				// First hit of the window starts its expiry.
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > int64(cfg.Limit) {
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
				}
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   "Too many requests",
				})
			}
			return next(c)
		}
	}
}

package middleware

// Response cache backed by Redis. Successful GET responses are stored for a
// short TTL and replayed on subsequent requests. Mutating handlers purge the
// whole prefix after a commit, so a cached list is never served past a write.

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"todoapi/internal/config"
)

// recordingWriter captures the response body and status while forwarding to
// the client.
type recordingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey hashes the request path and query under the configured prefix.
func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// encode packs [4 bytes status][body]; the stored responses are always JSON
// so no headers beyond Content-Type need to survive the round trip.
func encode(status int, body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(out[:4], uint32(status))
	copy(out[4:], body)
	return out
}

// NewResponseCache returns middleware that caches 200 responses to GET
// requests. A disabled config or nil client yields a passthrough.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && len(raw) > 4 {
				status := int(binary.BigEndian.Uint32(raw[:4]))
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().WriteHeader(status)
				_, _ = c.Response().Write(raw[4:])
				return nil
			}

			rec := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			body := rec.buf.Bytes()
			if rec.status == http.StatusOK && (cfg.MaxBodyBytes <= 0 || len(body) <= cfg.MaxBodyBytes) {
				_ = rdb.SetEx(context.Background(), key, encode(rec.status, body), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// Invalidator purges every cached response under the configured prefix.
// Handlers call it after a successful write so reads reflect the mutation
// immediately instead of waiting out the TTL.
type Invalidator struct {
	rdb    *redis.Client
	prefix string
}

// NewInvalidator returns nil when caching is disabled; handlers treat a nil
// Invalidator as a no-op.
func NewInvalidator(cfg config.CacheConfig, rdb *redis.Client) *Invalidator {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &Invalidator{rdb: rdb, prefix: cfg.Prefix}
}

// Invalidate removes all keys under the prefix using SCAN so large key sets
// never block the server.
func (i *Invalidator) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := i.rdb.Scan(ctx, cursor, i.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

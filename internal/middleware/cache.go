// Package middleware holds the Echo middleware used by the service.
package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/Khkimov/restaurant-table-ms/internal/config"
)

// bodyCapture duplicates the response body into a buffer while
// forwarding it to the client, so a successful response can be stored
// after the handler ran.
type bodyCapture struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// cacheKey derives a stable Redis key from the matched route and query.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum)
}

// ResponseCache caches successful GET responses in Redis for cfg.TTL.
// Every cached endpoint here serves JSON, so only the body is stored.
// Entries are also dropped eagerly by the change-event consumer, making
// the TTL a backstop against missed events. With a nil client or a
// disabled config the middleware is a no-op, so a Redis outage only
// costs cache hits, never correctness.
func ResponseCache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, c)
            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                return c.JSONBlob(http.StatusOK, body)
            }
            w := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = w
            if err := next(c); err != nil {
                return err
            }
            if w.status == http.StatusOK && w.buf.Len() > 0 {
                // Best effort; a failed store only costs the next hit
                _ = rdb.Set(ctx, key, w.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}

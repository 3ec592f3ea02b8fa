package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/session"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type windowCounter interface {
	incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	rdb redis.Scripter
}

func (c redisCounter) incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, errors.Wrap(err, "rate limit script")
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "rate limit result")
		}
		return n, nil
	default:
		return 0, errors.Errorf("unexpected rate limit result type %T", res)
	}
}

// RateLimiter es una ventana fija compartida en Redis entre instancias.
type RateLimiter struct {
	counter windowCounter
	limit   int
	window  time.Duration
	prefix  string
}

func NewRateLimiter(rdb redis.Scripter, limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(redisCounter{rdb: rdb}, limit, window)
}

func newRateLimiter(c windowCounter, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{counter: c, limit: limit, window: window, prefix: "groom:rl"}
}

// Middleware cuenta por usuario si hay sesión, si no por IP.
// failOpen deja pasar el request cuando Redis no responde.
func (rl *RateLimiter) Middleware(logger *slog.Logger, failOpen bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.prefix + ":" + clientKey(r)
			count, err := rl.counter.incr(r.Context(), key, rl.window)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter error", "err", err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				httpx.WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "rate limiter unavailable")
				return
			}
			if count > int64(rl.limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				httpx.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if s, ok := session.FromContext(r.Context()); ok {
		return "u:" + s.UserID
	}
	host := strings.TrimSpace(r.RemoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

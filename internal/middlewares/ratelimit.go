package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devister/devister/internal/logger"
)

// RateLimitMiddleware returns a middleware enforcing a fixed-window request
// limit per client IP, counted in redis so the window survives restarts and
// is shared between replicas. On a redis failure the request is let through.
func RateLimitMiddleware(rdb *redis.Client, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(window.Seconds()))

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Log.Errorw("rate limit counter failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}

			if count > limit {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

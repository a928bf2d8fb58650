// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"context"
	"net"
	"strconv"

	xerrors "customer-admin/internal/pkg/errors"
	"customer-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Allower is satisfied by ratelimit.Limiter.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, int64, error)
}

// SkipFunc exempts a request from rate limiting.
type SkipFunc func(c *gin.Context) bool

// FromLoopback matches requests made from this host, e.g. the admin UI
// calling its own API. The client IP only honours X-Forwarded-For from
// trusted proxies, so the header alone cannot claim loopback.
func FromLoopback(c *gin.Context) bool {
	ip := net.ParseIP(c.ClientIP())
	return ip != nil && ip.IsLoopback()
}

// RateLimitMiddleware limits requests per client IP. A nil limiter
// disables it; limiter errors let the request through.
func RateLimitMiddleware(limiter Allower, logger *zap.Logger, skip ...SkipFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || skipped(c, skip) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		allowed, remaining, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.String("request_id", GetRequestID(c)),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			response.TooManyRequests(c, "too many requests, slow down", xerrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

func skipped(c *gin.Context, skip []SkipFunc) bool {
	for _, fn := range skip {
		if fn(c) {
			return true
		}
	}
	return false
}

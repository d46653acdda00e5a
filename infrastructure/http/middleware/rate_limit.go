package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/infrastructure/http/response"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// RateLimitMiddleware throttles credential-guessing endpoints per client IP.
type RateLimitMiddleware struct {
	limiter inbound.RateLimitService
	log     logger.Logger
	limit   int
	window  time.Duration
}

func NewRateLimitMiddleware(limiter inbound.RateLimitService, log logger.Logger, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, log: log, limit: limit, window: window}
}

func (m *RateLimitMiddleware) Limit(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := name + ":ip:" + clientIP(r)
		allowed, err := m.limiter.Allow(r.Context(), key, m.limit, m.window)
		if err != nil {
			// Limiter trouble must not take down auth; log and let the
			// request through.
			m.log.Error(r.Context(), "rate limiter unavailable", err, map[string]interface{}{
				"key": key,
			})
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package main

import (
	"net/http"

	"go.uber.org/zap"
)

// rateLimitMiddleware enforces the global rate limiter, skipping metrics scrapes.
func (s *server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil || isMetricsPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if !s.limiter.Allow() {
			// Set headers before writing status/body
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			s.logger.Debug("rate limited",
				zap.String("path", r.URL.Path),
				zap.String("request_id", requestIDFrom(r.Context())))
			return
		}
		next.ServeHTTP(w, r)
	})
}

package main

import (
	"context"
	"net/http"
	"time"
)

type startTimeKey struct{}

// withStartTime returns a copy of ctx carrying the time request handling began.
func withStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

// startTimeFrom returns the start time stored in ctx, if any.
func startTimeFrom(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startTimeKey{}).(time.Time)
	return t, ok
}

// isMetricsPath reports whether path is the exposition endpoint, whose own
// latency is never recorded.
func isMetricsPath(path string) bool {
	return path == "/metrics" || path == "/metrics/"
}

// instrumentMiddleware records the latency of every request except metrics
// scrapes in the self channel, labelled with path, method and final status.
func (s *server) instrumentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(withStartTime(r.Context(), time.Now()))
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		if isMetricsPath(r.URL.Path) {
			return
		}
		start, ok := startTimeFrom(r.Context())
		if !ok {
			return
		}
		s.collector.observeSelf(r.URL.Path, r.Method, rw.statusCode, time.Since(start).Seconds())
	})
}

package main

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// server carries everything a request handler needs. It is built once at
// startup and shared by reference with every handler and middleware.
type server struct {
	cfg       Config
	logger    *zap.Logger
	collector *metricCollector
	limiter   *rate.Limiter
	startTime time.Time
}

// newServer wires the metric collector and the optional rate limiter for cfg.
func newServer(cfg Config, logger *zap.Logger) *server {
	s := &server{
		cfg:       cfg,
		logger:    logger,
		collector: newMetricCollector(cfg.ServiceName, cfg.RuntimeMetrics, logger),
		startTime: time.Now(),
	}

	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		logger.Info("rate limiting enabled",
			zap.Float64("rps", cfg.RateLimitRPS),
			zap.Int("burst", cfg.RateLimitBurst))
	}
	return s
}

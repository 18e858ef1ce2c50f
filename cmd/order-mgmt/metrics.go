package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	labelStatusCode = "status_code"
	labelPath       = "path"
	labelMethod     = "method"
	labelSQLState   = "sql_state"
)

// databaseBuckets are the upper bounds, in seconds, of the database histogram.
var databaseBuckets = []float64{.1, .25, .5, .75, .90, 1.0, 2.5}

// metricCollector owns the latency channels of the service and the registry
// they are exposed from.
type metricCollector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	self     *prometheus.SummaryVec
	database *prometheus.HistogramVec
	external *prometheus.SummaryVec
}

// newMetricCollector creates the three latency channels for serviceName on a
// fresh registry. Dashes in serviceName become underscores in metric names.
func newMetricCollector(serviceName string, runtimeMetrics bool, logger *zap.Logger) *metricCollector {
	prefix := strings.ReplaceAll(serviceName, "-", "_")

	c := &metricCollector{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		self: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: prefix + "_duration_seconds",
				Help: serviceName + " latency request distribution",
			},
			[]string{labelPath, labelMethod, labelStatusCode},
		),
		database: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_database_duration_seconds",
				Help:    "database latency request distribution",
				Buckets: databaseBuckets,
			},
			[]string{labelStatusCode, labelSQLState},
		),
		external: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: prefix + "_audit_duration_seconds",
				Help: "audit service latency request distribution",
			},
			[]string{labelStatusCode},
		),
	}

	c.registry.MustRegister(c.self, c.database, c.external)
	if runtimeMetrics {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

func (c *metricCollector) observeSelf(path, method string, statusCode int, seconds float64) {
	c.self.WithLabelValues(path, method, strconv.Itoa(statusCode)).Observe(seconds)
}

func (c *metricCollector) observeDatabase(statusCode, sqlState string, seconds float64) {
	c.database.WithLabelValues(statusCode, sqlState).Observe(seconds)
}

func (c *metricCollector) observeExternal(statusCode string, seconds float64) {
	c.external.WithLabelValues(statusCode).Observe(seconds)
}

// handler renders the registry in the exposition format negotiated with the
// scraper (plain text unless asked otherwise).
func (c *metricCollector) handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorLog:      zap.NewStdLog(c.logger),
		ErrorHandling: promhttp.ContinueOnError,
	})
}

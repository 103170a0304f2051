// Package metrics collects and exposes Prometheus metrics for the catalog
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the surface handlers and middleware record through.
type Recorder interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
	RecordLogin(outcome string)
	RecordMutation(resource, action string)
}

// Collector registers and updates the service's Prometheus metrics.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	logins       *prometheus.CounterVec
	mutations    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_logins_total",
			Help: "Sign-in attempts, by outcome.",
		}, []string{"outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Catalog mutations, by resource and action.",
		}, []string{"resource", "action"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.logins,
		c.mutations,
	)
	return c
}

// RecordHTTPRequest counts a served request and observes its latency.
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordLogin counts a sign-in attempt. Outcome is "success",
// "already_connected", or a short failure reason.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordMutation counts a successful create, update, or delete.
func (c *Collector) RecordMutation(resource, action string) {
	c.mutations.WithLabelValues(resource, action).Inc()
}

// SetupMetricsRoute returns the handler serving the registry's metrics.
func SetupMetricsRoute(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

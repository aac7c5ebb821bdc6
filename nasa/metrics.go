package nasa

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the NASA gateway.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasa_upstream_requests_total",
		Help: "Total NASA API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasa_upstream_errors_total",
		Help: "Total NASA API errors by class",
	}, []string{"class"})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nasa_cache_hits_total",
		Help: "Total NASA gateway cache hits",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nasa_cache_misses_total",
		Help: "Total NASA gateway cache misses",
	})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nasa_upstream_request_duration_seconds",
		Help:    "NASA API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15},
	}, []string{"endpoint"})
)

// Error classes reported to nasa_upstream_errors_total.
const (
	errorClassRateLimit = "rate_limit"
	errorClassUpstream  = "upstream"
	errorClassNetwork   = "network"
)

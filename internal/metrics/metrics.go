// Package metrics exposes Prometheus instrumentation for searches,
// gateway fetches, the circuit breaker and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Search metrics
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_searches_total",
			Help: "Total number of searches by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "invalid", "failed"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unimatch_search_duration_seconds",
			Help:    "Duration of searches in seconds, including the gateway fetch",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unimatch_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Gateway metrics
	GatewayFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimatch_gateway_fetch_duration_seconds",
			Help:    "Duration of university fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	GatewayFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_gateway_fetch_errors_total",
			Help: "Total number of failed university fetches",
		},
		[]string{"backend"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "unimatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimatch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "unimatch_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)
)

// Search outcomes
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// RecordSearch records one search
func RecordSearch(outcome string, results int, duration time.Duration) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	SearchDuration.Observe(duration.Seconds())
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		SearchResults.Observe(float64(results))
	}
}

// RecordFetch records a gateway fetch
func RecordFetch(backend string, duration time.Duration, err error) {
	GatewayFetchDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err != nil {
		GatewayFetchErrors.WithLabelValues(backend).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

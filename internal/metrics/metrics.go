// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelog_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelog_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Domain metrics
	UsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelog_users_created_total",
			Help: "Total number of accounts created",
		},
	)

	ReviewsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelog_reviews_appended_total",
			Help: "Total number of reviews appended",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"}, // "success", "unknown_user", "bad_password", "error"
	)

	// Movie lookup metrics
	MovieRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_movie_requests_total",
			Help: "Total number of movie metadata requests by outcome",
		},
		[]string{"operation", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinelog_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMovieRequest records the outcome of a movie metadata call.
func RecordMovieRequest(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	MovieRequests.WithLabelValues(operation, outcome).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registerAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_register_attempts_total",
		Help: "Number of registration attempts grouped by status.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	followMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_follow_mutations_total",
		Help: "Follow graph mutations grouped by operation and status.",
	}, []string{"op", "status"})

	aggregateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_trip_aggregate_requests_total",
		Help: "Trip aggregation reads grouped by status.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncRegister increments the registration counter.
func IncRegister(status string) {
	registerAttempts.WithLabelValues(status).Inc()
}

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncFollow increments the follow mutation counter.
func IncFollow(op, status string) {
	followMutations.WithLabelValues(op, status).Inc()
}

// IncAggregate increments the aggregation counter.
func IncAggregate(status string) {
	aggregateRequests.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}

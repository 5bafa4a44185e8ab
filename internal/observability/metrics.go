package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lattice_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// DecisionsTotal counts network decisions by recommendation and intent.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_decisions_total",
		Help: "Total network decisions by recommendation and intent",
	}, []string{"recommendation", "intent"})

	// RequestTransitionsTotal counts connection request transitions by outcome.
	RequestTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_request_transitions_total",
		Help: "Total connection request lifecycle transitions",
	}, []string{"status"})

	// SignalsAppendedTotal counts trust signals appended by signal type.
	SignalsAppendedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_signals_appended_total",
		Help: "Total trust signals appended by type",
	}, []string{"signal_type"})

	// FeedbackTotal counts interaction feedback submissions by rating.
	FeedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_feedback_total",
		Help: "Total interaction feedback submissions by rating",
	}, []string{"rating"})

	// TrustRecomputationsTotal counts stored-trust recomputations on edges.
	TrustRecomputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lattice_trust_recomputations_total",
		Help: "Total edge trust recomputations",
	})

	// CacheRequestsTotal counts read-model cache lookups by result.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_cache_requests_total",
		Help: "Total read-model cache lookups by result",
	}, []string{"result"})

	// SuggestionListSize records the number of suggestions returned per call.
	SuggestionListSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lattice_suggestion_list_size",
		Help:    "Number of connection suggestions returned per request",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
	})
)

// ObserveQuery records the latency of a database query. The operation label
// is the leading SQL keyword, which keeps cardinality bounded.
func ObserveQuery(sql string, elapsed time.Duration) {
	operation := "other"
	if fields := strings.Fields(sql); len(fields) > 0 {
		operation = strings.ToLower(fields[0])
	}
	DatabaseQueryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

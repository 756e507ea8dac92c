package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamrecall",
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval requests by detected intent",
		},
		[]string{"intent", "status"},
	)

	RetrievalExpansionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "teamrecall",
			Name:      "retrieval_expansion_failures_total",
			Help:      "Expansion sub-searches that failed and were skipped",
		},
	)

	RetrievalFilterFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamrecall",
			Name:      "retrieval_filter_fallbacks_total",
			Help:      "Filters that emptied the candidate pool and fell back to the pre-filter set",
		},
		[]string{"filter"},
	)

	RetrievalCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "teamrecall",
			Name:      "retrieval_candidates",
			Help:      "Candidate pool size before final truncation",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"intent"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalExpansionFailuresTotal)
	prometheus.MustRegister(RetrievalFilterFallbacksTotal)
	prometheus.MustRegister(RetrievalCandidates)
	retrievalMetricsRegistered = true
}

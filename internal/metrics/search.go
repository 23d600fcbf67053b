package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome labels.
const (
	OutcomeCommitted = "committed"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// Verse search and trending Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "versefinder",
			Name:      "searches_total",
			Help:      "Total number of verse searches by final outcome",
		},
		[]string{"language", "outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "versefinder",
			Name:      "search_duration_seconds",
			Help:      "Verse search round-trip duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90},
		},
		[]string{"language"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "versefinder",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "type"}, // type: prompt / completion / total
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "versefinder",
			Name:      "llm_requests_total",
			Help:      "Total LLM requests",
		},
		[]string{"model", "kind", "status"}, // kind: verses / trending
	)

	TrendingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "versefinder",
			Name:      "trending_cache_total",
			Help:      "Trending prompt cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(LLMTokensTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(TrendingCacheTotal)
	searchMetricsRegistered = true
}

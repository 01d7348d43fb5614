package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodreco_interactions_recorded_total",
			Help: "Total number of interactions appended to the log, by action kind",
		},
		[]string{"action"},
	)

	InteractionWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodreco_interaction_write_failures_total",
			Help: "Total number of interaction writes dropped after a storage failure",
		},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodreco_recommendations_served_total",
			Help: "Total number of recommendation lists returned, by ranking mode",
		},
		[]string{"mode"}, // "overlap", "adaptive"
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodreco_recommendation_cache_hits_total",
			Help: "Total number of adaptive recommendation cache hits",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodreco_recommendation_cache_misses_total",
			Help: "Total number of adaptive recommendation cache misses",
		},
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodreco_catalog_restaurants",
			Help: "Number of restaurants in the catalog",
		},
		[]string{"origin"}, // "static", "custom"
	)
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodreco_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Status is left out to keep the histogram small.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodreco_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodreco_http_requests_inflight",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodreco_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the recommendation and trending engine:
// - Relational store (DuckDB) query latency and errors
// - Graph store query latency, errors and breaker state
// - Recommendation requests, fallbacks and result sizes
// - Trending cache outcomes and compute latency
// - Similarity batch throughput
// - API endpoint latency and throughput

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// Graph Store Metrics
	GraphQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedgraph_graph_query_duration_seconds",
			Help:    "Duration of graph store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	GraphQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_graph_query_errors_total",
			Help: "Total number of failed graph store queries",
		},
		[]string{"query"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedgraph_graph_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_graph_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_graph_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"kind"}, // posts, users
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_recommend_fallbacks_total",
			Help: "Total number of recommendation requests served by the popularity fallback",
		},
		[]string{"kind", "reason"}, // reason: graph_error, no_signal
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedgraph_recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)

	RecommendDroppedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_recommend_dropped_entities_total",
			Help: "Ranked IDs dropped because the relational store could not resolve them",
		},
		[]string{"kind"},
	)

	// Trending Metrics
	TrendingCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgraph_trending_cache_requests_total",
			Help: "Trending cache lookups by outcome",
		},
		[]string{"window", "result"}, // fresh, stale, cold, recomputed, joined, stale_served, failed
	)

	TrendingComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedgraph_trending_compute_duration_seconds",
			Help:    "Duration of trending hashtag computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"window"},
	)

	// Similarity Metrics
	SimilarityEdgesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedgraph_similarity_edges_written_total",
			Help: "Total number of SIMILAR_TO edges written",
		},
	)

	SimilarityBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedgraph_similarity_batch_duration_seconds",
			Help:    "Duration of similarity batch runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	SimilarityFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedgraph_similarity_failures_total",
			Help: "Total number of per-user similarity computations that failed",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordGraphQuery records a graph store query metric
func RecordGraphQuery(query string, duration time.Duration, err error) {
	GraphQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		GraphQueryErrors.WithLabelValues(query).Inc()
	}
}

// RecordRecommendation records one recommendation request and its outcome.
// fallbackReason is empty when the graph path produced the result.
func RecordRecommendation(kind, fallbackReason string, results int) {
	RecommendRequests.WithLabelValues(kind).Inc()
	if fallbackReason != "" {
		RecommendFallbacks.WithLabelValues(kind, fallbackReason).Inc()
	}
	RecommendResults.WithLabelValues(kind).Observe(float64(results))
}

// RecordDroppedEntities records ranked IDs the entity lookup did not return
func RecordDroppedEntities(kind string, n int) {
	if n > 0 {
		RecommendDroppedEntities.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordTrendingCache records a trending cache outcome
func RecordTrendingCache(window, result string) {
	TrendingCacheRequests.WithLabelValues(window, result).Inc()
}

// RecordTrendingCompute records the duration of one trending computation
func RecordTrendingCompute(window string, duration time.Duration) {
	TrendingComputeDuration.WithLabelValues(window).Observe(duration.Seconds())
}

// RecordSimilarityBatch records the outcome of a similarity batch run
func RecordSimilarityBatch(duration time.Duration, failed, edgesWritten int) {
	SimilarityBatchDuration.Observe(duration.Seconds())
	if failed > 0 {
		SimilarityFailures.Add(float64(failed))
	}
	if edgesWritten > 0 {
		SimilarityEdgesWritten.Add(float64(edgesWritten))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

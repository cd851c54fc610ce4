// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format.

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation}: query latency (histogram)
  - duckdb_query_errors_total{operation}

Graph Store:
  - feedgraph_graph_query_duration_seconds{query}: query latency (histogram)
  - feedgraph_graph_query_errors_total{query}: failed queries (counter)
  - feedgraph_graph_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open

Recommendations:
  - feedgraph_recommend_requests_total{kind}
  - feedgraph_recommend_fallbacks_total{kind,reason}: reason is graph_error or no_signal
  - feedgraph_recommend_results{kind}: result count per request (histogram)
  - feedgraph_recommend_dropped_entities_total{kind}

Trending:
  - feedgraph_trending_cache_requests_total{window,result}
  - feedgraph_trending_compute_duration_seconds{window}

Similarity:
  - feedgraph_similarity_edges_written_total
  - feedgraph_similarity_batch_duration_seconds
  - feedgraph_similarity_failures_total

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

# Usage

	start := time.Now()
	rows, err := executor.Execute(ctx, q)
	metrics.RecordGraphQuery(q.Name, time.Since(start), err)
*/
package metrics

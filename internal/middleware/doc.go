// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package middleware provides chi-compatible HTTP middleware for the Feedgraph API.

Key Components:

  - RequestID: assigns X-Request-ID and a correlation ID to the request context
  - PrometheusMetrics: request count, latency and in-flight gauge per route pattern
  - AccessLog: one zerolog line per request, tagged with the request IDs

Middleware Stack:

The API router installs them in this order:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

RequestID must run before AccessLog so the log line carries the IDs.

Metrics Labels:

PrometheusMetrics labels requests by the chi route pattern, not the raw path,
so /api/v1/similarity/{userID} is one series regardless of the user.
Requests that match no route are labeled "unmatched".

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/metrics: Prometheus metric definitions
  - internal/logging: context ID helpers
*/
package middleware

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package services provides suture.Service implementations for Feedgraph's
background jobs and HTTP server.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Returns listener errors so the supervisor restarts the server

Similarity (SimilarityService):
  - Runs recommend.SimilarityEstimator over one page of active users per tick
  - Walks the active users page by page and wraps to the start
  - Each run gets a fresh correlation ID and a timeout

Trending Refresh (TrendingRefreshService):
  - Calls trending.Cache.RefreshAll on an interval shorter than the cache TTL
  - Optionally warms the cache on startup

# Failure Handling

Job failures are logged and retried on the next tick. Only context
cancellation ends a job's Serve loop, so the supervisor never sees a job
exit during normal operation.
*/
package services

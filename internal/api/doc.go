// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package api exposes the recommendation and trending engine over HTTP.

# Endpoints

	GET  /api/v1/recommendations/posts?viewer_id=&limit=
	GET  /api/v1/recommendations/users?viewer_id=&limit=
	GET  /api/v1/trending/hashtags?window=1h|24h|7d&limit=
	POST /api/v1/similarity/{userID}
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

The viewer is passed as a query parameter. Authentication belongs to the
platform in front of this service.

# Response Format

Every JSON endpoint answers with the same envelope:

	{
	  "status": "success",
	  "data": [...],
	  "metadata": {"timestamp": "2026-03-10T12:00:00Z", "query_time_ms": 4}
	}

Errors set "status" to "error" and carry {"code", "message", "details"}.
Parameter validation uses go-playground/validator through the validation
package and returns VALIDATION_ERROR with one entry per failed field.

# Degradation

The read endpoints never fail because the graph store is down. The
recommenders fall back to popular content and the trending endpoint serves
the last cached ranking. Only POST /similarity reports graph errors (502).

# Middleware

RequestID, RealIP, AccessLog, Recoverer and CORS run on every request.
The /api/v1 group adds httprate limiting and Prometheus metrics. Health
probes use a separate, looser rate limit.
*/
package api

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package graph is the adapter to the social property graph.

Queries are built by typed constructors in queries.go and carry both a
template name and the Cypher statement. Three executors are provided:

  - Neo4jStore runs the Cypher over the Bolt protocol using managed read and
    write transactions.
  - MemoryStore evaluates each template by name over an in-process graph. It
    serves the "memory" backend and unit tests.
  - BreakerExecutor wraps another executor with a gobreaker circuit breaker
    and returns ErrUnavailable while open.

# Graph Model

	(:User {id})-[:FOLLOWS]->(:User)
	(:User)-[:POSTED]->(:Post {id, createdAt})
	(:User)-[:LIKED]->(:Post)
	(:User)-[:USED_TAG {count}]->(:Hashtag {name})
	(:Post)-[:HAS_TAG]->(:Hashtag)
	(:User)-[:SIMILAR_TO {score, reason, updatedAt}]->(:User)

Candidate queries return one row per (entity, factor) with the raw factor
weight. Scoring is done by the caller.
*/
package graph

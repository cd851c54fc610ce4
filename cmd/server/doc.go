// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Package main is the entry point for the Feedgraph server.
//
// Feedgraph ranks posts and accounts for a viewer of a social feed using a
// follow/like/hashtag graph, and serves cached trending hashtag rankings.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Database: DuckDB entity store, optionally seeded with demo data
//  3. Graph: Neo4j, or an in-memory snapshot of DuckDB taken once at startup,
//     behind a circuit breaker
//  4. Engine: post and user recommenders, similarity estimator, trending cache
//  5. Supervisor tree: similarity batch, trending refresh and HTTP server
//
// # Configuration
//
// Common environment variables:
//
//	GRAPH_BACKEND=neo4j|memory
//	NEO4J_URI=neo4j://localhost:7687
//	NEO4J_USERNAME=neo4j
//	NEO4J_PASSWORD=secret
//	DUCKDB_PATH=/data/feedgraph.duckdb
//	SEED_DEMO_DATA=true
//	SIMILARITY_INTERVAL=6h
//	TRENDING_TTL=15m
//
// # Example Usage
//
// Self-contained demo with the in-memory graph:
//
//	GRAPH_BACKEND=memory SEED_DEMO_DATA=true DUCKDB_PATH=:memory: ./feedgraph
//	curl 'localhost:8480/api/v1/recommendations/posts?viewer_id=user-01'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
// in-flight requests within HTTP_SHUTDOWN_TIMEOUT and background jobs stop
// at their next checkpoint.
package main

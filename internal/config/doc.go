// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package config provides centralized configuration management for Feedgraph.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Later layers win.

# Config File

The first existing file among CONFIG_PATH, config.yaml, config.yml,
/etc/feedgraph/config.yaml and /etc/feedgraph/config.yml is loaded:

	graph:
	  backend: neo4j
	  uri: neo4j://graph:7687
	  username: neo4j
	trending:
	  ttl: 15m
	  max_limit: 50

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8480), HTTP_TIMEOUT
  - ENVIRONMENT: development, staging, production

Database (DuckDB entity store):
  - DUCKDB_PATH (default: /data/feedgraph.duckdb)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DUCKDB_QUERY_TIMEOUT (default: 5s)
  - SEED_DEMO_DATA: seed deterministic demo content

Graph:
  - GRAPH_BACKEND: neo4j or memory
  - NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD, NEO4J_DATABASE
  - NEO4J_QUERY_TIMEOUT (default: 2s), NEO4J_MAX_CONNECTIONS
  - GRAPH_BREAKER_ENABLED, GRAPH_BREAKER_TIMEOUT, GRAPH_BREAKER_FAILURE_RATIO

Recommendations:
  - RECOMMEND_POST_WINDOW (default: 168h)
  - RECOMMEND_DEFAULT_POST_LIMIT (10), RECOMMEND_DEFAULT_USER_LIMIT (5)

Similarity batch:
  - SIMILARITY_ENABLED, SIMILARITY_INTERVAL (default: 6h)
  - SIMILARITY_RUN_ON_STARTUP, SIMILARITY_BATCH_SIZE, SIMILARITY_RATE_PER_SECOND

Trending:
  - TRENDING_TTL (default: 15m), TRENDING_REFRESH_INTERVAL (default: 10m)
  - TRENDING_WARM_ON_STARTUP, TRENDING_MAX_LIMIT (default: 50)

Logging and security:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

# Validation

Validate reports every invalid field at once as a joined error, so a broken
deployment surfaces all its problems in one log line.
*/
package config

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/config"
	"github.com/tomtom215/feedgraph/internal/database"
	"github.com/tomtom215/feedgraph/internal/graph"
)

// graphBackend is an executor that can also report its connectivity.
type graphBackend interface {
	graph.Executor
	graph.Pinger
}

// initGraph connects to the configured graph backend. The memory backend is
// populated from DuckDB once, so a single binary can run without Neo4j; later
// writes reach it only after a restart.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func initGraph(ctx context.Context, cfg *config.GraphConfig, db *database.DB, logger zerolog.Logger) (graphBackend, func(), error) {
	var (
		backend graphBackend
		closeFn = func() {}
	)

	switch cfg.Backend {
	case config.GraphBackendMemory:
		mem := graph.NewMemoryStore()
		if err := db.ExportGraph(ctx, mem); err != nil {
			return nil, nil, fmt.Errorf("populate memory graph: %w", err)
		}
		backend = mem
		logger.Info().Msg("Using in-memory graph populated from DuckDB")

	default:
		store, err := graph.NewNeo4jStore(ctx, graph.Neo4jConfig{
			URI:            cfg.URI,
			Username:       cfg.Username,
			Password:       cfg.Password,
			Database:       cfg.Database,
			QueryTimeout:   cfg.QueryTimeout,
			MaxConnections: cfg.MaxConnections,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to neo4j: %w", err)
		}
		backend = store
		closeFn = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				logger.Error().Err(err).Msg("Error closing Neo4j driver")
			}
		}
		logger.Info().Str("uri", cfg.URI).Msg("Connected to Neo4j")
	}

	if !cfg.BreakerEnabled {
		return backend, closeFn, nil
	}

	breakerCfg := graph.DefaultBreakerConfig()
	if cfg.BreakerTimeout > 0 {
		breakerCfg.Timeout = cfg.BreakerTimeout
	}
	if cfg.BreakerMinRequests > 0 {
		breakerCfg.MinRequests = cfg.BreakerMinRequests
	}
	if cfg.BreakerFailureRatio > 0 {
		breakerCfg.FailureRatio = cfg.BreakerFailureRatio
	}

	return graph.NewBreakerExecutor(backend, breakerCfg, logger), closeFn, nil
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/feedgraph/internal/api"
	"github.com/tomtom215/feedgraph/internal/config"
	"github.com/tomtom215/feedgraph/internal/database"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/supervisor"
	"github.com/tomtom215/feedgraph/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("graph_backend", cfg.Graph.Backend).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Feedgraph")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.Seed {
		logging.Info().Msg("Seeding demo data")
		if err := db.SeedDemoData(ctx, time.Now().UTC()); err != nil {
			logging.Error().Err(err).Msg("Failed to seed demo data")
			return
		}
	}

	// Seeding must finish first: the memory backend snapshots DuckDB.
	g, closeGraph, err := initGraph(ctx, &cfg.Graph, db, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize graph store")
		return
	}
	defer closeGraph()

	eng, err := initEngine(cfg, g, db, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize engine")
		return
	}

	handler := api.NewHandler(api.Dependencies{
		Posts:      eng.posts,
		Users:      eng.users,
		Trending:   eng.trending,
		Similarity: eng.similarity,
		Database:   db,
		Graph:      g,
	}, logger)
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	// Jobs layer
	if cfg.Similarity.Enabled {
		tree.AddJobService(services.NewSimilarityService(eng.similarity, services.SimilarityServiceConfig{
			Interval:     cfg.Similarity.Interval,
			RunOnStartup: cfg.Similarity.RunOnStartup,
			BatchSize:    cfg.Similarity.BatchSize,
			Timeout:      cfg.Similarity.Timeout,
		}, logger))
	} else {
		logging.Info().Msg("Similarity batch disabled (SIMILARITY_ENABLED=false)")
	}
	tree.AddJobService(services.NewTrendingRefreshService(eng.trending, services.TrendingRefreshServiceConfig{
		Interval:      cfg.Trending.RefreshInterval,
		WarmOnStartup: cfg.Trending.WarmOnStartup,
	}, logger))

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Feedgraph stopped")
}

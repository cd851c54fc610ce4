// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Package logging provides centralized zerolog-based structured logging for Feedgraph.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    Timestamp: true,
//	})
//
//	logging.Info().Str("backend", "neo4j").Msg("Graph store connected")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Falling back to popular posts")
//
// # Components
//
// Long-lived components receive a zerolog.Logger at construction and derive
// a child with a component field:
//
//	logger = logger.With().Str("component", "post_recommender").Logger()
//
// # Context Propagation
//
// HTTP middleware stores a request ID and batch jobs store a correlation ID in
// the context. Ctx and Enrich add both to log output.
//
// # slog Interop
//
// NewSlogLogger returns an slog.Logger that writes through zerolog. The
// supervisor tree hands it to sutureslog so service lifecycle events share
// the same format.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/config"
	"github.com/tomtom215/feedgraph/internal/database"
	"github.com/tomtom215/feedgraph/internal/graph"
	"github.com/tomtom215/feedgraph/internal/recommend"
	"github.com/tomtom215/feedgraph/internal/trending"
)

// engine holds the components served by the API and the background jobs.
type engine struct {
	posts      *recommend.PostRecommender
	users      *recommend.UserRecommender
	similarity *recommend.SimilarityEstimator
	trending   *trending.Cache
}

// recommendConfig overlays the file and environment settings on the
// built-in scoring defaults.
func recommendConfig(cfg *config.RecommendConfig) recommend.Config {
	rc := recommend.DefaultConfig()
	rc.PostWindow = cfg.PostWindow
	rc.MaxCandidateRows = cfg.MaxCandidateRows
	rc.SharedTagLimit = cfg.SharedTagLimit
	rc.DefaultPostLimit = cfg.DefaultPostLimit
	rc.DefaultUserLimit = cfg.DefaultUserLimit
	rc.MaxLimit = cfg.MaxLimit
	return rc
}

// initEngine builds the recommenders, the similarity estimator and the
// trending cache over one graph executor and one DuckDB handle.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func initEngine(cfg *config.Config, g graph.Executor, db *database.DB, logger zerolog.Logger) (*engine, error) {
	clk := clock.Real{}
	rc := recommendConfig(&cfg.Recommend)

	posts, err := recommend.NewPostRecommender(g, db, rc, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("post recommender: %w", err)
	}

	users, err := recommend.NewUserRecommender(g, db, rc, logger)
	if err != nil {
		return nil, fmt.Errorf("user recommender: %w", err)
	}

	similarity, err := recommend.NewSimilarityEstimator(g, rc, clk, cfg.Similarity.RatePerSecond, logger)
	if err != nil {
		return nil, fmt.Errorf("similarity estimator: %w", err)
	}

	computer := trending.NewComputer(db, clk, logger)
	cache := trending.NewCache(computer, trending.CacheConfig{
		TTL:            cfg.Trending.TTL,
		MaxLimit:       cfg.Trending.MaxLimit,
		ComputeTimeout: cfg.Trending.ComputeTimeout,
	}, clk, logger)

	return &engine{
		posts:      posts,
		users:      users,
		similarity: similarity,
		trending:   cache,
	}, nil
}

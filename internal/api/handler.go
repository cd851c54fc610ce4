// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/recommend"
	"github.com/tomtom215/feedgraph/internal/trending"
)

// PostRecommender returns ranked posts for a viewer.
type PostRecommender interface {
	Recommend(ctx context.Context, viewerID string, limit int) []recommend.PostRecommendation
}

// UserRecommender returns ranked accounts for a viewer.
type UserRecommender interface {
	Recommend(ctx context.Context, viewerID string, limit int) []recommend.UserRecommendation
}

// TrendingReader returns cached hashtag rankings.
type TrendingReader interface {
	GetTrendingHashtags(ctx context.Context, window trending.Window, limit int) []trending.Entry
}

// SimilarityCalculator recomputes the similarity edges of one user.
type SimilarityCalculator interface {
	CalculateUserSimilarity(ctx context.Context, userID string) error
}

// Pinger verifies connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the engine components served over HTTP.
// Nil health checkers are reported as not ready.
type Dependencies struct {
	Posts      PostRecommender
	Users      UserRecommender
	Trending   TrendingReader
	Similarity SimilarityCalculator
	Database   Pinger
	Graph      Pinger
}

// Handler serves the recommendation, trending and health endpoints.
type Handler struct {
	posts      PostRecommender
	users      UserRecommender
	trending   TrendingReader
	similarity SimilarityCalculator
	db         Pinger
	graph      Pinger

	startTime    time.Time
	pingTimeout  time.Duration
	similarityTO time.Duration
	logger       zerolog.Logger
}

// Default per-request deadlines.
const (
	DefaultPingTimeout       = 2 * time.Second
	DefaultSimilarityTimeout = 30 * time.Second
)

// NewHandler creates a Handler over deps.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewHandler(deps Dependencies, logger zerolog.Logger) *Handler {
	return &Handler{
		posts:        deps.Posts,
		users:        deps.Users,
		trending:     deps.Trending,
		similarity:   deps.Similarity,
		db:           deps.Database,
		graph:        deps.Graph,
		startTime:    time.Now(),
		pingTimeout:  DefaultPingTimeout,
		similarityTO: DefaultSimilarityTimeout,
		logger:       logger.With().Str("component", "api").Logger(),
	}
}

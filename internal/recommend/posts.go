// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/graph"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/metrics"
	"github.com/tomtom215/feedgraph/internal/models"
)

// PostRecommender ranks recent posts for a viewer from graph signals and
// falls back to the most-liked recent posts. It is safe for concurrent use.
type PostRecommender struct {
	graph  graph.Executor
	posts  PostStore
	cfg    Config
	clock  clock.Clock
	logger zerolog.Logger
}

// NewPostRecommender creates a post recommender.
//
//nolint:gocritic // hugeParam: config and logger passed by value for immutability
func NewPostRecommender(g graph.Executor, posts PostStore, cfg Config, clk clock.Clock, logger zerolog.Logger) (*PostRecommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &PostRecommender{
		graph:  g,
		posts:  posts,
		cfg:    cfg,
		clock:  clk,
		logger: logger.With().Str("component", "post_recommender").Logger(),
	}, nil
}

// Recommend returns at most limit posts for viewerID, highest score first
// and newest first on ties. A non-positive limit selects the default.
// Graph and lookup failures are logged and answered with the fallback; the
// result is empty only when the fallback also has nothing.
func (r *PostRecommender) Recommend(ctx context.Context, viewerID string, limit int) []PostRecommendation {
	limit = clampLimit(limit, r.cfg.DefaultPostLimit, r.cfg.MaxLimit)
	logger := logging.Enrich(ctx, r.logger).With().Str("viewer_id", viewerID).Logger()
	since := r.clock.Now().Add(-r.cfg.PostWindow)

	rows, err := r.graph.Execute(ctx, graph.PostCandidatesQuery(viewerID, since, r.cfg.MaxCandidateRows))
	if err != nil {
		logger.Warn().Err(err).Msg("post candidate query failed, using popular posts")
		return r.fallback(ctx, logger, FallbackGraphError, limit)
	}
	if len(rows) == 0 {
		return r.fallback(ctx, logger, FallbackNoSignal, limit)
	}

	agg := NewAggregator(r.cfg.PostWeights.ToMap())
	for _, row := range rows {
		if c := agg.Add(row.String("post_id"), row.String("factor"), row.Float("weight")); c != nil {
			c.CreatedAt = row.Time("created_at")
		}
	}
	if agg.Len() == 0 {
		return r.fallback(ctx, logger, FallbackNoSignal, limit)
	}
	ranked := agg.Ranked(limit)

	found, err := r.posts.FindPostsByIDs(ctx, candidateIDs(ranked), models.AllPostRelations...)
	if err != nil {
		logger.Warn().Err(err).Msg("post lookup failed, using popular posts")
		return r.fallback(ctx, logger, FallbackLookupError, limit)
	}

	byID := make(map[string]models.Post, len(found))
	for i := range found {
		byID[found[i].ID] = found[i]
	}

	out := make([]PostRecommendation, 0, len(ranked))
	for _, c := range ranked {
		post, ok := byID[c.ID]
		if !ok {
			continue
		}
		out = append(out, PostRecommendation{Post: post, Score: c.Score, Reasons: c.Reasons})
	}

	if dropped := len(ranked) - len(out); dropped > 0 {
		metrics.RecordDroppedEntities(KindPosts, dropped)
		logger.Debug().Int("dropped", dropped).Msg("ranked posts no longer exist")
	}
	if len(out) == 0 {
		return r.fallback(ctx, logger, FallbackUnresolved, limit)
	}

	metrics.RecordRecommendation(KindPosts, "", len(out))
	logger.Debug().
		Int("rows", len(rows)).
		Int("candidates", agg.Len()).
		Int("returned", len(out)).
		Msg("post recommendations computed")
	return out
}

// fallback returns the most-liked posts of the recency window, scored by
// like count. A failure here yields an empty list.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func (r *PostRecommender) fallback(ctx context.Context, logger zerolog.Logger, reason string, limit int) []PostRecommendation {
	since := r.clock.Now().Add(-r.cfg.PostWindow)
	posts, err := r.posts.PopularPosts(ctx, since, limit, models.AllPostRelations...)
	if err != nil {
		logger.Error().Err(err).Str("fallback_reason", reason).Msg("popular posts fallback failed")
		metrics.RecordRecommendation(KindPosts, reason, 0)
		return []PostRecommendation{}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]PostRecommendation, 0, len(posts))
	for i := range posts {
		out = append(out, PostRecommendation{
			Post:    posts[i],
			Score:   float64(posts[i].LikeCount),
			Reasons: []string{ReasonPopular},
		})
	}

	metrics.RecordRecommendation(KindPosts, reason, len(out))
	logger.Debug().Str("fallback_reason", reason).Int("returned", len(out)).Msg("served popular posts")
	return out
}

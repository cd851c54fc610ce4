// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/graph"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/metrics"
	"github.com/tomtom215/feedgraph/internal/models"
)

// UserRecommender suggests users to follow from shared hashtags, co-liked
// posts and friends of friends. It is safe for concurrent use.
type UserRecommender struct {
	graph  graph.Executor
	users  UserStore
	cfg    Config
	logger zerolog.Logger
}

// NewUserRecommender creates a user recommender.
//
//nolint:gocritic // hugeParam: config and logger passed by value for immutability
func NewUserRecommender(g graph.Executor, users UserStore, cfg Config, logger zerolog.Logger) (*UserRecommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &UserRecommender{
		graph:  g,
		users:  users,
		cfg:    cfg,
		logger: logger.With().Str("component", "user_recommender").Logger(),
	}, nil
}

// Recommend returns at most limit users for viewerID, highest score first
// and by user ID on ties. The viewer and users already followed are never
// returned. Failures fall back to random unfollowed users.
func (r *UserRecommender) Recommend(ctx context.Context, viewerID string, limit int) []UserRecommendation {
	limit = clampLimit(limit, r.cfg.DefaultUserLimit, r.cfg.MaxLimit)
	logger := logging.Enrich(ctx, r.logger).With().Str("viewer_id", viewerID).Logger()

	rows, err := r.graph.Execute(ctx, graph.UserCandidatesQuery(viewerID, r.cfg.SharedTagLimit, r.cfg.MaxCandidateRows))
	if err != nil {
		logger.Warn().Err(err).Msg("user candidate query failed, using random users")
		return r.fallback(ctx, logger, viewerID, FallbackGraphError, limit)
	}
	if len(rows) == 0 {
		return r.fallback(ctx, logger, viewerID, FallbackNoSignal, limit)
	}

	agg := NewAggregator(r.cfg.UserWeights.ToMap())
	for _, row := range rows {
		userID := row.String("user_id")
		if userID == viewerID {
			continue
		}
		c := agg.Add(userID, row.String("factor"), row.Float("weight"))
		if c != nil && row.String("factor") == graph.FactorSimilarHashtags {
			c.SharedTags = truncate(row.Strings("shared_tags"), r.cfg.SharedTagLimit)
		}
	}
	if agg.Len() == 0 {
		return r.fallback(ctx, logger, viewerID, FallbackNoSignal, limit)
	}
	ranked := agg.Ranked(limit)

	found, err := r.users.FindUsersByIDs(ctx, candidateIDs(ranked))
	if err != nil {
		logger.Warn().Err(err).Msg("user lookup failed, using random users")
		return r.fallback(ctx, logger, viewerID, FallbackLookupError, limit)
	}

	byID := make(map[string]models.User, len(found))
	for i := range found {
		byID[found[i].ID] = found[i]
	}

	out := make([]UserRecommendation, 0, len(ranked))
	for _, c := range ranked {
		user, ok := byID[c.ID]
		if !ok {
			continue
		}
		shared := c.SharedTags
		if shared == nil {
			shared = []string{}
		}
		out = append(out, UserRecommendation{User: user, Score: c.Score, Reasons: c.Reasons, SharedHashtags: shared})
	}

	if dropped := len(ranked) - len(out); dropped > 0 {
		metrics.RecordDroppedEntities(KindUsers, dropped)
		logger.Debug().Int("dropped", dropped).Msg("ranked users no longer exist")
	}
	if len(out) == 0 {
		return r.fallback(ctx, logger, viewerID, FallbackUnresolved, limit)
	}

	metrics.RecordRecommendation(KindUsers, "", len(out))
	return out
}

// fallback returns random users the viewer does not follow, each scored 0.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func (r *UserRecommender) fallback(ctx context.Context, logger zerolog.Logger, viewerID, reason string, limit int) []UserRecommendation {
	users, err := r.users.RandomUnfollowedUsers(ctx, viewerID, limit)
	if err != nil {
		logger.Error().Err(err).Str("fallback_reason", reason).Msg("random users fallback failed")
		metrics.RecordRecommendation(KindUsers, reason, 0)
		return []UserRecommendation{}
	}

	out := make([]UserRecommendation, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for i := range users {
		if users[i].ID == viewerID {
			continue
		}
		if _, dup := seen[users[i].ID]; dup {
			continue
		}
		seen[users[i].ID] = struct{}{}
		out = append(out, UserRecommendation{
			User:           users[i],
			Score:          0,
			Reasons:        []string{ReasonPopular},
			SharedHashtags: []string{},
		})
		if len(out) == limit {
			break
		}
	}

	metrics.RecordRecommendation(KindUsers, reason, len(out))
	logger.Debug().Str("fallback_reason", reason).Int("returned", len(out)).Msg("served random users")
	return out
}

func truncate(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

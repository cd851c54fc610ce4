// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/graph"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/metrics"
)

// BatchResult summarizes one similarity batch run.
type BatchResult struct {
	Processed    int           `json:"processed"`
	Failed       int           `json:"failed"`
	EdgesWritten int           `json:"edges_written"`
	Duration     time.Duration `json:"duration"`
}

// SimilarityEstimator precomputes SIMILAR_TO edges between users who share
// hashtags and liked posts. Request paths only read the stored edges.
type SimilarityEstimator struct {
	graph   graph.Executor
	cfg     Config
	clock   clock.Clock
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewSimilarityEstimator creates an estimator. ratePerSecond paces RunBatch;
// zero or less disables pacing.
//
//nolint:gocritic // hugeParam: config and logger passed by value for immutability
func NewSimilarityEstimator(g graph.Executor, cfg Config, clk clock.Clock, ratePerSecond float64, logger zerolog.Logger) (*SimilarityEstimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if clk == nil {
		clk = clock.Real{}
	}

	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = max(1, int(ratePerSecond))
	}

	return &SimilarityEstimator{
		graph:   g,
		cfg:     cfg,
		clock:   clk,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With().Str("component", "similarity").Logger(),
	}, nil
}

// CalculateUserSimilarity recomputes userID's outgoing SIMILAR_TO edges.
// Edges to users that no longer qualify are removed, so repeated runs over
// unchanged data leave the graph unchanged apart from updatedAt.
func (e *SimilarityEstimator) CalculateUserSimilarity(ctx context.Context, userID string) error {
	_, err := e.recalculate(ctx, userID)
	return err
}

func (e *SimilarityEstimator) recalculate(ctx context.Context, userID string) (int, error) {
	rows, err := e.graph.Execute(ctx, graph.SimilarityCandidatesQuery(userID, e.cfg.Similarity.ReasonTags))
	if err != nil {
		return 0, fmt.Errorf("similarity candidates for %s: %w", userID, err)
	}

	edges := e.scoreCandidates(userID, rows)

	res, err := e.graph.Execute(ctx, graph.UpsertSimilarityQuery(userID, edges, e.clock.Now().UTC()))
	if err != nil {
		return 0, fmt.Errorf("upsert similarity for %s: %w", userID, err)
	}

	written := len(edges)
	if len(res) > 0 {
		written = int(res[0].Int("written"))
	}

	logger := logging.Enrich(ctx, e.logger)
	logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(rows)).
		Int("edges", written).
		Msg("similarity recalculated")
	return written, nil
}

// scoreCandidates converts candidate rows to retained edges:
//
//	raw        = hashtag_score*Hashtag + shared_likes*SharedLike
//	normalized = raw / (1 + raw)
//
// Only normalized scores strictly above MinScore are kept.
func (e *SimilarityEstimator) scoreCandidates(userID string, rows []graph.Row) []graph.SimilarityEdge {
	w := e.cfg.Similarity
	edges := make([]graph.SimilarityEdge, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		other := row.String("user_id")
		if other == "" || other == userID {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}

		score := NormalizeSimilarity(row.Float("hashtag_score")*w.Hashtag + row.Float("shared_likes")*w.SharedLike)
		if score <= w.MinScore {
			continue
		}
		edges = append(edges, graph.SimilarityEdge{
			UserID: other,
			Score:  score,
			Reason: similarityReason(truncate(row.Strings("shared_tags"), w.ReasonTags)),
		})
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].UserID < edges[j].UserID })
	return edges
}

// NormalizeSimilarity maps a raw score in [0, ∞) onto [0, 1).
func NormalizeSimilarity(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	return raw / (1 + raw)
}

func similarityReason(tags []string) string {
	if len(tags) == 0 {
		return "Shared interests"
	}
	prefixed := make([]string, len(tags))
	for i, t := range tags {
		prefixed[i] = "#" + t
	}
	return "Shared interests: " + strings.Join(prefixed, ", ")
}

// RunBatch recalculates each user in turn, paced by the rate limiter.
// Failures are logged and counted but never retried within the run. The run
// stops early when ctx is done.
func (e *SimilarityEstimator) RunBatch(ctx context.Context, userIDs []string) BatchResult {
	start := time.Now()
	logger := logging.Enrich(ctx, e.logger)
	var result BatchResult

	for _, userID := range userIDs {
		if err := e.limiter.Wait(ctx); err != nil {
			logger.Warn().Err(err).
				Int("remaining", len(userIDs)-result.Processed).
				Msg("similarity batch interrupted")
			break
		}

		result.Processed++
		written, err := e.recalculate(ctx, userID)
		if err != nil {
			result.Failed++
			logger.Warn().Err(err).Str("user_id", userID).Msg("similarity recalculation failed")
			continue
		}
		result.EdgesWritten += written
	}

	result.Duration = time.Since(start)
	metrics.RecordSimilarityBatch(result.Duration, result.Failed, result.EdgesWritten)

	logger.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Int("edges_written", result.EdgesWritten).
		Dur("duration", result.Duration).
		Msg("similarity batch complete")
	return result
}

// ActiveUsers pages through users that have hashtag or like signal, ordered
// by ID.
func (e *SimilarityEstimator) ActiveUsers(ctx context.Context, offset, limit int) ([]string, error) {
	rows, err := e.graph.Execute(ctx, graph.ActiveUsersQuery(offset, limit))
	if err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := row.String("user_id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

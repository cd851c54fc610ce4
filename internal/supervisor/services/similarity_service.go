// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/recommend"
)

// SimilarityBatcher is the part of recommend.SimilarityEstimator the
// scheduler drives.
type SimilarityBatcher interface {
	ActiveUsers(ctx context.Context, offset, limit int) ([]string, error)
	RunBatch(ctx context.Context, userIDs []string) recommend.BatchResult
}

// SimilarityServiceConfig holds configuration for the similarity job.
type SimilarityServiceConfig struct {
	// Interval between batches. Default: 6h
	Interval time.Duration

	// RunOnStartup runs one batch as soon as the service starts.
	RunOnStartup bool

	// BatchSize is the number of users recalculated per run. Default: 500
	BatchSize int

	// Timeout bounds a single run. Default: 30m
	Timeout time.Duration
}

// SimilarityService periodically recalculates SIMILAR_TO edges for a page of
// active users. Successive runs walk through the active users and wrap to
// the start after the last page.
type SimilarityService struct {
	batcher SimilarityBatcher
	config  SimilarityServiceConfig
	logger  zerolog.Logger
	name    string
	offset  int
}

// NewSimilarityService creates the similarity job.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewSimilarityService(batcher SimilarityBatcher, cfg SimilarityServiceConfig, logger zerolog.Logger) *SimilarityService {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &SimilarityService{
		batcher: batcher,
		config:  cfg,
		logger:  logger.With().Str("service", "similarity").Logger(),
		name:    "similarity-service",
	}
}

// Serve implements suture.Service. Run failures are logged and retried on
// the next tick; they never stop the service.
func (s *SimilarityService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Int("batch_size", s.config.BatchSize).
		Msg("similarity service starting")

	if s.config.RunOnStartup {
		if err := s.runOnce(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial similarity run failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("similarity service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled similarity run failed")
			}
		}
	}
}

// runOnce recalculates the next page of active users.
func (s *SimilarityService) runOnce(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(ctx), s.config.Timeout)
	defer cancel()

	users, err := s.batcher.ActiveUsers(runCtx, s.offset, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}
	if len(users) == 0 && s.offset > 0 {
		s.offset = 0
		users, err = s.batcher.ActiveUsers(runCtx, 0, s.config.BatchSize)
		if err != nil {
			return fmt.Errorf("list active users: %w", err)
		}
	}
	logger := logging.Enrich(runCtx, s.logger)
	if len(users) == 0 {
		logger.Debug().Msg("no active users to recalculate")
		return nil
	}

	logger.Info().
		Int("offset", s.offset).
		Int("users", len(users)).
		Msg("similarity run starting")

	result := s.batcher.RunBatch(runCtx, users)

	if len(users) < s.config.BatchSize {
		s.offset = 0
	} else {
		s.offset += len(users)
	}

	if result.Processed < len(users) {
		return fmt.Errorf("similarity run interrupted after %d of %d users: %w", result.Processed, len(users), runCtx.Err())
	}
	return nil
}

func (s *SimilarityService) String() string {
	return s.name
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/logging"
)

// TrendingRefresher recomputes every common trending cache key.
// *trending.Cache implements it.
type TrendingRefresher interface {
	RefreshAll(ctx context.Context) error
}

// TrendingRefreshServiceConfig holds configuration for the refresh job.
type TrendingRefreshServiceConfig struct {
	// Interval between refreshes. Keep it below the cache TTL so readers
	// rarely hit a stale entry. Default: 10m
	Interval time.Duration

	// WarmOnStartup refreshes once as soon as the service starts.
	WarmOnStartup bool

	// Timeout bounds a single refresh pass. It is checked between cache
	// keys; each key's computation runs under the cache's own compute
	// timeout. Default: 2m
	Timeout time.Duration
}

// TrendingRefreshService keeps the trending cache warm.
type TrendingRefreshService struct {
	cache  TrendingRefresher
	config TrendingRefreshServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrendingRefreshService creates the refresh job.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewTrendingRefreshService(cache TrendingRefresher, cfg TrendingRefreshServiceConfig, logger zerolog.Logger) *TrendingRefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &TrendingRefreshService{
		cache:  cache,
		config: cfg,
		logger: logger.With().Str("service", "trending_refresh").Logger(),
		name:   "trending-refresh-service",
	}
}

// Serve implements suture.Service.
func (s *TrendingRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("trending refresh service starting")

	if s.config.WarmOnStartup {
		s.refresh(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trending refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh logs failures only; the cache keeps the previous rankings.
func (s *TrendingRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(ctx), s.config.Timeout)
	defer cancel()

	if err := s.cache.RefreshAll(refreshCtx); err != nil {
		logger := logging.Enrich(refreshCtx, s.logger)
		logger.Warn().Err(err).Msg("trending refresh incomplete")
	}
}

func (s *TrendingRefreshService) String() string {
	return s.name
}

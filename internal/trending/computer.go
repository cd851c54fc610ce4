// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package trending

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/metrics"
)

const (
	// TrendingThreshold is the growth rate, in percent, above which a tag is
	// flagged as trending.
	TrendingThreshold = 50.0

	// newTagGrowth is the growth rate reported for tags absent from the
	// previous window.
	newTagGrowth = 100.0
)

// Computer ranks hashtags by activity in a window and its growth against the
// preceding window of equal length.
type Computer struct {
	source ActivitySource
	clock  clock.Clock
	logger zerolog.Logger
}

// NewComputer creates a trending computer over source.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewComputer(source ActivitySource, clk clock.Clock, logger zerolog.Logger) *Computer {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Computer{
		source: source,
		clock:  clk,
		logger: logger.With().Str("component", "trending_computer").Logger(),
	}
}

// Calculate returns at most limit entries for window, ordered by post count,
// then growth rate, then tag. A non-positive limit returns every tag with
// activity in the current window.
//
// Intervals are half-open: current is [now-d, now) and previous is
// [now-2d, now-d), so a post is counted in exactly one of them.
func (c *Computer) Calculate(ctx context.Context, window Window, limit int) ([]Entry, error) {
	start := time.Now()
	d := window.Duration()
	now := c.clock.Now()
	boundary := now.Add(-d)

	current, err := c.source.HashtagActivity(ctx, boundary, now)
	if err != nil {
		return nil, fmt.Errorf("current window activity: %w", err)
	}
	previous, err := c.source.HashtagActivity(ctx, boundary.Add(-d), boundary)
	if err != nil {
		return nil, fmt.Errorf("previous window activity: %w", err)
	}

	prevPosts := make(map[string]int, len(previous))
	for _, a := range previous {
		prevPosts[a.Tag] += a.PostCount
	}

	entries := make([]Entry, 0, len(current))
	for _, a := range current {
		if a.PostCount <= 0 || a.Tag == "" {
			continue
		}
		growth := GrowthRate(a.PostCount, prevPosts[a.Tag])
		display := a.DisplayTag
		if display == "" {
			display = a.Tag
		}
		entries = append(entries, Entry{
			Tag:        a.Tag,
			DisplayTag: display,
			PostCount:  a.PostCount,
			UserCount:  a.UserCount,
			GrowthRate: growth,
			IsTrending: growth > TrendingThreshold,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		if ei.PostCount != ej.PostCount {
			return ei.PostCount > ej.PostCount
		}
		if ei.GrowthRate != ej.GrowthRate {
			return ei.GrowthRate > ej.GrowthRate
		}
		return ei.Tag < ej.Tag
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	elapsed := time.Since(start)
	metrics.RecordTrendingCompute(string(window), elapsed)
	logger := logging.Enrich(ctx, c.logger)
	logger.Debug().
		Str("window", string(window)).
		Int("tags", len(current)).
		Int("returned", len(entries)).
		Dur("duration", elapsed).
		Msg("trending hashtags computed")

	return entries, nil
}

// GrowthRate returns the percentage change from previous to current posts.
// A tag with no previous posts reports 100.
func GrowthRate(current, previous int) float64 {
	if previous <= 0 {
		return newTagGrowth
	}
	return float64(current-previous) / float64(previous) * 100
}

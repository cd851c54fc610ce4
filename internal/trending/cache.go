// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package trending

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/metrics"
)

// Cache defaults.
const (
	DefaultTTL            = 15 * time.Minute
	DefaultLimit          = 10
	DefaultMaxLimit       = 50
	DefaultComputeTimeout = time.Minute
)

// Cache lookup outcomes reported to metrics.
const (
	resultFresh       = "fresh"
	resultStale       = "stale"
	resultCold        = "cold"
	resultRecomputed  = "recomputed"
	resultJoined      = "joined"
	resultStaleServed = "stale_served"
	resultFailed      = "failed"
)

// RefreshLimits are the limits RefreshAll recomputes for every window.
var RefreshLimits = []int{10, 20}

// Calculator computes a trending ranking. *Computer implements it.
type Calculator interface {
	Calculate(ctx context.Context, window Window, limit int) ([]Entry, error)
}

// CacheConfig configures a Cache.
type CacheConfig struct {
	TTL      time.Duration
	MaxLimit int

	// ComputeTimeout bounds one Calculate call. The call is detached from
	// the caller's cancellation, so this is its only deadline.
	ComputeTimeout time.Duration
}

type cacheEntry struct {
	entries    []Entry
	computedAt time.Time
}

// Cache holds trending rankings per (window, limit).
//
// An entry younger than the TTL is served as is. An older entry triggers a
// recompute; if that fails the old entry is served and kept. Entries are
// never evicted. Concurrent recomputes of one key share a single call to
// the Calculator.
type Cache struct {
	mu       sync.RWMutex
	entries  map[Key]cacheEntry
	calc     Calculator
	clock    clock.Clock
	ttl      time.Duration
	maxLimit int
	timeout  time.Duration
	flight   singleflight.Group
	logger   zerolog.Logger
}

// loadResult is what one flight hands to every caller sharing it.
type loadResult struct {
	entries  []Entry
	computed bool
}

// NewCache creates an empty cache. Zero config values select the defaults.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewCache(calc Calculator, cfg CacheConfig, clk clock.Clock, logger zerolog.Logger) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultMaxLimit
	}
	if cfg.ComputeTimeout <= 0 {
		cfg.ComputeTimeout = DefaultComputeTimeout
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Cache{
		entries:  make(map[Key]cacheEntry),
		calc:     calc,
		clock:    clk,
		ttl:      cfg.TTL,
		maxLimit: cfg.MaxLimit,
		timeout:  cfg.ComputeTimeout,
		logger:   logger.With().Str("component", "trending_cache").Logger(),
	}
}

// NormalizeKey maps a requested window and limit onto a cache key. Unknown
// windows select DefaultWindow; non-positive limits select DefaultLimit and
// limits above the maximum are capped.
func (c *Cache) NormalizeKey(window Window, limit int) Key {
	w, _ := ParseWindow(string(window))
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > c.maxLimit:
		limit = c.maxLimit
	}
	return Key{Window: w, Limit: limit}
}

// GetTrendingHashtags returns the ranking for (window, limit). It never
// fails: a cold key whose computation fails yields an empty list. The
// returned slice is a copy.
func (c *Cache) GetTrendingHashtags(ctx context.Context, window Window, limit int) []Entry {
	key := c.NormalizeKey(window, limit)
	w := string(key.Window)
	logger := logging.Enrich(ctx, c.logger).With().
		Str("window", w).
		Int("limit", key.Limit).
		Logger()

	cached, ok := c.lookup(key)
	switch {
	case ok && c.fresh(cached):
		metrics.RecordTrendingCache(w, resultFresh)
		return slices.Clone(cached.entries)
	case ok:
		metrics.RecordTrendingCache(w, resultStale)
	default:
		metrics.RecordTrendingCache(w, resultCold)
	}

	res, err := c.load(ctx, key, false)
	if err == nil {
		if res.computed {
			metrics.RecordTrendingCache(w, resultRecomputed)
		} else {
			metrics.RecordTrendingCache(w, resultJoined)
		}
		return slices.Clone(res.entries)
	}

	if ok {
		metrics.RecordTrendingCache(w, resultStaleServed)
		logger.Warn().Err(err).
			Time("computed_at", cached.computedAt).
			Msg("trending recompute failed, serving stale ranking")
		return slices.Clone(cached.entries)
	}

	metrics.RecordTrendingCache(w, resultFailed)
	logger.Error().Err(err).Msg("trending compute failed with nothing cached")
	return []Entry{}
}

// RefreshAll recomputes every window for each of RefreshLimits regardless
// of freshness. Keys whose recompute fails keep their previous value; the
// failures are returned joined.
func (c *Cache) RefreshAll(ctx context.Context) error {
	var errs []error
	refreshed := 0
	for _, w := range Windows() {
		for _, limit := range RefreshLimits {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			key := c.NormalizeKey(w, limit)
			if _, err := c.load(ctx, key, true); err != nil {
				errs = append(errs, fmt.Errorf("refresh %s/%d: %w", key.Window, key.Limit, err))
				continue
			}
			refreshed++
		}
	}

	logger := logging.Enrich(ctx, c.logger)
	logger.Info().
		Int("refreshed", refreshed).
		Int("failed", len(errs)).
		Msg("trending cache refreshed")
	return errors.Join(errs...)
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key Key) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Cache) fresh(e cacheEntry) bool {
	return c.clock.Now().Sub(e.computedAt) < c.ttl
}

// load computes key and stores the result on success. Unless force is set, a
// caller that arrives after another flight stored a fresh value reuses it
// and the result reports computed=false.
func (c *Cache) load(ctx context.Context, key Key, force bool) (loadResult, error) {
	flightKey := fmt.Sprintf("%s:%d", key.Window, key.Limit)
	v, err, _ := c.flight.Do(flightKey, func() (any, error) {
		if !force {
			if e, ok := c.lookup(key); ok && c.fresh(e) {
				return loadResult{entries: e.entries}, nil
			}
		}
		// Waiters share this call, so one caller's cancellation must not
		// fail the others.
		calcCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		entries, err := c.calc.Calculate(calcCtx, key.Window, key.Limit)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []Entry{}
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{entries: entries, computedAt: c.clock.Now()}
		c.mu.Unlock()
		return loadResult{entries: entries, computed: true}, nil
	})
	if err != nil {
		return loadResult{}, err
	}
	res, _ := v.(loadResult)
	return res, nil
}

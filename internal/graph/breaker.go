// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/feedgraph/internal/metrics"
)

// BreakerConfig configures the circuit breaker in front of the graph store.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // concurrent probes allowed while half-open
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open-state duration before probing
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerConfig returns the breaker settings used in production.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "graph-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerExecutor wraps an Executor with a circuit breaker. While the
// breaker is open, Execute fails immediately with ErrUnavailable.
type BreakerExecutor struct {
	next Executor
	cb   *gobreaker.CircuitBreaker[[]Row]
	name string
}

// NewBreakerExecutor wraps next.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewBreakerExecutor(next Executor, cfg BreakerConfig, logger zerolog.Logger) *BreakerExecutor {
	log := logger.With().Str("component", "graph").Str("breaker", cfg.Name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Row](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip {
				log.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// Caller cancellation says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerExecutor{next: next, cb: cb, name: cfg.Name}
}

// Execute runs q through the breaker.
func (b *BreakerExecutor) Execute(ctx context.Context, q Query) ([]Row, error) {
	rows, err := b.cb.Execute(func() ([]Row, error) {
		return b.next.Execute(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, b.name, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return rows, nil
}

// Ping delegates to the wrapped executor when it supports connectivity checks.
func (b *BreakerExecutor) Ping(ctx context.Context) error {
	if p, ok := b.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// State returns the breaker state name: "closed", "half-open" or "open".
func (b *BreakerExecutor) State() string {
	return b.cb.State().String()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package graph

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrUnavailable is returned when the graph store cannot be reached or the
// circuit breaker in front of it is open.
var ErrUnavailable = errors.New("graph store unavailable")

// Query is a parameterized graph pattern query.
//
// Name identifies the template (see queries.go) so non-Cypher executors can
// dispatch on it. Cypher is the statement sent to Neo4j.
type Query struct {
	Name   string
	Cypher string
	Params map[string]any
	Write  bool
}

// Row is one result record keyed by column name.
type Row map[string]any

// Executor runs graph queries and returns their rows.
type Executor interface {
	Execute(ctx context.Context, q Query) ([]Row, error)
}

// Pinger is implemented by executors that can verify connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// String returns the column as a string, or "" if absent or not a string.
func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Float returns the column as a float64, converting integer kinds.
func (r Row) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	default:
		return 0
	}
}

// Int returns the column as an int64. Floats are truncated.
func (r Row) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(math.Trunc(v))
	default:
		return 0
	}
}

// Time returns the column as a time. Integer values are epoch milliseconds,
// which is how the Cypher templates project node timestamps.
func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case int64:
		return time.UnixMilli(v).UTC()
	case int:
		return time.UnixMilli(int64(v)).UTC()
	default:
		return time.Time{}
	}
}

// Strings returns a list column as []string, skipping non-string elements.
func (r Row) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"sort"
	"time"
)

// Candidate is one subject accumulated across factor rows.
type Candidate struct {
	ID      string
	Score   float64
	Reasons []string // contributing factors, sorted

	// CreatedAt is the post creation time, used as a tie-breaker.
	CreatedAt time.Time

	// SharedTags is carried from the similar_hashtags factor for users.
	SharedTags []string

	reasons map[string]struct{}
}

// Aggregator sums multiplier-weighted factor rows per subject.
//
// finalScore(id) = Σ multiplier(factor) × weight over the rows for id.
// A factor without a multiplier, or a row with non-positive weight, does not
// contribute and is not listed as a reason.
type Aggregator struct {
	multipliers map[string]float64
	candidates  map[string]*Candidate
	ignored     int
}

// NewAggregator creates an aggregator with per-factor multipliers.
func NewAggregator(multipliers map[string]float64) *Aggregator {
	return &Aggregator{
		multipliers: multipliers,
		candidates:  make(map[string]*Candidate),
	}
}

// Add folds one factor row into the subject's score. It returns the
// subject's candidate, or nil if the row was ignored.
func (a *Aggregator) Add(id, factor string, weight float64) *Candidate {
	m, ok := a.multipliers[factor]
	if !ok || id == "" || weight <= 0 || m <= 0 {
		a.ignored++
		return nil
	}

	c := a.candidates[id]
	if c == nil {
		c = &Candidate{ID: id, reasons: make(map[string]struct{}, 3)}
		a.candidates[id] = c
	}
	c.Score += m * weight
	if _, seen := c.reasons[factor]; !seen {
		c.reasons[factor] = struct{}{}
		c.Reasons = append(c.Reasons, factor)
		sort.Strings(c.Reasons)
	}
	return c
}

// Len returns the number of distinct subjects.
func (a *Aggregator) Len() int {
	return len(a.candidates)
}

// Ignored returns the number of rows that did not contribute.
func (a *Aggregator) Ignored() int {
	return a.ignored
}

// Ranked returns at most limit candidates ordered by score descending, then
// CreatedAt descending, then ID ascending. Subjects without a creation time
// (users) tie-break on ID alone.
func (a *Aggregator) Ranked(limit int) []*Candidate {
	out := make([]*Candidate, 0, len(a.candidates))
	for _, c := range a.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i], out[j]
		if ci.Score != cj.Score {
			return ci.Score > cj.Score
		}
		if !ci.CreatedAt.Equal(cj.CreatedAt) {
			return ci.CreatedAt.After(cj.CreatedAt)
		}
		return ci.ID < cj.ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// candidateIDs returns the IDs of cs in order.
func candidateIDs(cs []*Candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/clock"
	"github.com/tomtom215/feedgraph/internal/graph"
)

func newTestEstimator(t *testing.T, g graph.Executor, clk clock.Clock) *SimilarityEstimator {
	t.Helper()
	e, err := NewSimilarityEstimator(g, DefaultConfig(), clk, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSimilarityEstimator: %v", err)
	}
	return e
}

func TestCalculateUserSimilarity_WritesNormalizedEdge(t *testing.T) {
	g := graph.NewMemoryStore()
	g.UseTag("alice", "golang", 3)
	g.UseTag("bob", "golang", 2)

	e := newTestEstimator(t, g, clock.NewFake(testNow))
	if err := e.CalculateUserSimilarity(context.Background(), "alice"); err != nil {
		t.Fatalf("CalculateUserSimilarity: %v", err)
	}

	edges := g.Similarities("alice")
	edge, ok := edges["bob"]
	if !ok || len(edges) != 1 {
		t.Fatalf("edges = %+v, want single edge to bob", edges)
	}
	if want := 3.6 / 4.6; math.Abs(edge.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", edge.Score, want)
	}
	if edge.Reason != "Shared interests: #golang" {
		t.Errorf("reason = %q", edge.Reason)
	}
	if !edge.UpdatedAt.Equal(testNow) {
		t.Errorf("updated at = %v, want %v", edge.UpdatedAt, testNow)
	}
	if len(g.Similarities("bob")) != 0 {
		t.Error("edges are directed; bob should have none yet")
	}
}

func TestCalculateUserSimilarity_SharedLikesContribute(t *testing.T) {
	g := graph.NewMemoryStore()
	g.UseTag("alice", "golang", 1)
	g.UseTag("bob", "golang", 1)
	g.AddPost("p1", "carol", testNow)
	g.AddPost("p2", "carol", testNow)
	g.Like("alice", "p1")
	g.Like("alice", "p2")
	g.Like("bob", "p1")
	g.Like("bob", "p2")

	e := newTestEstimator(t, g, clock.NewFake(testNow))
	if err := e.CalculateUserSimilarity(context.Background(), "alice"); err != nil {
		t.Fatalf("CalculateUserSimilarity: %v", err)
	}

	// raw = 1*0.6 + 2*0.4
	if got, want := g.Similarities("alice")["bob"].Score, 1.4/2.4; math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestCalculateUserSimilarity_IdempotentAndReplacesStale(t *testing.T) {
	g := graph.NewMemoryStore()
	g.UseTag("alice", "golang", 3)
	g.UseTag("bob", "golang", 2)
	g.AddUser("stale")
	g.SetSimilarity("alice", "stale", 0.9)

	clk := clock.NewFake(testNow)
	e := newTestEstimator(t, g, clk)

	if err := e.CalculateUserSimilarity(context.Background(), "alice"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := g.Similarities("alice")
	if _, ok := first["stale"]; ok {
		t.Error("stale edge should have been removed")
	}

	clk.Advance(time.Hour)
	if err := e.CalculateUserSimilarity(context.Background(), "alice"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := g.Similarities("alice")

	if len(first) != len(second) {
		t.Fatalf("edge count changed: %d -> %d", len(first), len(second))
	}
	for id, a := range first {
		b := second[id]
		if a.Score != b.Score || a.Reason != b.Reason {
			t.Errorf("edge %s changed: %+v -> %+v", id, a, b)
		}
		if !b.UpdatedAt.Equal(testNow.Add(time.Hour)) {
			t.Errorf("edge %s updated at %v", id, b.UpdatedAt)
		}
	}
}

func TestCalculateUserSimilarity_Errors(t *testing.T) {
	t.Run("candidate query", func(t *testing.T) {
		e := newTestEstimator(t, failingExecutor(), nil)
		err := e.CalculateUserSimilarity(context.Background(), "alice")
		if !errors.Is(err, errGraphDown) {
			t.Errorf("err = %v, want wrapped errGraphDown", err)
		}
	})

	t.Run("upsert", func(t *testing.T) {
		g := &mockExecutor{fn: func(q graph.Query) ([]graph.Row, error) {
			if q.Write {
				return nil, errGraphDown
			}
			return nil, nil
		}}
		err := newTestEstimator(t, g, nil).CalculateUserSimilarity(context.Background(), "alice")
		if err == nil || !strings.Contains(err.Error(), "upsert similarity") {
			t.Errorf("err = %v, want upsert failure", err)
		}
	})
}

func TestScoreCandidates(t *testing.T) {
	e := newTestEstimator(t, graph.NewMemoryStore(), nil)
	rows := []graph.Row{
		{"user_id": "zed", "hashtag_score": 1.0, "shared_likes": int64(0), "shared_tags": []string{"a"}},
		{"user_id": "noise", "hashtag_score": 0.1, "shared_likes": int64(0), "shared_tags": []string{"b"}},
		{"user_id": "alice", "hashtag_score": 5.0, "shared_likes": int64(1), "shared_tags": []string{"a", "b"}},
		{"user_id": "self", "hashtag_score": 9.0, "shared_likes": int64(9)},
		{"user_id": "zed", "hashtag_score": 100.0, "shared_likes": int64(0)},
		{"user_id": "many", "hashtag_score": 2.0, "shared_tags": []string{"a", "b", "c", "d", "e"}},
	}

	edges := e.scoreCandidates("self", rows)

	var ids []string
	for _, edge := range edges {
		ids = append(ids, edge.UserID)
		if edge.Score <= 0.1 || edge.Score >= 1 {
			t.Errorf("%s score %v out of range", edge.UserID, edge.Score)
		}
	}
	if want := []string{"alice", "many", "zed"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("edges = %v, want %v", ids, want)
	}
	if edges[0].Reason != "Shared interests: #a, #b" {
		t.Errorf("reason = %q", edges[0].Reason)
	}
	if edges[1].Reason != "Shared interests: #a, #b, #c" {
		t.Errorf("reason = %q, want first three tags", edges[1].Reason)
	}
	if want := NormalizeSimilarity(0.6); edges[2].Score != want {
		t.Errorf("duplicate row should be ignored: score %v, want %v", edges[2].Score, want)
	}
}

func TestNormalizeSimilarity(t *testing.T) {
	tests := []struct {
		raw, want float64
	}{
		{0, 0},
		{-1, 0},
		{1, 0.5},
		{3, 0.75},
	}
	for _, tt := range tests {
		if got := NormalizeSimilarity(tt.raw); got != tt.want {
			t.Errorf("NormalizeSimilarity(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
	if got := NormalizeSimilarity(1e9); got >= 1 {
		t.Errorf("NormalizeSimilarity must stay below 1, got %v", got)
	}
}

func TestSimilarityReason(t *testing.T) {
	if got := similarityReason(nil); got != "Shared interests" {
		t.Errorf("got %q", got)
	}
	if got := similarityReason([]string{"go"}); got != "Shared interests: #go" {
		t.Errorf("got %q", got)
	}
}

func TestRunBatch_CountsFailures(t *testing.T) {
	g := graph.NewMemoryStore()
	g.UseTag("alice", "golang", 1)
	g.UseTag("bob", "golang", 1)

	exec := &mockExecutor{fn: func(q graph.Query) ([]graph.Row, error) {
		if q.Params["userId"] == "broken" {
			return nil, errGraphDown
		}
		return g.Execute(context.Background(), q)
	}}

	res := newTestEstimator(t, exec, nil).RunBatch(context.Background(), []string{"alice", "broken", "bob"})
	if res.Processed != 3 || res.Failed != 1 {
		t.Errorf("processed %d failed %d, want 3 and 1", res.Processed, res.Failed)
	}
	if res.EdgesWritten != 2 {
		t.Errorf("edges written = %d, want 2", res.EdgesWritten)
	}
	if len(g.Similarities("alice")) != 1 || len(g.Similarities("bob")) != 1 {
		t.Error("expected one edge in each direction")
	}
}

func TestRunBatch_StopsOnCancel(t *testing.T) {
	exec := &mockExecutor{fn: func(graph.Query) ([]graph.Row, error) { return nil, nil }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestEstimator(t, exec, nil).RunBatch(ctx, []string{"a", "b", "c"})
	if res.Processed != 0 {
		t.Errorf("processed %d after cancel, want 0", res.Processed)
	}
	if exec.calls.Load() != 0 {
		t.Errorf("graph called %d times after cancel", exec.calls.Load())
	}
}

func TestActiveUsers(t *testing.T) {
	g := graph.NewMemoryStore()
	g.UseTag("c", "golang", 1)
	g.UseTag("a", "golang", 1)
	g.AddPost("p", "author", testNow)
	g.Like("b", "p")
	g.AddUser("idle")

	e := newTestEstimator(t, g, nil)
	page, err := e.ActiveUsers(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("ActiveUsers: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(page, want) {
		t.Errorf("page 1 = %v, want %v", page, want)
	}
	page, _ = e.ActiveUsers(context.Background(), 2, 2)
	if want := []string{"c"}; !reflect.DeepEqual(page, want) {
		t.Errorf("page 2 = %v, want %v", page, want)
	}

	if _, err := newTestEstimator(t, failingExecutor(), nil).ActiveUsers(context.Background(), 0, 10); err == nil {
		t.Error("expected error from failing graph")
	}
}

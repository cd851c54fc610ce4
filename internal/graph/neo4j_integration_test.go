// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

//go:build integration

package graph

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/testinfra"
)

const seedCypher = `
CREATE (v:User {id: 'v'}), (f:User {id: 'f'}), (a:User {id: 'a'}), (b:User {id: 'b'})
CREATE (go:Hashtag {name: 'go'}), (rust:Hashtag {name: 'rust'})
CREATE (p1:Post {id: 'p1', createdAt: datetime() - duration('PT1H')})
CREATE (p2:Post {id: 'p2', createdAt: datetime() - duration('PT2H')})
CREATE (a)-[:POSTED]->(p1), (a)-[:POSTED]->(p2)
CREATE (p1)-[:HAS_TAG]->(go), (p2)-[:HAS_TAG]->(rust)
CREATE (v)-[:FOLLOWS]->(f), (f)-[:LIKED]->(p1)
CREATE (v)-[:USED_TAG {count: 3}]->(go), (b)-[:USED_TAG {count: 2}]->(go)
CREATE (b)-[:USED_TAG {count: 1}]->(rust)`

// TestNeo4jStore_Integration runs the query templates against a real Neo4j.
func TestNeo4jStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	neo, err := testinfra.NewNeo4jContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to create Neo4j container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, neo.Container)

	store, err := NewNeo4jStore(ctx, Neo4jConfig{
		URI:          neo.BoltURI,
		Username:     neo.Username,
		Password:     neo.Password,
		QueryTimeout: 10 * time.Second,
	}, zerolog.Nop())
	if err != nil {
		logs, _ := neo.Logs(ctx)
		t.Fatalf("NewNeo4jStore: %v\nContainer logs:\n%s", err, logs)
	}
	defer store.Close(ctx)

	if _, err := store.Execute(ctx, Query{Name: "seed", Cypher: seedCypher, Write: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("post candidates", func(t *testing.T) {
		rows, err := store.Execute(ctx, PostCandidatesQuery("v", time.Now().Add(-7*24*time.Hour), 100))
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		got := map[string]float64{}
		for _, r := range rows {
			got[r.String("post_id")+"/"+r.String("factor")] = r.Float("weight")
			if r.Time("created_at").IsZero() {
				t.Errorf("row %v has no created_at", r)
			}
		}
		if got["p1/"+FactorTagAffinity] != 3 || got["p1/"+FactorLikedByFollowing] != 1 {
			t.Errorf("rows = %v", got)
		}
	})

	t.Run("user candidates", func(t *testing.T) {
		rows, err := store.Execute(ctx, UserCandidatesQuery("v", 5, 100))
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		var found bool
		for _, r := range rows {
			if r.String("user_id") == "b" && r.String("factor") == FactorSimilarHashtags {
				found = true
				if r.Float("weight") != 6 {
					t.Errorf("b weight = %v, want 6", r.Float("weight"))
				}
			}
			if r.String("user_id") == "f" {
				t.Error("followed user returned")
			}
		}
		if !found {
			t.Errorf("b not recommended: %v", rows)
		}
	})

	t.Run("similarity upsert is idempotent", func(t *testing.T) {
		edges := []SimilarityEdge{{UserID: "b", Score: 0.85, Reason: "Shared interests: #go"}}
		for i := 0; i < 2; i++ {
			rows, err := store.Execute(ctx, UpsertSimilarityQuery("v", edges, time.Now()))
			if err != nil {
				t.Fatalf("upsert %d: %v", i, err)
			}
			if len(rows) != 1 || rows[0].Int("written") != 1 {
				t.Errorf("upsert %d rows = %v", i, rows)
			}
		}

		rows, err := store.Execute(ctx, Query{
			Name:   "count_similar",
			Cypher: "MATCH (:User {id: 'v'})-[s:SIMILAR_TO]->() RETURN count(s) AS n",
		})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if rows[0].Int("n") != 1 {
			t.Errorf("SIMILAR_TO edges = %d, want 1", rows[0].Int("n"))
		}
	})

	t.Run("active users", func(t *testing.T) {
		rows, err := store.Execute(ctx, ActiveUsersQuery(0, 10))
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("active users = %v, want b f v", rows)
		}
	})
}

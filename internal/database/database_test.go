// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/feedgraph/internal/config"
	"github.com/tomtom215/feedgraph/internal/models"
)

// testDBSemaphore limits concurrent database creation to prevent resource exhaustion in CI.
// Concurrent DuckDB CGO calls from many parallel tests can hang; one at a time.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes database creation.
var testDBMutex sync.Mutex

// testNow anchors every fixture timestamp.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a new in-memory test database with timeout protection.
// The semaphore is held for the entire test and released by t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "512MB",
		SkipIndexes:  true,
		QueryTimeout: 30 * time.Second,
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Logf("close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil
	}
}

// fixture builds relational test data with fatal-on-error helpers.
type fixture struct {
	t   *testing.T
	db  *DB
	ctx context.Context
}

func newFixture(t *testing.T, db *DB) *fixture {
	return &fixture{t: t, db: db, ctx: context.Background()}
}

func (f *fixture) user(id string) {
	f.t.Helper()
	if err := f.db.insertUser(f.ctx, models.User{ID: id, Username: id, DisplayName: "User " + id, CreatedAt: testNow.AddDate(0, -1, 0)}); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) post(id, author string, age time.Duration, tags ...string) {
	f.t.Helper()
	if err := f.db.insertPost(f.ctx, models.Post{ID: id, AuthorID: author, Content: "content " + id, CreatedAt: testNow.Add(-age)}, tags...); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) like(user, post string) {
	f.t.Helper()
	if err := f.db.insertLike(f.ctx, user, post, testNow); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) follow(follower, followee string) {
	f.t.Helper()
	if err := f.db.insertFollow(f.ctx, follower, followee, testNow); err != nil {
		f.t.Fatal(err)
	}
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn returned nil")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

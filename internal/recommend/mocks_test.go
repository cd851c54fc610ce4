// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/feedgraph/internal/graph"
	"github.com/tomtom215/feedgraph/internal/models"
)

var (
	testNow      = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	errGraphDown = errors.New("graph down")
	errStoreDown = errors.New("store down")
)

// mockExecutor implements graph.Executor with a per-test function.
type mockExecutor struct {
	calls atomic.Int32
	fn    func(q graph.Query) ([]graph.Row, error)
}

func (m *mockExecutor) Execute(_ context.Context, q graph.Query) ([]graph.Row, error) {
	m.calls.Add(1)
	return m.fn(q)
}

func failingExecutor() *mockExecutor {
	return &mockExecutor{fn: func(graph.Query) ([]graph.Row, error) { return nil, errGraphDown }}
}

// mockPostStore implements PostStore over an in-memory post table.
type mockPostStore struct {
	mu         sync.Mutex
	posts      map[string]models.Post
	findErr    error
	popularErr error
	findCalls  int
	lastRels   []models.Relation
}

func newMockPostStore(posts ...models.Post) *mockPostStore {
	s := &mockPostStore{posts: make(map[string]models.Post)}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *mockPostStore) FindPostsByIDs(_ context.Context, ids []string, relations ...models.Relation) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	s.lastRels = relations
	if s.findErr != nil {
		return nil, s.findErr
	}
	// Deliberately reversed to prove callers restore ranking order.
	var out []models.Post
	for i := len(ids) - 1; i >= 0; i-- {
		if p, ok := s.posts[ids[i]]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *mockPostStore) PopularPosts(_ context.Context, since time.Time, limit int, _ ...models.Relation) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.popularErr != nil {
		return nil, s.popularErr
	}
	var out []models.Post
	for _, p := range s.posts {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikeCount != out[j].LikeCount {
			return out[i].LikeCount > out[j].LikeCount
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockUserStore implements UserStore.
type mockUserStore struct {
	users     map[string]models.User
	follows   map[string]bool // followee IDs of the viewer
	findErr   error
	randomErr error
}

func newMockUserStore(ids ...string) *mockUserStore {
	s := &mockUserStore{users: make(map[string]models.User), follows: make(map[string]bool)}
	for _, id := range ids {
		s.users[id] = models.User{ID: id, Username: id}
	}
	return s
}

func (s *mockUserStore) FindUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *mockUserStore) RandomUnfollowedUsers(_ context.Context, viewerID string, limit int) ([]models.User, error) {
	if s.randomErr != nil {
		return nil, s.randomErr
	}
	var out []models.User
	for id, u := range s.users {
		if id == viewerID || s.follows[id] {
			continue
		}
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func post(id string, age time.Duration, likes int) models.Post {
	return models.Post{ID: id, AuthorID: "author", CreatedAt: testNow.Add(-age), LikeCount: likes}
}

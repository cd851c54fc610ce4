// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/models"
	"github.com/tomtom215/feedgraph/internal/recommend"
	"github.com/tomtom215/feedgraph/internal/trending"
)

// =====================================================
// Test doubles
// =====================================================

type mockPosts struct {
	mu       sync.Mutex
	viewerID string
	limit    int
}

func (m *mockPosts) Recommend(_ context.Context, viewerID string, limit int) []recommend.PostRecommendation {
	m.mu.Lock()
	m.viewerID, m.limit = viewerID, limit
	m.mu.Unlock()
	return []recommend.PostRecommendation{
		{Post: models.Post{ID: "p1", AuthorID: "bob"}, Score: 1.5, Reasons: []string{"liked_by_following"}},
	}
}

type mockUsers struct {
	mu       sync.Mutex
	viewerID string
	limit    int
}

func (m *mockUsers) Recommend(_ context.Context, viewerID string, limit int) []recommend.UserRecommendation {
	m.mu.Lock()
	m.viewerID, m.limit = viewerID, limit
	m.mu.Unlock()
	return []recommend.UserRecommendation{
		{User: models.User{ID: "carol"}, Score: 3, Reasons: []string{"similar_hashtags"}, SharedHashtags: []string{"golang"}},
	}
}

type mockTrending struct {
	mu     sync.Mutex
	window trending.Window
	limit  int
}

func (m *mockTrending) GetTrendingHashtags(_ context.Context, window trending.Window, limit int) []trending.Entry {
	m.mu.Lock()
	m.window, m.limit = window, limit
	m.mu.Unlock()
	return []trending.Entry{{Tag: "golang", DisplayTag: "GoLang", PostCount: 12, UserCount: 5, GrowthRate: 200, IsTrending: true}}
}

type mockSimilarity struct {
	mu     sync.Mutex
	userID string
	err    error
}

func (m *mockSimilarity) CalculateUserSimilarity(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	return m.err
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() Pinger { return pingerFunc(func(context.Context) error { return nil }) }

func unhealthy() Pinger {
	return pingerFunc(func(context.Context) error { return errors.New("connection refused") })
}

type testServer struct {
	posts      *mockPosts
	users      *mockUsers
	trending   *mockTrending
	similarity *mockSimilarity
	router     http.Handler
}

func newTestServer(t *testing.T, db, graph Pinger) *testServer {
	t.Helper()
	ts := &testServer{
		posts:      &mockPosts{},
		users:      &mockUsers{},
		trending:   &mockTrending{},
		similarity: &mockSimilarity{},
	}
	h := NewHandler(Dependencies{
		Posts:      ts.posts,
		Users:      ts.users,
		Trending:   ts.trending,
		Similarity: ts.similarity,
		Database:   db,
		Graph:      graph,
	}, zerolog.Nop())
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	ts.router = NewRouter(h, NewChiMiddleware(cfg), zerolog.Nop())
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var resp models.APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, resp
}

// =====================================================
// Recommendations
// =====================================================

func TestRecommendPosts_Success(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/recommendations/posts?viewer_id=alice&limit=25")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("envelope status = %q", resp.Status)
	}
	if ts.posts.viewerID != "alice" || ts.posts.limit != 25 {
		t.Errorf("recommender called with (%q, %d), want (alice, 25)", ts.posts.viewerID, ts.posts.limit)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("expected metadata timestamp")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header")
	}

	items, ok := resp.Data.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("data = %#v, want one item", resp.Data)
	}
	item := items[0].(map[string]interface{})
	if item["score"] != 1.5 {
		t.Errorf("score = %v, want 1.5", item["score"])
	}
}

func TestRecommendPosts_DefaultLimitPassedAsZero(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/recommendations/posts?viewer_id=alice")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ts.posts.limit != 0 {
		t.Errorf("limit = %d, want 0 so the recommender applies its default", ts.posts.limit)
	}
}

func TestRecommendUsers_Success(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/recommendations/users?viewer_id=u-42&limit=3")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ts.users.viewerID != "u-42" || ts.users.limit != 3 {
		t.Errorf("recommender called with (%q, %d)", ts.users.viewerID, ts.users.limit)
	}
	items := resp.Data.([]interface{})
	item := items[0].(map[string]interface{})
	shared := item["shared_hashtags"].([]interface{})
	if len(shared) != 1 || shared[0] != "golang" {
		t.Errorf("shared_hashtags = %v", shared)
	}
}

func TestRecommendations_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		wantField string
	}{
		{"missing viewer", "/api/v1/recommendations/posts", "viewer_id"},
		{"malformed viewer", "/api/v1/recommendations/users?viewer_id=" + "%20bad%20id", "viewer_id"},
		{"limit too large", "/api/v1/recommendations/posts?viewer_id=alice&limit=101", "limit"},
		{"negative limit", "/api/v1/recommendations/users?viewer_id=alice&limit=-1", "limit"},
		{"non-numeric limit", "/api/v1/recommendations/posts?viewer_id=alice&limit=ten", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, healthy(), healthy())

			rec, resp := ts.do(t, http.MethodGet, tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != codeValidation {
				t.Fatalf("error = %+v, want %s", resp.Error, codeValidation)
			}
			fields, _ := resp.Error.Details["fields"].([]interface{})
			if len(fields) == 0 {
				t.Fatalf("details = %v, want field list", resp.Error.Details)
			}
			if got := fields[0].(map[string]interface{})["field"]; got != tt.wantField {
				t.Errorf("field = %v, want %s", got, tt.wantField)
			}
		})
	}
}

// =====================================================
// Trending
// =====================================================

func TestTrendingHashtags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantWindow trending.Window
		wantLimit  int
	}{
		{"defaults", "", trending.Window24h, 0},
		{"hour window", "?window=1h&limit=5", trending.Window1h, 5},
		{"week window", "?window=7d", trending.Window7d, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, healthy(), healthy())

			rec, resp := ts.do(t, http.MethodGet, "/api/v1/trending/hashtags"+tt.query)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if ts.trending.window != tt.wantWindow || ts.trending.limit != tt.wantLimit {
				t.Errorf("cache called with (%s, %d), want (%s, %d)",
					ts.trending.window, ts.trending.limit, tt.wantWindow, tt.wantLimit)
			}
			entry := resp.Data.([]interface{})[0].(map[string]interface{})
			if entry["is_trending"] != true || entry["display_tag"] != "GoLang" {
				t.Errorf("entry = %v", entry)
			}
		})
	}
}

func TestTrendingHashtags_RejectsUnknownWindow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/trending/hashtags?window=30d")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeValidation {
		t.Errorf("error = %+v", resp.Error)
	}
}

// =====================================================
// Similarity
// =====================================================

func TestRecalculateSimilarity_Success(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/similarity/alice")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ts.similarity.userID != "alice" {
		t.Errorf("estimator called with %q", ts.similarity.userID)
	}
	data := resp.Data.(map[string]interface{})
	if data["user_id"] != "alice" || data["recalculated"] != true {
		t.Errorf("data = %v", data)
	}
}

func TestRecalculateSimilarity_GraphFailure(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())
	ts.similarity.err = errors.New("graph unavailable")

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/similarity/alice")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeSimilarityFailed {
		t.Fatalf("error = %+v", resp.Error)
	}
	if strings.Contains(resp.Error.Message, "graph unavailable") {
		t.Error("internal error text leaked to client")
	}
}

func TestRecalculateSimilarity_InvalidUserID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/similarity/"+strings.Repeat("x", 80))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ts.similarity.userID != "" {
		t.Error("estimator should not be called for an invalid ID")
	}
}

func TestRecalculateSimilarity_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/similarity/alice")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeMethodNotAllowed {
		t.Errorf("error = %+v", resp.Error)
	}
}

// =====================================================
// Health
// =====================================================

func TestHealthLive(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, unhealthy(), unhealthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/health/live")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with failing dependencies", rec.Code)
	}
	if resp.Data.(map[string]interface{})["alive"] != true {
		t.Errorf("data = %v", resp.Data)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db, graph  Pinger
		wantStatus int
		wantChecks map[string]bool
	}{
		{"all healthy", healthy(), healthy(), http.StatusOK, map[string]bool{"database": true, "graph": true}},
		{"graph down", healthy(), unhealthy(), http.StatusServiceUnavailable, map[string]bool{"database": true, "graph": false}},
		{"database down", unhealthy(), healthy(), http.StatusServiceUnavailable, map[string]bool{"database": false, "graph": true}},
		{"not configured", nil, nil, http.StatusServiceUnavailable, map[string]bool{"database": false, "graph": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, tt.db, tt.graph)

			rec, resp := ts.do(t, http.MethodGet, "/api/v1/health/ready")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			checks := resp.Data.(map[string]interface{})["checks"].(map[string]interface{})
			for name, want := range tt.wantChecks {
				if checks[name] != want {
					t.Errorf("check %s = %v, want %v", name, checks[name], want)
				}
			}
		})
	}
}

func TestHealthReady_PingHasDeadline(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	p := pingerFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})
	h := NewHandler(Dependencies{Database: p, Graph: healthy()}, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))

	if !hadDeadline {
		t.Error("ping context should carry a deadline")
	}
}

// =====================================================
// Router
// =====================================================

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/nope")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/health/live")

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on every response")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, healthy(), healthy())

	// Generate at least one API sample first.
	ts.do(t, http.MethodGet, "/api/v1/recommendations/posts?viewer_id=alice")

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/feedgraph/internal/metrics"
)

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Post("/api/v1/similarity/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/similarity/{userID}", "202")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"alice", "bob", "carol"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/similarity/"+id, nil))
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want 202", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("route counter delta = %v, want 3", got)
	}
}

func TestPrometheusMetrics_CapturesStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		write  bool
		want   string
	}{
		{"implicit ok", 0, true, "200"},
		{"explicit error", http.StatusInternalServerError, true, "500"},
		{"header only", http.StatusNoContent, false, "204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Use(PrometheusMetrics)
			r.Get("/status-"+tt.want, func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.write {
					_, _ = w.Write([]byte("ok"))
				}
			})

			counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/status-"+tt.want, tt.want)
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status-"+tt.want, nil))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

func TestPrometheusMetrics_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/abc", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_ActiveRequestsReturnToZero(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := testutil.ToFloat64(metrics.APIActiveRequests); got < 1 {
			t.Errorf("active requests during handler = %v, want >= 1", got)
		}
	}))

	before := testutil.ToFloat64(metrics.APIActiveRequests)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != before {
		t.Errorf("active requests after = %v, want %v", got, before)
	}
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("test_op"))
	RecordDBQuery("test_op", time.Millisecond, nil)
	RecordDBQuery("test_op", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("test_op")) - before; got != 1 {
		t.Errorf("error counter delta = %v, want 1", got)
	}
}

// TestRecordGraphQuery tests graph query metric recording
func TestRecordGraphQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantErrInc float64
	}{
		{name: "successful query", query: "test_ok", wantErrInc: 0},
		{name: "failed query", query: "test_fail", err: errors.New("connection refused"), wantErrInc: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(GraphQueryErrors.WithLabelValues(tt.query))
			RecordGraphQuery(tt.query, 10*time.Millisecond, tt.err)
			after := testutil.ToFloat64(GraphQueryErrors.WithLabelValues(tt.query))

			if after-before != tt.wantErrInc {
				t.Errorf("error counter delta = %v, want %v", after-before, tt.wantErrInc)
			}
		})
	}
}

// TestRecordRecommendation tests request and fallback counters
func TestRecordRecommendation(t *testing.T) {
	reqBefore := testutil.ToFloat64(RecommendRequests.WithLabelValues("test_kind"))
	fbBefore := testutil.ToFloat64(RecommendFallbacks.WithLabelValues("test_kind", "no_signal"))

	RecordRecommendation("test_kind", "", 5)
	RecordRecommendation("test_kind", "no_signal", 3)

	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("test_kind")) - reqBefore; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RecommendFallbacks.WithLabelValues("test_kind", "no_signal")) - fbBefore; got != 1 {
		t.Errorf("fallbacks delta = %v, want 1", got)
	}
}

func TestRecordDroppedEntities(t *testing.T) {
	before := testutil.ToFloat64(RecommendDroppedEntities.WithLabelValues("test_drop"))

	RecordDroppedEntities("test_drop", 0)
	RecordDroppedEntities("test_drop", 3)

	if got := testutil.ToFloat64(RecommendDroppedEntities.WithLabelValues("test_drop")) - before; got != 3 {
		t.Errorf("dropped delta = %v, want 3", got)
	}
}

func TestRecordTrendingCache(t *testing.T) {
	before := testutil.ToFloat64(TrendingCacheRequests.WithLabelValues("test_window", "fresh"))
	RecordTrendingCache("test_window", "fresh")
	RecordTrendingCompute("test_window", 5*time.Millisecond)

	if got := testutil.ToFloat64(TrendingCacheRequests.WithLabelValues("test_window", "fresh")) - before; got != 1 {
		t.Errorf("cache delta = %v, want 1", got)
	}
}

func TestRecordSimilarityBatch(t *testing.T) {
	edgesBefore := testutil.ToFloat64(SimilarityEdgesWritten)
	failBefore := testutil.ToFloat64(SimilarityFailures)

	RecordSimilarityBatch(2*time.Second, 2, 7)

	if got := testutil.ToFloat64(SimilarityEdgesWritten) - edgesBefore; got != 7 {
		t.Errorf("edges delta = %v, want 7", got)
	}
	if got := testutil.ToFloat64(SimilarityFailures) - failBefore; got != 2 {
		t.Errorf("failures delta = %v, want 2", got)
	}
}

// TestTrackActiveRequest tests the gauge returns to its start after paired calls
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200"))
	RecordAPIRequest("GET", "/test", "200", 20*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200")) - before; got != 1 {
		t.Errorf("api requests delta = %v, want 1", got)
	}
}

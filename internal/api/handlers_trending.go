// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/feedgraph/internal/trending"
)

// TrendingHashtags handles GET /api/v1/trending/hashtags.
//
// Results come from the trending cache and may be up to one TTL old.
func (h *Handler) TrendingHashtags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, apiErr := parseIntParam(r, "limit")
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	req := TrendingRequest{
		Window: r.URL.Query().Get("window"),
		Limit:  limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	window, _ := trending.ParseWindow(req.Window)
	respondSuccess(w, h.trending.GetTrendingHashtags(r.Context(), window, req.Limit), start)
}

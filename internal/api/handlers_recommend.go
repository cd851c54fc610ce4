// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"net/http"
	"time"
)

// parseRecommendationsRequest reads and validates viewer_id and limit.
func parseRecommendationsRequest(w http.ResponseWriter, r *http.Request) (RecommendationsRequest, bool) {
	limit, apiErr := parseIntParam(r, "limit")
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return RecommendationsRequest{}, false
	}

	req := RecommendationsRequest{
		ViewerID: r.URL.Query().Get("viewer_id"),
		Limit:    limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return RecommendationsRequest{}, false
	}
	return req, true
}

// RecommendPosts handles GET /api/v1/recommendations/posts.
//
// Always answers 200 for a valid request. Graph outages degrade to popular
// posts inside the recommender.
func (h *Handler) RecommendPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := parseRecommendationsRequest(w, r)
	if !ok {
		return
	}

	respondSuccess(w, h.posts.Recommend(r.Context(), req.ViewerID, req.Limit), start)
}

// RecommendUsers handles GET /api/v1/recommendations/users.
func (h *Handler) RecommendUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := parseRecommendationsRequest(w, r)
	if !ok {
		return
	}

	respondSuccess(w, h.users.Recommend(r.Context(), req.ViewerID, req.Limit), start)
}

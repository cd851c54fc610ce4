// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

// MaxRequestLimit caps the limit query parameter on every endpoint. Services
// apply their own, possibly lower, caps after validation.
const MaxRequestLimit = 100

// RecommendationsRequest holds the query parameters of both recommendation
// endpoints. A zero Limit selects the service default.
type RecommendationsRequest struct {
	ViewerID string `query:"viewer_id" validate:"required,entity_id"`
	Limit    int    `query:"limit" validate:"min=0,max=100"`
}

// TrendingRequest holds the trending hashtag query parameters. An empty
// Window selects 24h.
type TrendingRequest struct {
	Window string `query:"window" validate:"omitempty,oneof=1h 24h 7d"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
}

// SimilarityRequest identifies the user whose edges are recomputed.
type SimilarityRequest struct {
	UserID string `query:"userID" validate:"required,entity_id"`
}

// SimilarityResult reports a completed recalculation.
type SimilarityResult struct {
	UserID       string `json:"user_id"`
	Recalculated bool   `json:"recalculated"`
	DurationMS   int64  `json:"duration_ms"`
}

// ReadyStatus reports the result of each readiness check.
type ReadyStatus struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

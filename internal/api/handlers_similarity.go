// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/feedgraph/internal/logging"
)

// RecalculateSimilarity handles POST /api/v1/similarity/{userID}.
//
// Operators use it to refresh one user's SIMILAR_TO edges without waiting
// for the next batch. Unlike the read endpoints it reports graph failures.
func (h *Handler) RecalculateSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SimilarityRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.similarityTO)
	defer cancel()

	if err := h.similarity.CalculateUserSimilarity(ctx, req.UserID); err != nil {
		respondError(w, r, http.StatusBadGateway, codeSimilarityFailed,
			"Similarity recalculation failed", err)
		return
	}

	logger := logging.Enrich(r.Context(), h.logger)
	logger.Info().
		Str("user_id", req.UserID).
		Dur("duration", time.Since(start)).
		Msg("Similarity recalculated on request")

	respondSuccess(w, SimilarityResult{
		UserID:       req.UserID,
		Recalculated: true,
		DurationMS:   time.Since(start).Milliseconds(),
	}, start)
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/feedgraph/internal/models"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK while the process is running, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only when DuckDB and the graph store both answer a ping,
// 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]bool{
		"database": h.ping(r.Context(), h.db),
		"graph":    h.ping(r.Context(), h.graph),
	}

	statusCode := http.StatusOK
	status := ReadyStatus{Status: "ready", Checks: checks}
	for _, ok := range checks {
		if !ok {
			statusCode = http.StatusServiceUnavailable
			status.Status = "not_ready"
		}
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

func (h *Handler) ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()
	return p.Ping(ctx) == nil
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/logging"
)

// AccessLog logs one line per request with the request and correlation IDs
// from RequestID. Server errors log at error level, client errors at warn,
// everything else at debug so health probes stay quiet.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func AccessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "http").Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			reqLogger := logging.Enrich(r.Context(), logger)
			var event *zerolog.Event
			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case rw.statusCode >= http.StatusBadRequest:
				event = reqLogger.Warn()
			default:
				event = reqLogger.Debug()
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", rw.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

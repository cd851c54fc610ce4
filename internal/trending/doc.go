// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Package trending ranks hashtags by recent activity and caches the rankings.
//
// Computer compares the current window against the preceding window of the
// same length:
//
//	growthRate = (current - previous) / previous * 100   (100 when previous is 0)
//	isTrending = growthRate > 50
//
// Cache keeps one ranking per (window, limit) with a 15 minute TTL. Reads of
// a fresh key never touch the store. A stale key is recomputed on read and
// the old ranking is served if recomputation fails, so a key that has been
// computed once always returns data. RefreshAll is run periodically by the
// supervisor to keep the common keys warm.
//
// Supported windows are 1h, 24h and 7d. Anything else is treated as 24h.
package trending

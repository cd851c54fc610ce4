// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package trending

import (
	"context"
	"time"
)

// Window is a named trailing time window.
type Window string

// Supported windows.
const (
	Window1h  Window = "1h"
	Window24h Window = "24h"
	Window7d  Window = "7d"

	DefaultWindow = Window24h
)

// Windows lists every supported window in ascending length.
func Windows() []Window {
	return []Window{Window1h, Window24h, Window7d}
}

// ParseWindow maps s to a supported window. Unknown values fall back to
// DefaultWindow with ok=false.
func ParseWindow(s string) (w Window, ok bool) {
	switch Window(s) {
	case Window1h, Window24h, Window7d:
		return Window(s), true
	default:
		return DefaultWindow, false
	}
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	switch w {
	case Window1h:
		return time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Entry is one ranked hashtag.
type Entry struct {
	Tag        string  `json:"tag"`
	DisplayTag string  `json:"display_tag"`
	PostCount  int     `json:"post_count"`
	UserCount  int     `json:"user_count"`
	GrowthRate float64 `json:"growth_rate"`
	IsTrending bool    `json:"is_trending"`
}

// Key identifies a cached ranking.
type Key struct {
	Window Window
	Limit  int
}

// TagActivity is per-hashtag activity within one time interval.
type TagActivity struct {
	Tag        string
	DisplayTag string
	PostCount  int // distinct posts carrying the tag
	UserCount  int // distinct authors of those posts
}

// ActivitySource reports hashtag activity for posts created in [start, end).
type ActivitySource interface {
	HashtagActivity(ctx context.Context, start, end time.Time) ([]TagActivity, error)
}

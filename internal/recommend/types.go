// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/feedgraph/internal/models"
)

// ReasonPopular tags fallback results.
const ReasonPopular = "popular"

// Fallback reasons, used as metric labels and log fields.
const (
	FallbackGraphError  = "graph_error"
	FallbackNoSignal    = "no_signal"
	FallbackLookupError = "lookup_error"
	FallbackUnresolved  = "unresolved"
)

// Recommendation kinds, used as metric labels.
const (
	KindPosts = "posts"
	KindUsers = "users"
)

// PostRecommendation is a post with its aggregated score and the factors that
// contributed to it. Built per request and never cached.
type PostRecommendation struct {
	Post    models.Post `json:"post"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
}

// UserRecommendation is a user to follow with its aggregated score.
// SharedHashtags lists tags both users use, strongest first.
type UserRecommendation struct {
	User           models.User `json:"user"`
	Score          float64     `json:"score"`
	Reasons        []string    `json:"reasons"`
	SharedHashtags []string    `json:"shared_hashtags"`
}

// PostStore resolves post IDs to display-ready posts.
// Implemented by database.DB.
type PostStore interface {
	// FindPostsByIDs returns the posts that exist, in any order.
	FindPostsByIDs(ctx context.Context, ids []string, relations ...models.Relation) ([]models.Post, error)

	// PopularPosts returns up to limit posts created since the given time,
	// most liked first.
	PopularPosts(ctx context.Context, since time.Time, limit int, relations ...models.Relation) ([]models.Post, error)
}

// UserStore resolves user IDs to display-ready users.
// Implemented by database.DB.
type UserStore interface {
	// FindUsersByIDs returns the users that exist, in any order.
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)

	// RandomUnfollowedUsers returns up to limit users that viewerID does not
	// follow, excluding viewerID, in random order.
	RandomUnfollowedUsers(ctx context.Context, viewerID string, limit int) ([]models.User, error)
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/feedgraph/internal/logging"
	"github.com/tomtom215/feedgraph/internal/models"
)

// SeedDemoData fills an empty database with a small, deterministic social
// network anchored at now. It is a no-op when users already exist.
// Intended for local development with the memory graph backend.
func (db *DB) SeedDemoData(ctx context.Context, now time.Time) error {
	var existing int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		logging.Info().Int("users", existing).Msg("Database already populated, skipping demo seed")
		return nil
	}

	logging.Info().Msg("Seeding database with demo social data...")

	const (
		numPosts      = 80
		daysOfHistory = 14
		likesPerUser  = 10
		followsPerUsr = 3
	)

	rng := rand.New(rand.NewSource(42)) //nolint:gosec // demo data, not security sensitive

	names := []string{
		"Alice", "Bob", "Charlie", "David", "Emma", "Frank",
		"Grace", "Henry", "Isabella", "Jack", "Kate", "Liam",
	}
	tags := []string{"GoLang", "Rust", "Cooking", "Travel", "Music", "Photography", "Fitness", "Books"}

	interests := make(map[string][]string, len(names))
	userIDs := make([]string, 0, len(names))
	for i, name := range names {
		id := fmt.Sprintf("user-%02d", i+1)
		userIDs = append(userIDs, id)
		u := models.User{
			ID:          id,
			Username:    strings.ToLower(name),
			DisplayName: name,
			Bio:         fmt.Sprintf("Hi, I'm %s", name),
			CreatedAt:   now.AddDate(0, -6, 0),
		}
		if err := db.insertUser(ctx, u); err != nil {
			return err
		}
		// Two or three interests per user, overlapping by construction.
		for j := 0; j < 2+i%2; j++ {
			interests[id] = append(interests[id], tags[(i+j*3)%len(tags)])
		}
	}

	postIDs := make([]string, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := userIDs[rng.Intn(len(userIDs))]
		mine := interests[author]
		postTags := []string{"#" + mine[rng.Intn(len(mine))]}
		if rng.Intn(3) == 0 {
			postTags = append(postTags, "#"+mine[rng.Intn(len(mine))])
		}
		// Skew recent so the short windows have activity.
		age := time.Duration(rng.ExpFloat64() * float64(daysOfHistory*24*time.Hour) / 4)
		if age > daysOfHistory*24*time.Hour {
			age = daysOfHistory * 24 * time.Hour
		}
		p := models.Post{
			ID:        fmt.Sprintf("post-%03d", i+1),
			AuthorID:  author,
			Content:   "Thoughts on " + strings.Join(postTags, " "),
			CreatedAt: now.Add(-age),
		}
		if err := db.insertPost(ctx, p, postTags...); err != nil {
			return err
		}
		postIDs = append(postIDs, p.ID)

		if rng.Intn(4) == 0 {
			commenter := userIDs[rng.Intn(len(userIDs))]
			if err := db.insertComment(ctx, models.Comment{
				ID:        uuid.New().String(),
				PostID:    p.ID,
				AuthorID:  commenter,
				Content:   "Nice post!",
				CreatedAt: p.CreatedAt.Add(time.Hour),
			}); err != nil {
				return err
			}
		}
		if rng.Intn(5) == 0 {
			if err := db.insertActivity(ctx, models.Activity{
				ID:        uuid.New().String(),
				PostID:    p.ID,
				UserID:    userIDs[rng.Intn(len(userIDs))],
				Kind:      "share",
				CreatedAt: p.CreatedAt.Add(30 * time.Minute),
			}); err != nil {
				return err
			}
		}
	}

	for _, userID := range userIDs {
		for j := 0; j < likesPerUser; j++ {
			if err := db.insertLike(ctx, userID, postIDs[rng.Intn(len(postIDs))], now.Add(-time.Duration(j)*time.Hour)); err != nil {
				return err
			}
		}
		for j := 0; j < followsPerUsr; j++ {
			followee := userIDs[rng.Intn(len(userIDs))]
			if followee == userID {
				continue
			}
			if err := db.insertFollow(ctx, userID, followee, now.AddDate(0, -1, 0)); err != nil {
				return err
			}
		}
	}

	logging.Info().Int("users", len(userIDs)).Int("posts", len(postIDs)).Msg("Demo data seeded")
	return nil
}

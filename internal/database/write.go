// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/feedgraph/internal/models"
)

// The writers below load demo and test data. The platform owns the real
// writes to this store.

func (db *DB) insertUser(ctx context.Context, u models.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, avatar_url, bio, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		u.ID, u.Username, u.DisplayName, u.AvatarURL, u.Bio, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("insert user %s: %w", u.ID, err)
	}
	return nil
}

// insertPost writes the post and links it to tags, creating hashtags on
// first use. Tags are normalized; the first spelling seen becomes the
// display tag.
func (db *DB) insertPost(ctx context.Context, p models.Post, tags ...string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, content, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		p.ID, p.AuthorID, p.Content, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert post %s: %w", p.ID, err)
	}

	for _, raw := range tags {
		tag := models.NormalizeTag(raw)
		if tag == "" {
			continue
		}
		display := strings.TrimPrefix(strings.TrimSpace(raw), "#")
		if _, err := db.conn.ExecContext(ctx, `
			INSERT INTO hashtags (id, tag, display_tag) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`, tag, tag, display); err != nil {
			return fmt.Errorf("insert hashtag %s: %w", tag, err)
		}
		if _, err := db.conn.ExecContext(ctx, `
			INSERT INTO post_hashtags (post_id, hashtag_id) VALUES (?, ?)
			ON CONFLICT DO NOTHING`, p.ID, tag); err != nil {
			return fmt.Errorf("tag post %s: %w", p.ID, err)
		}
	}
	return nil
}

func (db *DB) insertLike(ctx context.Context, userID, postID string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`, userID, postID, at.UTC())
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (db *DB) insertFollow(ctx context.Context, followerID, followeeID string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`, followerID, followeeID, at.UTC())
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (db *DB) insertComment(ctx context.Context, c models.Comment) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.PostID, c.AuthorID, c.Content, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (db *DB) insertActivity(ctx context.Context, a models.Activity) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO activities (id, post_id, user_id, kind, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.PostID, a.UserID, a.Kind, a.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// GraphSink receives the graph projection of the relational data.
// graph.MemoryStore implements it.
type GraphSink interface {
	AddUser(id string)
	AddPost(id, authorID string, createdAt time.Time, tags ...string)
	Follow(follower, followee string)
	Like(userID, postID string)
	UseTag(userID, tag string, count int)
}

// ExportGraph projects users, posts, follows, likes and tag usage into
// sink. USED_TAG counts are the number of the user's posts carrying the tag.
func (db *DB) ExportGraph(ctx context.Context, sink GraphSink) error {
	start := time.Now()

	steps := []struct {
		name  string
		query string
		fn    func(*sql.Rows) error
	}{
		{"users", `SELECT id FROM users`, func(rows *sql.Rows) error {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			sink.AddUser(id)
			return nil
		}},
		{"posts", `
			SELECT p.id, p.author_id, p.created_at, COALESCE(string_agg(h.tag, ','), '')
			FROM posts p
			LEFT JOIN post_hashtags ph ON ph.post_id = p.id
			LEFT JOIN hashtags h ON h.id = ph.hashtag_id
			GROUP BY p.id, p.author_id, p.created_at`, func(rows *sql.Rows) error {
			var (
				id, authorID, tagList string
				createdAt             time.Time
			)
			if err := rows.Scan(&id, &authorID, &createdAt, &tagList); err != nil {
				return err
			}
			var tags []string
			if tagList != "" {
				tags = strings.Split(tagList, ",")
			}
			sink.AddPost(id, authorID, createdAt, tags...)
			return nil
		}},
		{"follows", `SELECT follower_id, followee_id FROM follows`, func(rows *sql.Rows) error {
			var follower, followee string
			if err := rows.Scan(&follower, &followee); err != nil {
				return err
			}
			sink.Follow(follower, followee)
			return nil
		}},
		{"likes", `SELECT user_id, post_id FROM likes`, func(rows *sql.Rows) error {
			var userID, postID string
			if err := rows.Scan(&userID, &postID); err != nil {
				return err
			}
			sink.Like(userID, postID)
			return nil
		}},
		{"tag usage", `
			SELECT p.author_id, h.tag, COUNT(*) AS uses
			FROM posts p
			JOIN post_hashtags ph ON ph.post_id = p.id
			JOIN hashtags h ON h.id = ph.hashtag_id
			GROUP BY p.author_id, h.tag`, func(rows *sql.Rows) error {
			var (
				userID, tag string
				uses        int
			)
			if err := rows.Scan(&userID, &tag, &uses); err != nil {
				return err
			}
			sink.UseTag(userID, tag, uses)
			return nil
		}},
	}

	for _, step := range steps {
		if err := db.eachRow(ctx, step.query, nil, step.fn); err != nil {
			return observe("export_graph", start, fmt.Errorf("export %s: %w", step.name, err))
		}
	}
	return observe("export_graph", start, nil)
}

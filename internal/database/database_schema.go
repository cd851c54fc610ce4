// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
database_schema.go - Database Schema Management

Tables mirror the social platform's relational store:
  - users, posts, comments, activities: display records
  - likes, follows: user-to-post and user-to-user edges
  - hashtags, post_hashtags: normalized tags and their post assignments

Timestamps are stored as TIMESTAMP in UTC.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR PRIMARY KEY,
			username VARCHAR NOT NULL,
			display_name VARCHAR NOT NULL DEFAULT '',
			avatar_url VARCHAR NOT NULL DEFAULT '',
			bio VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			id VARCHAR PRIMARY KEY,
			author_id VARCHAR NOT NULL,
			content VARCHAR NOT NULL DEFAULT '',
			reply_to VARCHAR,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS likes (
			user_id VARCHAR NOT NULL,
			post_id VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, post_id)
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id VARCHAR PRIMARY KEY,
			post_id VARCHAR NOT NULL,
			author_id VARCHAR NOT NULL,
			content VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS hashtags (
			id VARCHAR PRIMARY KEY,
			tag VARCHAR NOT NULL UNIQUE,
			display_tag VARCHAR NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS post_hashtags (
			post_id VARCHAR NOT NULL,
			hashtag_id VARCHAR NOT NULL,
			PRIMARY KEY (post_id, hashtag_id)
		);`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id VARCHAR NOT NULL,
			followee_id VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (follower_id, followee_id)
		);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id VARCHAR PRIMARY KEY,
			post_id VARCHAR NOT NULL,
			user_id VARCHAR NOT NULL,
			kind VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
	}
}

// createIndexes creates database indexes for query optimization.
// Skipped when cfg.SkipIndexes is set (fast test setup).
func (db *DB) createIndexes() error {
	if db.cfg != nil && db.cfg.SkipIndexes {
		return nil
	}

	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}
	return nil
}

func indexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);`,
		`CREATE INDEX IF NOT EXISTS idx_likes_post ON likes(post_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);`,
		`CREATE INDEX IF NOT EXISTS idx_post_hashtags_hashtag ON post_hashtags(hashtag_id);`,
		`CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_post ON activities(post_id);`,
	}
}

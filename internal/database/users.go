// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/feedgraph/internal/models"
)

const userColumns = `
	u.id,
	u.username,
	u.display_name,
	u.avatar_url,
	u.bio,
	u.created_at,
	(SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id) AS follower_count`

// FindUsersByIDs loads the users with the given IDs. Missing IDs are
// skipped; result order is unspecified.
func (db *DB) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	users, err := db.findUsers(ctx, ids)
	if err != nil {
		return nil, observe("find_users", start, fmt.Errorf("query users by id: %w", err))
	}
	return users, observe("find_users", start, nil)
}

// RandomUnfollowedUsers returns up to limit users other than viewerID that
// viewerID does not follow, in random order.
func (db *DB) RandomUnfollowedUsers(ctx context.Context, viewerID string, limit int) ([]models.User, error) {
	if limit <= 0 {
		return []models.User{}, nil
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> ?
		  AND NOT EXISTS (
			SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.followee_id = u.id
		  )
		ORDER BY random()
		LIMIT ?`

	users, err := db.queryUsers(ctx, query, viewerID, viewerID, limit)
	if err != nil {
		return nil, observe("random_users", start, fmt.Errorf("query unfollowed users: %w", err))
	}
	return users, observe("random_users", start, nil)
}

func (db *DB) findUsers(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id IN (` + placeholders(len(ids)) + `)`
	return db.queryUsers(ctx, query, stringArgs(ids)...)
}

func (db *DB) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.Bio, &u.CreatedAt, &u.FollowerCount); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

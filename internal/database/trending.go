// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/feedgraph/internal/trending"
)

// HashtagActivity returns, per hashtag, the number of distinct posts and
// distinct authors among posts created in [start, end).
func (db *DB) HashtagActivity(ctx context.Context, start, end time.Time) ([]trending.TagActivity, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	began := time.Now()
	query := `
		SELECT
			h.tag,
			h.display_tag,
			COUNT(DISTINCT p.id) AS post_count,
			COUNT(DISTINCT p.author_id) AS user_count
		FROM post_hashtags ph
		JOIN posts p ON p.id = ph.post_id
		JOIN hashtags h ON h.id = ph.hashtag_id
		WHERE p.created_at >= ? AND p.created_at < ?
		GROUP BY h.tag, h.display_tag
		ORDER BY post_count DESC, h.tag`

	rows, err := db.conn.QueryContext(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, observe("hashtag_activity", began, fmt.Errorf("query hashtag activity: %w", err))
	}
	defer closeWithLog(rows, "rows")

	var out []trending.TagActivity
	for rows.Next() {
		var a trending.TagActivity
		if err := rows.Scan(&a.Tag, &a.DisplayTag, &a.PostCount, &a.UserCount); err != nil {
			return nil, observe("hashtag_activity", began, fmt.Errorf("scan hashtag activity: %w", err))
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, observe("hashtag_activity", began, fmt.Errorf("iterate hashtag activity: %w", err))
	}
	return out, observe("hashtag_activity", began, nil)
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/feedgraph/internal/models"
)

const postColumns = `
	p.id,
	p.author_id,
	p.content,
	p.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count`

// FindPostsByIDs loads the posts with the given IDs plus the requested
// relations. Missing IDs are skipped; result order is unspecified.
func (db *DB) FindPostsByIDs(ctx context.Context, ids []string, relations ...models.Relation) ([]models.Post, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.Post{}, nil
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id IN (` + placeholders(len(ids)) + `)`

	posts, err := db.queryPosts(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, observe("find_posts", start, fmt.Errorf("query posts by id: %w", err))
	}
	if err := db.loadPostRelations(ctx, posts, relations); err != nil {
		return nil, observe("find_posts", start, err)
	}
	return posts, observe("find_posts", start, nil)
}

// PopularPosts returns up to limit posts created at or after since, ordered
// by like count descending, then newest first.
func (db *DB) PopularPosts(ctx context.Context, since time.Time, limit int, relations ...models.Relation) ([]models.Post, error) {
	if limit <= 0 {
		return []models.Post{}, nil
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		WHERE p.created_at >= ?
		ORDER BY like_count DESC, p.created_at DESC, p.id
		LIMIT ?`

	posts, err := db.queryPosts(ctx, query, since.UTC(), limit)
	if err != nil {
		return nil, observe("popular_posts", start, fmt.Errorf("query popular posts: %w", err))
	}
	if err := db.loadPostRelations(ctx, posts, relations); err != nil {
		return nil, observe("popular_posts", start, err)
	}
	return posts, observe("popular_posts", start, nil)
}

func (db *DB) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.LikeCount, &p.CommentCount); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// loadPostRelations fills the requested relation fields in place.
func (db *DB) loadPostRelations(ctx context.Context, posts []models.Post, relations []models.Relation) error {
	if len(posts) == 0 || len(relations) == 0 {
		return nil
	}

	byID := make(map[string]*models.Post, len(posts))
	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
		postIDs = append(postIDs, posts[i].ID)
	}

	for _, rel := range relations {
		var err error
		switch rel {
		case models.RelationAuthor:
			err = db.loadAuthors(ctx, posts)
		case models.RelationLikes:
			err = db.loadLikes(ctx, byID, postIDs)
		case models.RelationComments:
			err = db.loadComments(ctx, byID, postIDs)
		case models.RelationHashtags:
			err = db.loadHashtags(ctx, byID, postIDs)
		case models.RelationActivities:
			err = db.loadActivities(ctx, byID, postIDs)
		default:
			err = fmt.Errorf("unknown relation %q", rel)
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", rel, err)
		}
	}
	return nil
}

func (db *DB) loadAuthors(ctx context.Context, posts []models.Post) error {
	authorIDs := make([]string, 0, len(posts))
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
	}
	users, err := db.findUsers(ctx, dedupe(authorIDs))
	if err != nil {
		return err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range posts {
		if u, ok := byID[posts[i].AuthorID]; ok {
			author := u
			posts[i].Author = &author
		}
	}
	return nil
}

func (db *DB) loadLikes(ctx context.Context, byID map[string]*models.Post, postIDs []string) error {
	query := `SELECT user_id, post_id, created_at FROM likes
		WHERE post_id IN (` + placeholders(len(postIDs)) + `)
		ORDER BY created_at DESC, user_id`
	return db.eachRow(ctx, query, stringArgs(postIDs), func(rows *sql.Rows) error {
		var l models.Like
		if err := rows.Scan(&l.UserID, &l.PostID, &l.CreatedAt); err != nil {
			return err
		}
		if p := byID[l.PostID]; p != nil {
			p.Likes = append(p.Likes, l)
		}
		return nil
	})
}

func (db *DB) loadComments(ctx context.Context, byID map[string]*models.Post, postIDs []string) error {
	query := `SELECT id, post_id, author_id, content, created_at FROM comments
		WHERE post_id IN (` + placeholders(len(postIDs)) + `)
		ORDER BY created_at, id`
	return db.eachRow(ctx, query, stringArgs(postIDs), func(rows *sql.Rows) error {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return err
		}
		if p := byID[c.PostID]; p != nil {
			p.Comments = append(p.Comments, c)
		}
		return nil
	})
}

func (db *DB) loadHashtags(ctx context.Context, byID map[string]*models.Post, postIDs []string) error {
	query := `SELECT ph.post_id, h.id, h.tag, h.display_tag
		FROM post_hashtags ph
		JOIN hashtags h ON h.id = ph.hashtag_id
		WHERE ph.post_id IN (` + placeholders(len(postIDs)) + `)
		ORDER BY h.tag`
	return db.eachRow(ctx, query, stringArgs(postIDs), func(rows *sql.Rows) error {
		var (
			postID string
			h      models.Hashtag
		)
		if err := rows.Scan(&postID, &h.ID, &h.Tag, &h.DisplayTag); err != nil {
			return err
		}
		if p := byID[postID]; p != nil {
			p.Hashtags = append(p.Hashtags, h)
		}
		return nil
	})
}

func (db *DB) loadActivities(ctx context.Context, byID map[string]*models.Post, postIDs []string) error {
	query := `SELECT id, post_id, user_id, kind, created_at FROM activities
		WHERE post_id IN (` + placeholders(len(postIDs)) + `)
		ORDER BY created_at DESC, id`
	return db.eachRow(ctx, query, stringArgs(postIDs), func(rows *sql.Rows) error {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.PostID, &a.UserID, &a.Kind, &a.CreatedAt); err != nil {
			return err
		}
		if p := byID[a.PostID]; p != nil {
			p.Activities = append(p.Activities, a)
		}
		return nil
	})
}

// eachRow runs query and calls fn for every result row.
func (db *DB) eachRow(ctx context.Context, query string, args []any, fn func(*sql.Rows) error) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package models

import (
	"strings"
	"time"
)

// User is a display-ready user record from the relational store.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	FollowerCount int       `json:"follower_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Post is a display-ready post record. Relation fields are only populated
// when the caller requested the matching Relation.
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`

	Author     *User      `json:"author,omitempty"`
	Likes      []Like     `json:"likes,omitempty"`
	Comments   []Comment  `json:"comments,omitempty"`
	Hashtags   []Hashtag  `json:"hashtags,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// Like records a user liking a post.
type Like struct {
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Hashtag is a normalized tag with the casing it was first written in.
type Hashtag struct {
	ID         string `json:"id"`
	Tag        string `json:"tag"`
	DisplayTag string `json:"display_tag"`
}

// Activity is a feed event linked to a post (share, quote, mention).
type Activity struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Relation names an association that entity lookups may eagerly load.
type Relation string

const (
	// RelationAuthor loads Post.Author.
	RelationAuthor Relation = "author"
	// RelationLikes loads Post.Likes.
	RelationLikes Relation = "likes"
	// RelationComments loads Post.Comments.
	RelationComments Relation = "comments"
	// RelationHashtags loads Post.Hashtags.
	RelationHashtags Relation = "hashtags"
	// RelationActivities loads Post.Activities.
	RelationActivities Relation = "activities"
)

// AllPostRelations is the full set used when materializing recommendations.
var AllPostRelations = []Relation{
	RelationAuthor,
	RelationLikes,
	RelationComments,
	RelationHashtags,
	RelationActivities,
}

// NormalizeTag lowercases a hashtag and strips a leading '#'.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

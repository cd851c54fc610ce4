// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Package recommend ranks posts and users for a viewer from property-graph
// signals and precomputes user similarity edges.
//
// # Architecture
//
// Each recommender issues one candidate query through graph.Executor. The
// query returns one row per (subject, factor) with a raw weight, and an
// Aggregator folds the rows into a score:
//
//	finalScore = Σ multiplier(factor) × weight
//
// Post factors and default multipliers:
//
//   - tag_affinity (2.0): posts tagged with hashtags the viewer uses
//   - liked_by_following (1.5): posts liked by users the viewer follows
//   - similar_users (1.0): posts by users with a SIMILAR_TO edge from the viewer
//
// User factors and default multipliers:
//
//   - similar_hashtags (3.0): Σ over shared tags of viewer count × candidate count
//   - co_liked (2.0): posts both users liked
//   - friend_of_friend (1.5): followees who follow the candidate
//
// The ranked IDs are resolved through PostStore or UserStore. IDs that no
// longer resolve are dropped and the remaining order is kept.
//
// # Fallbacks
//
// Recommendation is best-effort and never returns an error. When the graph
// query fails or yields no candidates:
//
//   - posts: the most-liked posts of the last 7 days, score = like count
//   - users: random users the viewer does not follow, score 0
//
// Both are tagged with the reason "popular".
//
// # Similarity
//
// SimilarityEstimator runs out of band (see supervisor/services). For each
// user it scores every other user sharing a hashtag:
//
//	raw = hashtagScore*0.6 + sharedLikes*0.4
//	score = raw / (1 + raw)
//
// and keeps edges with score > 0.1, replacing the user's previous edges.
//
// # Usage
//
//	posts, err := recommend.NewPostRecommender(executor, db, recommend.DefaultConfig(), clock.Real{}, logger)
//	recs := posts.Recommend(ctx, viewerID, 10)
package recommend

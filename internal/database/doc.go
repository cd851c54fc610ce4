// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package database provides the DuckDB-backed relational store for Feedgraph.

The graph store decides which entities to show; this package turns their IDs
into display-ready models and answers time-windowed aggregate queries.

Key Components:

  - Entity lookup: FindPostsByIDs, FindUsersByIDs
  - Fallback sources: PopularPosts, RandomUnfollowedUsers
  - Trending input: HashtagActivity over a half-open [start, end) interval
  - Graph projection: ExportGraph populates a GraphSink such as graph.MemoryStore
  - Demo data: SeedDemoData writes a small deterministic social network

Schema:

Tables are created on startup (see database_schema.go): users, posts,
comments, activities, likes, follows, hashtags and post_hashtags. Timestamps
are stored in UTC.

Relations:

FindPostsByIDs and PopularPosts load only the relations requested through
models.Relation values (author, likes, comments, hashtags, activities), one
batched query per relation.

Usage Example:

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	posts, err := db.FindPostsByIDs(ctx, ids, models.RelationAuthor, models.RelationHashtags)

Thread Safety:

DB is safe for concurrent use. Every query runs under the configured
per-query timeout and is recorded in the duckdb_query_* metrics.
*/
package database

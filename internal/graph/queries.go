// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package graph

import "time"

// Query template names.
const (
	QueryPostCandidates       = "post_candidates"
	QueryUserCandidates       = "user_candidates"
	QuerySimilarityCandidates = "similarity_candidates"
	QueryUpsertSimilarity     = "upsert_similarity"
	QueryActiveUsers          = "active_users"
)

// Factor names emitted in the "factor" column of candidate queries.
const (
	FactorTagAffinity      = "tag_affinity"
	FactorLikedByFollowing = "liked_by_following"
	FactorSimilarUsers     = "similar_users"

	FactorSimilarHashtags = "similar_hashtags"
	FactorCoLiked         = "co_liked"
	FactorFriendOfFriend  = "friend_of_friend"
)

// SimilarityEdge is a SIMILAR_TO relationship to be written for a user.
type SimilarityEdge struct {
	UserID string
	Score  float64
	Reason string
}

// Each candidate branch is a separate UNION ALL arm so a post or user that
// matches no rows in one factor is still returned by the others.
const postCandidatesCypher = `
MATCH (viewer:User {id: $viewerId})
CALL {
	WITH viewer
	MATCH (viewer)-[ut:USED_TAG]->(:Hashtag)<-[:HAS_TAG]-(p:Post)
	WHERE p.createdAt >= $since
	  AND NOT EXISTS { (viewer)-[:POSTED]->(p) }
	  AND NOT EXISTS { (viewer)-[:LIKED]->(p) }
	RETURN p, 'tag_affinity' AS factor, toFloat(sum(ut.count)) AS weight
	UNION ALL
	WITH viewer
	MATCH (viewer)-[:FOLLOWS]->(f:User)-[:LIKED]->(p:Post)
	WHERE p.createdAt >= $since
	  AND NOT EXISTS { (viewer)-[:POSTED]->(p) }
	  AND NOT EXISTS { (viewer)-[:LIKED]->(p) }
	RETURN p, 'liked_by_following' AS factor, toFloat(count(DISTINCT f)) AS weight
	UNION ALL
	WITH viewer
	MATCH (viewer)-[s:SIMILAR_TO]->(:User)-[:POSTED]->(p:Post)
	WHERE p.createdAt >= $since
	  AND NOT EXISTS { (viewer)-[:LIKED]->(p) }
	RETURN p, 'similar_users' AS factor, toFloat(sum(s.score)) AS weight
}
RETURN p.id AS post_id, factor, weight, p.createdAt.epochMillis AS created_at
ORDER BY weight DESC, post_id
LIMIT $maxRows`

const userCandidatesCypher = `
MATCH (viewer:User {id: $viewerId})
CALL {
	WITH viewer
	MATCH (viewer)-[mine:USED_TAG]->(h:Hashtag)<-[theirs:USED_TAG]-(c:User)
	WHERE c <> viewer AND NOT EXISTS { (viewer)-[:FOLLOWS]->(c) }
	WITH c, h, mine.count * theirs.count AS product
	ORDER BY product DESC, h.name
	WITH c, sum(product) AS total, collect(h.name) AS tags
	RETURN c, 'similar_hashtags' AS factor, toFloat(total) AS weight, tags[0..$sharedTagLimit] AS shared_tags
	UNION ALL
	WITH viewer
	MATCH (viewer)-[:LIKED]->(p:Post)<-[:LIKED]-(c:User)
	WHERE c <> viewer AND NOT EXISTS { (viewer)-[:FOLLOWS]->(c) }
	RETURN c, 'co_liked' AS factor, toFloat(count(DISTINCT p)) AS weight, [] AS shared_tags
	UNION ALL
	WITH viewer
	MATCH (viewer)-[:FOLLOWS]->(f:User)-[:FOLLOWS]->(c:User)
	WHERE c <> viewer AND NOT EXISTS { (viewer)-[:FOLLOWS]->(c) }
	RETURN c, 'friend_of_friend' AS factor, toFloat(count(DISTINCT f)) AS weight, [] AS shared_tags
}
RETURN c.id AS user_id, factor, weight, shared_tags
ORDER BY weight DESC, user_id
LIMIT $maxRows`

const similarityCandidatesCypher = `
MATCH (me:User {id: $userId})-[mine:USED_TAG]->(h:Hashtag)<-[theirs:USED_TAG]-(other:User)
WHERE other <> me
WITH me, other, h, mine.count * theirs.count AS product
ORDER BY product DESC, h.name
WITH me, other, sum(product) AS hashtag_score, collect(h.name) AS tags
OPTIONAL MATCH (me)-[:LIKED]->(p:Post)<-[:LIKED]-(other)
WITH other, hashtag_score, tags, count(DISTINCT p) AS shared_likes
RETURN other.id AS user_id, toFloat(hashtag_score) AS hashtag_score, shared_likes, tags[0..$sharedTagLimit] AS shared_tags`

const upsertSimilarityCypher = `
MATCH (me:User {id: $userId})
OPTIONAL MATCH (me)-[old:SIMILAR_TO]->(prev:User)
WHERE NOT prev.id IN $keepIds
DELETE old
WITH DISTINCT me
UNWIND $edges AS edge
MATCH (other:User {id: edge.user_id})
MERGE (me)-[s:SIMILAR_TO]->(other)
SET s.score = edge.score, s.reason = edge.reason, s.updatedAt = $updatedAt
RETURN count(s) AS written`

const activeUsersCypher = `
MATCH (u:User)
WHERE EXISTS { (u)-[:USED_TAG]->(:Hashtag) } OR EXISTS { (u)-[:LIKED]->(:Post) }
RETURN u.id AS user_id
ORDER BY user_id
SKIP $offset
LIMIT $limit`

// PostCandidatesQuery finds posts created since the given time that the
// viewer neither authored nor liked, one row per (post, factor).
// Columns: post_id, factor, weight, created_at.
func PostCandidatesQuery(viewerID string, since time.Time, maxRows int) Query {
	return Query{
		Name:   QueryPostCandidates,
		Cypher: postCandidatesCypher,
		Params: map[string]any{
			"viewerId": viewerID,
			"since":    since,
			"maxRows":  maxRows,
		},
	}
}

// UserCandidatesQuery finds users the viewer does not follow, one row per
// (user, factor). Columns: user_id, factor, weight, shared_tags.
func UserCandidatesQuery(viewerID string, sharedTagLimit, maxRows int) Query {
	return Query{
		Name:   QueryUserCandidates,
		Cypher: userCandidatesCypher,
		Params: map[string]any{
			"viewerId":       viewerID,
			"sharedTagLimit": sharedTagLimit,
			"maxRows":        maxRows,
		},
	}
}

// SimilarityCandidatesQuery finds every user sharing a used hashtag with
// userID. Columns: user_id, hashtag_score, shared_likes, shared_tags.
func SimilarityCandidatesQuery(userID string, sharedTagLimit int) Query {
	return Query{
		Name:   QuerySimilarityCandidates,
		Cypher: similarityCandidatesCypher,
		Params: map[string]any{
			"userId":         userID,
			"sharedTagLimit": sharedTagLimit,
		},
	}
}

// UpsertSimilarityQuery replaces userID's outgoing SIMILAR_TO edges with
// edges. Edges to users not listed are removed. Column: written.
func UpsertSimilarityQuery(userID string, edges []SimilarityEdge, updatedAt time.Time) Query {
	params := make([]map[string]any, 0, len(edges))
	keep := make([]string, 0, len(edges))
	for _, e := range edges {
		params = append(params, map[string]any{
			"user_id": e.UserID,
			"score":   e.Score,
			"reason":  e.Reason,
		})
		keep = append(keep, e.UserID)
	}

	return Query{
		Name:   QueryUpsertSimilarity,
		Cypher: upsertSimilarityCypher,
		Params: map[string]any{
			"userId":    userID,
			"edges":     params,
			"keepIds":   keep,
			"updatedAt": updatedAt,
		},
		Write: true,
	}
}

// ActiveUsersQuery pages through users that have tag or like signal.
// Column: user_id.
func ActiveUsersQuery(offset, limit int) Query {
	return Query{
		Name:   QueryActiveUsers,
		Cypher: activeUsersCypher,
		Params: map[string]any{
			"offset": offset,
			"limit":  limit,
		},
	}
}

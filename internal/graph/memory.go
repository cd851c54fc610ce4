// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// StoredSimilarity is a SIMILAR_TO edge held by MemoryStore.
type StoredSimilarity struct {
	Score     float64
	Reason    string
	UpdatedAt time.Time
}

type memPost struct {
	id        string
	authorID  string
	createdAt time.Time
	tags      map[string]struct{}
}

// MemoryStore is an in-process property graph that answers the query
// templates in queries.go by name. It backs the "memory" graph backend and
// the package tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]struct{}
	posts    map[string]*memPost
	follows  map[string]map[string]struct{}
	likes    map[string]map[string]struct{}
	usedTags map[string]map[string]int
	similar  map[string]map[string]StoredSimilarity
}

// NewMemoryStore returns an empty graph.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]struct{}),
		posts:    make(map[string]*memPost),
		follows:  make(map[string]map[string]struct{}),
		likes:    make(map[string]map[string]struct{}),
		usedTags: make(map[string]map[string]int),
		similar:  make(map[string]map[string]StoredSimilarity),
	}
}

// AddUser adds a User node.
func (m *MemoryStore) AddUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = struct{}{}
}

// AddPost adds a Post node with POSTED from its author and HAS_TAG edges.
func (m *MemoryStore) AddPost(id, authorID string, createdAt time.Time, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[authorID] = struct{}{}
	p := &memPost{id: id, authorID: authorID, createdAt: createdAt, tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		p.tags[t] = struct{}{}
	}
	m.posts[id] = p
}

// Follow adds a FOLLOWS edge.
func (m *MemoryStore) Follow(follower, followee string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[follower] = struct{}{}
	m.users[followee] = struct{}{}
	addEdge(m.follows, follower, followee)
}

// Like adds a LIKED edge.
func (m *MemoryStore) Like(userID, postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = struct{}{}
	addEdge(m.likes, userID, postID)
}

// UseTag adds count to the user's USED_TAG edge for tag.
func (m *MemoryStore) UseTag(userID, tag string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = struct{}{}
	if m.usedTags[userID] == nil {
		m.usedTags[userID] = make(map[string]int)
	}
	m.usedTags[userID][tag] += count
}

// SetSimilarity writes a SIMILAR_TO edge directly.
func (m *MemoryStore) SetSimilarity(from, to string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.similar[from] == nil {
		m.similar[from] = make(map[string]StoredSimilarity)
	}
	m.similar[from][to] = StoredSimilarity{Score: score}
}

// Similarities returns a copy of the user's outgoing SIMILAR_TO edges.
func (m *MemoryStore) Similarities(from string) map[string]StoredSimilarity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]StoredSimilarity, len(m.similar[from]))
	for k, v := range m.similar[from] {
		out[k] = v
	}
	return out
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Execute evaluates q by template name.
func (m *MemoryStore) Execute(ctx context.Context, q Query) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if q.Write {
		m.mu.Lock()
		defer m.mu.Unlock()
	} else {
		m.mu.RLock()
		defer m.mu.RUnlock()
	}

	switch q.Name {
	case QueryPostCandidates:
		return m.postCandidates(q.Params), nil
	case QueryUserCandidates:
		return m.userCandidates(q.Params), nil
	case QuerySimilarityCandidates:
		return m.similarityCandidates(q.Params), nil
	case QueryUpsertSimilarity:
		return m.upsertSimilarity(q.Params), nil
	case QueryActiveUsers:
		return m.activeUsers(q.Params), nil
	default:
		return nil, fmt.Errorf("memory graph: unsupported query %q", q.Name)
	}
}

type weightKey struct {
	id     string
	factor string
}

func (m *MemoryStore) postCandidates(p map[string]any) []Row {
	viewer := paramString(p, "viewerId")
	since := paramTime(p, "since")
	if _, ok := m.users[viewer]; !ok {
		return nil
	}

	eligible := func(post *memPost) bool {
		if post.createdAt.Before(since) || post.authorID == viewer {
			return false
		}
		_, liked := m.likes[viewer][post.id]
		return !liked
	}

	weights := make(map[weightKey]float64)
	for _, post := range m.posts {
		if !eligible(post) {
			continue
		}
		for tag := range post.tags {
			if c, ok := m.usedTags[viewer][tag]; ok {
				weights[weightKey{post.id, FactorTagAffinity}] += float64(c)
			}
		}
	}
	for followee := range m.follows[viewer] {
		for postID := range m.likes[followee] {
			if post, ok := m.posts[postID]; ok && eligible(post) {
				weights[weightKey{postID, FactorLikedByFollowing}]++
			}
		}
	}
	for other, edge := range m.similar[viewer] {
		for _, post := range m.posts {
			if post.authorID == other && eligible(post) {
				weights[weightKey{post.id, FactorSimilarUsers}] += edge.Score
			}
		}
	}

	rows := make([]Row, 0, len(weights))
	for k, w := range weights {
		rows = append(rows, Row{
			"post_id":    k.id,
			"factor":     k.factor,
			"weight":     w,
			"created_at": m.posts[k.id].createdAt,
		})
	}
	return limitRows(sortRows(rows, "post_id"), paramInt(p, "maxRows"))
}

func (m *MemoryStore) userCandidates(p map[string]any) []Row {
	viewer := paramString(p, "viewerId")
	if _, ok := m.users[viewer]; !ok {
		return nil
	}
	tagLimit := paramInt(p, "sharedTagLimit")

	excluded := func(c string) bool {
		if c == viewer {
			return true
		}
		_, followed := m.follows[viewer][c]
		return followed
	}

	var rows []Row
	for c := range m.usedTags {
		if excluded(c) {
			continue
		}
		total, tags := m.sharedTags(viewer, c)
		if len(tags) == 0 {
			continue
		}
		rows = append(rows, Row{
			"user_id":     c,
			"factor":      FactorSimilarHashtags,
			"weight":      total,
			"shared_tags": truncateStrings(tags, tagLimit),
		})
	}

	for c, liked := range m.likes {
		if excluded(c) {
			continue
		}
		n := 0
		for postID := range m.likes[viewer] {
			if _, ok := liked[postID]; ok {
				n++
			}
		}
		if n > 0 {
			rows = append(rows, Row{"user_id": c, "factor": FactorCoLiked, "weight": float64(n), "shared_tags": []string{}})
		}
	}

	fof := make(map[string]int)
	for f := range m.follows[viewer] {
		for c := range m.follows[f] {
			if !excluded(c) {
				fof[c]++
			}
		}
	}
	for c, n := range fof {
		rows = append(rows, Row{"user_id": c, "factor": FactorFriendOfFriend, "weight": float64(n), "shared_tags": []string{}})
	}

	return limitRows(sortRows(rows, "user_id"), paramInt(p, "maxRows"))
}

func (m *MemoryStore) similarityCandidates(p map[string]any) []Row {
	userID := paramString(p, "userId")
	if _, ok := m.users[userID]; !ok {
		return nil
	}
	tagLimit := paramInt(p, "sharedTagLimit")

	var rows []Row
	for other := range m.usedTags {
		if other == userID {
			continue
		}
		total, tags := m.sharedTags(userID, other)
		if len(tags) == 0 {
			continue
		}
		var sharedLikes int64
		for postID := range m.likes[userID] {
			if _, ok := m.likes[other][postID]; ok {
				sharedLikes++
			}
		}
		rows = append(rows, Row{
			"user_id":       other,
			"hashtag_score": total,
			"shared_likes":  sharedLikes,
			"shared_tags":   truncateStrings(tags, tagLimit),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].String("user_id") < rows[j].String("user_id") })
	return rows
}

func (m *MemoryStore) upsertSimilarity(p map[string]any) []Row {
	userID := paramString(p, "userId")
	if _, ok := m.users[userID]; !ok {
		return nil
	}
	updatedAt := paramTime(p, "updatedAt")

	keep := make(map[string]struct{})
	if ids, ok := p["keepIds"].([]string); ok {
		for _, id := range ids {
			keep[id] = struct{}{}
		}
	}
	for other := range m.similar[userID] {
		if _, ok := keep[other]; !ok {
			delete(m.similar[userID], other)
		}
	}

	var written int64
	edges, _ := p["edges"].([]map[string]any)
	for _, e := range edges {
		other, _ := e["user_id"].(string)
		if _, ok := m.users[other]; !ok {
			continue
		}
		if m.similar[userID] == nil {
			m.similar[userID] = make(map[string]StoredSimilarity)
		}
		score, _ := e["score"].(float64)
		reason, _ := e["reason"].(string)
		m.similar[userID][other] = StoredSimilarity{Score: score, Reason: reason, UpdatedAt: updatedAt}
		written++
	}
	return []Row{{"written": written}}
}

func (m *MemoryStore) activeUsers(p map[string]any) []Row {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		if len(m.usedTags[id]) > 0 || len(m.likes[id]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	offset := paramInt(p, "offset")
	if offset >= len(ids) {
		return nil
	}
	ids = truncateStrings(ids[offset:], paramInt(p, "limit"))

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{"user_id": id})
	}
	return rows
}

// sharedTags returns Σ(a_i × b_i) over tags both users used and the shared
// tags ordered by product descending then name.
func (m *MemoryStore) sharedTags(a, b string) (float64, []string) {
	type tagProduct struct {
		tag     string
		product int
	}
	var shared []tagProduct
	for tag, mine := range m.usedTags[a] {
		if theirs, ok := m.usedTags[b][tag]; ok {
			shared = append(shared, tagProduct{tag, mine * theirs})
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].product != shared[j].product {
			return shared[i].product > shared[j].product
		}
		return shared[i].tag < shared[j].tag
	})

	var total float64
	tags := make([]string, 0, len(shared))
	for _, s := range shared {
		total += float64(s.product)
		tags = append(tags, s.tag)
	}
	return total, tags
}

func addEdge(edges map[string]map[string]struct{}, from, to string) {
	if edges[from] == nil {
		edges[from] = make(map[string]struct{})
	}
	edges[from][to] = struct{}{}
}

func sortRows(rows []Row, idKey string) []Row {
	sort.Slice(rows, func(i, j int) bool {
		wi, wj := rows[i].Float("weight"), rows[j].Float("weight")
		if wi != wj {
			return wi > wj
		}
		if a, b := rows[i].String(idKey), rows[j].String(idKey); a != b {
			return a < b
		}
		return rows[i].String("factor") < rows[j].String("factor")
	})
	return rows
}

func limitRows(rows []Row, n int) []Row {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

func truncateStrings(s []string, n int) []string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func paramString(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

func paramInt(p map[string]any, key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func paramTime(p map[string]any, key string) time.Time {
	t, _ := p[key].(time.Time)
	return t
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/feedgraph/internal/graph"
)

// Config contains all configuration for the recommenders and the similarity
// estimator.
type Config struct {
	// PostWeights are the per-factor multipliers for post candidates.
	PostWeights PostWeights `json:"post_weights"`

	// UserWeights are the per-factor multipliers for user candidates.
	UserWeights UserWeights `json:"user_weights"`

	// Similarity controls SIMILAR_TO edge scoring.
	Similarity SimilarityWeights `json:"similarity"`

	// PostWindow bounds candidate post age and the popular-post fallback.
	// Default: 7 days.
	PostWindow time.Duration `json:"post_window"`

	// MaxCandidateRows caps the rows one candidate query may return.
	// Default: 1000.
	MaxCandidateRows int `json:"max_candidate_rows"`

	// SharedTagLimit is the number of shared hashtags reported per
	// recommended user. Default: 5.
	SharedTagLimit int `json:"shared_tag_limit"`

	// DefaultPostLimit and DefaultUserLimit replace non-positive limits.
	DefaultPostLimit int `json:"default_post_limit"`
	DefaultUserLimit int `json:"default_user_limit"`

	// MaxLimit caps any requested limit. Default: 100.
	MaxLimit int `json:"max_limit"`
}

// PostWeights are multipliers applied to post candidate factor weights.
type PostWeights struct {
	TagAffinity      float64 `json:"tag_affinity"`
	LikedByFollowing float64 `json:"liked_by_following"`
	SimilarUsers     float64 `json:"similar_users"`
}

// ToMap returns the multipliers keyed by factor name.
func (w PostWeights) ToMap() map[string]float64 {
	return map[string]float64{
		graph.FactorTagAffinity:      w.TagAffinity,
		graph.FactorLikedByFollowing: w.LikedByFollowing,
		graph.FactorSimilarUsers:     w.SimilarUsers,
	}
}

// UserWeights are multipliers applied to user candidate factor weights.
type UserWeights struct {
	SimilarHashtags float64 `json:"similar_hashtags"`
	CoLiked         float64 `json:"co_liked"`
	FriendOfFriend  float64 `json:"friend_of_friend"`
}

// ToMap returns the multipliers keyed by factor name.
func (w UserWeights) ToMap() map[string]float64 {
	return map[string]float64{
		graph.FactorSimilarHashtags: w.SimilarHashtags,
		graph.FactorCoLiked:         w.CoLiked,
		graph.FactorFriendOfFriend:  w.FriendOfFriend,
	}
}

// SimilarityWeights parameterize raw = hashtag*Hashtag + likes*SharedLikes,
// normalized = raw / (1 + raw).
type SimilarityWeights struct {
	Hashtag    float64 `json:"hashtag"`
	SharedLike float64 `json:"shared_like"`

	// MinScore is the exclusive floor a normalized score must exceed.
	MinScore float64 `json:"min_score"`

	// ReasonTags is the number of shared tags named in the edge reason.
	ReasonTags int `json:"reason_tags"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PostWeights: PostWeights{
			TagAffinity:      2.0,
			LikedByFollowing: 1.5,
			SimilarUsers:     1.0,
		},
		UserWeights: UserWeights{
			SimilarHashtags: 3.0,
			CoLiked:         2.0,
			FriendOfFriend:  1.5,
		},
		Similarity: SimilarityWeights{
			Hashtag:    0.6,
			SharedLike: 0.4,
			MinScore:   0.1,
			ReasonTags: 3,
		},
		PostWindow:       7 * 24 * time.Hour,
		MaxCandidateRows: 1000,
		SharedTagLimit:   5,
		DefaultPostLimit: 10,
		DefaultUserLimit: 5,
		MaxLimit:         100,
	}
}

// Validate checks the configuration for invalid values.
//
//nolint:gocritic // hugeParam: config passed by value for immutability
func (c Config) Validate() error {
	var errs []error
	for name, w := range c.PostWeights.ToMap() {
		if w < 0 {
			errs = append(errs, fmt.Errorf("post_weights.%s must be non-negative, got %f", name, w))
		}
	}
	for name, w := range c.UserWeights.ToMap() {
		if w < 0 {
			errs = append(errs, fmt.Errorf("user_weights.%s must be non-negative, got %f", name, w))
		}
	}
	if c.Similarity.Hashtag < 0 || c.Similarity.SharedLike < 0 {
		errs = append(errs, errors.New("similarity weights must be non-negative"))
	}
	if c.Similarity.MinScore < 0 || c.Similarity.MinScore >= 1 {
		errs = append(errs, fmt.Errorf("similarity.min_score must be in [0, 1), got %f", c.Similarity.MinScore))
	}
	if c.Similarity.ReasonTags < 1 {
		errs = append(errs, fmt.Errorf("similarity.reason_tags must be positive, got %d", c.Similarity.ReasonTags))
	}
	if c.PostWindow <= 0 {
		errs = append(errs, fmt.Errorf("post_window must be positive, got %v", c.PostWindow))
	}
	if c.MaxCandidateRows < 1 {
		errs = append(errs, fmt.Errorf("max_candidate_rows must be positive, got %d", c.MaxCandidateRows))
	}
	if c.SharedTagLimit < 1 {
		errs = append(errs, fmt.Errorf("shared_tag_limit must be positive, got %d", c.SharedTagLimit))
	}
	if c.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("max_limit must be positive, got %d", c.MaxLimit))
	}
	if c.DefaultPostLimit < 1 || c.DefaultUserLimit < 1 {
		errs = append(errs, errors.New("default limits must be positive"))
	}
	return errors.Join(errs...)
}

// clampLimit replaces a non-positive limit with def and caps it at max.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

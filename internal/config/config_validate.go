// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validEnvironments defines the allowed server environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validNeo4jSchemes lists URI schemes accepted by the Neo4j driver
var validNeo4jSchemes = map[string]bool{
	"neo4j":     true,
	"neo4j+s":   true,
	"neo4j+ssc": true,
	"bolt":      true,
	"bolt+s":    true,
	"bolt+ssc":  true,
}

// Validate checks every section and reports all failures as one joined error.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateLogging(),
		c.validateDatabase(),
		c.validateGraph(),
		c.validateRecommend(),
		c.validateSimilarity(),
		c.validateTrending(),
		c.validateSecurity(),
	)
}

func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if !validEnvironments[c.Server.Environment] {
		errs = append(errs, errors.New("ENVIRONMENT must be one of: development, staging, production"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateLogging() error {
	var errs []error
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, errors.New("LOG_LEVEL must be one of: trace, debug, info, warn, error"))
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		errs = append(errs, errors.New("LOG_FORMAT must be one of: json, console"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateDatabase() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DUCKDB_PATH is required"))
	}
	if c.Database.Threads < 0 {
		errs = append(errs, errors.New("DUCKDB_THREADS must not be negative"))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DUCKDB_QUERY_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateGraph() error {
	var errs []error
	switch c.Graph.Backend {
	case GraphBackendMemory:
		// Populated from the relational store; no connection settings needed.
	case GraphBackendNeo4j:
		errs = append(errs, validateNeo4jURI(c.Graph.URI))
		if c.Graph.MaxConnections < 1 {
			errs = append(errs, errors.New("NEO4J_MAX_CONNECTIONS must be at least 1"))
		}
		if c.IsProduction() && c.Graph.Password == "" {
			errs = append(errs, errors.New("NEO4J_PASSWORD is required in production"))
		}
	default:
		errs = append(errs, errors.New("GRAPH_BACKEND must be one of: neo4j, memory"))
	}

	if c.Graph.QueryTimeout <= 0 {
		errs = append(errs, errors.New("NEO4J_QUERY_TIMEOUT must be positive"))
	}
	if c.Graph.BreakerEnabled {
		if c.Graph.BreakerTimeout <= 0 {
			errs = append(errs, errors.New("GRAPH_BREAKER_TIMEOUT must be positive"))
		}
		if c.Graph.BreakerFailureRatio <= 0 || c.Graph.BreakerFailureRatio > 1 {
			errs = append(errs, errors.New("GRAPH_BREAKER_FAILURE_RATIO must be in (0, 1]"))
		}
	}
	return errors.Join(errs...)
}

// validateNeo4jURI checks the URI parses and uses a driver-supported scheme.
func validateNeo4jURI(raw string) error {
	if raw == "" {
		return errors.New("NEO4J_URI is required when GRAPH_BACKEND=neo4j")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("NEO4J_URI is invalid: %w", err)
	}
	if !validNeo4jSchemes[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("NEO4J_URI scheme must be neo4j or bolt (optionally +s/+ssc), got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("NEO4J_URI must include a host")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	var errs []error
	r := c.Recommend
	if r.PostWindow <= 0 {
		errs = append(errs, errors.New("RECOMMEND_POST_WINDOW must be positive"))
	}
	if r.MaxCandidateRows < 1 {
		errs = append(errs, errors.New("RECOMMEND_MAX_CANDIDATE_ROWS must be at least 1"))
	}
	if r.SharedTagLimit < 1 {
		errs = append(errs, errors.New("RECOMMEND_SHARED_TAG_LIMIT must be at least 1"))
	}
	if r.MaxLimit < 1 {
		errs = append(errs, errors.New("RECOMMEND_MAX_LIMIT must be at least 1"))
	}
	if r.DefaultPostLimit < 1 || r.DefaultPostLimit > r.MaxLimit {
		errs = append(errs, fmt.Errorf("RECOMMEND_DEFAULT_POST_LIMIT must be between 1 and %d", r.MaxLimit))
	}
	if r.DefaultUserLimit < 1 || r.DefaultUserLimit > r.MaxLimit {
		errs = append(errs, fmt.Errorf("RECOMMEND_DEFAULT_USER_LIMIT must be between 1 and %d", r.MaxLimit))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSimilarity() error {
	if !c.Similarity.Enabled {
		return nil
	}
	var errs []error
	if c.Similarity.Interval <= 0 {
		errs = append(errs, errors.New("SIMILARITY_INTERVAL must be positive"))
	}
	if c.Similarity.BatchSize < 1 {
		errs = append(errs, errors.New("SIMILARITY_BATCH_SIZE must be at least 1"))
	}
	if c.Similarity.RatePerSecond <= 0 {
		errs = append(errs, errors.New("SIMILARITY_RATE_PER_SECOND must be positive"))
	}
	if c.Similarity.Timeout <= 0 {
		errs = append(errs, errors.New("SIMILARITY_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateTrending() error {
	var errs []error
	if c.Trending.TTL <= 0 {
		errs = append(errs, errors.New("TRENDING_TTL must be positive"))
	}
	if c.Trending.RefreshInterval <= 0 {
		errs = append(errs, errors.New("TRENDING_REFRESH_INTERVAL must be positive"))
	}
	if c.Trending.MaxLimit < 1 {
		errs = append(errs, errors.New("TRENDING_MAX_LIMIT must be at least 1"))
	}
	if c.Trending.ComputeTimeout <= 0 {
		errs = append(errs, errors.New("TRENDING_COMPUTE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	var errs []error
	if c.Security.RateLimitReqs < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be at least 1"))
	}
	if c.Security.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

// HasWildcardCORS reports whether any configured origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

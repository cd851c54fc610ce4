// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Database   DatabaseConfig   `koanf:"database"`
	Graph      GraphConfig      `koanf:"graph"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Trending   TrendingConfig   `koanf:"trending"`
	Security   SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings for the relational entity store
type DatabaseConfig struct {
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`       // 0 = use NumCPU
	QueryTimeout time.Duration `koanf:"query_timeout"` // Per-query deadline
	SkipIndexes  bool          `koanf:"skip_indexes"`  // Skip index creation (fast test setup)
	Seed         bool          `koanf:"seed"`          // Seed deterministic demo data on startup
}

// Graph backends
const (
	GraphBackendNeo4j = "neo4j"

	// GraphBackendMemory snapshots the relational store once at startup and
	// is never reloaded. Follows, likes and posts written after boot are not
	// seen by the recommenders or the similarity job until restart.
	GraphBackendMemory = "memory"
)

// GraphConfig holds graph store settings.
//
// The memory backend is a startup snapshot of the relational store (see
// GraphBackendMemory) and is intended for development and demos.
type GraphConfig struct {
	Backend        string        `koanf:"backend"`
	URI            string        `koanf:"uri"`
	Username       string        `koanf:"username"`
	Password       string        `koanf:"password"`
	Database       string        `koanf:"database"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
	MaxConnections int           `koanf:"max_connections"`

	// Circuit breaker settings
	BreakerEnabled      bool          `koanf:"breaker_enabled"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`       // Open -> half-open delay
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`  // Requests before ratio applies
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"` // Trip threshold (0-1]
}

// RecommendConfig holds post and user recommendation settings
type RecommendConfig struct {
	// PostWindow bounds candidate and popular post age.
	PostWindow time.Duration `koanf:"post_window"`

	// MaxCandidateRows caps rows returned by a single candidate query.
	MaxCandidateRows int `koanf:"max_candidate_rows"`

	// SharedTagLimit is the number of shared hashtags reported per user.
	SharedTagLimit int `koanf:"shared_tag_limit"`

	// DefaultPostLimit and DefaultUserLimit apply when a request has no limit.
	DefaultPostLimit int `koanf:"default_post_limit"`
	DefaultUserLimit int `koanf:"default_user_limit"`

	// MaxLimit caps any requested limit.
	MaxLimit int `koanf:"max_limit"`
}

// SimilarityConfig holds settings for the periodic similarity batch
type SimilarityConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Interval      time.Duration `koanf:"interval"`
	RunOnStartup  bool          `koanf:"run_on_startup"`
	BatchSize     int           `koanf:"batch_size"`
	RatePerSecond float64       `koanf:"rate_per_second"` // Users processed per second
	Timeout       time.Duration `koanf:"timeout"`         // Deadline for a whole batch
}

// TrendingConfig holds trending cache settings
type TrendingConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	WarmOnStartup   bool          `koanf:"warm_on_startup"`
	MaxLimit        int           `koanf:"max_limit"`
	ComputeTimeout  time.Duration `koanf:"compute_timeout"` // Deadline for one ranking computation
}

// SecurityConfig holds HTTP surface protection settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/feedgraph/config.yaml",
	"/etc/feedgraph/config.yml",
}

// ConfigPathEnvVar names the environment variable that points at a config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8480,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:         "/data/feedgraph.duckdb",
			MaxMemory:    "2GB",
			Threads:      0,
			QueryTimeout: 5 * time.Second,
			SkipIndexes:  false,
			Seed:         false,
		},
		Graph: GraphConfig{
			Backend:             GraphBackendNeo4j,
			URI:                 "neo4j://localhost:7687",
			Username:            "neo4j",
			Database:            "neo4j",
			QueryTimeout:        2 * time.Second,
			MaxConnections:      50,
			BreakerEnabled:      true,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Recommend: RecommendConfig{
			PostWindow:       7 * 24 * time.Hour,
			MaxCandidateRows: 1000,
			SharedTagLimit:   5,
			DefaultPostLimit: 10,
			DefaultUserLimit: 5,
			MaxLimit:         100,
		},
		Similarity: SimilarityConfig{
			Enabled:       true,
			Interval:      6 * time.Hour,
			RunOnStartup:  false,
			BatchSize:     500,
			RatePerSecond: 20,
			Timeout:       30 * time.Minute,
		},
		Trending: TrendingConfig{
			TTL:             15 * time.Minute,
			RefreshInterval: 10 * time.Minute,
			WarmOnStartup:   true,
			MaxLimit:        50,
			ComputeTimeout:  time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// NEO4J_URI -> graph.uri, TRENDING_TTL -> trending.ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Database
	"duckdb_path":          "database.path",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"duckdb_query_timeout": "database.query_timeout",
	"seed_demo_data":       "database.seed",

	// Graph
	"graph_backend":               "graph.backend",
	"neo4j_uri":                   "graph.uri",
	"neo4j_username":              "graph.username",
	"neo4j_password":              "graph.password",
	"neo4j_database":              "graph.database",
	"neo4j_query_timeout":         "graph.query_timeout",
	"neo4j_max_connections":       "graph.max_connections",
	"graph_breaker_enabled":       "graph.breaker_enabled",
	"graph_breaker_timeout":       "graph.breaker_timeout",
	"graph_breaker_min_requests":  "graph.breaker_min_requests",
	"graph_breaker_failure_ratio": "graph.breaker_failure_ratio",

	// Recommendations
	"recommend_post_window":        "recommend.post_window",
	"recommend_max_candidate_rows": "recommend.max_candidate_rows",
	"recommend_shared_tag_limit":   "recommend.shared_tag_limit",
	"recommend_default_post_limit": "recommend.default_post_limit",
	"recommend_default_user_limit": "recommend.default_user_limit",
	"recommend_max_limit":          "recommend.max_limit",

	// Similarity batch
	"similarity_enabled":         "similarity.enabled",
	"similarity_interval":        "similarity.interval",
	"similarity_run_on_startup":  "similarity.run_on_startup",
	"similarity_batch_size":      "similarity.batch_size",
	"similarity_rate_per_second": "similarity.rate_per_second",
	"similarity_timeout":         "similarity.timeout",

	// Trending
	"trending_ttl":              "trending.ttl",
	"trending_refresh_interval": "trending.refresh_interval",
	"trending_warm_on_startup":  "trending.warm_on_startup",
	"trending_max_limit":        "trending.max_limit",
	"trending_compute_timeout":  "trending.compute_timeout",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Unmapped variables return "" and are ignored.
//
// Examples:
//   - NEO4J_URI -> graph.uri
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/tomtom215/feedgraph/internal/metrics"
)

// Neo4jConfig configures the Neo4j executor.
type Neo4jConfig struct {
	URI            string
	Username       string
	Password       string
	Database       string
	QueryTimeout   time.Duration
	MaxConnections int
}

// Neo4jStore runs graph queries against Neo4j using managed transactions.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewNeo4jStore connects to Neo4j and verifies connectivity.
//
//nolint:gocritic // hugeParam: logger passed by value for immutability
func NewNeo4jStore(ctx context.Context, cfg Neo4jConfig, logger zerolog.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnections > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnections
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	s := &Neo4jStore{
		driver:   driver,
		database: cfg.Database,
		timeout:  cfg.QueryTimeout,
		logger:   logger.With().Str("component", "graph").Str("backend", "neo4j").Logger(),
	}
	s.logger.Info().Str("uri", cfg.URI).Msg("Connected to Neo4j")
	return s, nil
}

// Execute runs q in a read or write transaction depending on q.Write.
func (s *Neo4jStore) Execute(ctx context.Context, q Query) ([]Row, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := s.execute(ctx, q)
	metrics.RecordGraphQuery(q.Name, time.Since(start), err)
	if err != nil {
		s.logger.Debug().Err(err).Str("query", q.Name).Msg("Graph query failed")
		return nil, fmt.Errorf("graph query %s: %w", q.Name, err)
	}
	return rows, nil
}

func (s *Neo4jStore) execute(ctx context.Context, q Query) ([]Row, error) {
	mode := neo4j.AccessModeRead
	if q.Write {
		mode = neo4j.AccessModeWrite
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, q.Cypher, q.Params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, rec := range records {
			rows = append(rows, Row(rec.AsMap()))
		}
		return rows, nil
	}

	var (
		out any
		err error
	)
	if q.Write {
		out, err = session.ExecuteWrite(ctx, work)
	} else {
		out, err = session.ExecuteRead(ctx, work)
	}
	if err != nil {
		return nil, err
	}

	rows, ok := out.([]Row)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction result type %T", out)
	}
	return rows, nil
}

// Ping verifies the driver can reach the server.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close releases the driver's connections.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

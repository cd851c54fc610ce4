// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNeo4jImage is the official Neo4j community image
	DefaultNeo4jImage = "neo4j:5-community"

	// DefaultNeo4jBoltPort is the Bolt protocol port
	DefaultNeo4jBoltPort = "7687"

	// DefaultNeo4jPassword is the test password set through NEO4J_AUTH
	// Neo4j 5 rejects passwords shorter than 8 characters
	DefaultNeo4jPassword = "feedgraph-test"
)

// Neo4jContainer represents a running Neo4j container for testing.
type Neo4jContainer struct {
	testcontainers.Container
	BoltURI  string
	Username string
	Password string
}

// Neo4jOption configures the Neo4j container.
type Neo4jOption func(*neo4jConfig)

type neo4jConfig struct {
	image        string
	password     string
	startTimeout time.Duration
}

// WithNeo4jImage sets a custom Neo4j Docker image.
func WithNeo4jImage(image string) Neo4jOption {
	return func(c *neo4jConfig) {
		c.image = image
	}
}

// WithNeo4jPassword sets the password for the neo4j user.
func WithNeo4jPassword(password string) Neo4jOption {
	return func(c *neo4jConfig) {
		c.password = password
	}
}

// WithStartTimeout sets the timeout for waiting for Neo4j to start.
func WithStartTimeout(timeout time.Duration) Neo4jOption {
	return func(c *neo4jConfig) {
		c.startTimeout = timeout
	}
}

// NewNeo4jContainer creates and starts a new Neo4j container for testing.
//
// Example:
//
//	ctx := context.Background()
//	neo, err := NewNeo4jContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer neo.Terminate(ctx)
//
//	store, err := graph.NewNeo4jStore(ctx, graph.Neo4jConfig{
//	    URI: neo.BoltURI, Username: neo.Username, Password: neo.Password,
//	}, zerolog.Nop())
func NewNeo4jContainer(ctx context.Context, opts ...Neo4jOption) (*Neo4jContainer, error) {
	cfg := &neo4jConfig{
		image:        DefaultNeo4jImage,
		password:     DefaultNeo4jPassword,
		startTimeout: 90 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultNeo4jBoltPort + "/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + cfg.password,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultNeo4jBoltPort+"/tcp"),
			wait.ForLog("Started."),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultNeo4jBoltPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &Neo4jContainer{
		Container: container,
		BoltURI:   fmt.Sprintf("bolt://%s:%s", host, port.Port()),
		Username:  "neo4j",
		Password:  cfg.password,
	}, nil
}

// Terminate stops and removes the Neo4j container.
func (c *Neo4jContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}

// Logs returns the container logs for debugging.
func (c *Neo4jContainer) Logs(ctx context.Context) (string, error) {
	reader, err := c.Container.Logs(ctx)
	if err != nil {
		return "", fmt.Errorf("get logs: %w", err)
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read logs: %w", err)
	}
	return string(logs), nil
}

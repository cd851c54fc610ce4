// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers for integration tests.
// All files carry the integration build tag; run them with:
//
//	go test -tags integration ./...
//
// # Neo4j Container
//
// The Neo4jContainer provides a real Neo4j instance for running the graph
// query templates end to end:
//
//	func TestNeo4jStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    neo, err := testinfra.NewNeo4jContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, neo.Container)
//	    // connect with neo.BoltURI, neo.Username, neo.Password
//	}
//
// Tests are skipped gracefully if Docker is unavailable. The first run may
// need to download the image.
package testinfra

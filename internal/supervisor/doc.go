// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

/*
Package supervisor runs Feedgraph's long-lived services under suture v4.

# Overview

	RootSupervisor ("feedgraph")
	├── JobsSupervisor ("jobs-layer")
	│   ├── SimilarityService (if similarity.enabled)
	│   └── TrendingRefreshService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. A job stuck in a failure loop
backs off inside the jobs layer and does not restart the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddJobService(services.NewSimilarityService(estimator, simCfg, logger))
	tree.AddJobService(services.NewTrendingRefreshService(cache, refreshCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

# Events

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog, which writes to the slog.Logger passed to NewSupervisorTree.
logging.NewSlogLogger bridges that logger to the process zerolog output.

# Shutdown

Canceling the Serve context stops every service. Services that do not
return within TreeConfig.ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor

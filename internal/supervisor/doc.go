// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package supervisor runs the server's long-lived services under suture v4.

Services are grouped in two layers so a failure in one does not restart the other:

	RootSupervisor ("synthmap")
	├── DataSupervisor ("data-layer")
	│   ├── CheckpointService (periodic DuckDB CHECKPOINT)
	│   └── BadgerCache (value-log GC, when CACHE_BACKEND=badger)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff; context cancellation shuts the tree
down in order. Supervisor events are logged through sutureslog and the
zerolog slog bridge:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor

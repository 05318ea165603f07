package app

import (
	"context"
	"fmt"

	"taskflow/internal/graphserver"
	"taskflow/pkg/logging"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

// runServer starts the task watcher and the graph server, blocks until
// the context is cancelled, then shuts both down.
func runServer(ctx context.Context, cfg *Config, services *Services) error {
	if err := services.TaskWatcher.Start(ctx); err != nil {
		// The watcher is advisory; a failed watch leaves caches to be
		// invalidated by edge events only.
		logging.Warn("App", "Task file watcher could not start: %v", err)
	}
	defer services.TaskWatcher.Stop()

	server := graphserver.NewGraphServer(cfg.TaskflowConfig.Server, Version)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start graph server: %w", err)
	}

	if endpoint := server.Endpoint(); endpoint != "" {
		logging.Info("App", "Graph server listening at %s", endpoint)
	}

	<-ctx.Done()

	// Use a fresh context for shutdown; the serve context is already done.
	return server.Stop(context.Background())
}

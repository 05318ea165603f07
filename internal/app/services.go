package app

import (
	"fmt"

	"taskflow/internal/config"
	"taskflow/internal/edgestore"
	"taskflow/internal/engine"
	"taskflow/internal/taskstore"
	"taskflow/pkg/logging"
)

// Services holds all initialized components used by the application.
//
// Initialization order matters: the task store registers first so the
// edge store can resolve tasks during edge validation, and the engine
// registers last so its flow cache subscribes to events after both
// stores can publish them.
type Services struct {
	// Storage is the shared YAML entity store under the config dir.
	Storage *config.Storage

	// TaskManager owns task records (tasks/ directory).
	TaskManager *taskstore.Manager

	// TaskWatcher detects out-of-band task file changes.
	TaskWatcher *taskstore.Watcher

	// EdgeManager owns dependency edges (edges/ directory).
	EdgeManager *edgestore.Manager

	// Engine derives block status, cascades, and flow projections.
	Engine *engine.Engine
}

// InitializeServices creates all components and registers their adapters
// with the internal API layer.
func InitializeServices(cfg *Config) (*Services, error) {
	var storage *config.Storage
	if cfg.ConfigPath != "" {
		storage = config.NewStorageWithPath(cfg.ConfigPath)
	} else {
		storage = config.NewStorage()
	}

	// Task store first: edge validation resolves tasks through it.
	taskManager := taskstore.NewManager(storage)
	if err := taskManager.LoadDefinitions(); err != nil {
		return nil, fmt.Errorf("failed to load task records: %w", err)
	}
	taskstore.NewAdapter(taskManager).Register()
	logging.Info("Services", "Task store initialized")

	edgeManager := edgestore.NewManager(storage, cfg.TaskflowConfig.Engine.CreateRetries)
	if err := edgeManager.LoadDefinitions(); err != nil {
		return nil, fmt.Errorf("failed to load dependency edges: %w", err)
	}
	edgestore.NewAdapter(edgeManager).Register()
	logging.Info("Services", "Edge store initialized")

	eng := engine.New(engine.Options{
		FlowCacheEnabled:   cfg.TaskflowConfig.Engine.FlowCacheOn(),
		ResolveParallelism: cfg.TaskflowConfig.Engine.ResolveParallelism,
	})
	engine.NewAdapter(eng).Register()
	logging.Info("Services", "Derivation engine initialized")

	basePath, err := storage.BasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	watcher := taskstore.NewWatcher(taskManager, basePath, 0)

	return &Services{
		Storage:     storage,
		TaskManager: taskManager,
		TaskWatcher: watcher,
		EdgeManager: edgeManager,
		Engine:      eng,
	}, nil
}

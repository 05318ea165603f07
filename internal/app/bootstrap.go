package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskflow/internal/config"
	"taskflow/pkg/logging"
)

// Application bootstraps and runs taskflow. It follows a two-phase
// initialization pattern:
//
//  1. Bootstrap phase: load configuration, initialize logging, wire services
//  2. Execution phase: serve the graph server until the context is cancelled
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance.
// It configures logging, loads configuration (single-path when
// cfg.ConfigPath is set, layered otherwise), and wires all services
// and API handler registrations.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	var taskflowCfg config.TaskflowConfig
	var err error

	if cfg.ConfigPath != "" {
		taskflowCfg, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Info("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		taskflowCfg, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Info("Bootstrap", "Loaded configuration using layered approach")
	}

	if err := taskflowCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.TaskflowConfig = &taskflowCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services exposes the wired services for callers that drive operations
// in-process instead of through the graph server.
func (a *Application) Services() *Services {
	return a.services
}

// Run starts the graph server and the task file watcher and blocks until
// the context is cancelled, then shuts both down.
func (a *Application) Run(ctx context.Context) error {
	return runServer(ctx, a.config, a.services)
}

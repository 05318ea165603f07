package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"taskflow/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveSilent suppresses all log output. Required for stdio transport
// where stdout carries the MCP protocol.
var serveSilent bool

// serveConfigPath specifies a custom configuration directory path.
// When set, disables layered configuration and loads everything from
// this single directory.
var serveConfigPath string

// serveCmd starts the graph server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the taskflow graph server",
	Long: `Starts the taskflow graph server, exposing the dependency graph
operations as MCP tools over the configured transport (streamable-http,
SSE, or stdio).

The server loads task records and dependency edges from the configuration
directory, watches task files for out-of-band changes, and runs until
interrupted (Ctrl+C) or terminated.

Configuration:
  By default taskflow uses layered configuration: built-in defaults,
  then ~/.config/taskflow/config.yaml, then ./.taskflow/config.yaml.

  Use --config-path to load from a single directory containing:
  - config.yaml (main configuration)
  - tasks/     (task records)
  - edges/     (dependency edges)

  When --config-path is used, layered configuration is disabled.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveSilent, serveConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if v := GetVersion(); v != "" {
		app.Version = v
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveSilent, "silent", false, "Suppress all log output (required for stdio transport)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path (disables layered config)")
}

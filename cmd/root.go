package cmd

import (
	"os"

	"taskflow/internal/config"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// rootCmd represents the base command for the taskflow application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Manage task dependency graphs for collaborative projects",
	Long: `taskflow maintains explicit dependency relationships between tasks:
which task must finish before which other task can start. It validates
every new dependency (no self-dependencies, no duplicates, no cycles,
no cross-project edges), derives blocked status from the graph, and
serves the whole surface as MCP tools for AI assistant access.

Start the server with 'taskflow serve', then use the other commands to
create and inspect dependencies.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This is called from the main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskflow version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

// graphToolName resolves the fully prefixed tool name for a graph
// operation, honoring a configured custom tool prefix.
func graphToolName(name string) string {
	prefix := config.DefaultToolPrefix
	if cfg, err := config.LoadConfig(); err == nil && cfg.Server.ToolPrefix != "" {
		prefix = cfg.Server.ToolPrefix
	}
	return prefix + "_" + name
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	resolveOutputFormat string
	resolveQuiet        bool
	resolveEndpoint     string
)

// resolveCmd triggers the unblock cascade for a completed task.
var resolveCmd = &cobra.Command{
	Use:   "resolve <task-id>",
	Short: "Resolve dependencies after a task completes",
	Long: `Re-evaluate every task that depends on the given completed task and
report the ones that are no longer blocked.

Only direct dependents are examined; tasks further down the chain are
resolved when their own prerequisites complete. Running resolve twice
for the same task is safe and returns the same answer.

Examples:
  taskflow resolve task-42
  taskflow resolve task-42 -o json`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveOutputFormat, "output", "o", "console", "Output format (console, table, json, yaml)")
	resolveCmd.Flags().BoolVarP(&resolveQuiet, "quiet", "q", false, "Suppress non-essential output")
	resolveCmd.Flags().StringVar(&resolveEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runResolve(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(resolveOutputFormat),
		Quiet:    resolveQuiet,
		Endpoint: resolveEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.ExecuteUnblockedTasks(ctx, graphToolName("resolve_completed"), map[string]interface{}{
		"taskId": args[0],
	})
}

package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	checkOutputFormat string
	checkQuiet        bool
	checkEndpoint     string
)

// checkCmd reports whether a task is blocked.
var checkCmd = &cobra.Command{
	Use:   "check <task>",
	Short: "Check whether a task is blocked",
	Long: `Check whether a task is blocked by incomplete prerequisites.

A task is blocked when at least one task it depends on is not yet
completed. The output lists the blocking tasks and their statuses.
A task with no dependencies is never blocked.

Examples:
  taskflow check task-42
  taskflow check task-42 --output json`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "console", "Output format (console, table, json, yaml)")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Suppress non-essential output")
	checkCmd.Flags().StringVar(&checkEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runCheck(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(checkOutputFormat),
		Quiet:    checkQuiet,
		Endpoint: checkEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.ExecuteBlockStatus(ctx, graphToolName("check_blocked"), map[string]interface{}{
		"taskId": args[0],
	})
}

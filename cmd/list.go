package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	listOutputFormat string
	listQuiet        bool
	listEndpoint     string
)

// listCmd groups the edge listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dependency edges for a task",
	Long: `List dependency edges from either direction of a task:

  deps       - the tasks this task waits on (it is the dependent)
  dependents - the tasks waiting on this task (it is the prerequisite)

Examples:
  taskflow list deps task-42
  taskflow list dependents task-17 --output json`,
}

// listDepsCmd lists the edges where the task is the dependent.
var listDepsCmd = &cobra.Command{
	Use:                   "deps <task>",
	Short:                 "List the tasks a task depends on",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "list_dependencies", args[0])
	},
}

// listDependentsCmd lists the edges where the task is the prerequisite.
var listDependentsCmd = &cobra.Command{
	Use:                   "dependents <task>",
	Short:                 "List the tasks that depend on a task",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "list_dependents", args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listDepsCmd)
	listCmd.AddCommand(listDependentsCmd)

	listCmd.PersistentFlags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format (console, table, json, yaml)")
	listCmd.PersistentFlags().BoolVarP(&listQuiet, "quiet", "q", false, "Suppress non-essential output")
	listCmd.PersistentFlags().StringVar(&listEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runList(cmd *cobra.Command, toolName, taskID string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(listOutputFormat),
		Quiet:    listQuiet,
		Endpoint: listEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.ExecuteEdgesList(ctx, graphToolName(toolName), map[string]interface{}{
		"taskId": taskID,
	})
}

package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	createOutputFormat string
	createQuiet        bool
	createEndpoint     string
	createCreatedBy    string
)

// createCmd creates a dependency edge between two tasks.
var createCmd = &cobra.Command{
	Use:   "create <dependent-task> <prerequisite-task>",
	Short: "Create a dependency between two tasks",
	Long: `Create a dependency edge: the dependent task cannot start until the
prerequisite task is completed.

The edge is validated before it is stored: self-dependencies, duplicate
edges, cross-project edges, and edges that would create a circular
dependency are all rejected.

Examples:
  taskflow create task-42 task-17
  taskflow create task-42 task-17 --created-by alice

Note: The graph server must be running (use 'taskflow serve') before
using this command.`,
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	RunE:                  runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createOutputFormat, "output", "o", "console", "Output format (console, table, json, yaml)")
	createCmd.Flags().BoolVarP(&createQuiet, "quiet", "q", false, "Suppress non-essential output")
	createCmd.Flags().StringVar(&createEndpoint, "endpoint", "", "Graph server endpoint URL")
	createCmd.Flags().StringVar(&createCreatedBy, "created-by", "", "Identifier of the user creating the dependency")
}

func runCreate(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(createOutputFormat),
		Quiet:    createQuiet,
		Endpoint: createEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	arguments := map[string]interface{}{
		"dependentTaskId":    args[0],
		"prerequisiteTaskId": args[1],
	}
	if createCreatedBy != "" {
		arguments["createdBy"] = createCreatedBy
	}

	return executor.ExecuteEdge(ctx, graphToolName("create_dependency"), arguments)
}

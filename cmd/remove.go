package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	removeOutputFormat string
	removeQuiet        bool
	removeEndpoint     string
)

// removeCmd deletes a dependency edge by ID.
var removeCmd = &cobra.Command{
	Use:   "remove <edge-id>",
	Short: "Remove a dependency edge",
	Long: `Remove a dependency edge by its ID.

Edge IDs are shown by 'taskflow list deps <task>' and in the result of
'taskflow create'. Removing an edge never changes any task's status;
blocked status is recomputed from the remaining edges on the next check.

Examples:
  taskflow remove 4f8a6c2e-91d3-4b7a-8c15-2d9e0f3a7b61`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVarP(&removeOutputFormat, "output", "o", "console", "Output format (console, table, json, yaml)")
	removeCmd.Flags().BoolVarP(&removeQuiet, "quiet", "q", false, "Suppress non-essential output")
	removeCmd.Flags().StringVar(&removeEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runRemove(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(removeOutputFormat),
		Quiet:    removeQuiet,
		Endpoint: removeEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.Execute(ctx, graphToolName("remove_dependency"), map[string]interface{}{
		"edgeId": args[0],
	})
}

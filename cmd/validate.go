package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	validateOutputFormat string
	validateQuiet        bool
	validateEndpoint     string
)

// validateCmd dry-runs the cycle check for a prospective edge.
var validateCmd = &cobra.Command{
	Use:   "validate <dependent-task> <prerequisite-task>",
	Short: "Check whether a dependency would create a cycle",
	Long: `Check whether creating a dependency from the dependent task to the
prerequisite task would introduce a circular dependency, without
creating anything.

Useful for interactive clients that want to warn before submitting.
Note that the answer is advisory: a concurrent write can still change
the graph between this check and a later create.

Examples:
  taskflow validate task-17 task-42`,
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	RunE:                  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOutputFormat, "output", "o", "console", "Output format (console, table, json, yaml)")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Suppress non-essential output")
	validateCmd.Flags().StringVar(&validateEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runValidate(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(validateOutputFormat),
		Quiet:    validateQuiet,
		Endpoint: validateEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.Execute(ctx, graphToolName("validate_cycle"), map[string]interface{}{
		"dependentTaskId":    args[0],
		"prerequisiteTaskId": args[1],
	})
}

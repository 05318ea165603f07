package cmd

import (
	"taskflow/internal/cli"
	"taskflow/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	flowOutputFormat string
	flowQuiet        bool
	flowEndpoint     string
)

// flowCmd renders a project's dependency graph.
var flowCmd = &cobra.Command{
	Use:   "flow <project>",
	Short: "Show a project's dependency graph",
	Long: `Show the full dependency graph of one project: every task with its
current status, and every dependency edge between them.

Edges whose endpoints no longer exist as task records are omitted, so
the output is always renderable even after out-of-band task deletion.

Examples:
  taskflow flow project-alpha
  taskflow flow project-alpha --output json`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runFlow,
}

func init() {
	rootCmd.AddCommand(flowCmd)

	flowCmd.Flags().StringVarP(&flowOutputFormat, "output", "o", "table", "Output format (console, table, json, yaml)")
	flowCmd.Flags().BoolVarP(&flowQuiet, "quiet", "q", false, "Suppress non-essential output")
	flowCmd.Flags().StringVar(&flowEndpoint, "endpoint", "", "Graph server endpoint URL")
}

func runFlow(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
		Format:   formatting.OutputFormat(flowOutputFormat),
		Quiet:    flowQuiet,
		Endpoint: flowEndpoint,
	})
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.ExecuteProjectFlow(ctx, graphToolName("project_flow"), map[string]interface{}{
		"projectId": args[0],
	})
}

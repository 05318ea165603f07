package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"taskflow/internal/api"
	"taskflow/internal/formatting"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ExecutorOptions contains configuration options for tool execution.
type ExecutorOptions struct {
	// Format specifies the desired output format (console, table, json, yaml)
	Format formatting.OutputFormat
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Endpoint overrides the graph server endpoint URL
	Endpoint string
}

// ToolExecutor runs graph tools against a taskflow server and renders the
// results. It is the bridge between cobra commands and the MCP surface:
// commands name a tool and its arguments, the executor handles connection,
// progress indication, and output formatting.
type ToolExecutor struct {
	client    *Client
	options   ExecutorOptions
	formatter formatting.Formatter
	endpoint  string
}

// NewToolExecutor creates a tool executor. The server endpoint is resolved
// from the --endpoint flag, the TASKFLOW_ENDPOINT environment variable, or
// configuration, in that order.
func NewToolExecutor(options ExecutorOptions) (*ToolExecutor, error) {
	endpoint, transport := DetectServerEndpoint(options.Endpoint)

	if err := CheckServerRunning(endpoint); err != nil {
		return nil, err
	}

	factory := formatting.NewFactory()
	formatter := factory.CreateFormatter(formatting.Options{
		Format: options.Format,
		Quiet:  options.Quiet,
	})

	return &ToolExecutor{
		client:    NewClient(endpoint, transport),
		options:   options,
		formatter: formatter,
		endpoint:  endpoint,
	}, nil
}

// Connect establishes a connection to the taskflow server. It shows a
// progress spinner unless quiet mode is enabled.
func (e *ToolExecutor) Connect(ctx context.Context) error {
	if e.options.Quiet {
		if err := e.client.Connect(ctx); err != nil {
			return ClassifyConnectionError(err, e.endpoint)
		}
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Connecting to taskflow server..."
	s.Start()
	defer s.Stop()

	if err := e.client.Connect(ctx); err != nil {
		s.FinalMSG = text.FgRed.Sprint("Failed to connect to taskflow server") + "\n"
		return ClassifyConnectionError(err, e.endpoint)
	}
	return nil
}

// Close gracefully closes the connection to the server.
func (e *ToolExecutor) Close() error {
	return e.client.Close()
}

// GetOptions returns the executor options.
func (e *ToolExecutor) GetOptions() ExecutorOptions {
	return e.options
}

// call runs one tool with a spinner and returns the raw JSON text.
func (e *ToolExecutor) call(ctx context.Context, toolName string, args map[string]interface{}) (string, error) {
	var s *spinner.Spinner
	if !e.options.Quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Executing command..."
		s.Start()
	}

	result, err := e.client.CallToolText(ctx, toolName, args)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("Command failed"))
		}
		return "", err
	}
	return result, nil
}

// Execute runs a tool and renders the raw result in the configured format.
// It is used by commands whose result shape needs no domain rendering.
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}
	if result == "" {
		if !e.options.Quiet {
			fmt.Println("No results")
		}
		return nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		fmt.Println(result)
		return nil
	}
	return e.formatter.FormatData(data)
}

// ExecuteEdge runs a tool returning one dependency edge and renders it.
func (e *ToolExecutor) ExecuteEdge(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}

	var edge api.DependencyEdge
	if err := json.Unmarshal([]byte(result), &edge); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	e.print(e.formatter.FormatEdgeDetail(edge))
	return nil
}

// ExecuteEdgesList runs a tool returning an edge list and renders it.
func (e *ToolExecutor) ExecuteEdgesList(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}

	var edges []api.DependencyEdge
	if err := json.Unmarshal([]byte(result), &edges); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	e.print(e.formatter.FormatEdgesList(edges))
	return nil
}

// ExecuteBlockStatus runs a tool returning a block status and renders it.
func (e *ToolExecutor) ExecuteBlockStatus(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}

	var status api.BlockStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	e.print(e.formatter.FormatBlockStatus(status))
	return nil
}

// ExecuteUnblockedTasks runs a tool returning a cascade result and renders it.
func (e *ToolExecutor) ExecuteUnblockedTasks(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}

	var tasks []api.Task
	if err := json.Unmarshal([]byte(result), &tasks); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	e.print(e.formatter.FormatUnblockedTasks(tasks))
	return nil
}

// ExecuteProjectFlow runs a tool returning a flow projection and renders it.
func (e *ToolExecutor) ExecuteProjectFlow(ctx context.Context, toolName string, args map[string]interface{}) error {
	result, err := e.call(ctx, toolName, args)
	if err != nil {
		return err
	}

	var flow api.ProjectFlow
	if err := json.Unmarshal([]byte(result), &flow); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	e.print(e.formatter.FormatProjectFlow(flow))
	return nil
}

// print writes formatter output; table formatters render directly to
// stdout and return an empty string.
func (e *ToolExecutor) print(out string) {
	if out != "" {
		fmt.Println(out)
	}
}

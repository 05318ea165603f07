package formatting

import (
	"fmt"
	"strings"

	"taskflow/internal/api"
)

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatEdgesList formats a dependency edge list for console output
func (f *ConsoleFormatter) FormatEdgesList(edges []api.DependencyEdge) string {
	if len(edges) == 0 {
		return "No dependencies found."
	}

	var output []string
	output = append(output, fmt.Sprintf("Dependencies (%d):", len(edges)))
	for i, edge := range edges {
		output = append(output, fmt.Sprintf("  %d. %s depends on %s  [%s]",
			i+1, edge.DependentTaskID, edge.PrerequisiteTaskID, edge.ID))
	}
	return strings.Join(output, "\n")
}

// FormatEdgeDetail formats detailed edge information
func (f *ConsoleFormatter) FormatEdgeDetail(edge api.DependencyEdge) string {
	var output []string
	output = append(output, fmt.Sprintf("Edge: %s", edge.ID))
	output = append(output, fmt.Sprintf("Project: %s", edge.ProjectID))
	output = append(output, fmt.Sprintf("Dependent: %s", edge.DependentTaskID))
	output = append(output, fmt.Sprintf("Prerequisite: %s", edge.PrerequisiteTaskID))
	if edge.CreatedBy != "" {
		output = append(output, fmt.Sprintf("Created by: %s", edge.CreatedBy))
	}
	if !edge.CreatedAt.IsZero() {
		output = append(output, fmt.Sprintf("Created at: %s", edge.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	return strings.Join(output, "\n")
}

// FormatBlockStatus formats a block status for console output
func (f *ConsoleFormatter) FormatBlockStatus(status api.BlockStatus) string {
	var output []string
	if status.IsBlocked {
		output = append(output, fmt.Sprintf("Task %s is BLOCKED (%d of %d prerequisites incomplete):",
			status.TaskID, len(status.BlockingTasks), status.TotalDependencies))
		for _, task := range status.BlockingTasks {
			output = append(output, fmt.Sprintf("  - %s (%s) %s", task.ID, task.Status, task.Name))
		}
	} else {
		output = append(output, fmt.Sprintf("Task %s is not blocked (%d prerequisites).",
			status.TaskID, status.TotalDependencies))
	}
	return strings.Join(output, "\n")
}

// FormatUnblockedTasks formats a resolution cascade result
func (f *ConsoleFormatter) FormatUnblockedTasks(tasks []api.Task) string {
	if len(tasks) == 0 {
		return "No tasks were unblocked."
	}

	var output []string
	output = append(output, fmt.Sprintf("Unblocked tasks (%d):", len(tasks)))
	for i, task := range tasks {
		output = append(output, fmt.Sprintf("  %d. %-20s %s", i+1, task.ID, task.Name))
	}
	return strings.Join(output, "\n")
}

// FormatProjectFlow formats a flow projection for console output
func (f *ConsoleFormatter) FormatProjectFlow(flow api.ProjectFlow) string {
	var output []string
	output = append(output, fmt.Sprintf("Project %s: %d tasks, %d dependencies",
		flow.ProjectID, len(flow.Nodes), len(flow.Edges)))

	if len(flow.Nodes) > 0 {
		output = append(output, "Tasks:")
		for _, node := range flow.Nodes {
			output = append(output, fmt.Sprintf("  %-20s %-12s %s", node.ID, node.Status, node.Name))
		}
	}
	if len(flow.Edges) > 0 {
		output = append(output, "Dependencies:")
		for _, edge := range flow.Edges {
			output = append(output, fmt.Sprintf("  %s -> %s", edge.PrerequisiteTaskID, edge.DependentTaskID))
		}
	}
	return strings.Join(output, "\n")
}

// FormatData formats generic data (fallback to pretty JSON)
func (f *ConsoleFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case string:
		fmt.Println(d)
	default:
		fmt.Println(PrettyJSON(d))
	}
	return nil
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}

package formatting

import (
	"fmt"
	"os"

	"taskflow/internal/api"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatEdgesList renders a dependency edge list as a table
func (f *TableFormatter) FormatEdgesList(edges []api.DependencyEdge) string {
	if len(edges) == 0 {
		return f.emptyMessage("No dependencies found")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("EDGE"),
		text.FgHiCyan.Sprint("DEPENDENT"),
		text.FgHiCyan.Sprint("PREREQUISITE"),
		text.FgHiCyan.Sprint("PROJECT"),
		text.FgHiCyan.Sprint("CREATED BY"),
	})
	for _, edge := range edges {
		t.AppendRow(table.Row{
			truncate(edge.ID, 12),
			edge.DependentTaskID,
			edge.PrerequisiteTaskID,
			edge.ProjectID,
			edge.CreatedBy,
		})
	}
	t.Render()
	return ""
}

// FormatEdgeDetail renders one edge as a key/value table
func (f *TableFormatter) FormatEdgeDetail(edge api.DependencyEdge) string {
	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	t.AppendRow(table.Row{"ID", edge.ID})
	t.AppendRow(table.Row{"Project", edge.ProjectID})
	t.AppendRow(table.Row{"Dependent", edge.DependentTaskID})
	t.AppendRow(table.Row{"Prerequisite", edge.PrerequisiteTaskID})
	t.AppendRow(table.Row{"Created by", edge.CreatedBy})
	if !edge.CreatedAt.IsZero() {
		t.AppendRow(table.Row{"Created at", edge.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	t.Render()
	return ""
}

// FormatBlockStatus renders a block status as a table
func (f *TableFormatter) FormatBlockStatus(status api.BlockStatus) string {
	header := text.FgGreen.Sprintf("Task %s is not blocked (%d prerequisites)",
		status.TaskID, status.TotalDependencies)
	if status.IsBlocked {
		header = text.FgRed.Sprintf("Task %s is BLOCKED (%d of %d prerequisites incomplete)",
			status.TaskID, len(status.BlockingTasks), status.TotalDependencies)
	}
	fmt.Println(header)

	if len(status.BlockingTasks) == 0 {
		return ""
	}
	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("BLOCKING TASK"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("NAME"),
	})
	for _, task := range status.BlockingTasks {
		t.AppendRow(table.Row{task.ID, task.Status, truncate(task.Name, 60)})
	}
	t.Render()
	return ""
}

// FormatUnblockedTasks renders a cascade result as a table
func (f *TableFormatter) FormatUnblockedTasks(tasks []api.Task) string {
	if len(tasks) == 0 {
		return f.emptyMessage("No tasks were unblocked")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("TASK"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("NAME"),
	})
	for _, task := range tasks {
		t.AppendRow(table.Row{task.ID, task.Status, truncate(task.Name, 60)})
	}
	t.Render()
	return ""
}

// FormatProjectFlow renders a flow projection as two tables
func (f *TableFormatter) FormatProjectFlow(flow api.ProjectFlow) string {
	fmt.Printf("%s %s (%d tasks, %d dependencies)\n",
		text.FgHiBlue.Sprint("Project:"),
		text.FgHiWhite.Sprint(flow.ProjectID),
		len(flow.Nodes), len(flow.Edges))

	if len(flow.Nodes) > 0 {
		t := f.createTable()
		t.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("TASK"),
			text.FgHiCyan.Sprint("STATUS"),
			text.FgHiCyan.Sprint("NAME"),
		})
		for _, node := range flow.Nodes {
			t.AppendRow(table.Row{node.ID, f.colorStatus(node.Status), truncate(node.Name, 60)})
		}
		t.Render()
	}
	if len(flow.Edges) > 0 {
		t := f.createTable()
		t.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("PREREQUISITE"),
			text.FgHiCyan.Sprint("DEPENDENT"),
		})
		for _, edge := range flow.Edges {
			t.AppendRow(table.Row{edge.PrerequisiteTaskID, edge.DependentTaskID})
		}
		t.Render()
	}
	return ""
}

// FormatData formats generic data using table logic
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatObjectData(d)
	case string:
		fmt.Println(d)
	default:
		fmt.Printf("%v\n", d)
	}
	return nil
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) emptyMessage(message string) string {
	return text.FgYellow.Sprint(message) + "\n"
}

func (f *TableFormatter) colorStatus(status api.TaskStatus) string {
	switch status {
	case api.TaskStatusCompleted:
		return text.FgGreen.Sprint(status)
	case api.TaskStatusInProgress:
		return text.FgHiBlue.Sprint(status)
	case api.TaskStatusPaused:
		return text.FgYellow.Sprint(status)
	default:
		return string(status)
	}
}

// formatObjectData formats object data as key-value pairs
func (f *TableFormatter) formatObjectData(data map[string]interface{}) error {
	t := f.createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	for key, value := range data {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(key),
			truncate(fmt.Sprintf("%v", value), 100),
		})
	}
	t.Render()
	return nil
}

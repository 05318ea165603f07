package formatting

import (
	"encoding/json"
	"fmt"

	"taskflow/internal/api"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatEdgesList formats a dependency edge list as JSON
func (f *JSONFormatter) FormatEdgesList(edges []api.DependencyEdge) string {
	return f.marshal(map[string]interface{}{
		"dependencies": edges,
		"count":        len(edges),
	})
}

// FormatEdgeDetail formats one edge as JSON
func (f *JSONFormatter) FormatEdgeDetail(edge api.DependencyEdge) string {
	return f.marshal(edge)
}

// FormatBlockStatus formats a block status as JSON
func (f *JSONFormatter) FormatBlockStatus(status api.BlockStatus) string {
	return f.marshal(status)
}

// FormatUnblockedTasks formats a cascade result as JSON
func (f *JSONFormatter) FormatUnblockedTasks(tasks []api.Task) string {
	return f.marshal(map[string]interface{}{
		"unblockedTasks": tasks,
		"count":          len(tasks),
	})
}

// FormatProjectFlow formats a flow projection as JSON
func (f *JSONFormatter) FormatProjectFlow(flow api.ProjectFlow) string {
	return f.marshal(flow)
}

// FormatData formats generic data as JSON
func (f *JSONFormatter) FormatData(data interface{}) error {
	fmt.Println(f.marshal(data))
	return nil
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}

// marshal converts data to a JSON string, compact in quiet mode
func (f *JSONFormatter) marshal(data interface{}) string {
	if f.options.Quiet {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Sprintf(`{"error": "Failed to format JSON: %v"}`, err)
		}
		return string(jsonBytes)
	}
	return PrettyJSON(data)
}

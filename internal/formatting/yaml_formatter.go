package formatting

import (
	"fmt"

	"taskflow/internal/api"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatEdgesList formats a dependency edge list as YAML
func (f *YAMLFormatter) FormatEdgesList(edges []api.DependencyEdge) string {
	return f.marshal(map[string]interface{}{
		"dependencies": edges,
		"count":        len(edges),
	})
}

// FormatEdgeDetail formats one edge as YAML
func (f *YAMLFormatter) FormatEdgeDetail(edge api.DependencyEdge) string {
	return f.marshal(edge)
}

// FormatBlockStatus formats a block status as YAML
func (f *YAMLFormatter) FormatBlockStatus(status api.BlockStatus) string {
	return f.marshal(status)
}

// FormatUnblockedTasks formats a cascade result as YAML
func (f *YAMLFormatter) FormatUnblockedTasks(tasks []api.Task) string {
	return f.marshal(map[string]interface{}{
		"unblockedTasks": tasks,
		"count":          len(tasks),
	})
}

// FormatProjectFlow formats a flow projection as YAML
func (f *YAMLFormatter) FormatProjectFlow(flow api.ProjectFlow) string {
	return f.marshal(flow)
}

// FormatData formats generic data as YAML
func (f *YAMLFormatter) FormatData(data interface{}) error {
	fmt.Print(f.marshal(data))
	return nil
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

// marshal converts data to a YAML string
func (f *YAMLFormatter) marshal(data interface{}) string {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error: \"Failed to format YAML: %v\"\n", err)
	}
	return string(yamlBytes)
}

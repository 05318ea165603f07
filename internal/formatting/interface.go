// Package formatting provides unified output formatting for the taskflow CLI.
//
// All graph-facing commands render through a Formatter so the same result
// can be printed as plain console text, JSON, YAML, or a rich table
// depending on the --output flag.
package formatting

import (
	"taskflow/internal/api"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// Formatter renders dependency graph results for CLI output
type Formatter interface {
	// Edge formatting
	FormatEdgesList(edges []api.DependencyEdge) string
	FormatEdgeDetail(edge api.DependencyEdge) string

	// Block status formatting
	FormatBlockStatus(status api.BlockStatus) string

	// Resolution cascade formatting
	FormatUnblockedTasks(tasks []api.Task) string

	// Flow projection formatting
	FormatProjectFlow(flow api.ProjectFlow) string

	// Generic data formatting (for raw tool results)
	FormatData(data interface{}) error

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatConsole:
		fallthrough
	default:
		return NewConsoleFormatter(options)
	}
}

// ValidOutputFormat reports whether s names a supported output format.
func ValidOutputFormat(s string) bool {
	switch OutputFormat(s) {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable:
		return true
	}
	return false
}

package api

import "context"

// ToolMetadata describes one tool exposed on the MCP surface.
type ToolMetadata struct {
	Name        string // e.g., "create_dependency", "check_blocked"
	Description string
	Parameters  []ParameterMetadata
}

// ParameterMetadata describes a tool parameter
type ParameterMetadata struct {
	Name        string
	Type        string // "string", "number", "boolean", "object"
	Required    bool
	Description string
	Default     interface{}
}

// ToolProvider is implemented by components that expose tools through
// the graph server.
type ToolProvider interface {
	// Returns all tools this provider offers
	GetTools() []ToolMetadata

	// Executes a tool by name
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}

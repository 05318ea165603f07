package graphserver

import (
	"context"
	"encoding/json"
	"fmt"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// createServerTools converts the provider's tool metadata into registered
// MCP server tools, applying the configured name prefix.
func createServerTools(provider api.ToolProvider, prefix string) []mcpserver.ServerTool {
	if prefix == "" {
		prefix = config.DefaultToolPrefix
	}

	var tools []mcpserver.ServerTool
	for _, toolMeta := range provider.GetTools() {
		tools = append(tools, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        prefix + "_" + toolMeta.Name,
				Description: toolMeta.Description,
				InputSchema: convertToMCPSchema(toolMeta.Parameters),
			},
			Handler: createToolHandler(provider, toolMeta.Name),
		})
	}
	return tools
}

// createToolHandler wraps the provider's ExecuteTool method in an
// MCP-compatible handler function.
func createToolHandler(provider api.ToolProvider, toolName string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := provider.ExecuteTool(ctx, toolName, args)
		if err != nil {
			logging.Error("GraphServer", err, "Tool execution failed for %s", toolName)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}
		return convertToMCPResult(result), nil
	}
}

// convertToMCPSchema converts parameter metadata to the JSON Schema
// format MCP clients expect.
func convertToMCPSchema(params []api.ParameterMetadata) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, param := range params {
		propSchema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Default != nil {
			propSchema["default"] = param.Default
		}
		properties[param.Name] = propSchema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// convertToMCPResult converts an internal tool result to MCP format.
// String content passes through as text; anything else is marshaled.
func convertToMCPResult(result *api.CallToolResult) *mcp.CallToolResult {
	mcpContent := make([]mcp.Content, len(result.Content))
	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
		} else {
			jsonBytes, _ := json.Marshal(content)
			mcpContent[i] = mcp.NewTextContent(string(jsonBytes))
		}
	}
	return &mcp.CallToolResult{
		Content: mcpContent,
		IsError: result.IsError,
	}
}

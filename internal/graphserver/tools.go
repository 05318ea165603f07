package graphserver

import (
	"context"
	"encoding/json"
	"fmt"

	"taskflow/internal/api"
)

// GraphToolProvider exposes the eight graph operations as tools. All
// tool handlers resolve their backing handler through the api locator at
// call time, so the provider itself carries no state.
type GraphToolProvider struct{}

// NewGraphToolProvider creates the tool provider for the graph server.
func NewGraphToolProvider() *GraphToolProvider {
	return &GraphToolProvider{}
}

// GetTools returns metadata for all graph tools.
func (p *GraphToolProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "create_dependency",
			Description: "Create a dependency edge: the dependent task cannot start until the prerequisite task is completed. Rejects self-dependencies, duplicates, cross-project edges, and edges that would create a cycle.",
			Parameters: []api.ParameterMetadata{
				{Name: "dependentTaskId", Type: "string", Required: true, Description: "ID of the task that depends on the prerequisite"},
				{Name: "prerequisiteTaskId", Type: "string", Required: true, Description: "ID of the task that must complete first"},
				{Name: "createdBy", Type: "string", Required: false, Description: "Identifier of the user creating the edge"},
			},
		},
		{
			Name:        "remove_dependency",
			Description: "Remove a dependency edge by its ID.",
			Parameters: []api.ParameterMetadata{
				{Name: "edgeId", Type: "string", Required: true, Description: "ID of the edge to remove"},
			},
		},
		{
			Name:        "list_dependencies",
			Description: "List the edges where the given task is the dependent (the tasks it waits on).",
			Parameters: []api.ParameterMetadata{
				{Name: "taskId", Type: "string", Required: true, Description: "ID of the task"},
			},
		},
		{
			Name:        "list_dependents",
			Description: "List the edges where the given task is the prerequisite (the tasks waiting on it).",
			Parameters: []api.ParameterMetadata{
				{Name: "taskId", Type: "string", Required: true, Description: "ID of the task"},
			},
		},
		{
			Name:        "project_flow",
			Description: "Return the {nodes, edges} projection of a project's dependency graph for visualization.",
			Parameters: []api.ParameterMetadata{
				{Name: "projectId", Type: "string", Required: true, Description: "ID of the project"},
			},
		},
		{
			Name:        "validate_cycle",
			Description: "Check whether creating an edge from dependent to prerequisite would introduce a circular dependency, without creating anything.",
			Parameters: []api.ParameterMetadata{
				{Name: "dependentTaskId", Type: "string", Required: true, Description: "ID of the prospective dependent task"},
				{Name: "prerequisiteTaskId", Type: "string", Required: true, Description: "ID of the prospective prerequisite task"},
			},
		},
		{
			Name:        "check_blocked",
			Description: "Compute whether a task is blocked by incomplete prerequisites, with the list of blocking tasks.",
			Parameters: []api.ParameterMetadata{
				{Name: "taskId", Type: "string", Required: true, Description: "ID of the task"},
			},
		},
		{
			Name:        "resolve_completed",
			Description: "After a task completes, return its direct dependents that are now unblocked. Advisory only; never changes task status.",
			Parameters: []api.ParameterMetadata{
				{Name: "taskId", Type: "string", Required: true, Description: "ID of the completed task"},
			},
		},
	}
}

// ExecuteTool executes a graph tool by name.
func (p *GraphToolProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "create_dependency":
		return p.handleCreateDependency(ctx, args)
	case "remove_dependency":
		return p.handleRemoveDependency(ctx, args)
	case "list_dependencies":
		return p.handleListDependencies(ctx, args)
	case "list_dependents":
		return p.handleListDependents(ctx, args)
	case "project_flow":
		return p.handleProjectFlow(ctx, args)
	case "validate_cycle":
		return p.handleValidateCycle(ctx, args)
	case "check_blocked":
		return p.handleCheckBlocked(ctx, args)
	case "resolve_completed":
		return p.handleResolveCompleted(ctx, args)
	default:
		return nil, fmt.Errorf("unknown graph tool: %s", toolName)
	}
}

func (p *GraphToolProvider) handleCreateDependency(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	dependentTaskID, err := requireString(args, "dependentTaskId")
	if err != nil {
		return api.HandleError(err), nil
	}
	prerequisiteTaskID, err := requireString(args, "prerequisiteTaskId")
	if err != nil {
		return api.HandleError(err), nil
	}
	createdBy, _ := args["createdBy"].(string)

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}

	edge, err := graphHandler.CreateDependency(ctx, dependentTaskID, prerequisiteTaskID, createdBy)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(edge)
}

func (p *GraphToolProvider) handleRemoveDependency(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	edgeID, err := requireString(args, "edgeId")
	if err != nil {
		return api.HandleError(err), nil
	}

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}

	if err := graphHandler.RemoveDependency(ctx, edgeID); err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(map[string]interface{}{
		"removed": true,
		"edgeId":  edgeID,
	})
}

func (p *GraphToolProvider) handleListDependencies(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	taskID, err := requireString(args, "taskId")
	if err != nil {
		return api.HandleError(err), nil
	}

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}

	edges, err := graphHandler.GetDependencies(ctx, taskID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(edges)
}

func (p *GraphToolProvider) handleListDependents(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	taskID, err := requireString(args, "taskId")
	if err != nil {
		return api.HandleError(err), nil
	}

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}

	edges, err := graphHandler.GetDependents(ctx, taskID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(edges)
}

func (p *GraphToolProvider) handleProjectFlow(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	projectID, err := requireString(args, "projectId")
	if err != nil {
		return api.HandleError(err), nil
	}

	flowHandler := api.GetFlow()
	if flowHandler == nil {
		return nil, api.ErrFlowNotRegistered
	}

	flow, err := flowHandler.GetProjectFlow(ctx, projectID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(flow)
}

func (p *GraphToolProvider) handleValidateCycle(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	dependentTaskID, err := requireString(args, "dependentTaskId")
	if err != nil {
		return api.HandleError(err), nil
	}
	prerequisiteTaskID, err := requireString(args, "prerequisiteTaskId")
	if err != nil {
		return api.HandleError(err), nil
	}

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}

	wouldCycle, err := graphHandler.ValidateCircularDependency(ctx, dependentTaskID, prerequisiteTaskID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(map[string]interface{}{
		"wouldCreateCycle":   wouldCycle,
		"dependentTaskId":    dependentTaskID,
		"prerequisiteTaskId": prerequisiteTaskID,
	})
}

func (p *GraphToolProvider) handleCheckBlocked(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	taskID, err := requireString(args, "taskId")
	if err != nil {
		return api.HandleError(err), nil
	}

	blockHandler := api.GetBlockStatus()
	if blockHandler == nil {
		return nil, api.ErrBlockStatusNotRegistered
	}

	status, err := blockHandler.CheckBlocked(ctx, taskID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(status)
}

func (p *GraphToolProvider) handleResolveCompleted(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	taskID, err := requireString(args, "taskId")
	if err != nil {
		return api.HandleError(err), nil
	}

	blockHandler := api.GetBlockStatus()
	if blockHandler == nil {
		return nil, api.ErrBlockStatusNotRegistered
	}

	unblocked, err := blockHandler.ResolveCompleted(ctx, taskID)
	if err != nil {
		return api.HandleError(err), nil
	}
	return jsonResult(unblocked)
}

// requireString extracts a required string argument.
func requireString(args map[string]interface{}, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("'%s' argument is required and must be a non-empty string", name)
	}
	return value, nil
}

// jsonResult marshals a value into a single-text-content tool result.
func jsonResult(v interface{}) (*api.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return &api.CallToolResult{
		Content: []interface{}{string(data)},
	}, nil
}

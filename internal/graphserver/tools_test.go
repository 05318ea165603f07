package graphserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"taskflow/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGraph struct {
	createdEdge *api.DependencyEdge
	createErr   error
	removeErr   error
	edges       []api.DependencyEdge
	wouldCycle  bool
}

func (s *stubGraph) CreateDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID, createdBy string) (*api.DependencyEdge, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createdEdge, nil
}

func (s *stubGraph) RemoveDependency(ctx context.Context, edgeID string) error {
	return s.removeErr
}

func (s *stubGraph) GetDependencies(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	return s.edges, nil
}

func (s *stubGraph) GetDependents(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	return s.edges, nil
}

func (s *stubGraph) ListProjectDependencies(ctx context.Context, projectID string) ([]api.DependencyEdge, error) {
	return s.edges, nil
}

func (s *stubGraph) ValidateCircularDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID string) (bool, error) {
	return s.wouldCycle, nil
}

type stubBlockStatus struct {
	status    *api.BlockStatus
	unblocked []api.Task
}

func (s *stubBlockStatus) CheckBlocked(ctx context.Context, taskID string) (*api.BlockStatus, error) {
	return s.status, nil
}

func (s *stubBlockStatus) ResolveCompleted(ctx context.Context, completedTaskID string) ([]api.Task, error) {
	return s.unblocked, nil
}

type stubFlow struct {
	flow *api.ProjectFlow
}

func (s *stubFlow) GetProjectFlow(ctx context.Context, projectID string) (*api.ProjectFlow, error) {
	return s.flow, nil
}

func resultText(t *testing.T, result *api.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(string)
	require.True(t, ok, "content should be a string")
	return text
}

func TestGetToolsCoversAllOperations(t *testing.T) {
	provider := NewGraphToolProvider()
	tools := provider.GetTools()
	require.Len(t, tools, 8)

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
		assert.NotEmpty(t, tool.Description)
	}
	for _, want := range []string{
		"create_dependency", "remove_dependency", "list_dependencies",
		"list_dependents", "project_flow", "validate_cycle",
		"check_blocked", "resolve_completed",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestExecuteToolUnknown(t *testing.T) {
	provider := NewGraphToolProvider()
	_, err := provider.ExecuteTool(context.Background(), "bogus", nil)
	assert.Error(t, err)
}

func TestCreateDependencyTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)

	edge := &api.DependencyEdge{
		ID:                 "edge-1",
		ProjectID:          "p1",
		DependentTaskID:    "t2",
		PrerequisiteTaskID: "t1",
		CreatedAt:          time.Now(),
	}
	api.RegisterDependencyGraph(&stubGraph{createdEdge: edge})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "create_dependency", map[string]interface{}{
		"dependentTaskId":    "t2",
		"prerequisiteTaskId": "t1",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var got api.DependencyEdge
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
	assert.Equal(t, "edge-1", got.ID)
}

func TestCreateDependencyToolMissingArg(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "create_dependency", map[string]interface{}{
		"dependentTaskId": "t2",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "prerequisiteTaskId")
}

func TestCreateDependencyToolValidationError(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{
		createErr: api.NewValidationError(api.CodeCycleDetected, "adding this dependency would create a circular dependency"),
	})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "create_dependency", map[string]interface{}{
		"dependentTaskId":    "t1",
		"prerequisiteTaskId": "t2",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "circular")
}

func TestCreateDependencyToolNoHandler(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)

	provider := NewGraphToolProvider()
	_, err := provider.ExecuteTool(context.Background(), "create_dependency", map[string]interface{}{
		"dependentTaskId":    "t1",
		"prerequisiteTaskId": "t2",
	})
	assert.ErrorIs(t, err, api.ErrDependencyGraphNotRegistered)
}

func TestRemoveDependencyTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "remove_dependency", map[string]interface{}{
		"edgeId": "edge-1",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"removed":true`)
}

func TestRemoveDependencyToolNotFound(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{removeErr: api.NewEdgeNotFoundError("edge-1")})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "remove_dependency", map[string]interface{}{
		"edgeId": "edge-1",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListDependenciesTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{edges: []api.DependencyEdge{
		{ID: "e1", DependentTaskID: "t2", PrerequisiteTaskID: "t1"},
	}})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "list_dependencies", map[string]interface{}{
		"taskId": "t2",
	})
	require.NoError(t, err)

	var edges []api.DependencyEdge
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &edges))
	require.Len(t, edges, 1)
	assert.Equal(t, "e1", edges[0].ID)
}

func TestValidateCycleTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterDependencyGraph(&stubGraph{wouldCycle: true})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "validate_cycle", map[string]interface{}{
		"dependentTaskId":    "t1",
		"prerequisiteTaskId": "t2",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `"wouldCreateCycle":true`)
}

func TestCheckBlockedTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterBlockStatus(&stubBlockStatus{status: &api.BlockStatus{
		TaskID:            "t2",
		IsBlocked:         true,
		BlockingTasks:     []api.Task{{ID: "t1", Status: api.TaskStatusInProgress}},
		TotalDependencies: 1,
	}})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "check_blocked", map[string]interface{}{
		"taskId": "t2",
	})
	require.NoError(t, err)

	var status api.BlockStatus
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &status))
	assert.True(t, status.IsBlocked)
	require.Len(t, status.BlockingTasks, 1)
}

func TestResolveCompletedTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterBlockStatus(&stubBlockStatus{unblocked: []api.Task{
		{ID: "t2", ProjectID: "p1", Status: api.TaskStatusNotStarted},
	}})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "resolve_completed", map[string]interface{}{
		"taskId": "t1",
	})
	require.NoError(t, err)

	var tasks []api.Task
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
}

func TestProjectFlowTool(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	api.RegisterFlow(&stubFlow{flow: &api.ProjectFlow{
		ProjectID: "p1",
		Nodes:     []api.FlowNode{{ID: "t1", Status: api.TaskStatusCompleted}},
		Edges:     []api.DependencyEdge{},
	}})

	provider := NewGraphToolProvider()
	result, err := provider.ExecuteTool(context.Background(), "project_flow", map[string]interface{}{
		"projectId": "p1",
	})
	require.NoError(t, err)

	var flow api.ProjectFlow
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &flow))
	assert.Equal(t, "p1", flow.ProjectID)
	assert.Len(t, flow.Nodes, 1)
}

func TestCreateServerToolsPrefixing(t *testing.T) {
	provider := NewGraphToolProvider()

	tools := createServerTools(provider, "graph")
	require.Len(t, tools, 8)
	for _, tool := range tools {
		assert.Contains(t, tool.Tool.Name, "graph_")
	}

	tools = createServerTools(provider, "")
	for _, tool := range tools {
		assert.Contains(t, tool.Tool.Name, "taskflow_")
	}
}

func TestConvertToMCPSchema(t *testing.T) {
	schema := convertToMCPSchema([]api.ParameterMetadata{
		{Name: "taskId", Type: "string", Required: true, Description: "ID of the task"},
		{Name: "createdBy", Type: "string", Required: false},
	})

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"taskId"}, schema.Required)
	assert.Contains(t, schema.Properties, "createdBy")
}

func TestConvertToMCPResultMarshalsNonStrings(t *testing.T) {
	result := convertToMCPResult(&api.CallToolResult{
		Content: []interface{}{map[string]interface{}{"key": "value"}},
		IsError: false,
	})
	require.Len(t, result.Content, 1)
}

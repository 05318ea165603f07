package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskflow/internal/api"
	"taskflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, dir, id, project, status string) {
	t.Helper()
	tasksDir := filepath.Join(dir, "tasks")
	require.NoError(t, os.MkdirAll(tasksDir, 0755))
	content := "id: " + id + "\nprojectId: " + project + "\nname: " + id + "\nstatus: " + status + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(tasksDir, id+".yaml"), []byte(content), 0644))
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	api.ResetHandlers()
	api.ResetGraphEventSubscribers()
	t.Cleanup(api.ResetHandlers)
	t.Cleanup(api.ResetGraphEventSubscribers)

	dir := t.TempDir()
	writeTaskFile(t, dir, "t1", "p1", "completed")
	writeTaskFile(t, dir, "t2", "p1", "not_started")

	taskflowCfg := config.GetDefaultConfig()
	return &Config{
		ConfigPath:     dir,
		TaskflowConfig: &taskflowCfg,
	}
}

func TestInitializeServicesWiresHandlers(t *testing.T) {
	cfg := testConfig(t)

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	require.NotNil(t, services)

	assert.NotNil(t, api.GetTaskStore())
	assert.NotNil(t, api.GetDependencyGraph())
	assert.NotNil(t, api.GetBlockStatus())
	assert.NotNil(t, api.GetFlow())
}

func TestInitializeServicesEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	_, err := InitializeServices(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	graphHandler := api.GetDependencyGraph()

	edge, err := graphHandler.CreateDependency(ctx, "t2", "t1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "p1", edge.ProjectID)

	// t1 is completed, so t2 is not blocked by it
	status, err := api.GetBlockStatus().CheckBlocked(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, status.IsBlocked)
	assert.Equal(t, 1, status.TotalDependencies)

	flow, err := api.GetFlow().GetProjectFlow(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, flow.Nodes, 2)
	assert.Len(t, flow.Edges, 1)
}

func TestInitializeServicesLoadsExistingEdges(t *testing.T) {
	cfg := testConfig(t)

	services, err := InitializeServices(cfg)
	require.NoError(t, err)

	_, err = api.GetDependencyGraph().CreateDependency(context.Background(), "t2", "t1", "alice")
	require.NoError(t, err)

	// A second bootstrap over the same directory sees the persisted edge.
	api.ResetHandlers()
	api.ResetGraphEventSubscribers()
	services, err = InitializeServices(cfg)
	require.NoError(t, err)

	edges, err := services.EdgeManager.GetDependencies(context.Background(), "t2")
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestNewApplicationDefaultsWithEmptyDir(t *testing.T) {
	api.ResetHandlers()
	api.ResetGraphEventSubscribers()
	t.Cleanup(api.ResetHandlers)
	t.Cleanup(api.ResetGraphEventSubscribers)

	// An empty config dir is valid: defaults apply and stores start empty.
	application, err := NewApplication(&Config{
		Silent:     true,
		ConfigPath: t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, application.Services())
	assert.Equal(t, config.DefaultServerPort, application.config.TaskflowConfig.Server.Port)
}

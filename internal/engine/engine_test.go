package engine

import (
	"context"
	"testing"

	"taskflow/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGraph implements api.DependencyGraphHandler over a fixed edge set
type mockGraph struct {
	edges []api.DependencyEdge
}

func (m *mockGraph) CreateDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID, createdBy string) (*api.DependencyEdge, error) {
	panic("not used in engine tests")
}

func (m *mockGraph) RemoveDependency(ctx context.Context, edgeID string) error {
	panic("not used in engine tests")
}

func (m *mockGraph) GetDependencies(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	var out []api.DependencyEdge
	for _, e := range m.edges {
		if e.DependentTaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGraph) GetDependents(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	var out []api.DependencyEdge
	for _, e := range m.edges {
		if e.PrerequisiteTaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGraph) ListProjectDependencies(ctx context.Context, projectID string) ([]api.DependencyEdge, error) {
	var out []api.DependencyEdge
	for _, e := range m.edges {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGraph) ValidateCircularDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID string) (bool, error) {
	return false, nil
}

// mockTasks implements api.TaskStoreHandler
type mockTasks struct {
	tasks map[string]api.Task
}

func (m *mockTasks) GetTask(ctx context.Context, taskID string) (*api.Task, error) {
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, api.NewTaskNotFoundError(taskID)
	}
	return &t, nil
}

func (m *mockTasks) GetTaskStatus(ctx context.Context, taskID string) (api.TaskStatus, error) {
	t, err := m.GetTask(ctx, taskID)
	if err != nil {
		return "", err
	}
	return t.Status, nil
}

func (m *mockTasks) ListTasksByIDs(ctx context.Context, taskIDs []string) ([]api.Task, error) {
	var out []api.Task
	for _, id := range taskIDs {
		if t, ok := m.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTasks) ListTasksByProject(ctx context.Context, projectID string) ([]api.Task, error) {
	var out []api.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func edge(id, project, dependent, prerequisite string) api.DependencyEdge {
	return api.DependencyEdge{
		ID:                 id,
		ProjectID:          project,
		DependentTaskID:    dependent,
		PrerequisiteTaskID: prerequisite,
	}
}

func task(id, project string, status api.TaskStatus) api.Task {
	return api.Task{ID: id, ProjectID: project, Status: status}
}

func setup(t *testing.T, edges []api.DependencyEdge, tasks ...api.Task) *Engine {
	t.Helper()
	api.ResetHandlers()
	api.ResetGraphEventSubscribers()
	t.Cleanup(api.ResetHandlers)
	t.Cleanup(api.ResetGraphEventSubscribers)

	taskMap := make(map[string]api.Task, len(tasks))
	for _, tk := range tasks {
		taskMap[tk.ID] = tk
	}
	api.RegisterDependencyGraph(&mockGraph{edges: edges})
	api.RegisterTaskStore(&mockTasks{tasks: taskMap})

	return New(Options{ResolveParallelism: 4})
}

func TestCheckBlockedNoDependencies(t *testing.T) {
	e := setup(t, nil, task("t1", "p1", api.TaskStatusNotStarted))

	status, err := e.CheckBlocked(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, status.IsBlocked)
	assert.Empty(t, status.BlockingTasks)
	assert.Equal(t, 0, status.TotalDependencies)
}

func TestCheckBlockedIncompletePrerequisite(t *testing.T) {
	e := setup(t,
		[]api.DependencyEdge{edge("e1", "p1", "t2", "t1")},
		task("t1", "p1", api.TaskStatusInProgress),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	status, err := e.CheckBlocked(context.Background(), "t2")
	require.NoError(t, err)
	assert.True(t, status.IsBlocked)
	require.Len(t, status.BlockingTasks, 1)
	assert.Equal(t, "t1", status.BlockingTasks[0].ID)
	assert.Equal(t, 1, status.TotalDependencies)
}

func TestCheckBlockedAllPrerequisitesCompleted(t *testing.T) {
	e := setup(t,
		[]api.DependencyEdge{
			edge("e1", "p1", "t3", "t1"),
			edge("e2", "p1", "t3", "t2"),
		},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusCompleted),
		task("t3", "p1", api.TaskStatusNotStarted),
	)

	status, err := e.CheckBlocked(context.Background(), "t3")
	require.NoError(t, err)
	assert.False(t, status.IsBlocked)
	assert.Empty(t, status.BlockingTasks)
	assert.Equal(t, 2, status.TotalDependencies)
}

func TestCheckBlockedEachIncompleteStatusBlocks(t *testing.T) {
	for _, st := range []api.TaskStatus{api.TaskStatusNotStarted, api.TaskStatusInProgress, api.TaskStatusPaused} {
		t.Run(string(st), func(t *testing.T) {
			e := setup(t,
				[]api.DependencyEdge{edge("e1", "p1", "t2", "t1")},
				task("t1", "p1", st),
				task("t2", "p1", api.TaskStatusNotStarted),
			)

			status, err := e.CheckBlocked(context.Background(), "t2")
			require.NoError(t, err)
			assert.True(t, status.IsBlocked)
		})
	}
}

func TestCheckBlockedDanglingPrerequisite(t *testing.T) {
	// t2 depends on t1 and on a task deleted out-of-band. The deleted
	// prerequisite cannot block, but it still counts.
	e := setup(t,
		[]api.DependencyEdge{
			edge("e1", "p1", "t2", "t1"),
			edge("e2", "p1", "t2", "ghost"),
		},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	status, err := e.CheckBlocked(context.Background(), "t2")
	require.NoError(t, err)
	assert.False(t, status.IsBlocked)
	assert.Empty(t, status.BlockingTasks)
	assert.Equal(t, 2, status.TotalDependencies)
}

func TestResolveCompletedSingleDependent(t *testing.T) {
	// Scenario: T2 depends on T1; T1 completes.
	e := setup(t,
		[]api.DependencyEdge{edge("e1", "p1", "t2", "t1")},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	unblocked, err := e.ResolveCompleted(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, unblocked, 1)
	assert.Equal(t, "t2", unblocked[0].ID)
}

func TestResolveCompletedStillBlockedByOther(t *testing.T) {
	// T4 depends on T5 and T6. T5 completes first: nothing unblocks.
	// Then T6 completes: T4 unblocks.
	edges := []api.DependencyEdge{
		edge("e1", "p1", "t4", "t5"),
		edge("e2", "p1", "t4", "t6"),
	}

	e := setup(t, edges,
		task("t4", "p1", api.TaskStatusNotStarted),
		task("t5", "p1", api.TaskStatusCompleted),
		task("t6", "p1", api.TaskStatusInProgress),
	)

	unblocked, err := e.ResolveCompleted(context.Background(), "t5")
	require.NoError(t, err)
	assert.Empty(t, unblocked)

	// T6 completes as well
	e = setup(t, edges,
		task("t4", "p1", api.TaskStatusNotStarted),
		task("t5", "p1", api.TaskStatusCompleted),
		task("t6", "p1", api.TaskStatusCompleted),
	)

	unblocked, err = e.ResolveCompleted(context.Background(), "t6")
	require.NoError(t, err)
	require.Len(t, unblocked, 1)
	assert.Equal(t, "t4", unblocked[0].ID)
}

func TestResolveCompletedNoDependents(t *testing.T) {
	e := setup(t, nil, task("t1", "p1", api.TaskStatusCompleted))

	unblocked, err := e.ResolveCompleted(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, unblocked)
}

func TestResolveCompletedIsIdempotent(t *testing.T) {
	e := setup(t,
		[]api.DependencyEdge{edge("e1", "p1", "t2", "t1")},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	first, err := e.ResolveCompleted(context.Background(), "t1")
	require.NoError(t, err)
	second, err := e.ResolveCompleted(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveCompletedManyDependents(t *testing.T) {
	// One prerequisite fans out to many dependents; exercises the
	// bounded-parallel recompute path.
	edges := []api.DependencyEdge{}
	tasks := []api.Task{task("root", "p1", api.TaskStatusCompleted)}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		edges = append(edges, edge("e-"+id, "p1", id, "root"))
		tasks = append(tasks, task(id, "p1", api.TaskStatusNotStarted))
	}
	// "f" is additionally blocked by "a"
	edges = append(edges, edge("e-fa", "p1", "f", "a"))

	e := setup(t, edges, tasks...)

	unblocked, err := e.ResolveCompleted(context.Background(), "root")
	require.NoError(t, err)

	ids := make([]string, 0, len(unblocked))
	for _, u := range unblocked {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
}

func TestResolveCompletedPublishesEvent(t *testing.T) {
	e := setup(t,
		[]api.DependencyEdge{edge("e1", "p1", "t2", "t1")},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	var events []api.GraphEvent
	api.SubscribeToGraphEvents(eventFunc(func(ev api.GraphEvent) { events = append(events, ev) }))

	_, err := e.ResolveCompleted(context.Background(), "t1")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, api.GraphEventTasksUnblocked, events[0].Type)
	assert.Equal(t, []string{"t2"}, events[0].TaskIDs)
}

func TestGetProjectFlow(t *testing.T) {
	e := setup(t,
		[]api.DependencyEdge{
			edge("e1", "p1", "t2", "t1"),
			edge("e2", "p1", "t3", "t2"),
		},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusInProgress),
		task("t3", "p1", api.TaskStatusNotStarted),
		task("x1", "p2", api.TaskStatusNotStarted),
	)

	flow, err := e.GetProjectFlow(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", flow.ProjectID)
	assert.Len(t, flow.Nodes, 3)
	assert.Len(t, flow.Edges, 2)

	statuses := make(map[string]api.TaskStatus)
	for _, n := range flow.Nodes {
		statuses[n.ID] = n.Status
	}
	assert.Equal(t, api.TaskStatusCompleted, statuses["t1"])
	assert.Equal(t, api.TaskStatusInProgress, statuses["t2"])
}

func TestGetProjectFlowOmitsDanglingEdges(t *testing.T) {
	// An edge pointing at a deleted task must not appear in the flow.
	e := setup(t,
		[]api.DependencyEdge{
			edge("e1", "p1", "t2", "t1"),
			edge("e2", "p1", "t2", "deleted"),
		},
		task("t1", "p1", api.TaskStatusCompleted),
		task("t2", "p1", api.TaskStatusNotStarted),
	)

	flow, err := e.GetProjectFlow(context.Background(), "p1")
	require.NoError(t, err)

	assert.Len(t, flow.Nodes, 2)
	require.Len(t, flow.Edges, 1)
	assert.Equal(t, "e1", flow.Edges[0].ID)
}

func TestGetProjectFlowEmptyProject(t *testing.T) {
	e := setup(t, nil)

	flow, err := e.GetProjectFlow(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, flow.Nodes)
	assert.Empty(t, flow.Edges)
}

func TestFlowCacheInvalidation(t *testing.T) {
	api.ResetHandlers()
	api.ResetGraphEventSubscribers()
	t.Cleanup(api.ResetHandlers)
	t.Cleanup(api.ResetGraphEventSubscribers)

	graph := &mockGraph{edges: []api.DependencyEdge{edge("e1", "p1", "t2", "t1")}}
	api.RegisterDependencyGraph(graph)
	api.RegisterTaskStore(&mockTasks{tasks: map[string]api.Task{
		"t1": task("t1", "p1", api.TaskStatusCompleted),
		"t2": task("t2", "p1", api.TaskStatusNotStarted),
	}})

	e := New(Options{FlowCacheEnabled: true, ResolveParallelism: 2})

	flow, err := e.GetProjectFlow(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, flow.Edges, 1)

	// Mutate the underlying edge set; the cached projection still serves
	graph.edges = nil
	flow, err = e.GetProjectFlow(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, flow.Edges, 1)

	// An edge-removed event for the project invalidates the entry
	api.PublishGraphEvent(api.GraphEvent{Type: api.GraphEventEdgeRemoved, ProjectID: "p1", EdgeID: "e1"})

	flow, err = e.GetProjectFlow(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, flow.Edges)
}

// eventFunc adapts a func to api.GraphEventSubscriber.
type eventFunc func(api.GraphEvent)

func (f eventFunc) OnGraphEvent(e api.GraphEvent) { f(e) }

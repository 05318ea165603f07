package engine

import (
	"context"
	"sync"

	"taskflow/internal/api"
	"taskflow/pkg/logging"
)

// GetProjectFlow assembles the {nodes, edges} projection of one
// project's dependency graph for visualization.
//
// The projection is computed from a single consistent read: the task set
// is snapshotted first, then edges are filtered to pairs whose both
// endpoints are in that snapshot, so the client never receives a graph
// with dangling edges. It is read-only and performs no validation.
func (e *Engine) GetProjectFlow(ctx context.Context, projectID string) (*api.ProjectFlow, error) {
	if e.flowCache != nil {
		if flow, ok := e.flowCache.get(projectID); ok {
			logging.Debug("Engine", "Flow cache hit for project %s", projectID)
			return flow, nil
		}
	}

	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}
	taskStore := api.GetTaskStore()
	if taskStore == nil {
		return nil, api.ErrTaskStoreNotRegistered
	}

	tasks, err := taskStore.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	edges, err := graphHandler.ListProjectDependencies(ctx, projectID)
	if err != nil {
		return nil, err
	}

	nodeSet := make(map[string]bool, len(tasks))
	nodes := make([]api.FlowNode, 0, len(tasks))
	for _, task := range tasks {
		nodeSet[task.ID] = true
		nodes = append(nodes, api.FlowNode{
			ID:     task.ID,
			Name:   task.Name,
			Status: task.Status,
		})
	}

	flowEdges := make([]api.DependencyEdge, 0, len(edges))
	for _, edge := range edges {
		if nodeSet[edge.DependentTaskID] && nodeSet[edge.PrerequisiteTaskID] {
			flowEdges = append(flowEdges, edge)
		}
	}

	flow := &api.ProjectFlow{
		ProjectID: projectID,
		Nodes:     nodes,
		Edges:     flowEdges,
	}

	if e.flowCache != nil {
		e.flowCache.put(projectID, flow)
	}
	return flow, nil
}

// flowCache is a read-through projection cache keyed by project ID. It
// is invalidated explicitly through graph events rather than by TTL, and
// lives on the Engine rather than in package state.
type flowCache struct {
	mu      sync.RWMutex
	entries map[string]*api.ProjectFlow
}

func newFlowCache() *flowCache {
	return &flowCache{entries: make(map[string]*api.ProjectFlow)}
}

func (c *flowCache) get(projectID string) (*api.ProjectFlow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	flow, ok := c.entries[projectID]
	return flow, ok
}

func (c *flowCache) put(projectID string, flow *api.ProjectFlow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = flow
}

// OnGraphEvent implements api.GraphEventSubscriber. Edge mutations
// invalidate the affected project; task record changes carry no project
// scope, so they flush everything.
func (c *flowCache) OnGraphEvent(event api.GraphEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case api.GraphEventEdgeCreated, api.GraphEventEdgeRemoved:
		delete(c.entries, event.ProjectID)
	case api.GraphEventTaskRecordsChanged:
		c.entries = make(map[string]*api.ProjectFlow)
	}
}

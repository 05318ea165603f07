package edgestore

import (
	"context"

	"taskflow/internal/api"
)

// Adapter exposes the edge manager through the api layer's
// DependencyGraphHandler interface.
type Adapter struct {
	manager *Manager
}

// NewAdapter creates an adapter around an edge manager.
func NewAdapter(manager *Manager) *Adapter {
	return &Adapter{manager: manager}
}

// Register registers this adapter with the API layer.
func (a *Adapter) Register() {
	api.RegisterDependencyGraph(a)
}

// CreateDependency implements api.DependencyGraphHandler.
func (a *Adapter) CreateDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID, createdBy string) (*api.DependencyEdge, error) {
	return a.manager.CreateDependency(ctx, dependentTaskID, prerequisiteTaskID, createdBy)
}

// RemoveDependency implements api.DependencyGraphHandler.
func (a *Adapter) RemoveDependency(ctx context.Context, edgeID string) error {
	return a.manager.RemoveDependency(ctx, edgeID)
}

// GetDependencies implements api.DependencyGraphHandler.
func (a *Adapter) GetDependencies(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	return a.manager.GetDependencies(ctx, taskID)
}

// GetDependents implements api.DependencyGraphHandler.
func (a *Adapter) GetDependents(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	return a.manager.GetDependents(ctx, taskID)
}

// ListProjectDependencies implements api.DependencyGraphHandler.
func (a *Adapter) ListProjectDependencies(ctx context.Context, projectID string) ([]api.DependencyEdge, error) {
	return a.manager.ListProjectEdges(projectID), nil
}

// ValidateCircularDependency implements api.DependencyGraphHandler.
func (a *Adapter) ValidateCircularDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID string) (bool, error) {
	return a.manager.ValidateCircularDependency(ctx, dependentTaskID, prerequisiteTaskID)
}

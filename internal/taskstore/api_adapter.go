package taskstore

import (
	"context"

	"taskflow/internal/api"
)

// Adapter exposes the task record manager through the api layer's
// TaskStoreHandler interface.
type Adapter struct {
	manager *Manager
}

// NewAdapter creates an adapter around a task record manager.
func NewAdapter(manager *Manager) *Adapter {
	return &Adapter{manager: manager}
}

// Register registers this adapter with the API layer.
func (a *Adapter) Register() {
	api.RegisterTaskStore(a)
}

// GetTask implements api.TaskStoreHandler.
func (a *Adapter) GetTask(ctx context.Context, taskID string) (*api.Task, error) {
	return a.manager.GetTask(ctx, taskID)
}

// GetTaskStatus implements api.TaskStoreHandler.
func (a *Adapter) GetTaskStatus(ctx context.Context, taskID string) (api.TaskStatus, error) {
	return a.manager.GetTaskStatus(ctx, taskID)
}

// ListTasksByIDs implements api.TaskStoreHandler.
func (a *Adapter) ListTasksByIDs(ctx context.Context, taskIDs []string) ([]api.Task, error) {
	return a.manager.ListTasksByIDs(ctx, taskIDs)
}

// ListTasksByProject implements api.TaskStoreHandler.
func (a *Adapter) ListTasksByProject(ctx context.Context, projectID string) ([]api.Task, error) {
	return a.manager.ListTasksByProject(ctx, projectID)
}

package engine

import (
	"context"

	"taskflow/internal/api"
)

// Adapter exposes the derivation engine through the api layer's
// BlockStatusHandler and FlowHandler interfaces.
type Adapter struct {
	engine *Engine
}

// NewAdapter creates an adapter around an engine.
func NewAdapter(engine *Engine) *Adapter {
	return &Adapter{engine: engine}
}

// Register registers this adapter with the API layer.
func (a *Adapter) Register() {
	api.RegisterBlockStatus(a)
	api.RegisterFlow(a)
}

// CheckBlocked implements api.BlockStatusHandler.
func (a *Adapter) CheckBlocked(ctx context.Context, taskID string) (*api.BlockStatus, error) {
	return a.engine.CheckBlocked(ctx, taskID)
}

// ResolveCompleted implements api.BlockStatusHandler.
func (a *Adapter) ResolveCompleted(ctx context.Context, completedTaskID string) ([]api.Task, error) {
	return a.engine.ResolveCompleted(ctx, completedTaskID)
}

// GetProjectFlow implements api.FlowHandler.
func (a *Adapter) GetProjectFlow(ctx context.Context, projectID string) (*api.ProjectFlow, error) {
	return a.engine.GetProjectFlow(ctx, projectID)
}

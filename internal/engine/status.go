package engine

import (
	"context"

	"taskflow/internal/api"
)

// CheckBlocked computes the current BlockStatus of a task from its direct
// prerequisite edges and the prerequisites' current statuses.
//
// A task is blocked iff at least one prerequisite's status is not
// completed. A task with zero dependencies is never blocked by this
// engine; other gating (assignment, scheduling) is someone else's
// concern. Prerequisites whose task record no longer exists are omitted
// from BlockingTasks but still counted in TotalDependencies, so the
// projection stays renderable after out-of-band task deletion.
func (e *Engine) CheckBlocked(ctx context.Context, taskID string) (*api.BlockStatus, error) {
	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}
	taskStore := api.GetTaskStore()
	if taskStore == nil {
		return nil, api.ErrTaskStoreNotRegistered
	}

	edges, err := graphHandler.GetDependencies(ctx, taskID)
	if err != nil {
		return nil, err
	}

	status := &api.BlockStatus{
		TaskID:            taskID,
		BlockingTasks:     []api.Task{},
		TotalDependencies: len(edges),
	}
	if len(edges) == 0 {
		return status, nil
	}

	prerequisiteIDs := make([]string, 0, len(edges))
	for _, edge := range edges {
		prerequisiteIDs = append(prerequisiteIDs, edge.PrerequisiteTaskID)
	}

	// Missing IDs are omitted here; dangling prerequisites cannot block.
	prerequisites, err := taskStore.ListTasksByIDs(ctx, prerequisiteIDs)
	if err != nil {
		return nil, err
	}

	for _, prerequisite := range prerequisites {
		if prerequisite.Status != api.TaskStatusCompleted {
			status.BlockingTasks = append(status.BlockingTasks, prerequisite)
		}
	}
	status.IsBlocked = len(status.BlockingTasks) > 0

	return status, nil
}

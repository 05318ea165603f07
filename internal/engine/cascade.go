package engine

import (
	"context"
	"sort"
	"sync"

	"taskflow/internal/api"
	"taskflow/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// ResolveCompleted computes the set of direct dependents of
// completedTaskID that transitioned from blocked to unblocked. The
// caller must have durably recorded the completion before invoking this;
// the engine trusts that precondition and never flips task status itself.
//
// The cascade is exactly one hop deep: a task's blocked state depends
// only on its direct prerequisites, so completing a task can only change
// the blocked state of its direct dependents. Unblocking a dependent
// does not change that dependent's own status, so nothing further down
// the graph can have changed.
//
// The operation is a pure read-then-derive over current state, which
// makes repeated invocation for the same task safe: callers receiving
// at-least-once completion signals may simply call again.
func (e *Engine) ResolveCompleted(ctx context.Context, completedTaskID string) ([]api.Task, error) {
	graphHandler := api.GetDependencyGraph()
	if graphHandler == nil {
		return nil, api.ErrDependencyGraphNotRegistered
	}
	taskStore := api.GetTaskStore()
	if taskStore == nil {
		return nil, api.ErrTaskStoreNotRegistered
	}

	dependentEdges, err := graphHandler.GetDependents(ctx, completedTaskID)
	if err != nil {
		return nil, err
	}
	if len(dependentEdges) == 0 {
		return []api.Task{}, nil
	}

	// Dedupe dependent IDs; duplicate ordered pairs are rejected at
	// write time but a task can appear once per distinct edge wiring.
	seen := make(map[string]bool, len(dependentEdges))
	dependentIDs := make([]string, 0, len(dependentEdges))
	for _, edge := range dependentEdges {
		if !seen[edge.DependentTaskID] {
			seen[edge.DependentTaskID] = true
			dependentIDs = append(dependentIDs, edge.DependentTaskID)
		}
	}

	var (
		mu        sync.Mutex
		unblocked []api.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.resolveParallelism)

	for _, dependentID := range dependentIDs {
		g.Go(func() error {
			status, err := e.CheckBlocked(gctx, dependentID)
			if err != nil {
				return err
			}
			if status.IsBlocked {
				return nil
			}

			dependent, err := taskStore.GetTask(gctx, dependentID)
			if err != nil {
				// Dangling edge: the dependent was deleted out-of-band.
				if api.IsNotFound(err) {
					return nil
				}
				return err
			}

			mu.Lock()
			unblocked = append(unblocked, *dependent)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(unblocked, func(i, j int) bool { return unblocked[i].ID < unblocked[j].ID })

	if len(unblocked) > 0 {
		taskIDs := make([]string, 0, len(unblocked))
		for _, t := range unblocked {
			taskIDs = append(taskIDs, t.ID)
		}
		api.PublishGraphEvent(api.GraphEvent{
			Type:      api.GraphEventTasksUnblocked,
			ProjectID: unblocked[0].ProjectID,
			TaskIDs:   taskIDs,
		})
		logging.Info("Engine", "Task %s completion unblocked %d dependent(s)", completedTaskID, len(unblocked))
	}

	if unblocked == nil {
		unblocked = []api.Task{}
	}
	return unblocked, nil
}

package api

import (
	"context"
	"time"
)

// TaskStatus represents the completion state of a task. Task records are
// owned by the task store; the graph engine only ever reads these values.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusPaused     TaskStatus = "paused"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the four known states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusPaused, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is the engine's view of a task record. It carries only the fields
// the dependency graph needs; everything else about a task lives in the
// task store.
type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	Name      string     `json:"name,omitempty"`
	Status    TaskStatus `json:"status"`
}

// DependencyEdge is a directed "must finish before" relationship:
// DependentTaskID cannot be considered unblocked until PrerequisiteTaskID
// has status completed.
type DependencyEdge struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"projectId"`
	DependentTaskID    string    `json:"dependentTaskId"`
	PrerequisiteTaskID string    `json:"prerequisiteTaskId"`
	CreatedBy          string    `json:"createdBy,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BlockStatus is the derived blocked state of a task. It is recomputed on
// demand from current edges and task statuses and never persisted.
type BlockStatus struct {
	TaskID string `json:"taskId"`

	// IsBlocked is true iff at least one prerequisite is not completed.
	IsBlocked bool `json:"isBlocked"`

	// BlockingTasks lists the prerequisites that are still incomplete.
	// Prerequisites that no longer resolve to a task record (deleted
	// out-of-band) are omitted here but still counted below.
	BlockingTasks []Task `json:"blockingTasks"`

	// TotalDependencies is the number of direct prerequisite edges.
	TotalDependencies int `json:"totalDependencies"`
}

// FlowNode is one node of a project's dependency flow, carrying just
// enough for client-side rendering.
type FlowNode struct {
	ID     string     `json:"id"`
	Name   string     `json:"name,omitempty"`
	Status TaskStatus `json:"status"`
}

// ProjectFlow is the node/edge projection of one project's dependency
// graph, assembled from a single consistent read of tasks and edges.
type ProjectFlow struct {
	ProjectID string           `json:"projectId"`
	Nodes     []FlowNode       `json:"nodes"`
	Edges     []DependencyEdge `json:"edges"`
}

// CallToolResult represents the result of a tool call on the MCP surface.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// DependencyGraphHandler provides the validated write path and read
// queries over the dependency edge set.
//
// All methods are safe for concurrent use. CreateDependency treats the
// cycle check and the write as one atomic unit (write-then-verify with
// rollback), so any sequence of successful calls leaves the per-project
// edge set acyclic.
type DependencyGraphHandler interface {
	// CreateDependency records that dependentTaskID must wait for
	// prerequisiteTaskID. Fails with a ValidationError carrying
	// CodeSelfDependency, CodeDuplicateEdge, CodeCrossProject or
	// CodeCycleDetected; fails with a NotFoundError when either task
	// does not exist.
	CreateDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID, createdBy string) (*DependencyEdge, error)

	// RemoveDependency deletes an edge by ID. Returns a NotFoundError
	// if the edge does not exist; callers should treat that as
	// non-fatal on repeated deletes.
	RemoveDependency(ctx context.Context, edgeID string) error

	// GetDependencies returns the edges where taskID is the dependent,
	// i.e. the task's direct prerequisites.
	GetDependencies(ctx context.Context, taskID string) ([]DependencyEdge, error)

	// GetDependents returns the edges where taskID is the prerequisite,
	// i.e. the tasks directly waiting on it.
	GetDependents(ctx context.Context, taskID string) ([]DependencyEdge, error)

	// ListProjectDependencies returns every edge scoped to one project.
	// Used by the flow projection; an unknown project yields an empty
	// slice.
	ListProjectDependencies(ctx context.Context, projectID string) ([]DependencyEdge, error)

	// ValidateCircularDependency reports whether inserting the edge
	// (dependentTaskID, prerequisiteTaskID) would close a cycle. It
	// performs no writes.
	ValidateCircularDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID string) (bool, error)
}

// BlockStatusHandler derives blocked/unblocked state from the edge set
// and current task statuses.
type BlockStatusHandler interface {
	// CheckBlocked computes the current BlockStatus of a task.
	CheckBlocked(ctx context.Context, taskID string) (*BlockStatus, error)

	// ResolveCompleted returns the direct dependents of completedTaskID
	// that transitioned to unblocked now that it is completed. The
	// caller must have durably recorded the completion first. Safe to
	// invoke repeatedly for the same task.
	ResolveCompleted(ctx context.Context, completedTaskID string) ([]Task, error)
}

// FlowHandler assembles the visualization projection of a project's
// dependency graph.
type FlowHandler interface {
	// GetProjectFlow returns the node/edge set for one project. Edges
	// with a dangling endpoint are omitted rather than failing the
	// projection.
	GetProjectFlow(ctx context.Context, projectID string) (*ProjectFlow, error)
}

// TaskStoreHandler is the read-only task record accessor consumed by the
// engine. Task records are owned externally; the engine never writes
// through this interface.
type TaskStoreHandler interface {
	// GetTask returns a task record by ID, or a NotFoundError.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// GetTaskStatus returns just the completion status of a task.
	GetTaskStatus(ctx context.Context, taskID string) (TaskStatus, error)

	// ListTasksByIDs returns the task records for the given IDs.
	// Missing IDs are silently omitted from the result.
	ListTasksByIDs(ctx context.Context, taskIDs []string) ([]Task, error)

	// ListTasksByProject returns all task records in a project.
	ListTasksByProject(ctx context.Context, projectID string) ([]Task, error)
}

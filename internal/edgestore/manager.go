package edgestore

import (
	"context"
	"sync"
	"time"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/internal/graph"
	"taskflow/pkg/logging"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

// entityType is the storage subdirectory holding edge records.
const entityType = "edges"

// Manager owns the dependency edge set: durable YAML records through
// config.Storage mirrored in an in-memory index, plus the validated
// write path that keeps every project's edge set acyclic.
//
// The cycle check and the write for one CreateDependency call are
// treated as an atomic unit through an optimistic discipline: validate,
// insert, re-verify the enlarged project subgraph, and roll the insert
// back if the post-condition no longer holds. The whole round is retried
// a bounded number of times before the failure surfaces as
// CYCLE_DETECTED.
type Manager struct {
	storage *config.Storage

	// createRetries bounds the validate-write-verify rounds.
	createRetries int

	mu    sync.RWMutex
	edges map[string]api.DependencyEdge

	// byProject indexes edge IDs per project so cycle validation only
	// ever traverses one project's subgraph.
	byProject map[string][]string
}

// NewManager creates an edge manager over the given storage.
func NewManager(storage *config.Storage, createRetries int) *Manager {
	if createRetries < 1 {
		createRetries = config.DefaultCreateRetries
	}
	return &Manager{
		storage:       storage,
		createRetries: createRetries,
		edges:         make(map[string]api.DependencyEdge),
		byProject:     make(map[string][]string),
	}
}

// LoadDefinitions re-reads all edge YAML files into memory. Invalid
// files are logged and skipped.
func (m *Manager) LoadDefinitions() error {
	names, err := m.storage.List(entityType)
	if err != nil {
		return err
	}

	edges := make(map[string]api.DependencyEdge, len(names))
	byProject := make(map[string][]string)

	var skipped int
	for _, name := range names {
		data, err := m.storage.Load(entityType, name)
		if err != nil {
			logging.Warn("EdgeManager", "Skipping unreadable edge file %s: %v", name, err)
			skipped++
			continue
		}

		var record EdgeRecord
		if err := yaml.Unmarshal(data, &record); err != nil {
			logging.Warn("EdgeManager", "Skipping malformed edge file %s: %v", name, err)
			skipped++
			continue
		}
		if err := record.Validate(); err != nil {
			logging.Warn("EdgeManager", "Skipping invalid edge file %s: %v", name, err)
			skipped++
			continue
		}

		e := record.ToEdge()
		edges[e.ID] = e
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e.ID)
	}

	m.mu.Lock()
	m.edges = edges
	m.byProject = byProject
	m.mu.Unlock()

	logging.Info("EdgeManager", "Loaded %d dependency edges (%d skipped)", len(edges), skipped)
	return nil
}

// CreateDependency records that dependentTaskID must wait for
// prerequisiteTaskID. See the Manager doc for the atomicity discipline.
func (m *Manager) CreateDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID, createdBy string) (*api.DependencyEdge, error) {
	if dependentTaskID == prerequisiteTaskID {
		return nil, api.NewValidationError(api.CodeSelfDependency,
			"task %s cannot depend on itself", dependentTaskID)
	}

	taskStore := api.GetTaskStore()
	if taskStore == nil {
		return nil, api.ErrTaskStoreNotRegistered
	}

	dependent, err := taskStore.GetTask(ctx, dependentTaskID)
	if err != nil {
		return nil, err
	}
	prerequisite, err := taskStore.GetTask(ctx, prerequisiteTaskID)
	if err != nil {
		return nil, err
	}
	if dependent.ProjectID != prerequisite.ProjectID {
		return nil, api.NewValidationError(api.CodeCrossProject,
			"tasks %s and %s belong to different projects", dependentTaskID, prerequisiteTaskID)
	}
	projectID := dependent.ProjectID

	var lastErr error
	for attempt := 1; attempt <= m.createRetries; attempt++ {
		edge, err := m.tryCreate(projectID, dependentTaskID, prerequisiteTaskID, createdBy)
		if err == nil {
			api.PublishGraphEvent(api.GraphEvent{
				Type:      api.GraphEventEdgeCreated,
				ProjectID: projectID,
				EdgeID:    edge.ID,
				TaskIDs:   []string{dependentTaskID, prerequisiteTaskID},
			})
			logging.Info("EdgeManager", "Created dependency %s: %s -> %s (project %s)",
				edge.ID, dependentTaskID, prerequisiteTaskID, projectID)
			return edge, nil
		}
		if !api.IsConsistency(err) {
			return nil, err
		}

		// Lost a race: another writer changed the project subgraph
		// between our validation and verification. Re-validate fresh.
		logging.Warn("EdgeManager", "Edge insert %s -> %s failed verification (attempt %d/%d), retrying",
			dependentTaskID, prerequisiteTaskID, attempt, m.createRetries)
		lastErr = err
	}

	logging.Error("EdgeManager", lastErr, "Edge insert %s -> %s exhausted retries", dependentTaskID, prerequisiteTaskID)
	return nil, api.NewValidationError(api.CodeCycleDetected,
		"dependency from %s to %s would create a circular dependency", dependentTaskID, prerequisiteTaskID)
}

// tryCreate performs one validate-write-verify round. A ConsistencyError
// return means the caller may retry; any other error is final.
func (m *Manager) tryCreate(projectID, dependentTaskID, prerequisiteTaskID, createdBy string) (*api.DependencyEdge, error) {
	// Validation phase against the currently observed edge set.
	idx := graph.NewIndex(m.projectGraphEdges(projectID))
	if m.pairCount(dependentTaskID, prerequisiteTaskID) > 0 {
		return nil, api.NewValidationError(api.CodeDuplicateEdge,
			"dependency from %s to %s already exists", dependentTaskID, prerequisiteTaskID)
	}
	if idx.WouldCycle(graph.TaskID(dependentTaskID), graph.TaskID(prerequisiteTaskID)) {
		return nil, api.NewValidationError(api.CodeCycleDetected,
			"dependency from %s to %s would create a circular dependency", dependentTaskID, prerequisiteTaskID)
	}

	edge := api.DependencyEdge{
		ID:                 uuid.New().String(),
		ProjectID:          projectID,
		DependentTaskID:    dependentTaskID,
		PrerequisiteTaskID: prerequisiteTaskID,
		CreatedBy:          createdBy,
		CreatedAt:          time.Now().UTC(),
	}

	if err := m.insert(edge); err != nil {
		return nil, err
	}

	// Verification phase over the enlarged subgraph. The unique-pair
	// check re-runs here so two racing creates of the same pair
	// converge to one surviving edge.
	verifyIdx := graph.NewIndex(m.projectGraphEdges(projectID))
	if m.pairCount(dependentTaskID, prerequisiteTaskID) > 1 {
		m.rollback(edge)
		return nil, api.NewValidationError(api.CodeDuplicateEdge,
			"dependency from %s to %s already exists", dependentTaskID, prerequisiteTaskID)
	}
	if !verifyIdx.IsAcyclic() {
		m.rollback(edge)
		return nil, &api.ConsistencyError{Attempts: 1}
	}

	return &edge, nil
}

// insert persists the edge and adds it to the in-memory index.
func (m *Manager) insert(edge api.DependencyEdge) error {
	data, err := yaml.Marshal(FromEdge(edge))
	if err != nil {
		return err
	}
	if err := m.storage.Save(entityType, edge.ID, data); err != nil {
		return err
	}

	m.mu.Lock()
	m.edges[edge.ID] = edge
	m.byProject[edge.ProjectID] = append(m.byProject[edge.ProjectID], edge.ID)
	m.mu.Unlock()
	return nil
}

// rollback removes a just-inserted edge after failed verification.
func (m *Manager) rollback(edge api.DependencyEdge) {
	if err := m.removeLocked(edge.ID); err != nil {
		// The edge is gone either way; log and move on.
		logging.Warn("EdgeManager", "Rollback of edge %s: %v", edge.ID, err)
	}
}

// RemoveDependency deletes an edge by ID. Returns a NotFoundError when
// the edge does not exist; repeated deletes of the same edge leave all
// other state untouched.
func (m *Manager) RemoveDependency(ctx context.Context, edgeID string) error {
	m.mu.RLock()
	edge, ok := m.edges[edgeID]
	m.mu.RUnlock()
	if !ok {
		return api.NewEdgeNotFoundError(edgeID)
	}

	if err := m.removeLocked(edgeID); err != nil {
		return err
	}

	api.PublishGraphEvent(api.GraphEvent{
		Type:      api.GraphEventEdgeRemoved,
		ProjectID: edge.ProjectID,
		EdgeID:    edgeID,
		TaskIDs:   []string{edge.DependentTaskID, edge.PrerequisiteTaskID},
	})
	logging.Info("EdgeManager", "Removed dependency %s: %s -> %s",
		edgeID, edge.DependentTaskID, edge.PrerequisiteTaskID)
	return nil
}

// removeLocked deletes an edge from storage and the in-memory index.
func (m *Manager) removeLocked(edgeID string) error {
	m.mu.Lock()
	edge, ok := m.edges[edgeID]
	if ok {
		delete(m.edges, edgeID)
		m.byProject[edge.ProjectID] = removeString(m.byProject[edge.ProjectID], edgeID)
	}
	m.mu.Unlock()

	if !ok {
		return api.NewEdgeNotFoundError(edgeID)
	}
	return m.storage.Delete(entityType, edgeID)
}

// GetEdge returns an edge by ID.
func (m *Manager) GetEdge(edgeID string) (*api.DependencyEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	edge, ok := m.edges[edgeID]
	if !ok {
		return nil, api.NewEdgeNotFoundError(edgeID)
	}
	out := edge
	return &out, nil
}

// GetDependencies returns the edges where taskID is the dependent, i.e.
// the task's direct prerequisites.
func (m *Manager) GetDependencies(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []api.DependencyEdge
	for _, e := range m.edges {
		if e.DependentTaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetDependents returns the edges where taskID is the prerequisite, i.e.
// the tasks directly waiting on it.
func (m *Manager) GetDependents(ctx context.Context, taskID string) ([]api.DependencyEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []api.DependencyEdge
	for _, e := range m.edges {
		if e.PrerequisiteTaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListProjectEdges returns all edges scoped to one project.
func (m *Manager) ListProjectEdges(projectID string) []api.DependencyEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byProject[projectID]
	out := make([]api.DependencyEdge, 0, len(ids))
	for _, id := range ids {
		if e, ok := m.edges[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// ValidateCircularDependency reports whether inserting the candidate
// edge would close a cycle. Read-only; self-loops report true since the
// resulting graph would not be a DAG, even though the write path rejects
// them earlier with a more specific code.
func (m *Manager) ValidateCircularDependency(ctx context.Context, dependentTaskID, prerequisiteTaskID string) (bool, error) {
	if dependentTaskID == prerequisiteTaskID {
		return true, nil
	}

	taskStore := api.GetTaskStore()
	if taskStore == nil {
		return false, api.ErrTaskStoreNotRegistered
	}
	dependent, err := taskStore.GetTask(ctx, dependentTaskID)
	if err != nil {
		return false, err
	}

	idx := graph.NewIndex(m.projectGraphEdges(dependent.ProjectID))
	return idx.WouldCycle(graph.TaskID(dependentTaskID), graph.TaskID(prerequisiteTaskID)), nil
}

// projectGraphEdges converts one project's edges into the graph
// package's edge type.
func (m *Manager) projectGraphEdges(projectID string) []graph.Edge {
	edges := m.ListProjectEdges(projectID)
	out := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, graph.Edge{
			ID:           e.ID,
			Dependent:    graph.TaskID(e.DependentTaskID),
			Prerequisite: graph.TaskID(e.PrerequisiteTaskID),
		})
	}
	return out
}

// pairCount counts edges with the exact ordered endpoint pair.
func (m *Manager) pairCount(dependentTaskID, prerequisiteTaskID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, e := range m.edges {
		if e.DependentTaskID == dependentTaskID && e.PrerequisiteTaskID == prerequisiteTaskID {
			count++
		}
	}
	return count
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

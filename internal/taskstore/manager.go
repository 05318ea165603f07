package taskstore

import (
	"context"
	"sync"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/pkg/logging"

	"sigs.k8s.io/yaml"
)

// entityType is the storage subdirectory holding task records.
const entityType = "tasks"

// Manager is the filesystem-backed task record accessor. It keeps an
// in-memory index of all task records, loaded from YAML files through
// config.Storage, and serves the read-only accessor interface the
// engine consumes.
//
// The engine never mutates task status; SaveTask exists for the external
// owner of task records (seeding, tests, the watcher's reload path uses
// LoadDefinitions instead).
type Manager struct {
	storage *config.Storage

	mu        sync.RWMutex
	tasks     map[string]api.Task
	byProject map[string][]string
}

// NewManager creates a task record manager over the given storage.
func NewManager(storage *config.Storage) *Manager {
	return &Manager{
		storage:   storage,
		tasks:     make(map[string]api.Task),
		byProject: make(map[string][]string),
	}
}

// LoadDefinitions re-reads all task YAML files into memory. Invalid
// files are logged and skipped; a partially readable directory never
// fails the whole load.
func (m *Manager) LoadDefinitions() error {
	names, err := m.storage.List(entityType)
	if err != nil {
		return err
	}

	tasks := make(map[string]api.Task, len(names))
	byProject := make(map[string][]string)

	var skipped int
	for _, name := range names {
		data, err := m.storage.Load(entityType, name)
		if err != nil {
			logging.Warn("TaskStore", "Skipping unreadable task file %s: %v", name, err)
			skipped++
			continue
		}

		var record TaskRecord
		if err := yaml.Unmarshal(data, &record); err != nil {
			logging.Warn("TaskStore", "Skipping malformed task file %s: %v", name, err)
			skipped++
			continue
		}
		if err := record.Validate(); err != nil {
			logging.Warn("TaskStore", "Skipping invalid task file %s: %v", name, err)
			skipped++
			continue
		}

		task := record.ToTask()
		tasks[task.ID] = task
		byProject[task.ProjectID] = append(byProject[task.ProjectID], task.ID)
	}

	m.mu.Lock()
	m.tasks = tasks
	m.byProject = byProject
	m.mu.Unlock()

	logging.Info("TaskStore", "Loaded %d task records (%d skipped)", len(tasks), skipped)
	return nil
}

// GetTask returns a task record by ID, or a NotFoundError.
func (m *Manager) GetTask(ctx context.Context, taskID string) (*api.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return nil, api.NewTaskNotFoundError(taskID)
	}
	out := task
	return &out, nil
}

// GetTaskStatus returns just the completion status of a task.
func (m *Manager) GetTaskStatus(ctx context.Context, taskID string) (api.TaskStatus, error) {
	task, err := m.GetTask(ctx, taskID)
	if err != nil {
		return "", err
	}
	return task.Status, nil
}

// ListTasksByIDs returns the task records for the given IDs. Missing IDs
// are silently omitted so a dangling edge endpoint degrades to a smaller
// result instead of an error.
func (m *Manager) ListTasksByIDs(ctx context.Context, taskIDs []string) ([]api.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]api.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		if task, ok := m.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out, nil
}

// ListTasksByProject returns all task records in a project. An unknown
// project yields an empty slice.
func (m *Manager) ListTasksByProject(ctx context.Context, projectID string) ([]api.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byProject[projectID]
	out := make([]api.Task, 0, len(ids))
	for _, id := range ids {
		if task, ok := m.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out, nil
}

// SaveTask persists a task record and updates the in-memory index. The
// graph engine never calls this; it exists for the record owner.
func (m *Manager) SaveTask(task api.Task) error {
	if !task.Status.IsValid() {
		return config.ValidationError{Field: "status", Value: string(task.Status), Message: "unknown task status"}
	}

	data, err := yaml.Marshal(FromTask(task))
	if err != nil {
		return err
	}
	if err := m.storage.Save(entityType, task.ID, data); err != nil {
		return err
	}

	m.mu.Lock()
	if old, ok := m.tasks[task.ID]; ok && old.ProjectID != task.ProjectID {
		m.byProject[old.ProjectID] = removeString(m.byProject[old.ProjectID], task.ID)
	}
	if _, ok := m.tasks[task.ID]; !ok || m.tasks[task.ID].ProjectID != task.ProjectID {
		m.byProject[task.ProjectID] = append(m.byProject[task.ProjectID], task.ID)
	}
	m.tasks[task.ID] = task
	m.mu.Unlock()

	return nil
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

package taskstore

import (
	"fmt"
	"strings"

	"taskflow/internal/api"
)

// TaskRecord is the persisted shape of a task as it appears in YAML files
// under tasks/. Records are parsed into api.Task at this boundary before
// any engine logic sees them; nothing downstream handles raw YAML
// payloads.
type TaskRecord struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name,omitempty"`
	Status    string `json:"status"`
}

// Validate checks the record for structural problems. Unknown status
// strings are rejected here rather than being carried into the engine.
func (r TaskRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("task record missing id")
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		return fmt.Errorf("task record %s missing projectId", r.ID)
	}
	if !api.TaskStatus(r.Status).IsValid() {
		return fmt.Errorf("task record %s has unknown status %q", r.ID, r.Status)
	}
	return nil
}

// ToTask converts a validated record into the engine's task type.
func (r TaskRecord) ToTask() api.Task {
	return api.Task{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Name:      r.Name,
		Status:    api.TaskStatus(r.Status),
	}
}

// FromTask converts an engine task back into its persisted record shape.
func FromTask(t api.Task) TaskRecord {
	return TaskRecord{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Name:      t.Name,
		Status:    string(t.Status),
	}
}

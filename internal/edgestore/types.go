package edgestore

import (
	"fmt"
	"strings"
	"time"

	"taskflow/internal/api"
)

// EdgeRecord is the persisted shape of a dependency edge as it appears
// in YAML files under edges/. Parsed into api.DependencyEdge at the
// storage boundary before any engine logic runs.
type EdgeRecord struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"projectId"`
	DependentTaskID    string    `json:"dependentTaskId"`
	PrerequisiteTaskID string    `json:"prerequisiteTaskId"`
	CreatedBy          string    `json:"createdBy,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Validate checks the record for structural problems, including the
// self-loop invariant. A stored self-loop would mean the file was edited
// by hand; it is rejected at load time like any other corrupt record.
func (r EdgeRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("edge record missing id")
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		return fmt.Errorf("edge record %s missing projectId", r.ID)
	}
	if strings.TrimSpace(r.DependentTaskID) == "" || strings.TrimSpace(r.PrerequisiteTaskID) == "" {
		return fmt.Errorf("edge record %s missing an endpoint", r.ID)
	}
	if r.DependentTaskID == r.PrerequisiteTaskID {
		return fmt.Errorf("edge record %s is a self-loop", r.ID)
	}
	return nil
}

// ToEdge converts a validated record into the engine's edge type.
func (r EdgeRecord) ToEdge() api.DependencyEdge {
	return api.DependencyEdge{
		ID:                 r.ID,
		ProjectID:          r.ProjectID,
		DependentTaskID:    r.DependentTaskID,
		PrerequisiteTaskID: r.PrerequisiteTaskID,
		CreatedBy:          r.CreatedBy,
		CreatedAt:          r.CreatedAt,
	}
}

// FromEdge converts an engine edge back into its persisted record shape.
func FromEdge(e api.DependencyEdge) EdgeRecord {
	return EdgeRecord{
		ID:                 e.ID,
		ProjectID:          e.ProjectID,
		DependentTaskID:    e.DependentTaskID,
		PrerequisiteTaskID: e.PrerequisiteTaskID,
		CreatedBy:          e.CreatedBy,
		CreatedAt:          e.CreatedAt,
	}
}

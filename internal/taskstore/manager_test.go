package taskstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskflow/internal/api"
	"taskflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, dir, name, content string) {
	t.Helper()
	tasksDir := filepath.Join(dir, "tasks")
	require.NoError(t, os.MkdirAll(tasksDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tasksDir, name), []byte(content), 0644))
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeTaskFile(t, dir, "t1.yaml", "id: t1\nprojectId: p1\nname: Design schema\nstatus: completed\n")
	writeTaskFile(t, dir, "t2.yaml", "id: t2\nprojectId: p1\nstatus: not_started\n")
	writeTaskFile(t, dir, "t3.yaml", "id: t3\nprojectId: p2\nstatus: in_progress\n")

	m := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m.LoadDefinitions())

	task, err := m.GetTask(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, api.TaskStatusCompleted, task.Status)
	assert.Equal(t, "Design schema", task.Name)

	p1, err := m.ListTasksByProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, p1, 2)

	p2, err := m.ListTasksByProject(context.Background(), "p2")
	require.NoError(t, err)
	assert.Len(t, p2, 1)
}

func TestLoadDefinitionsSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeTaskFile(t, dir, "good.yaml", "id: t1\nprojectId: p1\nstatus: paused\n")
	writeTaskFile(t, dir, "nostatus.yaml", "id: t2\nprojectId: p1\nstatus: on_hold\n")
	writeTaskFile(t, dir, "noproject.yaml", "id: t3\nstatus: completed\n")
	writeTaskFile(t, dir, "garbage.yaml", "{{{ not yaml")

	m := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m.LoadDefinitions())

	_, err := m.GetTask(context.Background(), "t1")
	assert.NoError(t, err)

	for _, id := range []string{"t2", "t3"} {
		_, err := m.GetTask(context.Background(), id)
		assert.True(t, api.IsNotFound(err), "task %s should have been skipped", id)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	m := NewManager(config.NewStorageWithPath(t.TempDir()))
	require.NoError(t, m.LoadDefinitions())

	_, err := m.GetTask(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestGetTaskStatus(t *testing.T) {
	dir := t.TempDir()
	writeTaskFile(t, dir, "t1.yaml", "id: t1\nprojectId: p1\nstatus: in_progress\n")

	m := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m.LoadDefinitions())

	status, err := m.GetTaskStatus(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, api.TaskStatusInProgress, status)
}

func TestListTasksByIDsOmitsMissing(t *testing.T) {
	dir := t.TempDir()
	writeTaskFile(t, dir, "t1.yaml", "id: t1\nprojectId: p1\nstatus: completed\n")

	m := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m.LoadDefinitions())

	tasks, err := m.ListTasksByIDs(context.Background(), []string{"t1", "deleted", "also-gone"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestSaveTaskRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m.LoadDefinitions())

	task := api.Task{ID: "t9", ProjectID: "p1", Name: "Ship it", Status: api.TaskStatusNotStarted}
	require.NoError(t, m.SaveTask(task))

	got, err := m.GetTask(context.Background(), "t9")
	require.NoError(t, err)
	assert.Equal(t, task, *got)

	// Survives a reload from disk
	m2 := NewManager(config.NewStorageWithPath(dir))
	require.NoError(t, m2.LoadDefinitions())
	got, err = m2.GetTask(context.Background(), "t9")
	require.NoError(t, err)
	assert.Equal(t, task, *got)
}

func TestSaveTaskRejectsUnknownStatus(t *testing.T) {
	m := NewManager(config.NewStorageWithPath(t.TempDir()))
	err := m.SaveTask(api.Task{ID: "t1", ProjectID: "p1", Status: "someday"})
	assert.Error(t, err)
}

func TestTaskRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  TaskRecord
		wantErr bool
	}{
		{"valid", TaskRecord{ID: "t1", ProjectID: "p1", Status: "completed"}, false},
		{"missing id", TaskRecord{ProjectID: "p1", Status: "completed"}, true},
		{"missing project", TaskRecord{ID: "t1", Status: "completed"}, true},
		{"unknown status", TaskRecord{ID: "t1", ProjectID: "p1", Status: "done"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

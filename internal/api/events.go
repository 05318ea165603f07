package api

import (
	"sync"
	"time"

	"taskflow/pkg/logging"
)

// GraphEventType identifies what changed in the dependency graph.
type GraphEventType string

const (
	// GraphEventEdgeCreated is published after a validated edge insert.
	GraphEventEdgeCreated GraphEventType = "edge_created"

	// GraphEventEdgeRemoved is published after an edge delete.
	GraphEventEdgeRemoved GraphEventType = "edge_removed"

	// GraphEventTasksUnblocked is published when a resolution cascade
	// finds newly unblocked dependents. Advisory only.
	GraphEventTasksUnblocked GraphEventType = "tasks_unblocked"

	// GraphEventTaskRecordsChanged is published when task records change
	// out-of-band (detected by the task store watcher).
	GraphEventTaskRecordsChanged GraphEventType = "task_records_changed"
)

// GraphEvent represents a change to the dependency graph or the task
// records it derives state from. Subscribers use it to invalidate caches
// and for observability; the event stream carries no authority of its own.
type GraphEvent struct {
	Type      GraphEventType `json:"type"`
	ProjectID string         `json:"projectId,omitempty"`
	EdgeID    string         `json:"edgeId,omitempty"`
	TaskIDs   []string       `json:"taskIds,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// GraphEventSubscriber is implemented by components that want to receive
// graph mutation events (e.g. the flow projection cache).
type GraphEventSubscriber interface {
	OnGraphEvent(event GraphEvent)
}

var (
	// graphEventSubscribers stores the list of components subscribed to
	// graph events. Access is protected by graphEventMutex.
	graphEventSubscribers []GraphEventSubscriber
	graphEventMutex       sync.Mutex
)

// SubscribeToGraphEvents registers a subscriber for graph mutation events.
// Subscribers are notified synchronously in registration order; handlers
// must be fast and must not publish events themselves while handling one.
func SubscribeToGraphEvents(s GraphEventSubscriber) {
	graphEventMutex.Lock()
	defer graphEventMutex.Unlock()
	graphEventSubscribers = append(graphEventSubscribers, s)
	logging.Debug("API", "Graph event subscriber registered (total: %d)", len(graphEventSubscribers))
}

// PublishGraphEvent delivers an event to all current subscribers. The
// timestamp is filled in if the caller left it zero.
func PublishGraphEvent(event GraphEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	graphEventMutex.Lock()
	subscribers := make([]GraphEventSubscriber, len(graphEventSubscribers))
	copy(subscribers, graphEventSubscribers)
	graphEventMutex.Unlock()

	for _, s := range subscribers {
		s.OnGraphEvent(event)
	}
}

// ResetGraphEventSubscribers clears all subscribers. Intended for tests.
func ResetGraphEventSubscribers() {
	graphEventMutex.Lock()
	defer graphEventMutex.Unlock()
	graphEventSubscribers = nil
}

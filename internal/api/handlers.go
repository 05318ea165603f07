package api

import (
	"sync"

	"taskflow/pkg/logging"
)

// Handler registry variables store the registered implementations.
// These variables are protected by handlerMutex for thread-safe access.
var (
	dependencyGraphHandler DependencyGraphHandler
	blockStatusHandler     BlockStatusHandler
	flowHandler            FlowHandler
	taskStoreHandler       TaskStoreHandler

	// handlerMutex protects all handler registry operations for
	// thread-safe registration and access.
	handlerMutex sync.RWMutex
)

// RegisterDependencyGraph registers the dependency graph handler
// implementation. This handler owns the validated edge write path and the
// direct dependency/dependent queries.
//
// The registration is thread-safe and should be called during system
// initialization. Only one handler can be registered at a time; subsequent
// registrations replace the previous handler.
//
// Example:
//
//	adapter := &edgestore.Adapter{manager: mgr}
//	api.RegisterDependencyGraph(adapter)
func RegisterDependencyGraph(h DependencyGraphHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering dependency graph handler: %v", h != nil)
	dependencyGraphHandler = h
}

// GetDependencyGraph returns the registered dependency graph handler, or
// nil if none has been registered. Callers must check for nil.
func GetDependencyGraph() DependencyGraphHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return dependencyGraphHandler
}

// RegisterBlockStatus registers the block status handler implementation.
// This handler derives blocked/unblocked state and computes the one-hop
// resolution cascade when a task completes.
func RegisterBlockStatus(h BlockStatusHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering block status handler: %v", h != nil)
	blockStatusHandler = h
}

// GetBlockStatus returns the registered block status handler, or nil if
// none has been registered.
func GetBlockStatus() BlockStatusHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return blockStatusHandler
}

// RegisterFlow registers the flow handler implementation. This handler
// assembles the per-project node/edge projection used for visualization.
func RegisterFlow(h FlowHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering flow handler: %v", h != nil)
	flowHandler = h
}

// GetFlow returns the registered flow handler, or nil if none has been
// registered.
func GetFlow() FlowHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return flowHandler
}

// RegisterTaskStore registers the task store handler implementation. This
// is the read-only task record accessor the engine consults for task
// identity, project membership and completion status.
func RegisterTaskStore(h TaskStoreHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering task store handler: %v", h != nil)
	taskStoreHandler = h
}

// GetTaskStore returns the registered task store handler, or nil if none
// has been registered.
func GetTaskStore() TaskStoreHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return taskStoreHandler
}

// ResetHandlers clears all registered handlers. Intended for tests that
// need a clean registry between cases.
func ResetHandlers() {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	dependencyGraphHandler = nil
	blockStatusHandler = nil
	flowHandler = nil
	taskStoreHandler = nil
}

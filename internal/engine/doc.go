// Package engine derives state from the dependency graph: a task's
// blocked status, the one-hop cascade of dependents that become
// unblocked when a task completes, and the per-project flow projection
// used for visualization.
//
// Everything here is a pure read over the edge store and the task
// record accessor - the engine persists nothing and never mutates task
// status. Blocked/unblocked is advisory: reporting a task as unblocked
// does not transition it, and whoever acts on the information owns the
// consequences.
package engine

// Package api implements the Service Locator Pattern for taskflow's
// dependency graph engine, providing central coordination between the
// edge store, the derivation engine, the task record accessor and the
// outer surfaces (MCP server and CLI).
//
// # Architecture
//
// The api package is the ONLY permitted communication channel between
// the major components. Components never import each other directly;
// they implement the handler interfaces defined here and register
// themselves during bootstrap:
//
//	edgestore  -> DependencyGraphHandler (validated writes, edge queries)
//	engine     -> BlockStatusHandler, FlowHandler (derived state)
//	taskstore  -> TaskStoreHandler (read-only task records)
//
// Consumers retrieve handlers through the Get* accessors and must check
// for nil (handler not registered yet).
//
// # Error taxonomy
//
// Three typed failures cover every operation:
//
//   - ValidationError: the caller's request was semantically invalid
//     (SELF_DEPENDENCY, DUPLICATE_EDGE, CYCLE_DETECTED, CROSS_PROJECT).
//     Never retried internally.
//   - NotFoundError: a directly named resource is absent. Query paths
//     omit dangling references instead of raising this.
//   - ConsistencyError: the optimistic write path lost a race and
//     exhausted its retries; converted to CYCLE_DETECTED at the boundary.
//
// No failure in this engine is fatal to the overall system.
//
// # Events
//
// Edge mutations and cascade results are published as GraphEvents to
// in-process subscribers. The flow projection cache subscribes to these
// for explicit invalidation; nothing else depends on event delivery for
// correctness.
package api

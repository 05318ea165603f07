// Package edgestore implements the durable dependency edge store and the
// validated edge write path.
//
// Every edge is a directed record (dependentTaskId, prerequisiteTaskId):
// the prerequisite must complete before the dependent counts as
// unblocked. The store enforces four invariants at write time:
//
//   - no self-loops
//   - no duplicate ordered pairs
//   - both endpoints in the same project
//   - each project's edge set stays a DAG
//
// The DAG invariant is guarded twice per insert: a pre-check against the
// observed subgraph, then a post-write verification of the enlarged
// subgraph with rollback and bounded retry, so concurrent inserts that
// are individually acyclic cannot jointly close a cycle.
//
// Edges persist as one YAML file per edge under <config>/edges, mirrored
// in an in-memory index; the graph itself is an edge list keyed by
// opaque task IDs with adjacency computed per query (internal/graph),
// never a pointer graph between task objects.
package edgestore

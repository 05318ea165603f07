// Package graph contains the pure dependency graph algorithms: adjacency
// indexing over a flat edge list, transitive reachability, would-cycle
// checks for candidate edges, and full-set acyclicity verification.
//
// The package has no knowledge of persistence, projects or task records;
// callers hand it the already-scoped edge subset (one project's edges)
// and interpret the answers. Traversal cost is O(V+E) over that subset.
package graph

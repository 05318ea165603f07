// Package graphserver exposes the dependency graph operations as MCP
// tools over stdio, SSE, or streamable-http.
//
// The server registers eight tools (prefixed with the configured tool
// prefix, default "taskflow"):
//
//   - create_dependency: validated edge insert
//   - remove_dependency: edge delete by ID
//   - list_dependencies: edges where a task is the dependent
//   - list_dependents: edges where a task is the prerequisite
//   - project_flow: {nodes, edges} projection of one project
//   - validate_cycle: dry-run cycle check without writing
//   - check_blocked: block status derivation for one task
//   - resolve_completed: one-hop unblock cascade after completion
//
// Tool handlers resolve their backing implementation through the
// internal/api locator at call time, so the server stays decoupled from
// the storage and engine packages. Results are JSON text content;
// domain errors surface as error results via api.HandleError rather
// than protocol errors.
package graphserver

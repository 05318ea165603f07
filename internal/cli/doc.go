// Package cli provides command-line interface utilities for taskflow.
//
// It is the interface layer between cobra commands and the running graph
// server: commands name a tool and its arguments, the package handles
// connection, execution, and presentation.
//
// # Core Components
//
// ToolExecutor provides high-level tool execution with multiple output formats:
//   - MCP client integration with the taskflow graph server
//   - Output formats: console text, rich tables, JSON, and YAML
//   - Progress indicators with spinners for long-running operations
//   - Server connectivity validation before attempting operations
//
// Client is a thin MCP client supporting the SSE and streamable-http
// transports, with per-call timeouts and typed JSON result decoding.
//
// Common utilities handle server connectivity and message formatting:
//   - Endpoint resolution from the --endpoint flag, TASKFLOW_ENDPOINT,
//     or configuration, in that order
//   - Server health checks with actionable error messages
//   - Consistent formatting for success (✓), error, and warning (⚠) messages
//
// ConnectionError classifies transport failures (DNS, timeout, refused)
// so users see a direct hint instead of a raw protocol error.
package cli

// Package taskstore implements the task record accessor boundary.
//
// Task records are owned outside the dependency graph engine: the engine
// reads a task's identity, project membership and completion status and
// never writes status itself. This package supplies the filesystem-backed
// implementation of that read-only boundary so taskflow runs standalone:
// YAML records under <config>/tasks are parsed into typed structs at load
// time (loosely-typed payloads stop here) and indexed in memory.
//
// A fsnotify watcher picks up out-of-band edits - the normal way a task
// gets completed - reloads the index and publishes a graph event so
// derived projections can invalidate.
package taskstore

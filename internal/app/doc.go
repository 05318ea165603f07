// Package app provides application bootstrap and lifecycle management
// for taskflow.
//
// It handles initialization, configuration loading, service wiring, API
// adapter registration, and running the graph server.
//
// # Components
//
//  1. Bootstrap (bootstrap.go): two-phase initialization and lifecycle
//  2. Configuration (config.go): application runtime configuration
//  3. Services (services.go): service wiring and adapter registration
//  4. Modes (modes.go): the serve loop with graceful shutdown
//
// # Configuration loading strategies
//
// Layered configuration (default):
//  1. Built-in defaults
//  2. User configuration (~/.config/taskflow/config.yaml)
//  3. Project configuration (./.taskflow/config.yaml)
//
// Single path configuration loads from the specified directory only,
// which is what tests and custom deployments use.
//
// # Wiring order
//
// Services initialize in dependency order: storage, then the task store
// (edge validation resolves tasks through it), then the edge store, then
// the derivation engine. Each component registers its adapter with
// internal/api, so nothing holds direct references across packages.
package app

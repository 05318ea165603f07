// Package config handles taskflow's configuration loading and the generic
// YAML entity storage used by the edge and task stores.
//
// Configuration is layered: built-in defaults, then ~/.config/taskflow,
// then a project-local .taskflow directory, with later layers overriding
// earlier ones. A single explicit directory can be used instead via
// LoadConfigFromPath (the --config-path CLI flag).
//
// The same directory tree also holds the persisted entities:
//
//	<config>/config.yaml    main configuration
//	<config>/edges/*.yaml   dependency edge records
//	<config>/tasks/*.yaml   task records
//
// Storage is a small file-per-entity store with coarse locking; the
// managers layered on top keep their own in-memory indexes and treat
// Storage purely as the durability mechanism.
package config

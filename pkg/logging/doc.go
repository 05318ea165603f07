// Package logging provides the structured logging facility used across
// taskflow. It wraps log/slog with a small subsystem-tagged API so that
// every component logs in a consistent shape without carrying a logger
// around.
//
// Usage:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Info("EdgeManager", "Loaded %d edges", n)
//	logging.Error("EdgeManager", err, "Failed to persist edge %s", id)
package logging

package app

import (
	"taskflow/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug enables verbose logging
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Custom configuration path (optional)
	// When set, disables layered configuration loading
	ConfigPath string

	// Loaded environment configuration
	TaskflowConfig *config.TaskflowConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskflow/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/taskflow"
	configFileName = "config.yaml"
)

// GetUserConfigDir returns the per-user configuration directory
// (~/.config/taskflow).
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// GetDefaultConfigPathOrPanic returns the user config directory or panics
// when the home directory cannot be resolved. Used by CLI flag defaults
// where there is no error channel.
func GetDefaultConfigPathOrPanic() string {
	dir, err := GetUserConfigDir()
	if err != nil {
		panic(err)
	}
	return dir
}

// LoadConfigFromPath loads configuration from a single specified directory.
// The directory should contain config.yaml plus the edges/ and tasks/
// entity subdirectories. A missing config.yaml is not an error; defaults
// apply.
func LoadConfigFromPath(configPath string) (TaskflowConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return cfg, nil
		}
		return TaskflowConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TaskflowConfig{}, fmt.Errorf("error parsing config from %s: %w", configFilePath, err)
	}

	applyDefaults(&cfg)
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return cfg, nil
}

// LoadConfig loads configuration using the layered approach: built-in
// defaults, then the user config directory, then a project-local
// .taskflow directory in the working directory. Later layers win.
func LoadConfig() (TaskflowConfig, error) {
	cfg := GetDefaultConfig()

	userDir, err := GetUserConfigDir()
	if err == nil {
		if layered, err := loadLayer(userDir); err == nil && layered != nil {
			mergeConfig(&cfg, layered)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		projectDir := filepath.Join(wd, ".taskflow")
		if layered, err := loadLayer(projectDir); err == nil && layered != nil {
			mergeConfig(&cfg, layered)
		}
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// loadLayer reads one config.yaml layer; a missing file yields (nil, nil).
func loadLayer(dir string) (*TaskflowConfig, error) {
	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var cfg TaskflowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logging.Warn("ConfigLoader", "Skipping malformed config layer %s: %v", path, err)
		return nil, err
	}
	logging.Debug("ConfigLoader", "Loaded config layer from %s", path)
	return &cfg, nil
}

// mergeConfig overlays non-zero fields from layer onto base.
func mergeConfig(base *TaskflowConfig, layer *TaskflowConfig) {
	if layer.Server.Port != 0 {
		base.Server.Port = layer.Server.Port
	}
	if layer.Server.Host != "" {
		base.Server.Host = layer.Server.Host
	}
	if layer.Server.Transport != "" {
		base.Server.Transport = layer.Server.Transport
	}
	if layer.Server.ToolPrefix != "" {
		base.Server.ToolPrefix = layer.Server.ToolPrefix
	}
	if layer.Engine.FlowCacheEnabled != nil {
		base.Engine.FlowCacheEnabled = layer.Engine.FlowCacheEnabled
	}
	if layer.Engine.CreateRetries != 0 {
		base.Engine.CreateRetries = layer.Engine.CreateRetries
	}
	if layer.Engine.ResolveParallelism != 0 {
		base.Engine.ResolveParallelism = layer.Engine.ResolveParallelism
	}
}

// applyDefaults backfills zero values after unmarshalling partial configs.
func applyDefaults(cfg *TaskflowConfig) {
	def := GetDefaultConfig()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = def.Server.Transport
	}
	if cfg.Server.ToolPrefix == "" {
		cfg.Server.ToolPrefix = def.Server.ToolPrefix
	}
	if cfg.Engine.CreateRetries == 0 {
		cfg.Engine.CreateRetries = def.Engine.CreateRetries
	}
	if cfg.Engine.ResolveParallelism == 0 {
		cfg.Engine.ResolveParallelism = def.Engine.ResolveParallelism
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"taskflow/pkg/logging"
)

// ErrEntityNotFound is returned by Load and Delete when no file exists
// for the requested entity. Callers translate this into their own typed
// not-found errors.
var ErrEntityNotFound = errors.New("entity not found")

// Storage provides generic storage functionality for persisted entities
// (dependency edges, task records) as YAML files under a single
// configuration directory.
type Storage struct {
	mu         sync.RWMutex
	configPath string // When set, overrides the default ~/.config/taskflow
}

// NewStorage creates a new Storage instance using the default
// configuration directory.
func NewStorage() *Storage {
	return &Storage{}
}

// NewStorageWithPath creates a new Storage instance rooted at a custom
// config path.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{configPath: configPath}
}

// Save stores data for the given entity type and name.
// entityType: subdirectory name (edges, tasks)
// name: filename without extension
func (s *Storage) Save(entityType string, name string, data []byte) error {
	if entityType == "" {
		return fmt.Errorf("entityType cannot be empty")
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	targetDir, err := s.resolveEntityDir(entityType)
	if err != nil {
		return fmt.Errorf("failed to resolve directory for entity type %s: %w", entityType, err)
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
	}

	filePath := filepath.Join(targetDir, sanitizeFilename(name)+".yaml")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	logging.Debug("Storage", "Saved %s/%s to %s", entityType, name, filePath)
	return nil
}

// Load retrieves data for the given entity type and name. Returns
// ErrEntityNotFound (wrapped) when no file exists.
func (s *Storage) Load(entityType string, name string) ([]byte, error) {
	if entityType == "" {
		return nil, fmt.Errorf("entityType cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	configDir, err := s.getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration directory: %w", err)
	}

	filePath := filepath.Join(configDir, entityType, sanitizeFilename(name)+".yaml")
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s/%s: %w", entityType, name, ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return data, nil
}

// Delete removes the file for the given entity type and name. Returns
// ErrEntityNotFound (wrapped) when no file exists.
func (s *Storage) Delete(entityType string, name string) error {
	if entityType == "" {
		return fmt.Errorf("entityType cannot be empty")
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	configDir, err := s.getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get configuration directory: %w", err)
	}

	filePath := filepath.Join(configDir, entityType, sanitizeFilename(name)+".yaml")
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%s/%s: %w", entityType, name, ErrEntityNotFound)
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}

	logging.Debug("Storage", "Deleted %s/%s from %s", entityType, name, filePath)
	return nil
}

// List returns all available names for the given entity type. A missing
// entity directory yields an empty list, not an error.
func (s *Storage) List(entityType string) ([]string, error) {
	if entityType == "" {
		return nil, fmt.Errorf("entityType cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	configDir, err := s.getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration directory: %w", err)
	}

	entityPath := filepath.Join(configDir, entityType)
	names, err := listYAMLFiles(entityPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	return names, nil
}

// BasePath returns the directory this storage is rooted at.
func (s *Storage) BasePath() (string, error) {
	return s.getConfigDir()
}

func (s *Storage) getConfigDir() (string, error) {
	if s.configPath != "" {
		return s.configPath, nil
	}
	return GetUserConfigDir()
}

func (s *Storage) resolveEntityDir(entityType string) (string, error) {
	configDir, err := s.getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, entityType), nil
}

// listYAMLFiles lists .yaml/.yml files in a directory and returns their
// base names without extension.
func listYAMLFiles(dirPath string) ([]string, error) {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}

	return names, nil
}

// sanitizeFilename ensures the filename is safe for filesystem operations.
func sanitizeFilename(name string) string {
	sanitized := name
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "."} {
		sanitized = strings.ReplaceAll(sanitized, c, "_")
	}
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, " _")

	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized
}

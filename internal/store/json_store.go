package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
)

// JSONStore implements file-based guest collection storage. Each kind is
// kept in one file under its namespaced key.
type JSONStore struct {
	baseDir string
	logger  *events.Logger

	mu sync.Mutex
}

// payload wraps the stored sequence with a schema version. Files written
// before versioning decode with Version 0, which is accepted as-is.
type payload struct {
	Version int                     `json:"version"`
	Items   []models.CollectionItem `json:"items"`
}

// NewJSONStore creates a JSON-based guest store.
func NewJSONStore(baseDir string, logger *events.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	return &JSONStore{
		baseDir: baseDir,
		logger:  logger.WithField("component", "json_store"),
	}, nil
}

// Read returns the stored sequence for a kind. Absent or corrupt files
// yield an empty sequence.
func (s *JSONStore) Read(kind models.CollectionKind) ([]models.CollectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(kind)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("path", path).Warn("Unreadable local store, treating as empty")
		}
		return nil, nil
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		// Legacy layout: a bare array without the version wrapper.
		var items []models.CollectionItem
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		s.logger.WithField("path", path).Warn("Corrupt local store, treating as empty")
		return nil, nil
	}

	return p.Items, nil
}

// Write replaces the stored sequence for a kind. The file is written to a
// temp path and renamed so a crash never leaves a partial value.
func (s *JSONStore) Write(kind models.CollectionKind, items []models.CollectionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(kind)

	s.logger.WithFields(map[string]interface{}{
		"kind":  string(kind),
		"items": len(items),
	}).Debug("Writing local store")

	data, err := json.MarshalIndent(payload{
		Version: CurrentSchemaVersion,
		Items:   items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename store file: %w", err)
	}

	return nil
}

// Clear removes the stored sequence for a kind.
func (s *JSONStore) Clear(kind models.CollectionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.WithField("kind", string(kind)).Debug("Clearing local store")

	if err := os.Remove(s.path(kind)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove store file: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) path(kind models.CollectionKind) string {
	return filepath.Join(s.baseDir, kind.StorageKey()+".json")
}

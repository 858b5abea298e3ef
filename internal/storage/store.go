// internal/storage/store.go
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"stockline/internal/inventory"
)

// Store persists the SKU mapping as a single pretty-printed JSON file keyed
// by code. The file layout is an external contract shared with other tooling
// and must stay human-readable UTF-8.
type Store struct {
	path string
	mu   sync.Mutex // protects concurrent writes to the backing file
}

// NewStore creates a store backed by the file at path. The file does not have
// to exist yet; Load treats a missing file as an empty inventory.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full SKU mapping from disk.
func (s *Store) Load() (map[string]inventory.SKU, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]inventory.SKU), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	data := make(map[string]inventory.SKU)
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to decode inventory file: %w", err)
	}
	return data, nil
}

// Save writes the full SKU mapping to disk atomically: encode, write to a
// temporary file, rename over the original. A crash mid-save leaves either
// the old file or the new one, never a truncated mix.
func (s *Store) Save(data map[string]inventory.SKU) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write inventory file: %w", err)
	}
	return os.Rename(tempPath, s.path)
}

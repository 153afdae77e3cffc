// Package storage provides key-value stores for wizard drafts and receipt
// flags: a file-backed JSON store for local operation and an in-memory store
// for tests.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"inscricaoflow/internal/domain"
)

// FileStore keeps all entries in one JSON file, rewritten on every change.
// Values must be valid JSON.
type FileStore struct {
	mu   sync.RWMutex
	file string
	data map[string]json.RawMessage
}

// NewFileStore opens the store at filePath, loading existing data when the
// file is present.
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		file: filePath,
		data: make(map[string]json.RawMessage),
	}
	if _, err := os.Stat(filePath); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("failed to load storage: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = json.RawMessage(append([]byte(nil), value...))
	return s.save()
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(s.file, data, 0644)
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		s.data = make(map[string]json.RawMessage)
		return nil
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*FileStore)(nil)

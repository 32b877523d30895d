package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"blogrank-go/pkg/utils"
)

// FileStorage persists values as JSON files under a data directory.
// Keys are hashed into filenames, so arbitrary key strings are safe.
type FileStorage struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFileStorage creates the data directory if needed.
func NewFileStorage(config StorageConfig) (*FileStorage, error) {
	dir := config.DataDir
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStorage{dataDir: dir}, nil
}

func (fs *FileStorage) Save(ctx context.Context, key string, data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", key, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (fs *FileStorage) Load(ctx context.Context, key string, dest interface{}) error {
	fs.mu.RLock()
	encoded, err := os.ReadFile(fs.path(key))
	fs.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("key not found: %s", key)
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(encoded, dest); err != nil {
		return fmt.Errorf("failed to unmarshal data for %s: %w", key, err)
	}
	return nil
}

func (fs *FileStorage) Delete(ctx context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (fs *FileStorage) Exists(ctx context.Context, key string) (bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dataDir, utils.KeyHash(key)+".json")
}

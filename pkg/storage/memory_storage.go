package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStorage is an in-memory Storage used in tests and as a
// fallback when the data directory is unavailable.
type MemoryStorage struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (ms *MemoryStorage) Save(ctx context.Context, key string, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", key, err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[key] = encoded
	return nil
}

func (ms *MemoryStorage) Load(ctx context.Context, key string, dest interface{}) error {
	ms.mu.RLock()
	encoded, exists := ms.data[key]
	ms.mu.RUnlock()

	if !exists {
		return fmt.Errorf("key not found: %s", key)
	}
	if err := json.Unmarshal(encoded, dest); err != nil {
		return fmt.Errorf("failed to unmarshal data for %s: %w", key, err)
	}
	return nil
}

func (ms *MemoryStorage) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.data, key)
	return nil
}

func (ms *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, exists := ms.data[key]
	return exists, nil
}

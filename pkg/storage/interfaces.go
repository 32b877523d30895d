package storage

import "context"

// StorageConfig configures the file-backed store.
type StorageConfig struct {
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// Storage is a small key-value persistence abstraction. Values are
// JSON-serialized. Implementations must be safe for concurrent use.
type Storage interface {
	Save(ctx context.Context, key string, data interface{}) error
	Load(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

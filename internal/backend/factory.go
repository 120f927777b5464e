package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kas/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Adapter: repo, Cleanup: repo.Close}, nil

	case SKVBackend:
		repo, err := storage.NewSKVRepository(config.SKVPath)
		if err != nil {
			return nil, fmt.Errorf("initialize skv backend: %w", err)
		}
		f.logger.Info("Initialized skv backend", "path", config.SKVPath)
		return &Result{Adapter: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		repo := storage.NewMemoryRepository()
		f.logger.Info("Initialized memory backend")
		return &Result{Adapter: repo, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case SKVBackend:
		if c.SKVPath == "" {
			return fmt.Errorf("store path is required for skv backend")
		}
	case MemoryBackend:
		// nothing to validate
	}
	return nil
}

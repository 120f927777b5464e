package backend

import (
	"context"

	"kas/internal/storage"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the adapter instance and its cleanup function.
type Result struct {
	Adapter storage.Adapter
	Cleanup CleanupFunc
}

// Factory creates persistence adapters based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// skv specific
	SKVPath string
}

// Type represents the kind of key-value backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SKVBackend    Type = "skv"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SKVBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

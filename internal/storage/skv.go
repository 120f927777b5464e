package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rapidloop/skv"
)

// skvKV wraps the bolt-backed single-file key-value store. It is the
// most literal rendering of "local key-value storage": one file, one
// value per key.
type skvKV struct {
	store *skv.KVStore
}

// NewSKVRepository opens (creating if needed) an skv store at path.
func NewSKVRepository(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s, err := skv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skv store: %w", err)
	}
	return NewRepository(&skvKV{store: s}, "skv"), nil
}

func (s *skvKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.store.Get(key, &value)
	if errors.Is(err, skv.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("skv get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *skvKV) Put(_ context.Context, key string, value []byte) error {
	if err := s.store.Put(key, value); err != nil {
		return fmt.Errorf("skv put %q: %w", key, err)
	}
	return nil
}

func (s *skvKV) Close() error {
	return s.store.Close()
}

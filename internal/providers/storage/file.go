package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON file per key
type FileStore struct {
	root      string
	namespace string
	cache     sync.Map
	mu        sync.Mutex
}

// NewFileStore creates a store rooted at <root>/storage/<namespace>
func NewFileStore(root, namespace string) *FileStore {
	return &FileStore{root: root, namespace: namespace}
}

// Dir returns the directory holding the key files
func (f *FileStore) Dir() string {
	return filepath.Join(f.root, "storage", f.namespace)
}

func (f *FileStore) keyPath(key string) string {
	return filepath.Join(f.Dir(), key+".json")
}

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := f.cache.Load(key); ok {
		return append([]byte(nil), cached.([]byte)...), nil
	}

	data, err := os.ReadFile(f.keyPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read failed: %w", err)
	}

	f.cache.Store(key, data)
	return append([]byte(nil), data...), nil
}

func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := f.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write failed: %w", err)
	}
	if err := os.Rename(tmpName, f.keyPath(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write failed: %w", err)
	}

	f.cache.Store(key, append([]byte(nil), value...))
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (f *FileStore) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.cache.Delete(key)
	if err := os.Remove(f.keyPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

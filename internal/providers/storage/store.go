package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotFound is returned by Get for absent keys
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for empty, oversized or unsafe keys
	ErrInvalidKey = errors.New("invalid storage key")
)

// MaxKeyLength is the longest accepted key
const MaxKeyLength = 128

// keyPattern allows alphanumeric, dots, hyphens and underscores
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Store is a durable key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names a Store implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config selects and locates a backend
type Config struct {
	Backend   string
	Path      string
	Namespace string
}

// Open creates the configured backend
func Open(cfg Config) (Store, error) {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "default"
	}
	if err := ValidateKey(namespace); err != nil {
		return nil, fmt.Errorf("invalid namespace: %w", err)
	}

	switch Backend(strings.ToLower(cfg.Backend)) {
	case BackendFile, "":
		if cfg.Path == "" {
			return nil, errors.New("file storage requires a path")
		}
		return NewFileStore(cfg.Path, namespace), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, errors.New("sqlite storage requires a path")
		}
		return OpenSQLite(cfg.Path, namespace)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// ValidateKey checks that a key is safe to use as a file name
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidKey, MaxKeyLength)
	}
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

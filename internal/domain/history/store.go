package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlueprintStudio/internal/providers/storage"
)

const (
	// DefaultCapacity is the number of blueprints kept
	DefaultCapacity = 30
	// StorageKey is the key the list is persisted under
	StorageKey = "blueprintHistory"
)

// Storage is the durable key-value store backing the history
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Metrics receives history observations
type Metrics interface {
	SetHistorySize(n int)
	RecordStorageFailure(op string)
}

// Store is the in-memory history list with best-effort persistence
type Store struct {
	mu       sync.RWMutex
	items    []string
	capacity int
	storage  Storage
	logger   *zap.Logger
	metrics  Metrics
}

// Option customises a Store
type Option func(*Store)

// WithCapacity overrides DefaultCapacity. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithMetrics attaches a metrics sink
func WithMetrics(m Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates an empty history. A nil storage keeps the history in memory only.
func NewStore(st Storage, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		items:    []string{},
		capacity: DefaultCapacity,
		storage:  st,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the maximum number of entries
func (s *Store) Capacity() int {
	return s.capacity
}

// Load replaces the in-memory list with the persisted one and returns it.
// It never fails: missing, corrupt or unreachable storage yields an empty list.
func (s *Store) Load(ctx context.Context) []string {
	items := s.read(ctx)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.observeSize(len(items))
	return append([]string(nil), items...)
}

func (s *Store) read(ctx context.Context) []string {
	if s.storage == nil {
		return []string{}
	}

	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("History storage not available", zap.Error(err))
			s.recordFailure("load")
		}
		return []string{}
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Discarding corrupt history", zap.Error(err))
		return []string{}
	}

	// drop blanks and duplicates a hand-edited store might contain
	seen := make(map[string]struct{}, len(items))
	clean := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		clean = append(clean, item)
	}
	if len(clean) > s.capacity {
		clean = clean[:s.capacity]
	}
	return clean
}

// Record puts a blueprint at the front of the list.
// It reports whether the list changed; empty and already-present strings are ignored.
// The write outlives cancellation of ctx so a dropped request still persists.
func (s *Store) Record(ctx context.Context, blueprint string) bool {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if blueprint == "" || s.contains(blueprint) {
		return false
	}

	items := make([]string, 0, len(s.items)+1)
	items = append(items, blueprint)
	items = append(items, s.items...)
	if len(items) > s.capacity {
		items = items[:s.capacity]
	}
	s.items = items

	// persisted under the lock so writes land in list order
	s.observeSize(len(items))
	s.persist(ctx, items)
	return true
}

// Clear empties the list and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []string{}

	s.observeSize(0)

	if s.storage == nil {
		return
	}
	if err := s.storage.Remove(ctx, StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Failed to remove persisted history", zap.Error(err))
		s.recordFailure("clear")
	}
}

// List returns a copy of the entries, most recent first
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.items...)
}

// Get returns the entry at index (0 is the most recent)
func (s *Store) Get(index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		return "", false
	}
	return s.items[index], true
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) contains(blueprint string) bool {
	for _, item := range s.items {
		if item == blueprint {
			return true
		}
	}
	return false
}

func (s *Store) persist(ctx context.Context, items []string) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Failed to serialize history", zap.Error(err))
		return
	}

	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		s.logger.Warn("Failed to persist history", zap.Error(err), zap.Int("entries", len(items)))
		s.recordFailure("save")
	}
}

func (s *Store) observeSize(n int) {
	if s.metrics != nil {
		s.metrics.SetHistorySize(n)
	}
}

func (s *Store) recordFailure(op string) {
	if s.metrics != nil {
		s.metrics.RecordStorageFailure(op)
	}
}

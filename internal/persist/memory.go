package persist

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests and for running
// without a database file. An optional per-blob quota imitates the
// write limits of constrained key-value stores.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	quota int // max bytes per blob, 0 means unlimited
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// SetQuota caps the size of a single blob; writes above it fail.
func (s *MemoryStore) SetQuota(bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota = bytes
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.blobs[key]
	if !ok {
		return nil, ErrNoBlob
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quota > 0 && len(value) > s.quota {
		return fmt.Errorf("quota exceeded: %d bytes > %d", len(value), s.quota)
	}
	raw := make([]byte, len(value))
	copy(raw, value)
	s.blobs[key] = raw
	return nil
}

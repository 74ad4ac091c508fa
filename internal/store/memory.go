package store

import (
	"context"
	"sync"
)

type memoryKey struct {
	sessionID string
	kind      Kind
}

// MemoryStore keeps snapshots in process memory. Used for local runs and
// tests; everything is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[memoryKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[memoryKey]string)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string, kind Kind) (*string, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[memoryKey{sessionID, kind}]
	if !ok {
		return nil, nil
	}
	return &blob, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, kind Kind, blob string) error {
	if err := kind.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.blobs[memoryKey{sessionID, kind}] = blob
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.blobs, memoryKey{sessionID, KindCatalog})
	delete(s.blobs, memoryKey{sessionID, KindFavourites})
	s.mu.Unlock()
	return nil
}

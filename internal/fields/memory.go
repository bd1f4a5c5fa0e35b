package fields

import (
	"context"
	"sync"
)

type MemoryMetaStore struct {
	mu     sync.RWMutex
	values map[uint64]map[string]string // product id -> meta key -> value
}

func NewMemoryMetaStore() *MemoryMetaStore {
	return &MemoryMetaStore{
		values: make(map[uint64]map[string]string),
	}
}

func (s *MemoryMetaStore) Get(ctx context.Context, productID uint64, metaKey string) (string, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.values[productID]
	if !ok {
		return "", nil
	}
	return m[metaKey], nil
}

func (s *MemoryMetaStore) Set(ctx context.Context, productID uint64, metaKey string, value string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.values[productID]
	if !ok {
		m = make(map[string]string)
		s.values[productID] = m
	}
	m[metaKey] = value
	return nil
}

package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	clouds map[string]*Cloud
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clouds: make(map[string]*Cloud)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Cloud, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cloud, ok := s.clouds[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *cloud
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Cloud, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clouds := make([]*Cloud, 0, len(s.clouds))
	for _, cloud := range s.clouds {
		copied := *cloud
		clouds = append(clouds, &copied)
	}
	slices.SortFunc(clouds, func(a, b *Cloud) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return clouds, nil
}

func (s *MemoryStore) Put(ctx context.Context, cloud *Cloud) error {
	if cloud.ID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cloud.UpdatedAt = time.Now().UTC()
	copied := *cloud
	s.clouds[cloud.ID] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clouds[id]; !ok {
		return ErrNotFound
	}
	delete(s.clouds, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

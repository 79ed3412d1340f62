package favorites

import (
	"context"
	"sync"

	"listing-service/internal/core/domain"
)

// MemoryFavoritesStore - избранное в памяти процесса, теряется при рестарте
type MemoryFavoritesStore struct {
	mu   sync.RWMutex
	data map[string]domain.FavoriteIDs
}

func NewMemoryFavoritesStore() *MemoryFavoritesStore {
	return &MemoryFavoritesStore{data: make(map[string]domain.FavoriteIDs)}
}

func (s *MemoryFavoritesStore) List(_ context.Context, visitorID string) (domain.FavoriteIDs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.FavoriteIDs, len(s.data[visitorID]))
	copy(out, s.data[visitorID])
	return out, nil
}

func (s *MemoryFavoritesStore) Add(_ context.Context, visitorID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[visitorID] = s.data[visitorID].Add(propertyID)
	return nil
}

func (s *MemoryFavoritesStore) Remove(_ context.Context, visitorID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.data[visitorID].Remove(propertyID)
	if len(ids) == 0 {
		delete(s.data, visitorID)
		return nil
	}
	s.data[visitorID] = ids
	return nil
}

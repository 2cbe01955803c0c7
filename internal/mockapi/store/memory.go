package store

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in a map. The default for tests and single-node
// development runs.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[int64]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[int64]*Cart)}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	// Copy so callers can mutate freely before Upsert.
	clone := &Cart{ID: cart.ID, UserID: cart.UserID, Items: make([]Item, len(cart.Items))}
	copy(clone.Items, cart.Items)
	return clone, nil
}

func (s *MemoryStore) Upsert(_ context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := &Cart{ID: cart.ID, UserID: cart.UserID, Items: make([]Item, len(cart.Items))}
	copy(clone.Items, cart.Items)
	s.carts[cart.UserID] = clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

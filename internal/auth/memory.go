package auth

import (
	"context"
	"sync"
)

// InMemory implements Store with in-process maps. Used by tests and by
// gateway-free development runs.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[string]*Identity
	byEmail map[string]*Identity
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[string]*Identity),
		byEmail: make(map[string]*Identity),
	}
}

func (s *InMemory) Create(ctx context.Context, identity *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[identity.Email]; ok {
		return ErrDuplicateEmail
	}
	cp := *identity
	s.byID[cp.ID] = &cp
	s.byEmail[cp.Email] = &cp
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *identity
	return &cp, nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *identity
	return &cp, nil
}

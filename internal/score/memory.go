package score

import (
	"context"
	"sort"
	"sync"
)

// InMemory implements Store for tests and local runs.
type InMemory struct {
	mu   sync.RWMutex
	recs map[string]*Score
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{recs: make(map[string]*Score)}
}

func (s *InMemory) Create(ctx context.Context, rec *Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.recs[cp.ID] = &cp
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *InMemory) List(ctx context.Context) ([]Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Score, 0, len(s.recs))
	for _, rec := range s.recs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) ListByCreation(ctx context.Context, creationID string) ([]Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Score, 0)
	for _, rec := range s.recs {
		if rec.CreationID == creationID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

package creation

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemory implements Store with in-process concurrency safety. Used
// by tests and gateway-free development runs.
type InMemory struct {
	mu   sync.RWMutex
	recs map[string]*Creation
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{recs: make(map[string]*Creation)}
}

func (s *InMemory) Create(ctx context.Context, c *Creation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.recs[cp.ID] = &cp
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Creation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *InMemory) List(ctx context.Context) ([]Creation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Creation, 0, len(s.recs))
	for _, rec := range s.recs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, c *Creation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[c.ID]
	if !ok {
		return ErrNotFound
	}
	if rec.Version != c.Version {
		return ErrConflict
	}
	cp := *c
	cp.Version++
	s.recs[cp.ID] = &cp
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

func (s *InMemory) Search(ctx context.Context, term string) ([]Creation, error) {
	needle := strings.ToLower(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Creation, 0)
	for _, rec := range s.recs {
		if strings.Contains(strings.ToLower(rec.Title), needle) ||
			strings.Contains(strings.ToLower(rec.Description), needle) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

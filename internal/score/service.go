package score

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/ids"
)

// Service validates references against the registry and persists
// scores.
type Service struct {
	store    Store
	registry CreationRegistry
	now      func() time.Time
}

func NewService(store Store, registry CreationRegistry) *Service {
	return &Service{
		store:    store,
		registry: registry,
		now:      time.Now,
	}
}

// Post records a score after confirming the referenced creation
// exists. A definitive registry 404 yields ErrCreationNotFound and
// nothing is written; an unreachable registry yields
// creation.ErrUnavailable, which must never be read as absence.
func (s *Service) Post(ctx context.Context, in NewScore) (*Score, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("%w: owner_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.CreationID) == "" {
		return nil, fmt.Errorf("%w: creation_id is required", ErrInvalidInput)
	}

	if err := s.checkCreation(ctx, in.CreationID); err != nil {
		return nil, err
	}

	rec := &Score{
		ID:         ids.New(),
		OwnerID:    strings.TrimSpace(in.OwnerID),
		CreationID: strings.TrimSpace(in.CreationID),
		Value:      in.Value,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns one score by id. No registry round trip: an orphaned
// score stays retrievable after its creation is deleted.
func (s *Service) Get(ctx context.Context, id string) (*Score, error) {
	return s.store.Find(ctx, id)
}

// List returns every score in the ledger.
func (s *Service) List(ctx context.Context) ([]Score, error) {
	return s.store.List(ctx)
}

// ListForCreation revalidates the creation before answering so a
// caller can tell "no scores yet" (empty list) from "no such
// creation" (ErrCreationNotFound).
func (s *Service) ListForCreation(ctx context.Context, creationID string) ([]Score, error) {
	if err := s.checkCreation(ctx, creationID); err != nil {
		return nil, err
	}
	return s.store.ListByCreation(ctx, creationID)
}

func (s *Service) checkCreation(ctx context.Context, creationID string) error {
	err := s.registry.Exists(ctx, creationID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, creation.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrCreationNotFound, creationID)
	default:
		return err
	}
}

package score

import "context"

// Store persists score records.
type Store interface {
	Create(ctx context.Context, s *Score) error
	Find(ctx context.Context, id string) (*Score, error)
	List(ctx context.Context) ([]Score, error)
	ListByCreation(ctx context.Context, creationID string) ([]Score, error)
}

// CreationRegistry answers existence checks against the creation
// registry. Exists returns creation.ErrNotFound only when the
// registry definitively reported absence; any inability to ask
// surfaces as creation.ErrUnavailable.
type CreationRegistry interface {
	Exists(ctx context.Context, creationID string) error
}

package creation

import (
	"context"
	"io"
)

// Store describes persistence for creation records.
type Store interface {
	Create(ctx context.Context, c *Creation) error
	Find(ctx context.Context, id string) (*Creation, error)
	List(ctx context.Context) ([]Creation, error)
	// Update applies the record keyed by ID at the version the caller
	// read; a version mismatch yields ErrConflict.
	Update(ctx context.Context, c *Creation) error
	Delete(ctx context.Context, id string) error
	// Search matches term as a case-insensitive substring of title or
	// description. No matches is an empty slice, not an error.
	Search(ctx context.Context, term string) ([]Creation, error)
}

// ImageStore describes the object storage the registry keeps image
// bodies in.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

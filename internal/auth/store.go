package auth

import "context"

// Store describes the credential store consumed by the auth authority.
type Store interface {
	Create(ctx context.Context, identity *Identity) error
	Find(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
}

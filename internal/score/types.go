// Package score is the score ledger. A score references a creation in
// the creation registry; the reference is validated against the
// registry before any write is accepted, and never enforced by the
// database, so a deleted creation leaves its scores behind as
// readable orphans.
package score

import (
	"errors"
	"time"
)

// Score is one recorded score for a creation.
type Score struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	CreationID string    `json:"creation_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewScore is the write payload for posting a score.
type NewScore struct {
	OwnerID    string `json:"owner_id"`
	CreationID string `json:"creation_id"`
	Value      int    `json:"value"`
}

var (
	// ErrNotFound reports that a score record does not exist.
	ErrNotFound = errors.New("score not found")

	// ErrCreationNotFound reports that the registry definitively said
	// the referenced creation does not exist.
	ErrCreationNotFound = errors.New("creation not found")

	// ErrInvalidInput flags a malformed or incomplete payload.
	ErrInvalidInput = errors.New("invalid input")
)

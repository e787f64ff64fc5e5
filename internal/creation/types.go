package creation

import (
	"errors"
	"io"
	"time"
)

// Creation is a registered submission: metadata plus a reference to
// its stored image.
type Creation struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Upload carries an incoming image body.
type Upload struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// NewCreation is the input for registering a creation. The image is
// mandatory.
type NewCreation struct {
	OwnerID     string
	Title       string
	Description string
	Image       *Upload
}

// UpdateCreation is a partial update; nil fields are left untouched.
type UpdateCreation struct {
	OwnerID     *string
	Title       *string
	Description *string
	Image       *Upload
}

var (
	ErrNotFound     = errors.New("creation: not found")
	ErrInvalidInput = errors.New("creation: invalid input")
	ErrConflict     = errors.New("creation: concurrent update")

	// ErrUnavailable marks a transient registry failure observed by a
	// remote consumer. It is distinct from ErrNotFound on purpose:
	// "could not ask" must never be read as "does not exist".
	ErrUnavailable = errors.New("creation: registry unavailable")
)

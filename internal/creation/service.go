package creation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Yonajim/NPUPlatform/internal/ids"
)

// allowedImageTypes mirrors the upload policy: JPEG, PNG, GIF and BMP.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
}

// Service owns creation records and their stored images.
type Service struct {
	store  Store
	images ImageStore
	now    func() time.Time
}

func NewService(store Store, images ImageStore) *Service {
	return &Service{
		store:  store,
		images: images,
		now:    time.Now,
	}
}

// Create registers a creation. The image is required and stored before
// the record so a persisted record never references a missing object.
func (s *Service) Create(ctx context.Context, in NewCreation) (*Creation, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("%w: owner_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.Image == nil {
		return nil, fmt.Errorf("%w: an image file is required", ErrInvalidInput)
	}
	ext, ok := allowedImageTypes[in.Image.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q; only JPEG, PNG, GIF and BMP are allowed", ErrInvalidInput, in.Image.ContentType)
	}

	key := ids.New() + ext
	if err := s.images.Save(ctx, key, in.Image.ContentType, in.Image.Data, in.Image.Size); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &Creation{
		ID:          ids.New(),
		OwnerID:     strings.TrimSpace(in.OwnerID),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageKey:    key,
		ImageURL:    s.images.URL(key),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		// The record never existed; drop the freshly stored image.
		_ = s.images.Delete(ctx, key)
		return nil, err
	}
	return rec, nil
}

// Get returns one creation. Consumed remotely as the existence check.
func (s *Service) Get(ctx context.Context, id string) (*Creation, error) {
	return s.store.Find(ctx, id)
}

// List returns all creations.
func (s *Service) List(ctx context.Context) ([]Creation, error) {
	return s.store.List(ctx)
}

// Update applies a partial update. A replaced image releases the old
// object after the new one is stored.
func (s *Service) Update(ctx context.Context, id string, in UpdateCreation) error {
	rec, err := s.store.Find(ctx, id)
	if err != nil {
		return err
	}

	oldKey := ""
	if in.Image != nil {
		ext, ok := allowedImageTypes[in.Image.ContentType]
		if !ok {
			return fmt.Errorf("%w: unsupported image type %q; only JPEG, PNG, GIF and BMP are allowed", ErrInvalidInput, in.Image.ContentType)
		}
		key := ids.New() + ext
		if err := s.images.Save(ctx, key, in.Image.ContentType, in.Image.Data, in.Image.Size); err != nil {
			return err
		}
		oldKey = rec.ImageKey
		rec.ImageKey = key
		rec.ImageURL = s.images.URL(key)
	}
	if in.OwnerID != nil {
		rec.OwnerID = strings.TrimSpace(*in.OwnerID)
	}
	if in.Title != nil {
		rec.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		rec.Description = strings.TrimSpace(*in.Description)
	}
	rec.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, rec); err != nil {
		if in.Image != nil {
			_ = s.images.Delete(ctx, rec.ImageKey)
		}
		return err
	}
	if oldKey != "" {
		// Best effort; the record already points at the new object.
		_ = s.images.Delete(ctx, oldKey)
	}
	return nil
}

// Delete removes the record, then releases its image. Scores that
// reference the creation are NOT touched: the score ledger owns them,
// and orphaning is the documented outcome of a delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.store.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.images.Delete(ctx, rec.ImageKey)
	return nil
}

// Search matches term case-insensitively against title or description.
// A blank term is rejected; no matches is an empty result, not an
// error.
func (s *Service) Search(ctx context.Context, term string) ([]Creation, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}
	return s.store.Search(ctx, term)
}

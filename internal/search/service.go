// Package search is a thin relay in front of the creation registry's
// search endpoint. It validates the term locally and forwards
// everything else untouched, so registry results and registry errors
// pass through unchanged.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yonajim/NPUPlatform/internal/creation"
)

// Registry is the slice of the creation registry the relay needs.
type Registry interface {
	Search(ctx context.Context, term string) ([]creation.Creation, error)
}

// Service relays search requests.
type Service struct {
	registry Registry
}

func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

// Search rejects a blank term before spending a registry round trip;
// anything else is the registry's answer verbatim.
func (s *Service) Search(ctx context.Context, term string) ([]creation.Creation, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is required", creation.ErrInvalidInput)
	}
	return s.registry.Search(ctx, term)
}

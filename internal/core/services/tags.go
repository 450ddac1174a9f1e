package services

import (
	"context"
	"fmt"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService provides tag lookups.
type TagService struct {
	tags driven.TagAPI
}

// NewTagService creates a tag service.
func NewTagService(tags driven.TagAPI) *TagService {
	return &TagService{tags: tags}
}

// Search returns tags matching query. An empty query returns no tags.
func (s *TagService) Search(ctx context.Context, query string) ([]domain.Tag, error) {
	query = domain.NormalizeTagLabel(query)
	if query == "" {
		return []domain.Tag{}, nil
	}
	tags, err := s.tags.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// Popular returns the most used tags.
func (s *TagService) Popular(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.Popular(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

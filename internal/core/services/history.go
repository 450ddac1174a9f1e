package services

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

const defaultHistoryLimit = 10

// HistoryService exposes recorded searches.
type HistoryService struct {
	store driven.SearchHistoryStore
}

// NewHistoryService creates a history service. A nil store yields empty history.
func NewHistoryService(store driven.SearchHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit distinct recent queries.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	if s.store == nil {
		return []domain.SearchHistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}

// Clear removes all history.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}

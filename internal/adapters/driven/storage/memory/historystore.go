package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// Ensure SearchHistoryStore implements the interface.
var _ driven.SearchHistoryStore = (*SearchHistoryStore)(nil)

// SearchHistoryStore is an in-memory implementation of driven.SearchHistoryStore.
type SearchHistoryStore struct {
	mu      sync.RWMutex
	entries []domain.SearchHistoryEntry
	nextID  int64
}

// NewSearchHistoryStore creates a new in-memory search history store.
func NewSearchHistoryStore() *SearchHistoryStore {
	return &SearchHistoryStore{nextID: 1}
}

// Add records a search, dropping the oldest entries past domain.MaxSearchHistory.
func (s *SearchHistoryStore) Add(_ context.Context, entry domain.SearchHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	if over := len(s.entries) - domain.MaxSearchHistory; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
	return nil
}

// Recent returns up to limit entries, newest first, one per distinct query.
func (s *SearchHistoryStore) Recent(_ context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SearchHistoryEntry, 0, limit)
	seen := make(map[string]bool)
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		e := s.entries[i]
		if seen[e.Query] {
			continue
		}
		seen[e.Query] = true
		result = append(result, e)
	}
	return result, nil
}

// Clear removes all entries.
func (s *SearchHistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

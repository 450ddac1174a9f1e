package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// searchHistoryStore implements driven.SearchHistoryStore.
type searchHistoryStore struct {
	store *Store
}

var _ driven.SearchHistoryStore = (*searchHistoryStore)(nil)

// Add records a search.
func (s *searchHistoryStore) Add(ctx context.Context, entry domain.SearchHistoryEntry) error {
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now()
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (query, result_count, searched_at)
		VALUES (?, ?, ?)
	`, entry.Query, entry.ResultCount, formatTime(entry.SearchedAt))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first, one per distinct query.
func (s *searchHistoryStore) Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	if limit <= 0 {
		return []domain.SearchHistoryEntry{}, nil
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT h.id, h.query, h.result_count, h.searched_at
		FROM search_history h
		WHERE h.id = (SELECT MAX(id) FROM search_history WHERE query = h.query)
		ORDER BY h.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.SearchHistoryEntry, 0, limit)
	for rows.Next() {
		var entry domain.SearchHistoryEntry
		var searchedAt sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning search history: %w", err)
		}
		entry.SearchedAt = scanTime(searchedAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history: %w", err)
	}
	return entries, nil
}

// Clear removes all entries.
func (s *searchHistoryStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}
	return nil
}

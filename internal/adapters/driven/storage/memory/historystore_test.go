package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

func TestSearchHistoryStore_RecentNewestFirstDistinct(t *testing.T) {
	store := NewSearchHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, q := range []string{"go", "rust", "go", "[java] streams"} {
		err := store.Add(ctx, domain.SearchHistoryEntry{
			Query:       q,
			ResultCount: i,
			SearchedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "[java] streams", recent[0].Query)
	assert.Equal(t, "go", recent[1].Query)
	assert.Equal(t, 2, recent[1].ResultCount)
	assert.Equal(t, "rust", recent[2].Query)
	assert.Equal(t, int64(3), recent[1].ID)
}

func TestSearchHistoryStore_RecentLimit(t *testing.T) {
	store := NewSearchHistoryStore()
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, store.Add(ctx, domain.SearchHistoryEntry{Query: q}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Query)
	assert.Equal(t, "b", recent[1].Query)
}

func TestSearchHistoryStore_Clear(t *testing.T) {
	store := NewSearchHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, domain.SearchHistoryEntry{Query: "go"}))

	require.NoError(t, store.Clear(ctx))

	recent, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSearchHistoryStore_KeepsNewestEntries(t *testing.T) {
	store := NewSearchHistoryStore()
	ctx := context.Background()

	for i := 0; i < domain.MaxSearchHistory+3; i++ {
		require.NoError(t, store.Add(ctx, domain.SearchHistoryEntry{Query: fmt.Sprintf("q%d", i)}))
	}

	assert.Len(t, store.entries, domain.MaxSearchHistory)
	assert.Equal(t, "q3", store.entries[0].Query)

	recent, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("q%d", domain.MaxSearchHistory+2), recent[0].Query)
}

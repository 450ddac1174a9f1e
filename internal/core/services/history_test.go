package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/storage/memory"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

func TestHistoryService_NilStore(t *testing.T) {
	service := NewHistoryService(nil)

	recent, err := service.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.NoError(t, service.Clear(context.Background()))
}

func TestHistoryService_RecentAndClear(t *testing.T) {
	store := memory.NewSearchHistoryStore()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		require.NoError(t, store.Add(ctx, domain.SearchHistoryEntry{Query: string(rune('a' + i))}))
	}
	service := NewHistoryService(store)

	recent, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, defaultHistoryLimit)
	assert.Equal(t, "o", recent[0].Query)

	require.NoError(t, service.Clear(ctx))
	recent, err = service.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

package driven

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// SessionStore persists the signed-in session between runs.
type SessionStore interface {
	// Load returns the saved session, or domain.ErrNotFound if none.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the saved session.
	Save(ctx context.Context, session domain.Session) error

	// Clear removes the saved session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// IdentityTokenStore persists the identity provider's OAuth2 token.
type IdentityTokenStore interface {
	// Load returns the saved token, or domain.ErrNotFound if none.
	Load(ctx context.Context) (*domain.IdentityToken, error)

	// Save replaces the saved token.
	Save(ctx context.Context, token domain.IdentityToken) error

	// Clear removes the saved token.
	Clear(ctx context.Context) error
}

// SearchHistoryStore records completed searches.
type SearchHistoryStore interface {
	// Add records a search.
	Add(ctx context.Context, entry domain.SearchHistoryEntry) error

	// Recent returns up to limit entries, newest first, one per distinct query.
	Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

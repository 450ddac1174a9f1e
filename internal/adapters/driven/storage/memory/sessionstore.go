package memory

import (
	"context"
	"sync"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the saved session.
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrNotFound
	}
	session := *s.session
	return &session, nil
}

// Save replaces the saved session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

// Clear removes the saved session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// Ensure IdentityTokenStore implements the interface.
var _ driven.IdentityTokenStore = (*IdentityTokenStore)(nil)

// IdentityTokenStore is an in-memory implementation of driven.IdentityTokenStore.
type IdentityTokenStore struct {
	mu    sync.RWMutex
	token *domain.IdentityToken
}

// NewIdentityTokenStore creates a new in-memory identity token store.
func NewIdentityTokenStore() *IdentityTokenStore {
	return &IdentityTokenStore{}
}

// Load returns the saved token.
func (s *IdentityTokenStore) Load(_ context.Context) (*domain.IdentityToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, domain.ErrNotFound
	}
	token := *s.token
	return &token, nil
}

// Save replaces the saved token.
func (s *IdentityTokenStore) Save(_ context.Context, token domain.IdentityToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &token
	return nil
}

// Clear removes the saved token.
func (s *IdentityTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the signed-in state.
// It also serves as the request client's authenticator.
type SessionService struct {
	users    driven.UserAPI
	identity driven.IdentityProvider
	store    driven.SessionStore
	clock    Clock

	mu      sync.RWMutex
	session domain.Session

	// reauthMu serialises re-authentication so concurrent 401s refresh one at a time.
	reauthMu sync.Mutex

	subsMu  sync.Mutex
	subs    map[int]func(domain.Session)
	nextSub int
}

// NewSessionService creates a session service.
// The identity provider is optional; without it sign-in and re-authentication fail.
func NewSessionService(users driven.UserAPI, identity driven.IdentityProvider) *SessionService {
	return &SessionService{
		users:    users,
		identity: identity,
		clock:    RealClock(),
		subs:     make(map[int]func(domain.Session)),
	}
}

// SetSessionStore enables persistence between runs.
func (s *SessionService) SetSessionStore(store driven.SessionStore) {
	s.store = store
}

// SetClock replaces the clock used to stamp sign-in times.
func (s *SessionService) SetClock(c Clock) {
	s.clock = c
}

// Current returns a snapshot of the session.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current application token.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Restore loads a persisted session.
func (s *SessionService) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	saved, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("session: nothing to restore")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	logger.Debug("session: restored %s (token %s)", saved.User.Email, logger.Redact(saved.Token))
	s.replace(*saved)
	return nil
}

// SignIn runs the identity provider's interactive flow and exchanges the result.
func (s *SessionService) SignIn(ctx context.Context) (*domain.Session, error) {
	logger.Section("Sign In")
	if s.identity == nil {
		return nil, fmt.Errorf("sign in: %w: no identity provider configured", domain.ErrAuthRequired)
	}

	idToken, err := s.identity.SignIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	token, err := s.users.Authenticate(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	session := domain.Session{Token: token, IDToken: idToken, SignedInAt: s.clock.Now()}
	// Install the token before resolving the user so the lookup is authenticated.
	s.replace(session)

	session.User = s.resolveUser(ctx, idToken)
	s.replace(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	logger.Info("session: signed in as %s", session.User.Email)
	return &session, nil
}

// SignOut clears the session locally and with the identity provider.
func (s *SessionService) SignOut(ctx context.Context) error {
	logger.Section("Sign Out")
	var errs []error
	if s.identity != nil {
		if err := s.identity.SignOut(ctx); err != nil {
			errs = append(errs, fmt.Errorf("identity provider: %w", err))
		}
	}
	if err := s.clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("sign out: %w", errors.Join(errs...))
	}
	return nil
}

// Reauthenticate refreshes the identity token silently and exchanges it for a new
// application token. The signed-in user is kept. On failure the session is cleared.
// Callers that queued behind a refresh which already replaced their token
// return without refreshing again.
func (s *SessionService) Reauthenticate(ctx context.Context) error {
	return s.reauthenticate(ctx, s.Token())
}

// reauthenticate renews the session unless the token is no longer stale.
func (s *SessionService) reauthenticate(ctx context.Context, stale string) error {
	s.reauthMu.Lock()
	defer s.reauthMu.Unlock()

	if current := s.Token(); current != "" && current != stale {
		logger.Debug("session: token already renewed (%s)", logger.Redact(current))
		return nil
	}
	logger.Debug("session: re-authenticating (token %s)", logger.Redact(stale))

	fail := func(err error) error {
		if clearErr := s.clear(ctx); clearErr != nil {
			logger.Warn("session: clear after failed re-authentication: %v", clearErr)
		}
		return fmt.Errorf("%w: %w", domain.ErrReauthenticationFailed, err)
	}

	if s.identity == nil {
		return fail(domain.ErrAuthRequired)
	}
	idToken, err := s.identity.Refresh(ctx)
	if err != nil {
		return fail(fmt.Errorf("refresh identity: %w", err))
	}
	token, err := s.users.Authenticate(ctx, idToken)
	if err != nil {
		return fail(err)
	}

	session := s.Current()
	session.Token = token
	session.IDToken = idToken
	session.SignedInAt = s.clock.Now()
	s.replace(session)

	if err := s.persist(ctx, session); err != nil {
		logger.Warn("session: %v", err)
	}
	logger.Info("session: re-authenticated (token %s)", logger.Redact(token))
	return nil
}

// Subscribe registers fn to be called after every session change.
func (s *SessionService) Subscribe(fn func(domain.Session)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// resolveUser looks the signed-in user up by the identity token's email claim.
// Failures fall back to the claims alone.
func (s *SessionService) resolveUser(ctx context.Context, idToken string) domain.User {
	claims, err := s.identity.Claims(ctx, idToken)
	if err != nil {
		logger.Warn("session: read identity claims: %v", err)
		return domain.User{}
	}
	fallback := domain.User{Email: claims.Email, Name: claims.Name, Picture: claims.Picture}
	if claims.Email == "" {
		return fallback
	}
	user, err := s.users.ByEmail(ctx, claims.Email)
	if err != nil {
		logger.Warn("session: look up %s: %v", claims.Email, err)
		return fallback
	}
	return *user
}

func (s *SessionService) replace(session domain.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	s.publish(session)
}

func (s *SessionService) clear(ctx context.Context) error {
	s.replace(domain.Session{})
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionService) persist(ctx context.Context, session domain.Session) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionService) publish(session domain.Session) {
	s.subsMu.Lock()
	fns := make([]func(domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

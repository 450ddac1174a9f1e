package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load returns the saved session.
func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, email, name, picture, token, id_token, signed_in_at
		FROM session WHERE id = 1
	`)

	var session domain.Session
	var signedInAt sql.NullString
	err := row.Scan(&session.User.ID, &session.User.Email, &session.User.Name, &session.User.Picture,
		&session.Token, &session.IDToken, &signedInAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	session.SignedInAt = scanTime(signedInAt)
	return &session, nil
}

// Save replaces the saved session.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, email, name, picture, token, id_token, signed_in_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			name = excluded.name,
			picture = excluded.picture,
			token = excluded.token,
			id_token = excluded.id_token,
			signed_in_at = excluded.signed_in_at
	`, session.User.ID, session.User.Email, session.User.Name, session.User.Picture,
		session.Token, session.IDToken, formatTime(session.SignedInAt))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the saved session.
func (s *sessionStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// ==================== Identity Token Store ====================

// identityTokenStore implements driven.IdentityTokenStore.
type identityTokenStore struct {
	store *Store
}

var _ driven.IdentityTokenStore = (*identityTokenStore)(nil)

// Load returns the saved token.
func (s *identityTokenStore) Load(ctx context.Context) (*domain.IdentityToken, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, id_token, token_type, expiry
		FROM identity_token WHERE id = 1
	`)

	var token domain.IdentityToken
	var expiry sql.NullString
	err := row.Scan(&token.AccessToken, &token.RefreshToken, &token.IDToken, &token.TokenType, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning identity token: %w", err)
	}
	token.Expiry = scanTime(expiry)
	return &token, nil
}

// Save replaces the saved token.
func (s *identityTokenStore) Save(ctx context.Context, token domain.IdentityToken) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO identity_token (id, access_token, refresh_token, id_token, token_type, expiry)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			id_token = excluded.id_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry
	`, token.AccessToken, token.RefreshToken, token.IDToken, token.TokenType, formatTime(token.Expiry))
	if err != nil {
		return fmt.Errorf("saving identity token: %w", err)
	}
	return nil
}

// Clear removes the saved token.
func (s *identityTokenStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM identity_token"); err != nil {
		return fmt.Errorf("clearing identity token: %w", err)
	}
	return nil
}

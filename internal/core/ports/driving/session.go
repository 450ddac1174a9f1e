package driving

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// SessionService owns the signed-in state.
// Only its actions mutate the session; everything else reads it.
type SessionService interface {
	// Current returns a snapshot of the session.
	Current() domain.Session

	// Token returns the current application token, or empty if signed out.
	Token() string

	// Restore loads a persisted session, if any.
	Restore(ctx context.Context) error

	// SignIn runs the interactive sign-in and stores the new session.
	SignIn(ctx context.Context) (*domain.Session, error)

	// SignOut clears the session locally and with the identity provider.
	SignOut(ctx context.Context) error

	// Reauthenticate obtains a fresh application token without user interaction.
	// On failure the session is cleared and domain.ErrReauthenticationFailed is returned.
	Reauthenticate(ctx context.Context) error

	// Subscribe registers fn to be called after every session change.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.Session)) (unsubscribe func())
}

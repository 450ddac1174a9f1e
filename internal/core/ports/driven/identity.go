package driven

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// IdentityProvider obtains identity tokens from the external sign-in service.
type IdentityProvider interface {
	// SignIn runs the interactive sign-in flow and returns a fresh identity token.
	SignIn(ctx context.Context) (string, error)

	// Refresh returns a fresh identity token without user interaction.
	// Returns domain.ErrAuthRequired when no refreshable credential is cached.
	Refresh(ctx context.Context) (string, error)

	// SignOut forgets any cached credential.
	SignOut(ctx context.Context) error

	// Claims decodes the claims of an identity token.
	Claims(ctx context.Context, idToken string) (*domain.IdentityClaims, error)
}

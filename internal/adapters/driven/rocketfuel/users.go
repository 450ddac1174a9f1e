package rocketfuel

import (
	"context"
	"fmt"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// HeaderAuthorizationToken carries the identity token on the sign-in exchange.
const HeaderAuthorizationToken = "authorizationToken"

// Ensure UserAPI implements the interface.
var _ driven.UserAPI = (*UserAPI)(nil)

// UserAPI wraps the user endpoints.
type UserAPI struct {
	client Requester
}

// NewUserAPI creates a user API over client.
func NewUserAPI(client Requester) *UserAPI {
	return &UserAPI{client: client}
}

// Authenticate exchanges an identity token for an application token.
// A 401 here is final: the exchange is what re-authentication calls.
func (a *UserAPI) Authenticate(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", fmt.Errorf("authenticate: %w: empty identity token", domain.ErrInvalidInput)
	}
	var out domain.ApplicationToken
	opts := apiclient.RequestOptions{
		URL:        path("api", "user", "authenticate"),
		Headers:    map[string]string{HeaderAuthorizationToken: idToken},
		SkipReauth: true,
	}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	if out.ApplicationToken == "" {
		return "", fmt.Errorf("authenticate: %w: server returned no token", domain.ErrAuthInvalid)
	}
	return out.ApplicationToken, nil
}

// ByID returns a user by ID.
func (a *UserAPI) ByID(ctx context.Context, userID int64) (*domain.User, error) {
	var out domain.User
	if err := a.client.Do(ctx, apiclient.RequestOptions{URL: path("api", "user", "id", id(userID))}, &out); err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &out, nil
}

// ByEmail returns a user by email address.
func (a *UserAPI) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out domain.User
	if err := a.client.Do(ctx, apiclient.RequestOptions{URL: path("api", "user", "email", email)}, &out); err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	return &out, nil
}

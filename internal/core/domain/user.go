package domain

import "time"

// User is a member of the platform.
type User struct {
	ID      int64  `json:"id" yaml:"id"`
	Email   string `json:"email" yaml:"email"`
	Name    string `json:"name" yaml:"name"`
	Picture string `json:"picture,omitempty" yaml:"picture,omitempty"`
}

// ApplicationToken is the server-issued credential exchanged for an identity token.
type ApplicationToken struct {
	ApplicationToken string `json:"applicationToken"`
}

// Session is the signed-in state shared by every client component.
// A zero Session means nobody is signed in.
type Session struct {
	// User is the signed-in user. Zero when the server did not resolve one.
	User User

	// Token is the application token sent with every API call.
	Token string

	// IDToken is the identity-provider token last exchanged for Token.
	IDToken string

	// SignedInAt is when Token was obtained.
	SignedInAt time.Time
}

// IsSignedIn returns true if the session carries an application token.
func (s Session) IsSignedIn() bool {
	return s.Token != ""
}

// IdentityToken is a cached identity-provider OAuth2 token.
type IdentityToken struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	Expiry       time.Time
}

// IsExpired returns true if the access token has expired.
// A zero expiry never expires.
func (t IdentityToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// CanRefresh returns true if a refresh token is available.
func (t IdentityToken) CanRefresh() bool {
	return t.RefreshToken != ""
}

// IdentityClaims are the identity-token claims the client reads.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
	Expiry  time.Time
}

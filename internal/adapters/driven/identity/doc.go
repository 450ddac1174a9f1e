// Package identity signs users in with Google OpenID Connect.
//
// The interactive flow is the installed-app code flow with PKCE: a loopback
// Callback receives the authorization code, the code is exchanged with
// golang.org/x/oauth2, and the resulting OAuth2 token (including its id_token)
// is cached in a driven.IdentityTokenStore so later refreshes need no browser.
package identity

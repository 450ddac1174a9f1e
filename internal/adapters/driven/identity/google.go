package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// Ensure GoogleProvider implements the interface.
var _ driven.IdentityProvider = (*GoogleProvider)(nil)

const (
	// DefaultCallbackTimeout bounds how long SignIn waits for the browser.
	DefaultCallbackTimeout = 5 * time.Minute

	// idTokenLeeway is how close to expiry a cached ID token is still reused.
	idTokenLeeway = time.Minute
)

// DefaultScopes are the OpenID Connect scopes the server needs.
var DefaultScopes = []string{"openid", "email", "profile"}

// Config configures the Google sign-in.
type Config struct {
	ClientID     string
	ClientSecret string

	// CallbackPort is the loopback redirect port. Zero picks a free port.
	CallbackPort int

	// Scopes defaults to DefaultScopes.
	Scopes []string

	// Endpoint defaults to google.Endpoint.
	Endpoint oauth2.Endpoint

	// CallbackTimeout defaults to DefaultCallbackTimeout.
	CallbackTimeout time.Duration
}

// GoogleProvider obtains Google ID tokens for the Rocket Fuel server.
type GoogleProvider struct {
	cfg    Config
	tokens driven.IdentityTokenStore

	httpClient  *http.Client
	openBrowser func(url string) error
	prompt      func(url string)
	now         func() time.Time
}

// NewGoogleProvider creates a provider that caches tokens in store.
func NewGoogleProvider(cfg Config, store driven.IdentityTokenStore) *GoogleProvider {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = google.Endpoint
	}
	if cfg.CallbackTimeout <= 0 {
		cfg.CallbackTimeout = DefaultCallbackTimeout
	}
	return &GoogleProvider{
		cfg:         cfg,
		tokens:      store,
		openBrowser: OpenBrowser,
		now:         time.Now,
	}
}

// SetHTTPClient sets the client used for token requests.
func (p *GoogleProvider) SetHTTPClient(c *http.Client) {
	p.httpClient = c
}

// SetBrowserOpener replaces the function that opens the consent page.
func (p *GoogleProvider) SetBrowserOpener(fn func(url string) error) {
	p.openBrowser = fn
}

// SetPrompt registers a function shown the consent URL before the browser opens.
func (p *GoogleProvider) SetPrompt(fn func(url string)) {
	p.prompt = fn
}

func (p *GoogleProvider) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     p.cfg.Endpoint,
		RedirectURL:  redirectURI,
		Scopes:       p.cfg.Scopes,
	}
}

func (p *GoogleProvider) context(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// SignIn runs the browser consent flow and returns the new ID token.
func (p *GoogleProvider) SignIn(ctx context.Context) (string, error) {
	if p.cfg.ClientID == "" {
		return "", fmt.Errorf("%w: no OAuth client configured, run 'rocketfuel settings auth'", domain.ErrAuthRequired)
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	callback, err := ListenCallback(p.cfg.CallbackPort, state)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := callback.Close(); err != nil {
			logger.Warn("identity: close callback listener: %v", err)
		}
	}()

	conf := p.oauthConfig(callback.RedirectURI())
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)
	logger.Debug("identity: waiting for callback on %s", callback.RedirectURI())

	if p.prompt != nil {
		p.prompt(authURL)
	}
	if err := p.openBrowser(authURL); err != nil {
		logger.Warn("identity: open browser: %v", err)
	}

	code, err := callback.Wait(ctx, p.cfg.CallbackTimeout)
	if err != nil {
		return "", err
	}

	tok, err := conf.Exchange(p.context(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", fmt.Errorf("%w: exchange code: %w", domain.ErrAuthInvalid, err)
	}
	return p.store(ctx, tok)
}

// Refresh returns a usable ID token without user interaction.
// A cached ID token that has not expired is returned as is.
func (p *GoogleProvider) Refresh(ctx context.Context) (string, error) {
	cached, err := p.tokens.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrAuthRequired
	}
	if err != nil {
		return "", fmt.Errorf("load identity token: %w", err)
	}

	if cached.IDToken != "" {
		if claims, err := p.Claims(ctx, cached.IDToken); err == nil && p.now().Add(idTokenLeeway).Before(claims.Expiry) {
			logger.Debug("identity: reusing cached id token")
			return cached.IDToken, nil
		}
	}

	if !cached.CanRefresh() {
		return "", domain.ErrAuthRequired
	}

	// No access token forces the source to refresh.
	source := p.oauthConfig("").TokenSource(p.context(ctx), &oauth2.Token{
		RefreshToken: cached.RefreshToken,
		TokenType:    cached.TokenType,
	})
	tok, err := source.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.ErrorCode == "invalid_grant" {
			_ = p.tokens.Clear(ctx)
			return "", fmt.Errorf("%w: refresh token revoked", domain.ErrAuthExpired)
		}
		return "", fmt.Errorf("refresh identity token: %w", err)
	}
	logger.Debug("identity: refreshed token")
	return p.store(ctx, tok)
}

// SignOut forgets the cached token.
func (p *GoogleProvider) SignOut(ctx context.Context) error {
	return p.tokens.Clear(ctx)
}

// Claims decodes an ID token's payload. The signature is not checked;
// the server verifies tokens it is given.
func (p *GoogleProvider) Claims(_ context.Context, idToken string) (*domain.IdentityClaims, error) {
	payload, err := idtoken.ParsePayload(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: parse id token: %w", domain.ErrAuthInvalid, err)
	}
	claims := &domain.IdentityClaims{
		Subject: payload.Subject,
		Expiry:  time.Unix(payload.Expires, 0),
	}
	claims.Email, _ = payload.Claims["email"].(string)
	claims.Name, _ = payload.Claims["name"].(string)
	claims.Picture, _ = payload.Claims["picture"].(string)
	return claims, nil
}

func (p *GoogleProvider) store(ctx context.Context, tok *oauth2.Token) (string, error) {
	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", fmt.Errorf("%w: token response has no id_token", domain.ErrAuthInvalid)
	}
	cached := domain.IdentityToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
	if err := p.tokens.Save(ctx, cached); err != nil {
		return "", fmt.Errorf("save identity token: %w", err)
	}
	return idToken, nil
}

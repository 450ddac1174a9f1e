package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default setting values.
const (
	DefaultAPIBaseURL      = "http://localhost:8080"
	DefaultAPITimeout      = 30 * time.Second
	DefaultCallbackPort    = 8765
	DefaultSearchPageLimit = 20
)

// APISettings configures the connection to the Rocket Fuel server.
type APISettings struct {
	// BaseURL is the server origin, e.g. https://rocketfuel.example.com.
	BaseURL string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

// AuthSettings configures the identity provider sign-in.
type AuthSettings struct {
	// ClientID is the OAuth client registered with the identity provider.
	ClientID string

	// ClientSecret is the OAuth client secret.
	ClientSecret string

	// CallbackPort is the loopback port for the OAuth redirect.
	CallbackPort int
}

// IsConfigured returns true if sign-in can be attempted.
func (a AuthSettings) IsConfigured() bool {
	return a.ClientID != ""
}

// SearchSettings holds incremental search behaviour.
type SearchSettings struct {
	// Debounce is the quiet period before a search is issued.
	Debounce time.Duration

	// QuickLimit is how many results the quick search shows.
	QuickLimit int

	// PageLimit is how many results a full search shows.
	PageLimit int
}

// AppSettings holds all application settings.
type AppSettings struct {
	API    APISettings
	Auth   AuthSettings
	Search SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Auth is left unconfigured until the user registers a client.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultAPITimeout,
		},
		Auth: AuthSettings{
			CallbackPort: DefaultCallbackPort,
		},
		Search: SearchSettings{
			Debounce:   DefaultDebounce,
			QuickLimit: QuickSearchLimit,
			PageLimit:  DefaultSearchPageLimit,
		},
	}
}

// Validate checks the settings for values the client cannot work with.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api base url scheme %q", ErrInvalidInput, u.Scheme)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidInput)
	}
	if s.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrInvalidInput)
	}
	if s.Auth.CallbackPort < 0 || s.Auth.CallbackPort > 65535 {
		return fmt.Errorf("%w: callback port %d", ErrInvalidInput, s.Auth.CallbackPort)
	}
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidInput)
	}
	if s.Search.QuickLimit <= 0 || s.Search.PageLimit <= 0 {
		return fmt.Errorf("%w: search limits must be positive", ErrInvalidInput)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIBaseURL       = "api.base_url"
	keyAPITimeout       = "api.timeout"
	keyAPIRateLimit     = "api.requests_per_second"
	keyAuthClientID     = "auth.client_id"
	keyAuthClientSecret = "auth.client_secret"
	keyAuthCallbackPort = "auth.callback_port"
	keySearchDebounce   = "search.debounce_ms"
	keySearchQuickLimit = "search.quick_limit"
	keySearchPageLimit  = "search.page_limit"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAPIURL       = "ROCKETFUEL_API_URL"
	EnvClientSecret = "ROCKETFUEL_CLIENT_SECRET"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			Timeout:           s.getDuration(keyAPITimeout, defaults.API.Timeout),
			RequestsPerSecond: s.configStore.GetFloat(keyAPIRateLimit),
		},
		Auth: domain.AuthSettings{
			ClientID:     s.configStore.GetString(keyAuthClientID),
			ClientSecret: s.configStore.GetString(keyAuthClientSecret),
			CallbackPort: s.getInt(keyAuthCallbackPort, defaults.Auth.CallbackPort),
		},
		Search: domain.SearchSettings{
			Debounce:   s.getMillis(keySearchDebounce, defaults.Search.Debounce),
			QuickLimit: s.getInt(keySearchQuickLimit, defaults.Search.QuickLimit),
			PageLimit:  s.getInt(keySearchPageLimit, defaults.Search.PageLimit),
		},
	}

	if v := s.getenv(EnvAPIURL); v != "" {
		settings.API.BaseURL = v
	}
	if v := s.getenv(EnvClientSecret); v != "" {
		settings.Auth.ClientSecret = v
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPITimeout, settings.API.Timeout.String()},
		{keyAPIRateLimit, settings.API.RequestsPerSecond},
		{keyAuthClientID, settings.Auth.ClientID},
		{keyAuthCallbackPort, int64(settings.Auth.CallbackPort)},
		{keySearchDebounce, settings.Search.Debounce.Milliseconds()},
		{keySearchQuickLimit, int64(settings.Search.QuickLimit)},
		{keySearchPageLimit, int64(settings.Search.PageLimit)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty secret keeps whatever is stored.
	if settings.Auth.ClientSecret != "" {
		if err := s.configStore.Set(keyAuthClientSecret, settings.Auth.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", keyAuthClientSecret, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
// The resulting settings are validated before anything is stored.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	var stored any
	switch key {
	case keyAPIBaseURL:
		settings.API.BaseURL = strings.TrimRight(value, "/")
		stored = settings.API.BaseURL
	case keyAPITimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		settings.API.Timeout = d
		stored = d.String()
	case keyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		settings.API.RequestsPerSecond = f
		stored = f
	case keyAuthClientID:
		settings.Auth.ClientID = value
		stored = value
	case keyAuthClientSecret:
		settings.Auth.ClientSecret = value
		stored = value
	case keyAuthCallbackPort:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Auth.CallbackPort = n
		stored = int64(n)
	case keySearchDebounce:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Search.Debounce = time.Duration(n) * time.Millisecond
		stored = int64(n)
	case keySearchQuickLimit:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Search.QuickLimit = n
		stored = int64(n)
	case keySearchPageLimit:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Search.PageLimit = n
		stored = int64(n)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyAPIBaseURL, keyAPITimeout, keyAPIRateLimit,
		keyAuthClientID, keyAuthClientSecret, keyAuthCallbackPort,
		keySearchDebounce, keySearchQuickLimit, keySearchPageLimit,
	}
	sort.Strings(keys)
	return keys
}

// Watch sends freshly read settings after every external edit of the config.
// Returns domain.ErrNotImplemented if the config store cannot be watched.
func (s *SettingsService) Watch(ctx context.Context) (<-chan domain.AppSettings, error) {
	watcher, ok := s.configStore.(driven.ConfigWatcher)
	if !ok {
		return nil, domain.ErrNotImplemented
	}
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.AppSettings, 1)
	go func() {
		defer close(out)
		for range changes {
			settings, err := s.Get()
			if err != nil {
				logger.Warn("settings: reload: %v", err)
				continue
			}
			select {
			case out <- *settings:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

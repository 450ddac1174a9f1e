package driving

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// SettingsService reads and edits AppSettings backed by the config store.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set parses value for key (e.g. "search.debounce_ms" = "250"),
	// validates the result and saves it.
	Set(key, value string) error
	Keys() []string

	// Watch delivers fresh settings after each external edit of the config
	// file until ctx is done. It fails with domain.ErrNotImplemented when the
	// store cannot be watched.
	Watch(ctx context.Context) (<-chan domain.AppSettings, error)

	GetDefaults() domain.AppSettings
}

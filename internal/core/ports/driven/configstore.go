package driven

import "context"

// ConfigStore is a flat key/value view of config.toml. Typed getters coerce
// what the decoder produced (TOML integers arrive as int64) and return the
// zero value for a missing or mistyped key.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	// GetFloat accepts integer values too.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set and Delete write through to the backing file.
	Set(key string, value any) error
	Delete(key string) error

	Save() error
	Load() error

	// Path is the backing file, or a placeholder for in-memory stores.
	Path() string
}

// ConfigWatcher is the optional live-reload side of a ConfigStore.
type ConfigWatcher interface {
	// Watch reloads on every external edit and signals once per reload.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

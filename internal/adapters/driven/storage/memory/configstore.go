package memory

import (
	"maps"
	"sync"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/config/coerce"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map for tests and for runs where the
// config directory cannot be created. Nothing survives the process.
type ConfigStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewConfigStore returns a store seeded with a copy of values, if given.
func NewConfigStore(values ...map[string]any) *ConfigStore {
	data := make(map[string]any)
	for _, v := range values {
		maps.Copy(data, v)
	}
	return &ConfigStore{data: data}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	return coerce.String(v)
}

func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	return coerce.Int(v)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	v, _ := s.Get(key)
	return coerce.Float(v)
}

func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.Get(key)
	return coerce.Bool(v)
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Save is a no-op; Set already holds the value.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; there is no backing file to re-read.
func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" so callers can tell nothing is on disk.
func (s *ConfigStore) Path() string { return ":memory:" }

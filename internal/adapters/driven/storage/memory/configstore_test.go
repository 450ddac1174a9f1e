package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.data)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"api.base_url": "http://localhost:8080", "search.page_limit": int64(20)}
	store := NewConfigStore(seed)

	assert.Equal(t, "http://localhost:8080", store.GetString("api.base_url"))
	assert.Equal(t, 20, store.GetInt("search.page_limit"))

	_ = store.Set("api.base_url", "https://rocketfuel.example.com")
	assert.Equal(t, "http://localhost:8080", seed["api.base_url"], "seed map is copied")
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.base_url", "http://localhost:8080"))
	require.NoError(t, store.Set("api.base_url", "https://rocketfuel.example.com"))

	val, ok := store.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "https://rocketfuel.example.com", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("auth.client_secret", "s3cret")

	require.NoError(t, store.Delete("auth.client_secret"))
	require.NoError(t, store.Delete("never-set"))

	_, ok := store.Get("auth.client_secret")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("string", "value")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(700))
	_ = store.Set("float", 2.5)
	_ = store.Set("bool", true)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("string"), "value"},
		{"string wrong type", store.GetString("int"), ""},
		{"string missing", store.GetString("missing"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 700},
		{"int from float", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("string"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float from int64", store.GetFloat("int64"), 700.0},
		{"float wrong type", store.GetFloat("bool"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("string"), false},
		{"bool missing", store.GetBool("missing"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveAndLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", "value")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key-%d", id), id)
		}(i)
		go func(id int) {
			defer wg.Done()
			_, _ = store.Get(fmt.Sprintf("key-%d", id))
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key-%d", i)))
	}
}

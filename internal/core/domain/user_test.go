package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsSignedIn(t *testing.T) {
	assert.False(t, Session{}.IsSignedIn())
	assert.True(t, Session{Token: "abc"}.IsSignedIn())
}

func TestIdentityToken_IsExpired(t *testing.T) {
	assert.False(t, IdentityToken{}.IsExpired())
	assert.True(t, IdentityToken{Expiry: time.Now().Add(-time.Minute)}.IsExpired())
	assert.False(t, IdentityToken{Expiry: time.Now().Add(time.Hour)}.IsExpired())
}

func TestIdentityToken_CanRefresh(t *testing.T) {
	assert.False(t, IdentityToken{}.CanRefresh())
	assert.True(t, IdentityToken{RefreshToken: "r"}.CanRefresh())
}

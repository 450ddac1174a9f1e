package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 500, Status: "500 Internal Server Error", Method: "GET", URL: "http://x/api"}
	assert.Equal(t, "rocketfuel: GET http://x/api: 500 Internal Server Error", err.Error())

	err.Body = []byte("oops")
	assert.Equal(t, "rocketfuel: GET http://x/api: 500 Internal Server Error: oops", err.Error())
}

func TestHTTPError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrAuthRequired},
		{http.StatusBadRequest, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.ErrorIs(t, &HTTPError{StatusCode: tt.status}, tt.target)
		})
	}

	assert.Nil(t, (&HTTPError{StatusCode: 500}).Unwrap())
}

func TestStatusHelpers(t *testing.T) {
	wrapped := fmt.Errorf("list answers: %w", &HTTPError{StatusCode: http.StatusForbidden})

	assert.Equal(t, http.StatusForbidden, StatusCode(wrapped))
	assert.True(t, IsForbidden(wrapped))
	assert.False(t, IsUnauthorized(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc"), 5))
	assert.Equal(t, "ab...", truncate([]byte("abcdef"), 2))
}

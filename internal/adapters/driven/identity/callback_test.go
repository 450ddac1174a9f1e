//nolint:noctx // Test file uses http.Get for convenience; context not required in tests
package identity

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

func listen(t *testing.T, port int, state string) *Callback {
	t.Helper()
	c, err := ListenCallback(port, state)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func serve(c *Callback, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, callbackPath+query, nil))
	return rec
}

func TestCallback_RedirectURI(t *testing.T) {
	c := newCallback(8765, "state-1")

	assert.Equal(t, 8765, c.Port())
	assert.Equal(t, "http://127.0.0.1:8765/callback", c.RedirectURI())
	assert.NoError(t, c.Close(), "closing an unstarted callback is a no-op")
}

func TestListenCallback_AnyPort(t *testing.T) {
	c := listen(t, 0, "state-1")

	assert.NotZero(t, c.Port())
}

func TestListenCallback_FallsBackWhenPortBusy(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	c, err := ListenCallback(port, "state-1")
	if err != nil {
		t.Skipf("no free port after %d: %v", port, err)
	}
	defer c.Close()

	assert.Greater(t, c.Port(), port)
	assert.LessOrEqual(t, c.Port(), port+portSpread)
}

func TestCallback_ReceivesCode(t *testing.T) {
	c := listen(t, 0, "state-abc")

	resp, err := http.Get(c.RedirectURI() + "?code=code-xyz&state=state-abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	code, err := c.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "code-xyz", code)
}

func TestCallback_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
		wantMsg string
	}{
		{"state mismatch", "?code=c&state=wrong", domain.ErrAuthInvalid, "state mismatch"},
		{"empty state", "?code=c", domain.ErrAuthInvalid, "state mismatch"},
		{"missing code", "?state=good", domain.ErrAuthInvalid, "no authorization code"},
		{"provider error", "?error=server_error&error_description=oops", domain.ErrAuthInvalid, "oops"},
		{"user declined", "?error=access_denied", domain.ErrAuthCancelled, "cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCallback(0, "good")

			rec := serve(c, tt.query)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Sign-in failed")
			_, err := c.Wait(context.Background(), time.Second)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCallback_EscapesProviderError(t *testing.T) {
	rec := serve(newCallback(0, "good"), "?error=%3Cscript%3E")

	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestCallback_WaitTimeout(t *testing.T) {
	_, err := newCallback(0, "s").Wait(context.Background(), 10*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallback_WaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCallback(0, "s").Wait(ctx, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallback_FirstResultWins(t *testing.T) {
	c := newCallback(0, "s")

	serve(c, "?state=s&code=first")
	serve(c, "?state=s&code=second")
	rec := serve(c, "?state=wrong&code=third")

	assert.Contains(t, rec.Body.String(), "Sign-in failed", "later requests still get a page")
	code, err := c.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := browserCommand(tt.goos, "https://accounts.google.com/o/oauth2/auth")

			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, "https://accounts.google.com/o/oauth2/auth", args[len(args)-1])
		})
	}

	_, _, err := browserCommand("plan9", "x")
	assert.ErrorContains(t, err, "plan9")
}


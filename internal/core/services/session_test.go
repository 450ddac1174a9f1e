package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/storage/memory"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// Ensure SessionService can authenticate the request client.
var _ apiclient.Authenticator = (*SessionService)(nil)

func newSignInFixture() (*SessionService, *mockUserAPI, *mockIdentityProvider, *memory.SessionStore) {
	users := &mockUserAPI{
		users: map[string]*domain.User{
			"ada@example.com": {ID: 7, Email: "ada@example.com", Name: "Ada"},
		},
	}
	identity := &mockIdentityProvider{
		signInToken:  "id-1",
		refreshToken: "id-2",
		claims:       &domain.IdentityClaims{Email: "ada@example.com", Name: "Ada L."},
	}
	store := memory.NewSessionStore()
	s := NewSessionService(users, identity)
	s.SetSessionStore(store)
	s.SetClock(newManualClock())
	return s, users, identity, store
}

func TestSessionService_InitiallySignedOut(t *testing.T) {
	s := NewSessionService(&mockUserAPI{}, nil)

	assert.False(t, s.Current().IsSignedIn())
	assert.Empty(t, s.Token())
}

func TestSessionService_SignIn(t *testing.T) {
	s, users, identity, store := newSignInFixture()
	ctx := context.Background()

	session, err := s.SignIn(ctx)

	require.NoError(t, err)
	assert.Equal(t, "app-id-1", session.Token)
	assert.Equal(t, "id-1", session.IDToken)
	assert.Equal(t, int64(7), session.User.ID)
	assert.Equal(t, "Ada", session.User.Name)
	assert.Equal(t, 1, identity.signIns)
	assert.Equal(t, []string{"id-1"}, users.authCalls)
	assert.Equal(t, "app-id-1", s.Token())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, *session, *saved)
}

func TestSessionService_SignIn_UserLookupFallsBackToClaims(t *testing.T) {
	s, users, _, _ := newSignInFixture()
	users.byEmailErr = errors.New("boom")

	session, err := s.SignIn(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, "Ada L.", session.User.Name)
	assert.Zero(t, session.User.ID)
}

func TestSessionService_SignIn_NoIdentityProvider(t *testing.T) {
	s := NewSessionService(&mockUserAPI{}, nil)

	_, err := s.SignIn(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSessionService_SignIn_ExchangeFails(t *testing.T) {
	s, users, _, store := newSignInFixture()
	users.authErr = domain.ErrAuthInvalid

	_, err := s.SignIn(context.Background())

	require.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.False(t, s.Current().IsSignedIn())
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Reauthenticate_KeepsUser(t *testing.T) {
	s, users, identity, store := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Reauthenticate(ctx))

	assert.Equal(t, 1, identity.refreshs)
	assert.Equal(t, "app-id-2", s.Token())
	assert.Equal(t, "id-2", s.Current().IDToken)
	assert.Equal(t, int64(7), s.Current().User.ID)
	// Only the sign-in looked the user up.
	assert.Len(t, users.emailCalls, 1)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "app-id-2", saved.Token)
}

func TestSessionService_Reauthenticate_SkipsWhenAlreadyRenewed(t *testing.T) {
	s, users, identity, _ := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)
	stale := s.Token()

	require.NoError(t, s.Reauthenticate(ctx))
	// A second 401 that was sent with the old token arrives after the renewal.
	require.NoError(t, s.reauthenticate(ctx, stale))

	assert.Equal(t, 1, identity.refreshs)
	assert.Equal(t, []string{"id-1", "id-2"}, users.authCalls)
	assert.Equal(t, "app-id-2", s.Token())
}

func TestSessionService_Reauthenticate_ConcurrentCallersRefreshOnce(t *testing.T) {
	s, _, identity, _ := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)
	stale := s.Token()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.reauthenticate(ctx, stale))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, identity.refreshs)
	assert.Equal(t, "app-id-2", s.Token())
}

func TestSessionService_Reauthenticate_FailureClearsSession(t *testing.T) {
	s, _, identity, store := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)
	identity.refreshErr = domain.ErrAuthRequired

	err = s.Reauthenticate(ctx)

	require.ErrorIs(t, err, domain.ErrReauthenticationFailed)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, s.Current().IsSignedIn())
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Reauthenticate_NoIdentityProvider(t *testing.T) {
	s := NewSessionService(&mockUserAPI{}, nil)

	err := s.Reauthenticate(context.Background())

	assert.ErrorIs(t, err, domain.ErrReauthenticationFailed)
}

func TestSessionService_SignOut(t *testing.T) {
	s, _, identity, store := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx))

	assert.Equal(t, 1, identity.signOuts)
	assert.False(t, s.Current().IsSignedIn())
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_SignOut_IdentityErrorStillClears(t *testing.T) {
	s, _, identity, _ := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)
	identity.signOutErr = errors.New("revoke failed")

	err = s.SignOut(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke failed")
	assert.False(t, s.Current().IsSignedIn())
}

func TestSessionService_Restore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	require.NoError(t, store.Save(ctx, domain.Session{Token: "saved", User: domain.User{Email: "ada@example.com"}}))

	s := NewSessionService(&mockUserAPI{}, nil)
	s.SetSessionStore(store)

	require.NoError(t, s.Restore(ctx))
	assert.Equal(t, "saved", s.Token())
}

func TestSessionService_Restore_Empty(t *testing.T) {
	s := NewSessionService(&mockUserAPI{}, nil)
	require.NoError(t, s.Restore(context.Background()))

	s.SetSessionStore(memory.NewSessionStore())
	require.NoError(t, s.Restore(context.Background()))
	assert.False(t, s.Current().IsSignedIn())
}

func TestSessionService_Subscribe(t *testing.T) {
	s, _, _, _ := newSignInFixture()
	ctx := context.Background()

	var seen []string
	unsubscribe := s.Subscribe(func(session domain.Session) {
		seen = append(seen, session.Token)
	})

	_, err := s.SignIn(ctx)
	require.NoError(t, err)
	unsubscribe()
	require.NoError(t, s.SignOut(ctx))

	// Sign-in publishes twice: once with the token, once with the user.
	assert.Equal(t, []string{"app-id-1", "app-id-1"}, seen)
}

// A 401 makes the request client re-authenticate through the session and retry.
func TestSessionService_DrivesClientReauthentication(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		cookie, err := r.Cookie(apiclient.TokenCookie)
		if err != nil || cookie.Value != "app-id-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	s, _, _, _ := newSignInFixture()
	ctx := context.Background()
	_, err := s.SignIn(ctx)
	require.NoError(t, err)

	client, err := apiclient.NewClient(server.URL, apiclient.WithAuthenticator(s))
	require.NoError(t, err)
	var out struct {
		OK bool `json:"ok"`
	}
	err = client.Do(ctx, apiclient.RequestOptions{URL: "/api/questions", Method: http.MethodGet}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "app-id-2", s.Token())
}

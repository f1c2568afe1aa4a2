package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Store, *TokenStorage) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	storage, err := NewTokenStorage(t.TempDir())
	require.NoError(t, err)

	store := NewStore()
	return NewClient(srv.URL, store, storage), store, storage
}

func TestLoginChainsLoadUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	})
	mux.HandleFunc("GET /api/auth", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-token", r.Header.Get(middleware.TokenHeader))
		json.NewEncoder(w).Encode(map[string]string{"name": "Jane Dev", "email": "jane@example.com"})
	})

	c, store, storage := newTestClient(t, mux)

	err := c.Login(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)

	state := store.State()
	assert.True(t, state.Auth.IsAuthenticated)
	assert.Equal(t, "session-token", state.Auth.Token)
	require.NotNil(t, state.Auth.User)
	assert.Equal(t, "Jane Dev", state.Auth.User.Name)

	tok, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "session-token", tok)
}

func TestLoginFailureSetsAlerts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"msg": "invalid credentials"}},
		})
	})

	c, store, storage := newTestClient(t, mux)

	err := c.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	state := store.State()
	assert.False(t, state.Auth.IsAuthenticated)
	require.Len(t, state.Alerts, 1)
	assert.Equal(t, "invalid credentials", state.Alerts[0].Msg)
	assert.NotEmpty(t, state.Alerts[0].ID)

	tok, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestLoadUserFailureClearsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "token is not valid"})
	})

	c, store, storage := newTestClient(t, mux)
	require.NoError(t, storage.Save("stale-token"))

	err := c.LoadUser(context.Background())
	require.Error(t, err)

	assert.False(t, store.State().Auth.IsAuthenticated)
	tok, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestGetGithubRepos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profile/github/octocat", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "hello-world"}]`))
	})

	c, store, _ := newTestClient(t, mux)

	err := c.GetGithubRepos(context.Background(), "octocat")
	require.NoError(t, err)

	repos := store.State().Profile.Repos
	require.Len(t, repos, 1)
	assert.Equal(t, "hello-world", repos[0].Name)
}

func TestSetAlertTimeout(t *testing.T) {
	c, store, _ := newTestClient(t, http.NotFoundHandler())

	c.SetAlertTimeout("saved", "success", 10*time.Millisecond)
	require.Len(t, store.State().Alerts, 1)

	assert.Eventually(t, func() bool {
		return len(store.State().Alerts) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestTokenStorageRoundTrip(t *testing.T) {
	storage, err := NewTokenStorage(t.TempDir())
	require.NoError(t, err)

	tok, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, storage.Save("abc123"))
	tok, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, storage.Clear())
	require.NoError(t, storage.Clear())
	tok, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

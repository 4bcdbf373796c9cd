package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/condoease/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "alice@example.com" || req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  types.User{ID: 1, Email: "alice@example.com", FirstName: "Alice", Role: "user"},
			"announcements": []types.Announcement{
				{ID: 1, Title: "Pool closed", UserID: 1},
			},
		})
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(types.User{ID: 1, Email: "alice@example.com", Role: "user"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	_, err = store.Load()
	require.NoError(t, err)
	return store
}

func TestAPILogin_Success(t *testing.T) {
	srv := newFakeServer(t)
	session := newLoadedStore(t)
	api := NewAPI(srv.URL, session)

	user, announcements, err := api.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	require.Len(t, announcements, 1)
	assert.Equal(t, "Pool closed", announcements[0].Title)

	// Login persists the session in lockstep.
	state := session.State()
	assert.True(t, state.SignedIn())
	assert.Equal(t, "tok-123", state.Token)
	assert.Equal(t, DecisionAllow, Decide(state))
}

func TestAPILogin_BadCredentials(t *testing.T) {
	srv := newFakeServer(t)
	session := newLoadedStore(t)
	api := NewAPI(srv.URL, session)

	_, _, err := api.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A failed login must not create a session.
	assert.False(t, session.State().SignedIn())
}

func TestAPIMe_Success(t *testing.T) {
	srv := newFakeServer(t)
	session := newLoadedStore(t)
	api := NewAPI(srv.URL, session)

	_, _, err := api.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	user, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAPIMe_StaleTokenClearsSession(t *testing.T) {
	srv := newFakeServer(t)
	session := newLoadedStore(t)
	require.NoError(t, session.Login(types.User{ID: 1, Email: "a@b.c"}, "stale-token"))

	api := NewAPI(srv.URL, session)
	_, err := api.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The rejected token was dropped so the client signs in fresh.
	assert.False(t, session.State().SignedIn())
}

func TestAPIMe_NoSession(t *testing.T) {
	srv := newFakeServer(t)
	api := NewAPI(srv.URL, newLoadedStore(t))

	_, err := api.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/condoease/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func TestStoreLoad_MissingFile(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load()
	require.NoError(t, err)

	assert.True(t, state.Loaded)
	assert.False(t, state.SignedIn())
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
}

func TestStoreLoginPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	user := types.User{ID: 1, Email: "alice@example.com", FirstName: "Alice", Role: "user"}
	require.NoError(t, store.Login(user, "token-abc"))

	// A fresh store over the same file resumes the session.
	restarted, err := NewStore(path)
	require.NoError(t, err)
	state, err := restarted.Load()
	require.NoError(t, err)

	assert.True(t, state.SignedIn())
	require.NotNil(t, state.User)
	assert.Equal(t, "alice@example.com", state.User.Email)
	assert.Equal(t, "token-abc", state.Token)
}

func TestStoreLogin_EmptyToken(t *testing.T) {
	store := newTestStore(t)
	err := store.Login(types.User{ID: 1}, "")
	assert.Error(t, err)
}

func TestStoreLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Login(types.User{ID: 1, Email: "a@b.c"}, "tok"))
	require.NoError(t, store.Logout())

	state := store.State()
	assert.True(t, state.Loaded)
	assert.False(t, state.SignedIn())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Logout when already signed out is not an error.
	require.NoError(t, store.Logout())
}

func TestStoreLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	state, err := store.Load()
	require.NoError(t, err)

	assert.True(t, state.Loaded)
	assert.False(t, state.SignedIn())
}

func TestStoreLoad_TornSessionDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	// Token without a user must never produce a signed-in state.
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"orphan"}`), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	state, err := store.Load()
	require.NoError(t, err)

	assert.False(t, state.SignedIn())
	assert.Empty(t, state.Token)
}

func TestStoreToken(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load()
	require.NoError(t, err)

	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Login(types.User{ID: 1}, "tok"))
	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

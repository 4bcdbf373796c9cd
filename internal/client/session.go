// Package client implements the CLI client side of CondoEase: a
// file-backed session store, the guard deciding access to protected
// views and a thin HTTP API client.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/condoease/apiserver/types"
)

// ErrNoSession is returned when no session has been persisted.
var ErrNoSession = errors.New("no active session")

const sessionFileMode = 0o600

// State is the client's view of authentication. Loaded reports whether
// the persisted session has been read yet; until then the user and
// token fields are meaningless and guards must not redirect.
type State struct {
	User   *types.User `json:"user"`
	Token  string      `json:"token"`
	Loaded bool        `json:"-"`
}

// SignedIn reports whether both halves of the session are present.
func (s State) SignedIn() bool {
	return s.User != nil && s.Token != ""
}

// Store persists the session state to a JSON file so a new process
// resumes the previous session, mirroring a browser's local storage.
type Store struct {
	path  string
	state State
}

// NewStore creates a session store backed by the given file. An empty
// path falls back to .condoease/session.json in the home directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".condoease", "session.json")
	}
	return &Store{path: path}, nil
}

// Load reads the persisted session. A missing file is not an error: it
// yields a loaded, signed-out state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = State{Loaded: true}
			return s.state, nil
		}
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt session file is treated as signed out rather
		// than locking the user out of the client entirely.
		s.state = State{Loaded: true}
		return s.state, nil
	}
	state.Loaded = true

	// User and token are stored and cleared together. A half-present
	// pair means a torn write; discard it.
	if state.User == nil || state.Token == "" {
		state = State{Loaded: true}
	}

	s.state = state
	return s.state, nil
}

// State returns the in-memory session state.
func (s *Store) State() State {
	return s.state
}

// Login persists the user and token atomically: both are written in a
// single file replace, so a crash never leaves one without the other.
func (s *Store) Login(user types.User, token string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}

	state := State{User: &user, Token: token, Loaded: true}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, sessionFileMode); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.state = state
	return nil
}

// Logout clears both the user and token and removes the session file.
func (s *Store) Logout() error {
	s.state = State{Loaded: true}
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the persisted token, or ErrNoSession when signed out.
func (s *Store) Token() (string, error) {
	if !s.state.SignedIn() {
		return "", ErrNoSession
	}
	return s.state.Token, nil
}

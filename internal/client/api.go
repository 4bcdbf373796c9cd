package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/condoease/apiserver/types"
)

// ErrUnauthorized is returned when the server rejects the credentials
// or the stored token.
var ErrUnauthorized = errors.New("unauthorized")

// API is a thin HTTP client for the CondoEase server that keeps the
// session store in sync with login state.
type API struct {
	baseURL    string
	httpClient *http.Client
	session    *Store
}

// NewAPI constructs an API client against the given base URL.
func NewAPI(baseURL string, session *Store) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token         string               `json:"token"`
	User          types.User           `json:"user"`
	Announcements []types.Announcement `json:"announcements"`
}

// Login authenticates against the server and persists the session on
// success.
func (a *API) Login(ctx context.Context, email, password string) (types.User, []types.Announcement, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return types.User{}, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return types.User{}, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return types.User{}, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return types.User{}, nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return types.User{}, nil, apiError(resp)
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.User{}, nil, err
	}

	if err := a.session.Login(parsed.User, parsed.Token); err != nil {
		return types.User{}, nil, err
	}
	return parsed.User, parsed.Announcements, nil
}

// Logout clears the persisted session.
func (a *API) Logout() error {
	return a.session.Logout()
}

// Me fetches the profile for the stored session.
func (a *API) Me(ctx context.Context) (types.User, error) {
	token, err := a.session.Token()
	if err != nil {
		return types.User{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/me", nil)
	if err != nil {
		return types.User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return types.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The token no longer verifies; drop the stale session.
		_ = a.session.Logout()
		return types.User{}, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return types.User{}, apiError(resp)
	}

	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}

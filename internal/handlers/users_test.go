package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/auth"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserTestServer(t *testing.T, users *fakeUserRepo) *httptest.Server {
	t.Helper()

	userService := services.NewUserService(users, nil)
	handler := NewUserHandler(userService, bcrypt.MinCost)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		UserRouter(r, handler, RequireAuth(testSecret))
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doAuthedPut(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUpdateUser(t *testing.T) {
	token, err := auth.IssueToken(1, "alice@example.com", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		payload    map[string]string
		wantStatus int
		wantError  string
		check      func(t *testing.T, users *fakeUserRepo)
	}{
		{
			name:       "rename",
			payload:    map[string]string{"firstName": "Alicia"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, users *fakeUserRepo) {
				assert.Equal(t, "Alicia", users.users[1].FirstName)
			},
		},
		{
			name:       "no fields",
			payload:    map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantError:  "No fields to update",
		},
		{
			name: "email change requires password",
			payload: map[string]string{
				"email": "new@example.com", "password": "wrong",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Incorrect password",
		},
		{
			name: "email change with password",
			payload: map[string]string{
				"email": "new@example.com", "password": "correct-password",
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, users *fakeUserRepo) {
				assert.Equal(t, "new@example.com", users.users[1].Email)
			},
		},
		{
			name: "password change requires current password",
			payload: map[string]string{
				"currentPassword": "wrong", "newPassword": "next-password",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Incorrect current password",
		},
		{
			name: "password change rehashes",
			payload: map[string]string{
				"currentPassword": "correct-password", "newPassword": "next-password",
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, users *fakeUserRepo) {
				hash := users.users[1].PasswordHash
				assert.True(t, auth.CheckPassword("next-password", hash))
				assert.False(t, auth.CheckPassword("correct-password", hash))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			users.users[1] = types.User{
				ID: 1, Email: "alice@example.com", FirstName: "Alice",
				LastName: "Reyes", Role: "user",
				PasswordHash: mustHash(t, "correct-password"),
			}
			users.nextID = 2
			srv := newUserTestServer(t, users)

			resp := doAuthedPut(t, srv.URL+"/api/users/1", token, tt.payload)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, resp))
			}
			if tt.check != nil {
				tt.check(t, users)
			}
		})
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	token, err := auth.IssueToken(1, "alice@example.com", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	srv := newUserTestServer(t, newFakeUserRepo())
	resp := doAuthedPut(t, srv.URL+"/api/users/99", token, map[string]string{"firstName": "X"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decodeError(t, resp))
}

func TestListUsers_RequiresAuth(t *testing.T) {
	srv := newUserTestServer(t, newFakeUserRepo())

	resp, err := http.Get(srv.URL + "/api/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization header missing", decodeError(t, resp))
}

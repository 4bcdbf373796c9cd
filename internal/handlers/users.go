package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/auth"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/store"
)

// UserHandler provides user profile endpoints.
type UserHandler struct {
	userService *services.UserService
	bcryptCost  int
}

func NewUserHandler(userService *services.UserService, bcryptCost int) *UserHandler {
	return &UserHandler{userService: userService, bcryptCost: bcryptCost}
}

// UserRouter registers user routes on the given router. All routes
// require authentication.
func UserRouter(r chi.Router, handler *UserHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Put("/avatar", handler.UpdateAvatar)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type UpdateUserRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Update applies a partial profile edit. Changing the email requires the
// account password; changing the password requires the current one. Both
// checks reverify against the stored hash, not the session token.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	changed := false
	if req.FirstName != "" {
		user.FirstName = req.FirstName
		changed = true
	}
	if req.LastName != "" {
		user.LastName = req.LastName
		changed = true
	}

	if req.Email != "" && req.Email != user.Email {
		if !auth.CheckPassword(req.Password, user.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Incorrect password")
			return
		}
		user.Email = req.Email
		changed = true
	}

	if req.NewPassword != "" {
		if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Incorrect current password")
			return
		}
		hashed, err := auth.HashPassword(req.NewPassword, h.bcryptCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update password")
			return
		}
		user.PasswordHash = hashed
		changed = true
	}

	if !changed {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.userService.Update(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateAvatar replaces the authenticated user's avatar image.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization header missing")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	upload, err := formUpload(r.MultipartForm, "avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if upload == nil {
		writeError(w, http.StatusBadRequest, "avatar file is required")
		return
	}

	key, err := h.userService.UpdateAvatar(r.Context(), userID, *upload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadsDisabled):
			writeError(w, http.StatusServiceUnavailable, "uploads are not configured")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update avatar")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar": key})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

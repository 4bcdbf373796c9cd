package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

// AnnouncementHandler provides announcement board endpoints.
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// AnnouncementRouter registers announcement routes on the given router.
func AnnouncementRouter(r chi.Router, handler *AnnouncementHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/announcements", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}

// List returns the authenticated user's announcements, newest first.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization header missing")
		return
	}

	announcements, err := h.announcementService.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list announcements")
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid announcement id")
		return
	}

	announcement, err := h.announcementService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Announcement not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load announcement")
		return
	}
	writeJSON(w, http.StatusOK, announcement)
}

// Create accepts a multipart form with title, description and an
// optional file attachment.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization header missing")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	attachment, err := formUpload(r.MultipartForm, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.announcementService.Create(r.Context(), types.Announcement{
		Title:       title,
		Description: description,
		UserID:      userID,
	}, attachment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create announcement")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update edits title, description and optionally replaces the
// attachment.
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid announcement id")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	attachment, err := formUpload(r.MultipartForm, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.announcementService.Update(r.Context(), types.Announcement{
		ID:          id,
		Title:       title,
		Description: description,
	}, attachment)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Announcement not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update announcement")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid announcement id")
		return
	}

	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Announcement not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete announcement")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

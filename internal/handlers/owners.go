package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

// OwnerHandler provides owner registry endpoints.
type OwnerHandler struct {
	ownerService *services.OwnerService
}

func NewOwnerHandler(ownerService *services.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// OwnerRouter registers owner routes on the given router.
func OwnerRouter(r chi.Router, handler *OwnerHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/owners", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}/status", handler.UpdateStatus)
	})
}

func (h *OwnerHandler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.ownerService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list owners")
		return
	}
	writeJSON(w, http.StatusOK, owners)
}

func (h *OwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	owner, err := h.ownerService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Owner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load owner")
		return
	}
	writeJSON(w, http.StatusOK, owner)
}

func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var owner types.Owner
	if err := json.NewDecoder(r.Body).Decode(&owner); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	owner.FirstName = strings.TrimSpace(owner.FirstName)
	owner.LastName = strings.TrimSpace(owner.LastName)
	owner.Email = strings.TrimSpace(owner.Email)
	if owner.FirstName == "" || owner.LastName == "" || owner.Email == "" {
		writeError(w, http.StatusBadRequest, "First name, last name and email are required")
		return
	}

	created, err := h.ownerService.Create(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create owner")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *OwnerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Status != "active" && req.Status != "inactive" {
		writeError(w, http.StatusBadRequest, "Status must be active or inactive")
		return
	}

	if err := h.ownerService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Owner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update owner status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

// MaintenanceHandler provides maintenance request endpoints.
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// MaintenanceRouter registers maintenance request routes on the given
// router. The ongoing/completed aliases mirror the board views of the
// management dashboard.
func MaintenanceRouter(r chi.Router, handler *MaintenanceHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Route("/maintenance-requests", func(r chi.Router) {
			r.Get("/", handler.List)
			r.Post("/", handler.Create)
			r.Get("/{id}", handler.Get)
			r.Patch("/{id}/status", handler.UpdateStatus)
		})
		r.Get("/maintenance-ongoing", handler.ListOngoing)
		r.Get("/maintenance-completed", handler.ListCompleted)
	})
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	switch status {
	case "", types.MaintenancePending, types.MaintenanceOngoing, types.MaintenanceCompleted:
	default:
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	h.list(w, r, status)
}

func (h *MaintenanceHandler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, types.MaintenanceOngoing)
}

func (h *MaintenanceHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, types.MaintenanceCompleted)
}

func (h *MaintenanceHandler) list(w http.ResponseWriter, r *http.Request, status string) {
	requests, err := h.maintenanceService.List(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list maintenance requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := h.maintenanceService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Maintenance request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load maintenance request")
		return
	}
	writeJSON(w, http.StatusOK, request)
}

type CreateMaintenanceRequest struct {
	PropertyUnitID int    `json:"property_unit_id"`
	TenantID       int    `json:"tenant_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.PropertyUnitID < 1 || req.TenantID < 1 || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Unit, tenant and title are required")
		return
	}

	created, err := h.maintenanceService.Create(r.Context(), types.MaintenanceRequest{
		PropertyUnitID: req.PropertyUnitID,
		TenantID:       req.TenantID,
		Title:          req.Title,
		Description:    strings.TrimSpace(req.Description),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create maintenance request")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type MaintenanceStatusRequest struct {
	Status      string     `json:"status"`
	Comment     string     `json:"comment"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// UpdateStatus moves a request along the pending/ongoing/completed
// lifecycle, attaching the manager's comment and schedule.
func (h *MaintenanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req MaintenanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	switch req.Status {
	case types.MaintenancePending, types.MaintenanceOngoing, types.MaintenanceCompleted:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	err = h.maintenanceService.UpdateStatus(r.Context(), id, req.Status, strings.TrimSpace(req.Comment), req.ScheduledAt)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Maintenance request not found")
		case errors.Is(err, services.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "invalid status transition")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update maintenance request")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

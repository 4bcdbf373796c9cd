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

// UnitHandler provides property unit endpoints.
type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// UnitRouter registers property unit routes on the given router.
func UnitRouter(r chi.Router, handler *UnitHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/property-units", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/vacant", handler.ListVacant)
		r.Get("/{id}", handler.Get)
		r.Delete("/{id}", handler.Delete)
	})
}

// UnitListResponse is a paginated unit listing.
type UnitListResponse struct {
	Units []types.PropertyUnit `json:"units"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	units, total, err := h.unitService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list units")
		return
	}
	writeJSON(w, http.StatusOK, UnitListResponse{
		Units: units,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ListVacant returns units without an active lease, for lease creation
// pickers.
func (h *UnitHandler) ListVacant(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitService.ListVacant(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list vacant units")
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	unit, err := h.unitService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unit not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load unit")
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

// Create accepts a multipart form with the unit fields and repeated
// image files.
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	unit, err := unitFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := formUploads(r.MultipartForm, "images")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.unitService.Create(r.Context(), unit, images)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create unit")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	if err := h.unitService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unit not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete unit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func unitFromForm(r *http.Request) (types.PropertyUnit, error) {
	propertyID, err := parseOptionalInt(r.FormValue("propertyId"))
	if err != nil || propertyID < 1 {
		return types.PropertyUnit{}, errors.New("invalid property id")
	}

	unitNumber := strings.TrimSpace(r.FormValue("unitNumber"))
	if unitNumber == "" {
		return types.PropertyUnit{}, errors.New("Unit number is required")
	}

	commission, err := parseOptionalFloat(r.FormValue("commissionPercentage"))
	if err != nil {
		return types.PropertyUnit{}, errors.New("invalid commission percentage")
	}
	rent, err := parseOptionalFloat(r.FormValue("rentPrice"))
	if err != nil {
		return types.PropertyUnit{}, errors.New("invalid rent price")
	}
	deposit, err := parseOptionalFloat(r.FormValue("depositPrice"))
	if err != nil {
		return types.PropertyUnit{}, errors.New("invalid deposit price")
	}

	return types.PropertyUnit{
		PropertyID:           propertyID,
		UnitType:             strings.TrimSpace(r.FormValue("unitType")),
		UnitNumber:           unitNumber,
		CommissionPercentage: commission,
		RentPrice:            rent,
		DepositPrice:         deposit,
		Floor:                strings.TrimSpace(r.FormValue("floor")),
		Size:                 strings.TrimSpace(r.FormValue("size")),
		Description:          strings.TrimSpace(r.FormValue("description")),
	}, nil
}

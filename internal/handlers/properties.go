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

// PropertyHandler provides property registry endpoints.
type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRouter registers property routes on the given router.
func PropertyRouter(r chi.Router, handler *PropertyHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/properties", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}

// PropertyListResponse is a paginated property listing.
type PropertyListResponse struct {
	Properties []types.Property `json:"properties"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	properties, total, err := h.propertyService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	writeJSON(w, http.StatusOK, PropertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       page,
		Limit:      limit,
	})
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	property, err := h.propertyService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load property")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// Create accepts a multipart form mirroring the registration flow:
// scalar fields, a comma-separated features list and repeated image
// files.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	property, err := propertyFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := formUploads(r.MultipartForm, "images")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.propertyService.Create(r.Context(), property, images)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	var property types.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	property.ID = id
	if strings.TrimSpace(property.Name) == "" {
		writeError(w, http.StatusBadRequest, "Property name is required")
		return
	}

	updated, err := h.propertyService.Update(r.Context(), property)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := h.propertyService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func propertyFromForm(r *http.Request) (types.Property, error) {
	name := strings.TrimSpace(r.FormValue("propertyName"))
	if name == "" {
		return types.Property{}, errors.New("Property name is required")
	}

	units, err := parseOptionalInt(r.FormValue("units"))
	if err != nil {
		return types.Property{}, errors.New("invalid units")
	}

	return types.Property{
		Name:            name,
		RegisteredOwner: strings.TrimSpace(r.FormValue("registeredOwner")),
		AreaMeasurement: strings.TrimSpace(r.FormValue("areaMeasurement")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		Street:          strings.TrimSpace(r.FormValue("street")),
		Barangay:        strings.TrimSpace(r.FormValue("barangay")),
		City:            strings.TrimSpace(r.FormValue("city")),
		Province:        strings.TrimSpace(r.FormValue("province")),
		Notes:           strings.TrimSpace(r.FormValue("propertyNotes")),
		Units:           units,
		Features:        splitCommaList(r.FormValue("features")),
	}, nil
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

// LeaseHandler provides lease endpoints.
type LeaseHandler struct {
	leaseService *services.LeaseService
}

func NewLeaseHandler(leaseService *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// LeaseRouter registers lease routes on the given router.
func LeaseRouter(r chi.Router, handler *LeaseHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/leases", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
	})
}

func (h *LeaseHandler) List(w http.ResponseWriter, r *http.Request) {
	leases, err := h.leaseService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leases")
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lease id")
		return
	}

	lease, err := h.leaseService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Lease not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load lease")
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

// Create accepts a multipart form with the lease terms and repeated
// signed document files. The referenced unit is marked occupied on
// success.
func (h *LeaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	lease, err := leaseFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	documents, err := formUploads(r.MultipartForm, "documents")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.leaseService.Create(r.Context(), lease, documents)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unit not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create lease")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func leaseFromForm(r *http.Request) (types.Lease, error) {
	propertyID, err := parseOptionalInt(r.FormValue("property_id"))
	if err != nil || propertyID < 1 {
		return types.Lease{}, errors.New("invalid property id")
	}
	unitID, err := parseOptionalInt(r.FormValue("property_unit_id"))
	if err != nil || unitID < 1 {
		return types.Lease{}, errors.New("invalid property unit id")
	}
	tenantID, err := parseOptionalInt(r.FormValue("tenant_id"))
	if err != nil || tenantID < 1 {
		return types.Lease{}, errors.New("invalid tenant id")
	}

	rent, err := parseOptionalFloat(r.FormValue("rentPrice"))
	if err != nil {
		return types.Lease{}, errors.New("invalid rent price")
	}
	deposit, err := parseOptionalFloat(r.FormValue("depositPrice"))
	if err != nil {
		return types.Lease{}, errors.New("invalid deposit price")
	}

	startDate, err := time.Parse("2006-01-02", r.FormValue("startDate"))
	if err != nil {
		return types.Lease{}, errors.New("invalid start date")
	}
	endDate, err := time.Parse("2006-01-02", r.FormValue("endDate"))
	if err != nil {
		return types.Lease{}, errors.New("invalid end date")
	}
	if !endDate.After(startDate) {
		return types.Lease{}, errors.New("end date must be after start date")
	}

	return types.Lease{
		PropertyID:     propertyID,
		PropertyUnitID: unitID,
		TenantID:       tenantID,
		RentPrice:      rent,
		DepositPrice:   deposit,
		StartDate:      startDate,
		EndDate:        endDate,
	}, nil
}

// Package httpapi declares HTTP contracts and route registration helpers.
package httpapi

import (
	"fmt"
	"net/http"
	"strings"
)

// CatalogHandler serves the dataset vocabulary: states, districts, and
// observation months.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleGetStates handles GET /states requests.
func (h *CatalogHandler) HandleGetStates(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.get_states"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	states, err := h.deps.ListStates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"states": states})
}

// HandleGetDistricts handles GET /districts?state=NAME requests.
func (h *CatalogHandler) HandleGetDistricts(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.get_districts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrMissingState))
		return
	}
	districts, err := h.deps.ListDistricts(r.Context(), state)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"districts": districts})
}

// HandleGetMonths handles GET /months requests.
func (h *CatalogHandler) HandleGetMonths(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.get_months"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	months, err := h.deps.ListPeriods(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"months": months})
}

// Package httpapi declares HTTP contracts and route registration helpers.
package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hydrosense/hydrosense/internal/domain/dataset"
)

// TimeseriesHandler serves the merged per-period series for a state.
type TimeseriesHandler struct {
	deps Dependencies
}

// NewTimeseriesHandler creates a new timeseries handler.
func NewTimeseriesHandler(deps Dependencies) *TimeseriesHandler {
	return &TimeseriesHandler{deps: deps}
}

type timeseriesResponse struct {
	State string                  `json:"state"`
	Rows  []dataset.TimeseriesRow `json:"rows"`
}

// HandleGetTimeseries handles GET /timeseries?state=NAME requests.
func (h *TimeseriesHandler) HandleGetTimeseries(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.get_timeseries"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrMissingState))
		return
	}
	rows, err := h.deps.Timeseries(r.Context(), state)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, timeseriesResponse{State: state, Rows: rows})
}

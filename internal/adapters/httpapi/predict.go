// Package httpapi declares HTTP contracts and route registration helpers.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hydrosense/hydrosense/internal/domain/predictor"
)

// PredictHandler serves single-point model predictions.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

type predictResponse struct {
	PredictedLevel float64 `json:"predicted_gw_level_m_bgl"`
	RainfallMM     float64 `json:"rainfall_mm"`
	LagLevel       float64 `json:"lag_gw_level_m_bgl"`
}

// HandleGetPredict handles GET /predict?rainfall=MM&lag_gw=LEVEL requests.
func (h *PredictHandler) HandleGetPredict(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.get_predict"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rainfall, err := strconv.ParseFloat(r.URL.Query().Get("rainfall"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: rainfall: %w", op, ErrBadNumber))
		return
	}
	lag, err := strconv.ParseFloat(r.URL.Query().Get("lag_gw"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: lag_gw: %w", op, ErrBadNumber))
		return
	}

	level, err := h.deps.PredictPoint(r.Context(), rainfall, lag)
	if err != nil {
		if errors.Is(err, predictor.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "model_unavailable", fmt.Errorf("%s: %w", op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, predictResponse{
		PredictedLevel: level,
		RainfallMM:     rainfall,
		LagLevel:       lag,
	})
}

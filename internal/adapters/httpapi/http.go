// Package httpapi declares HTTP contracts and route registration helpers.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hydrosense/hydrosense/internal/domain/dataset"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Answer runs one chat turn against the named session.
	Answer(ctx context.Context, sessionID, text string) (string, error)

	// PredictPoint runs the prediction model on one rainfall/lag pair.
	PredictPoint(ctx context.Context, rainfallMM, lagLevel float64) (float64, error)

	// Read operations expose the dataset vocabulary and series.
	ListStates(ctx context.Context) ([]string, error)
	ListDistricts(ctx context.Context, state string) ([]string, error)
	ListPeriods(ctx context.Context) ([]string, error)
	Timeseries(ctx context.Context, state string) ([]dataset.TimeseriesRow, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	chatHandler       *ChatHandler
	catalogHandler    *CatalogHandler
	predictHandler    *PredictHandler
	timeseriesHandler *TimeseriesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		chatHandler:       NewChatHandler(deps),
		catalogHandler:    NewCatalogHandler(deps),
		predictHandler:    NewPredictHandler(deps),
		timeseriesHandler: NewTimeseriesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandlePostChat, "chat"))
	mux.HandleFunc("/states", MetricsMiddleware(s.catalogHandler.HandleGetStates, "states"))
	mux.HandleFunc("/districts", MetricsMiddleware(s.catalogHandler.HandleGetDistricts, "districts"))
	mux.HandleFunc("/months", MetricsMiddleware(s.catalogHandler.HandleGetMonths, "months"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandleGetPredict, "predict"))
	mux.HandleFunc("/timeseries", MetricsMiddleware(s.timeseriesHandler.HandleGetTimeseries, "timeseries"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hydrosense/hydrosense/internal/domain/chat"
	"github.com/hydrosense/hydrosense/internal/domain/dataset"
	"github.com/hydrosense/hydrosense/internal/domain/predictor"
	"github.com/hydrosense/hydrosense/pkg/logger"
	"github.com/hydrosense/hydrosense/pkg/metrics"
)

// Service wires the dataset store, the prediction model, and the chat
// engine together behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    *dataset.Store
	pred     predictor.Predictor
	engine   *chat.Engine
	sessions *chat.SessionManager

	// Configuration
	rainfallPath    string
	groundwaterPath string
	modelPath       string
	referenceYear   int
	sessionTTL      time.Duration
	maxDistricts    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRainfallPath sets the rainfall CSV path.
func WithRainfallPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.rainfallPath = path
		}
	}
}

// WithGroundwaterPath sets the groundwater CSV path.
func WithGroundwaterPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.groundwaterPath = path
		}
	}
}

// WithModelPath sets the prediction model artifact path. An empty path
// leaves the service without a predictor.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithReferenceYear sets the year that forecast horizons are measured from.
func WithReferenceYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// WithSessionTTL sets how long an idle conversation keeps its context.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMaxDistrictList caps the district listing before it truncates.
func WithMaxDistrictList(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDistricts = n
		}
	}
}

// WithStore injects an already loaded dataset store, skipping the CSV
// load on Start.
func WithStore(store *dataset.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithPredictor injects a predictor, skipping the artifact load on Start.
func WithPredictor(p predictor.Predictor) Option {
	return func(s *Service) {
		s.pred = p
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rainfallPath:    "data/rainfall.csv",
		groundwaterPath: "data/groundwater.csv",
		modelPath:       "models/groundwater_predictor.json",
		referenceYear:   2024,
		sessionTTL:      30 * time.Minute,
		maxDistricts:    10,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and the model artifact and builds the chat
// engine. A malformed dataset is fatal; a missing or malformed model
// artifact degrades the prediction handlers instead.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting hydrosense service...")

	if s.store == nil {
		store, err := s.loadStore()
		if err != nil {
			return err
		}
		s.store = store
	}
	metrics.SetDatasetSize(s.store.RainfallCount(), s.store.GroundwaterCount(), len(s.store.States()))

	if s.pred == nil && s.modelPath != "" {
		model, err := predictor.LoadModel(s.modelPath)
		if err != nil {
			s.logger.Warn(ctx, "prediction model unavailable, predictions degraded",
				logger.String("path", s.modelPath),
				logger.Error(err),
			)
		} else {
			s.pred = model
		}
	}

	s.engine = chat.New(s.store,
		chat.WithPredictor(s.pred),
		chat.WithReferenceYear(s.referenceYear),
		chat.WithMaxDistricts(s.maxDistricts),
		chat.WithLogger(s.logger),
	)
	s.sessions = chat.NewSessionManager(chat.WithTTL(s.sessionTTL))

	s.started = true
	s.logger.Info(ctx, "hydrosense service started",
		logger.Int("rainfallRows", s.store.RainfallCount()),
		logger.Int("groundwaterRows", s.store.GroundwaterCount()),
		logger.Int("states", len(s.store.States())),
		logger.Bool("modelLoaded", s.pred != nil),
	)

	return nil
}

func (s *Service) loadStore() (*dataset.Store, error) {
	rain, err := os.Open(s.rainfallPath)
	if err != nil {
		return nil, fmt.Errorf("open rainfall table: %w", err)
	}
	defer rain.Close()

	gw, err := os.Open(s.groundwaterPath)
	if err != nil {
		return nil, fmt.Errorf("open groundwater table: %w", err)
	}
	defer gw.Close()

	store, err := dataset.Load(rain, gw)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return store, nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "hydrosense service stopped")
}

// Answer runs one chat turn against the session identified by sessionID.
func (s *Service) Answer(ctx context.Context, sessionID, text string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return "", ErrNotStarted
	}

	start := time.Now()
	sess := s.sessions.Get(sessionID)
	metrics.RecordQuery(s.engine.Intent(text).String())

	reply := s.engine.Answer(ctx, sess, text)

	metrics.ObserveAnswerDuration(time.Since(start).Seconds())
	metrics.SetActiveSessions(s.sessions.Len())
	return reply, nil
}

// PredictPoint runs the prediction model on one rainfall/lag pair.
func (s *Service) PredictPoint(ctx context.Context, rainfallMM, lagLevel float64) (float64, error) {
	s.mu.RLock()
	pred := s.pred
	started := s.started
	s.mu.RUnlock()

	if !started {
		return 0, ErrNotStarted
	}
	if pred == nil {
		metrics.RecordPredictionUnavailable()
		return 0, predictor.ErrUnavailable
	}

	v, err := pred.Predict(ctx, rainfallMM, lagLevel)
	if err != nil {
		metrics.RecordPredictionUnavailable()
		return 0, err
	}
	metrics.RecordPredictionServed()
	return v, nil
}

// PruneSessions drops idle conversations and refreshes the session gauge.
// Reports how many sessions remain.
func (s *Service) PruneSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return 0
	}
	remaining := s.sessions.Prune()
	metrics.SetActiveSessions(remaining)
	return remaining
}

// ListStates returns the known state names.
func (s *Service) ListStates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.States(), nil
}

// ListDistricts returns the known district names for a state.
func (s *Service) ListDistricts(ctx context.Context, state string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Districts(dataset.Normalize(state)), nil
}

// ListPeriods returns the distinct observation periods.
func (s *Service) ListPeriods(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Periods(), nil
}

// Timeseries returns the merged rainfall and groundwater series for a state.
func (s *Service) Timeseries(ctx context.Context, state string) ([]dataset.TimeseriesRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Timeseries(dataset.Normalize(state)), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"modelLoaded": s.pred != nil,
	}

	if s.started {
		stats["rainfallRows"] = s.store.RainfallCount()
		stats["groundwaterRows"] = s.store.GroundwaterCount()
		stats["states"] = len(s.store.States())
		stats["periods"] = len(s.store.Periods())
		stats["activeSessions"] = s.sessions.Len()

		metrics.SetActiveSessions(s.sessions.Len())
	}

	return stats
}

// Package chat answers free-form questions about rainfall and groundwater.
//
// The engine is the single entry point of the core: extract entities, route
// the intent, run the matching handler. Answer is total — every failure path
// comes back as a human-readable string, never as an error or a panic.
package chat

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hydrosense/hydrosense/internal/domain/dataset"
	"github.com/hydrosense/hydrosense/internal/domain/entity"
	"github.com/hydrosense/hydrosense/internal/domain/intent"
	"github.com/hydrosense/hydrosense/internal/domain/model"
	"github.com/hydrosense/hydrosense/internal/domain/predictor"
	"github.com/hydrosense/hydrosense/pkg/logger"
)

// Handler windows and limits, fixed by the answer contract.
const (
	recentWindow         = 12 // periods averaged for "recent" answers
	trendWindow          = 24 // periods for month-over-month trend deltas
	historyWindow        = 36 // periods fed into future projections
	forecastRows         = 6  // rows in the short-term forecast table
	defaultMonthsAhead   = 12
	maxMonthsAhead       = 60
	defaultReferenceYear = 2024
	defaultMaxDistricts  = 10
)

// Data is the read surface the engine needs from the dataset store.
type Data interface {
	States() []string
	Districts(state string) []string
	Rainfall(f dataset.Filter) []model.Observation
	Groundwater(f dataset.Filter) []model.Observation
}

// Engine extracts, routes, and answers.
type Engine struct {
	data      Data
	extractor *entity.Extractor
	pred      predictor.Predictor

	referenceYear int
	maxDistricts  int

	log   logger.Logger
	title cases.Caser
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPredictor injects the point predictor. A nil predictor leaves the
// prediction handlers in their degraded, model-unavailable state.
func WithPredictor(p predictor.Predictor) Option {
	return func(e *Engine) {
		e.pred = p
	}
}

// WithReferenceYear sets the year that "months ahead" is measured from when
// a target year is asked for.
func WithReferenceYear(year int) Option {
	return func(e *Engine) {
		if year > 0 {
			e.referenceYear = year
		}
	}
}

// WithMaxDistricts caps the district listing before it truncates.
func WithMaxDistricts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDistricts = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an Engine over the loaded dataset.
func New(data Data, opts ...Option) *Engine {
	e := &Engine{
		data:          data,
		extractor:     entity.New(data),
		referenceYear: defaultReferenceYear,
		maxDistricts:  defaultMaxDistricts,
		title:         cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get()
	}
	return e
}

// Answer produces the reply for one input text. Entities extracted from the
// text update the session last-write-wins, but the reply itself is built
// from this turn's extraction only.
func (e *Engine) Answer(ctx context.Context, sess *Session, text string) string {
	ents := e.extractor.Extract(text)
	if sess != nil {
		sess.Update(ents)
	}

	it := intent.Route(text)
	e.log.Debug(ctx, "routed query",
		logger.String("intent", it.String()),
		logger.String("state", ents.State),
		logger.String("district", ents.District),
	)

	switch it {
	case intent.Greeting:
		return e.greetingResponse(text)
	case intent.Help:
		return helpResponse
	case intent.FuturePrediction:
		return e.handleFuturePrediction(ents)
	case intent.MLPrediction:
		return e.handlePrediction(ctx, ents)
	case intent.RainfallQuery:
		return e.handleRainfall(ents)
	case intent.GroundwaterQuery:
		return e.handleGroundwater(ents)
	case intent.Comparison:
		return comparisonResponse
	case intent.Trend:
		return e.handleTrend(ents)
	case intent.DistrictListing:
		return e.handleDistricts(ents)
	default:
		return defaultResponse
	}
}

// Intent exposes the routed intent for callers that label metrics by it.
func (e *Engine) Intent(text string) intent.Intent {
	return intent.Route(text)
}

// location renders "District, State" or just the state, display-cased.
func (e *Engine) location(state, district string) string {
	if district != "" {
		return e.title.String(district) + ", " + e.title.String(state)
	}
	return e.title.String(state)
}

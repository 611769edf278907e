// Package predictor wraps the pre-trained groundwater point predictor.
//
// The model is a two-feature linear regression trained offline; this package
// only evaluates it, never retrains. When the artifact is missing the rest
// of the engine keeps running and prediction paths degrade to an explicit
// unavailable response.
package predictor

import (
	"context"
	"math"
)

// Predictor produces a groundwater level from the current-period rainfall
// and the prior-period groundwater level (the lag feature).
type Predictor interface {
	// Predict returns the predicted level in metres below ground level,
	// rounded to 2 decimals. Returns ErrUnavailable when no model is loaded.
	Predict(ctx context.Context, rainfallMM, lagLevel float64) (float64, error)
}

// Unavailable is a Predictor that always degrades. Used when the artifact
// failed to load so callers never hold a nil Predictor.
type Unavailable struct{}

// Predict always reports the model as unavailable.
func (Unavailable) Predict(context.Context, float64, float64) (float64, error) {
	return 0, ErrUnavailable
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package predictor

import "errors"

// Sentinel kinds for prediction failures. Both degrade to textual answers at
// the handler layer; neither aborts the process.
var (
	ErrUnavailable = errors.New("prediction model unavailable")
	ErrArtifact    = errors.New("invalid model artifact")
	ErrPrediction  = errors.New("prediction failed")
)

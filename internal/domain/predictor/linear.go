package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// featureCount is fixed by the trained artifact: rainfall and lag level.
const featureCount = 2

// LinearModel evaluates the exported linear-regression artifact. The
// artifact is the intercept and coefficient vector of the offline-trained
// model, serialized as JSON.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadModel reads a linear model artifact from disk.
func LoadModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	defer f.Close()
	return ReadModel(f)
}

// ReadModel decodes and validates a linear model artifact.
func ReadModel(r io.Reader) (*LinearModel, error) {
	var m LinearModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	if len(m.Coefficients) != featureCount {
		return nil, fmt.Errorf("%w: want %d coefficients, got %d", ErrArtifact, featureCount, len(m.Coefficients))
	}
	for _, c := range m.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrArtifact)
		}
	}
	return &m, nil
}

// Predict evaluates the regression at (rainfallMM, lagLevel).
func (m *LinearModel) Predict(_ context.Context, rainfallMM, lagLevel float64) (float64, error) {
	v := m.Intercept + m.Coefficients[0]*rainfallMM + m.Coefficients[1]*lagLevel
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrPrediction
	}
	return round2(v), nil
}

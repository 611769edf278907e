// Package trend computes linear trend, seasonal amplitude, and volatility
// from a historical series and extrapolates short-term future values.
//
// This is a trend-plus-sinusoidal-seasonality heuristic, not a statistical
// forecasting model: confidence is a decay score, not a probability.
package trend

import (
	"math"

	"github.com/hydrosense/hydrosense/internal/domain/model"
)

// Confidence decay per projected period, floored so long horizons never
// collapse to zero.
const (
	confidenceDecay = 0.05
	confidenceFloor = 0.3
	seasonalScale   = 0.1
	monthsPerYear   = 12
)

// SeriesPoint is one (period, value) input observation.
type SeriesPoint struct {
	Period string
	Value  float64
}

// Summary describes the shape of a historical window. Trend is the
// least-squares slope per period step, Seasonality the dispersion of
// per-calendar-month means, Volatility the standard deviation of raw values.
type Summary struct {
	Trend       float64 `json:"trend"`
	Seasonality float64 `json:"seasonality"`
	Volatility  float64 `json:"volatility"`
}

// Point is one projected future value. Confidence strictly decreases with
// horizon down to the floor.
type Point struct {
	Period     string  `json:"year_month"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
}

// FromObservations converts store rows into a trend input series.
func FromObservations(obs []model.Observation) []SeriesPoint {
	series := make([]SeriesPoint, len(obs))
	for i, o := range obs {
		series[i] = SeriesPoint{Period: o.Period, Value: o.Value}
	}
	return series
}

// Analyze computes the trend summary for a chronologically sorted series.
// The components are rounded (trend to 4 decimals, the rest to 2) before
// any projection uses them.
func Analyze(series []SeriesPoint) Summary {
	if len(series) == 0 {
		return Summary{}
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	return Summary{
		Trend:       round(slope(values), 4),
		Seasonality: round(monthlyDispersion(series), 2),
		Volatility:  round(sampleStdDev(values), 2),
	}
}

// Project extrapolates horizon future points from the last observation.
//
// Each step advances one calendar month, applies the linear trend relative
// to the anchor, then multiplies in a sinusoidal seasonal factor. The
// seasonally adjusted value becomes the base for the next step, so the trend
// compounds on the adjusted trajectory. That compounding order drifts at
// long horizons; it is kept deliberately because downstream consumers were
// calibrated against it.
func Project(series []SeriesPoint, horizon int) (Summary, []Point) {
	summary := Analyze(series)
	if len(series) == 0 || horizon <= 0 {
		return summary, nil
	}

	anchor := series[len(series)-1]
	period := anchor.Period
	value := anchor.Value

	points := make([]Point, 0, horizon)
	for i := 1; i <= horizon; i++ {
		next, err := model.NextPeriod(period)
		if err != nil {
			// Periods outside the canonical form cannot be advanced; stop
			// projecting rather than invent calendar arithmetic.
			break
		}

		projected := value + summary.Trend*float64(i)
		month := model.MonthOf(next)
		seasonal := 1 + seasonalScale*summary.Seasonality*math.Sin(2*math.Pi*float64(month)/monthsPerYear)
		projected *= seasonal

		points = append(points, Point{
			Period:     next,
			Value:      round(projected, 2),
			Confidence: confidence(i),
		})

		period = next
		value = projected
	}

	return summary, points
}

// MeanConfidence averages the confidence across projected points, rounded to
// 2 decimals. Zero for an empty projection.
func MeanConfidence(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Confidence
	}
	return round(sum/float64(len(points)), 2)
}

func confidence(step int) float64 {
	return math.Max(confidenceFloor, 1-confidenceDecay*float64(step))
}

// slope fits a degree-1 least-squares line of value against the 0-based
// index and returns its gradient. Zero for fewer than 2 points.
func slope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// monthlyDispersion is the standard deviation, across calendar months, of
// the mean value observed in each month. Zero when fewer than 2 distinct
// months are present.
func monthlyDispersion(series []SeriesPoint) float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, p := range series {
		month := model.MonthOf(p.Period)
		if month == 0 {
			continue
		}
		sums[month] += p.Value
		counts[month]++
	}

	if len(sums) < 2 {
		return 0
	}

	means := make([]float64, 0, len(sums))
	for month, sum := range sums {
		means = append(means, sum/float64(counts[month]))
	}
	return sampleStdDev(means)
}

// sampleStdDev is the n-1 standard deviation. Zero for fewer than 2 values.
func sampleStdDev(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / (n - 1))
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

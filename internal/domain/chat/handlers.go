package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hydrosense/hydrosense/internal/domain/dataset"
	"github.com/hydrosense/hydrosense/internal/domain/entity"
	"github.com/hydrosense/hydrosense/internal/domain/model"
	"github.com/hydrosense/hydrosense/internal/domain/predictor"
	"github.com/hydrosense/hydrosense/internal/domain/trend"
)

// handleRainfall answers historical rainfall queries for a state, at a
// specific period when one was asked for, otherwise averaged over the most
// recent periods.
func (e *Engine) handleRainfall(ents entity.Entities) string {
	if ents.State == "" {
		return rainfallUsage
	}

	obs := e.data.Rainfall(dataset.Filter{State: ents.State, Period: ents.Month})
	if len(obs) == 0 {
		return fmt.Sprintf("No rainfall data found for %s.", e.title.String(ents.State))
	}

	if ents.Month != "" {
		return fmt.Sprintf("**Rainfall in %s for %s:**\n\nAverage rainfall: **%.2f mm**",
			e.title.String(ents.State), ents.Month, mean(obs))
	}

	recent := tail(obs, recentWindow)
	return fmt.Sprintf("**Recent rainfall in %s:**\n\nAverage rainfall (last %d months): **%.2f mm**\n\nLatest data available: %s",
		e.title.String(ents.State), len(recent), mean(recent), recent[len(recent)-1].Period)
}

// handleGroundwater mirrors handleRainfall for the groundwater table, with
// the optional district narrowing.
func (e *Engine) handleGroundwater(ents entity.Entities) string {
	if ents.State == "" {
		return groundwaterUsage
	}

	obs := e.data.Groundwater(dataset.Filter{State: ents.State, District: ents.District, Period: ents.Month})
	location := e.location(ents.State, ents.District)
	if len(obs) == 0 {
		return fmt.Sprintf("No groundwater data found for %s.", location)
	}

	if ents.Month != "" {
		return fmt.Sprintf("**Groundwater level in %s for %s:**\n\nAverage groundwater level: **%.2f m bgl**",
			location, ents.Month, mean(obs))
	}

	recent := tail(obs, recentWindow)
	return fmt.Sprintf("**Recent groundwater levels in %s:**\n\nAverage groundwater level (last %d months): **%.2f m bgl**\n\nLatest data available: %s",
		location, len(recent), mean(recent), recent[len(recent)-1].Period)
}

// handleTrend reports the mean month-over-month change across the recent
// window for both metrics, with a qualitative reading of each direction.
func (e *Engine) handleTrend(ents entity.Entities) string {
	if ents.State == "" {
		return trendUsage
	}

	rain := tail(e.data.Rainfall(dataset.Filter{State: ents.State}), trendWindow)
	gw := tail(e.data.Groundwater(dataset.Filter{State: ents.State}), trendWindow)
	if len(rain) == 0 || len(gw) == 0 {
		return fmt.Sprintf("**Insufficient data:**\n\nNot enough data available for trend analysis in %s.", e.title.String(ents.State))
	}

	rainDelta := meanDiff(rain)
	gwDelta := meanDiff(gw)

	var b strings.Builder
	fmt.Fprintf(&b, "**Trend analysis for %s:**\n\n", e.title.String(ents.State))
	fmt.Fprintf(&b, "**Rainfall trend:** %+.2f mm/month\n", rainDelta)
	fmt.Fprintf(&b, "**Groundwater trend:** %+.2f m bgl/month\n\n", gwDelta)

	if rainDelta > 0 {
		b.WriteString("Rainfall is increasing over time.\n")
	} else {
		b.WriteString("Rainfall is decreasing over time.\n")
	}
	// Groundwater here is depth below ground: the sign convention is kept
	// from the source data, where a positive trend is read as rising levels.
	if gwDelta > 0 {
		b.WriteString("Groundwater levels are rising (good for water availability).\n")
	} else {
		b.WriteString("Groundwater levels are declining (concerning for water availability).\n")
	}
	return b.String()
}

// handleDistricts lists a state's districts, truncated past the cap.
func (e *Engine) handleDistricts(ents entity.Entities) string {
	if ents.State == "" {
		return districtUsage
	}

	districts := e.data.Districts(ents.State)
	if len(districts) == 0 {
		return fmt.Sprintf("**No districts found:**\n\nNo district data available for %s.", e.title.String(ents.State))
	}

	shown := districts
	if len(shown) > e.maxDistricts {
		shown = shown[:e.maxDistricts]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Districts in %s:**\n\n", e.title.String(ents.State))
	for _, d := range shown {
		fmt.Fprintf(&b, "- %s\n", e.title.String(d))
	}
	if len(districts) > len(shown) {
		fmt.Fprintf(&b, "\n... and %d more districts\n", len(districts)-len(shown))
	}
	fmt.Fprintf(&b, "\n**Total districts:** %d\n", len(districts))
	fmt.Fprintf(&b, "\n**Tip:** ask for specific district data like \"Groundwater levels in %s\".", e.title.String(districts[0]))
	return b.String()
}

// handlePrediction runs the ML point predictor against the extracted
// rainfall value and the latest observed groundwater level.
func (e *Engine) handlePrediction(ctx context.Context, ents entity.Entities) string {
	if e.pred == nil {
		return modelUnavailableResponse
	}
	if ents.State == "" || ents.Number == nil {
		return predictionUsage
	}

	history := e.data.Groundwater(dataset.Filter{State: ents.State, District: ents.District})
	location := e.location(ents.State, ents.District)
	if len(history) == 0 {
		return fmt.Sprintf("**No historical data:**\n\nNo groundwater data found for %s to use as baseline for prediction.", location)
	}
	lag := history[len(history)-1].Value

	prediction, err := e.pred.Predict(ctx, *ents.Number, lag)
	if err != nil {
		if errors.Is(err, predictor.ErrUnavailable) {
			return modelUnavailableResponse
		}
		return predictionFailedResponse
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Groundwater prediction for %s%s:**\n\n", location, yearSuffix(ents.Year))
	b.WriteString("**Input parameters:**\n")
	fmt.Fprintf(&b, "- Rainfall: %g mm\n", *ents.Number)
	fmt.Fprintf(&b, "- Current groundwater level: %.2f m bgl\n", lag)
	if ents.District != "" {
		fmt.Fprintf(&b, "- Location: %s district\n", e.title.String(ents.District))
	}
	if ents.Year != "" {
		fmt.Fprintf(&b, "- Year: %s\n", ents.Year)
	}
	fmt.Fprintf(&b, "\n**Predicted groundwater level:** **%.2f m bgl**\n\n", prediction)
	b.WriteString("*Note: this is a machine learning prediction based on historical data.*")
	return b.String()
}

// handleFuturePrediction projects both metrics forward from the recent
// history and renders the short-term table plus the long-horizon point.
func (e *Engine) handleFuturePrediction(ents entity.Entities) string {
	if ents.State == "" {
		return futureUsage
	}

	monthsAhead := defaultMonthsAhead
	if ents.Year != "" {
		if target, err := strconv.Atoi(ents.Year); err == nil {
			monthsAhead = clamp((target-e.referenceYear)*12, 1, maxMonthsAhead)
		}
	}

	rain := e.data.Rainfall(dataset.Filter{State: ents.State})
	gw := e.data.Groundwater(dataset.Filter{State: ents.State, District: ents.District})
	location := e.location(ents.State, ents.District)
	if len(rain) == 0 || len(gw) == 0 {
		return fmt.Sprintf("**Insufficient data:**\n\nNot enough historical data available for future predictions in %s.", location)
	}

	rainSummary, rainPoints := trend.Project(trend.FromObservations(tail(rain, historyWindow)), monthsAhead)
	_, gwPoints := trend.Project(trend.FromObservations(tail(gw, historyWindow)), monthsAhead)

	var b strings.Builder
	fmt.Fprintf(&b, "**Future predictions for %s:**\n\n", location)

	b.WriteString("**Trend analysis:**\n")
	fmt.Fprintf(&b, "- Rainfall trend: %+.4f mm/month\n", rainSummary.Trend)
	fmt.Fprintf(&b, "- Seasonality: %.2f\n", rainSummary.Seasonality)
	fmt.Fprintf(&b, "- Volatility: %.2f\n\n", rainSummary.Volatility)

	b.WriteString("**Next 6 months forecast:**\n")
	for i := 0; i < forecastRows && i < len(rainPoints) && i < len(gwPoints); i++ {
		rp, gp := rainPoints[i], gwPoints[i]
		fmt.Fprintf(&b, "- **%s:**\n", rp.Period)
		fmt.Fprintf(&b, "  - Rainfall: %.1f mm (confidence: %.1f%%)\n", rp.Value, rp.Confidence*100)
		fmt.Fprintf(&b, "  - Groundwater: %.2f m bgl (confidence: %.1f%%)\n", gp.Value, gp.Confidence*100)
	}

	if monthsAhead > forecastRows && len(rainPoints) > 0 && len(gwPoints) > 0 {
		finalRain := rainPoints[len(rainPoints)-1]
		finalGW := gwPoints[len(gwPoints)-1]
		fmt.Fprintf(&b, "\n**Long-term projection (%d months):**\n", monthsAhead)
		fmt.Fprintf(&b, "- **%s:**\n", finalRain.Period)
		fmt.Fprintf(&b, "  - Expected rainfall: %.1f mm\n", finalRain.Value)
		fmt.Fprintf(&b, "  - Expected groundwater: %.2f m bgl\n", finalGW.Value)
	}

	avgConfidence := (trend.MeanConfidence(rainPoints) + trend.MeanConfidence(gwPoints)) / 2
	fmt.Fprintf(&b, "\n**Confidence level:** %.1f%%\n", avgConfidence*100)
	b.WriteString("*Note: predictions are based on historical trends and may not account for extreme weather events or human interventions.*")
	return b.String()
}

func yearSuffix(year string) string {
	if year == "" {
		return ""
	}
	return " for " + year
}

// mean averages the observation values. Callers guarantee a non-empty slice.
func mean(obs []model.Observation) float64 {
	var sum float64
	for _, o := range obs {
		sum += o.Value
	}
	return sum / float64(len(obs))
}

// meanDiff is the mean month-over-month first difference, 0 for fewer than
// 2 points.
func meanDiff(obs []model.Observation) float64 {
	if len(obs) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(obs); i++ {
		sum += obs[i].Value - obs[i-1].Value
	}
	return sum / float64(len(obs)-1)
}

// tail returns the last n observations of a period-sorted slice.
func tail(obs []model.Observation, n int) []model.Observation {
	if len(obs) <= n {
		return obs
	}
	return obs[len(obs)-n:]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

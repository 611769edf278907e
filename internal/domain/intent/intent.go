// Package intent classifies input text into one of a fixed set of query
// intents by keyword presence.
//
// Routing is an ordered, short-circuiting keyword scan, not a classifier:
// ambiguous text resolves to the first satisfied rule. Behaviour depends on
// the rule order, so the table below is the contract.
package intent

import "strings"

// Intent is one of the fixed query categories the engine can answer.
type Intent int

const (
	Greeting Intent = iota
	Help
	FuturePrediction
	MLPrediction
	RainfallQuery
	GroundwaterQuery
	Comparison
	Trend
	DistrictListing
	Default
)

// String returns the intent name used in logs and metrics labels.
func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case Help:
		return "help"
	case FuturePrediction:
		return "future_prediction"
	case MLPrediction:
		return "ml_prediction"
	case RainfallQuery:
		return "rainfall_query"
	case GroundwaterQuery:
		return "groundwater_query"
	case Comparison:
		return "comparison"
	case Trend:
		return "trend"
	case DistrictListing:
		return "district_listing"
	case Default:
		return "default"
	default:
		return "unknown"
	}
}

// futureKeywords route to trend-based forecasting and also veto the plain
// rainfall rule, so a "rainfall forecast" phrase can never land on the
// historical rainfall handler.
var futureKeywords = []string{"future", "forecast", "next year", "coming months", "estimate", "projection"}

// rule pairs a keyword set with its intent. A rule matches when any keyword
// occurs in the text and none of the exclusions do.
type rule struct {
	keywords []string
	excludes []string
	intent   Intent
}

// rules is evaluated top to bottom; first match wins. Keep the precedence
// order intact: greeting and help outrank everything, forecasting outranks
// point prediction, and both outrank the plain data queries.
var rules = []rule{
	{keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}, intent: Greeting},
	{keywords: []string{"help", "what can you do", "commands", "features"}, intent: Help},
	{keywords: futureKeywords, intent: FuturePrediction},
	{keywords: []string{"predict", "what will be"}, intent: MLPrediction},
	{keywords: []string{"rainfall", "rain", "precipitation"}, excludes: futureKeywords, intent: RainfallQuery},
	{keywords: []string{"groundwater", "water level", "gw level"}, intent: GroundwaterQuery},
	{keywords: []string{"compare", "comparison", "vs", "versus"}, intent: Comparison},
	{keywords: []string{"trend", "trends", "over time", "change"}, intent: Trend},
	{keywords: []string{"district", "districts", "show me districts"}, intent: DistrictListing},
}

// Route classifies text into exactly one intent, deterministically.
func Route(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.intent
		}
	}
	return Default
}

func (r rule) matches(lower string) bool {
	if containsAny(lower, r.excludes) {
		return false
	}
	return containsAny(lower, r.keywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(lower, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether kw occurs in lower on word boundaries, so
// "hi" never matches inside "delhi". Multi-word keywords match as phrases.
func containsWord(lower, kw string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if boundaryAt(lower, start-1) && boundaryAt(lower, end) {
			return true
		}
		from = start + 1
	}
}

// boundaryAt reports whether position i sits outside any alphanumeric run.
func boundaryAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

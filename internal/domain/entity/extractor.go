// Package entity extracts structured query fields from free-form input text.
//
// Extraction is a fixed set of deterministic lookups and regexes over the
// dataset vocabulary, not a trainable model. Absent fields stay unset; the
// extractor never fails.
package entity

import (
	"regexp"
	"strconv"
	"strings"
)

// Year-vs-measurement disambiguation range: bare numbers inside it are
// treated as years, never as measurements. The boundary is a deliberate
// heuristic carried from the source data pipeline; a genuine measurement of
// exactly 2015mm will be misread, and that trade-off is accepted.
const (
	yearRangeLow  = 2000
	yearRangeHigh = 2030
)

var (
	// yearRe matches a 4-digit year in the 2000s, optionally written as a
	// short range like "2016-17". Only the leading year is kept.
	yearRe = regexp.MustCompile(`\b(20\d{2})(?:-(\d{2}))?\b`)

	// monthRe matches an "MM-YYYY" period, re-emitted canonically as "YYYY-MM".
	monthRe = regexp.MustCompile(`\b(0[1-9]|1[0-2])-(20\d{2})\b`)

	// numberRe matches decimal or integer values with an optional unit suffix.
	// Units are recognized but never converted.
	numberRe = regexp.MustCompile(`(\d+\.?\d*)(?:mm|m|cm|km)?`)
)

// Entities is the transient result of extracting one input text. String
// fields are empty when absent; Number is nil when absent.
type Entities struct {
	State    string
	District string
	Year     string
	Month    string // canonical "YYYY-MM"
	Number   *float64
}

// Vocabulary supplies the known state and district names, normalized and
// sorted. Satisfied by the dataset store.
type Vocabulary interface {
	States() []string
	Districts(state string) []string
}

// Extractor parses input text against a vocabulary.
type Extractor struct {
	vocab Vocabulary
}

// New creates an Extractor over the given vocabulary.
func New(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract pulls state, district, year, month, and a numeric value out of the
// text. Matching is case-insensitive and first-match-wins per field; state
// ties resolve to the alphabetically first vocabulary entry.
func (e *Extractor) Extract(text string) Entities {
	lower := strings.ToLower(text)
	var ents Entities

	for _, state := range e.vocab.States() {
		if strings.Contains(lower, state) {
			ents.State = state
			break
		}
	}

	// Districts are only searched within the matched state, so a district
	// name can never attach to the wrong state.
	if ents.State != "" {
		for _, district := range e.vocab.Districts(ents.State) {
			if strings.Contains(lower, district) {
				ents.District = district
				break
			}
		}
	}

	if m := yearRe.FindStringSubmatch(text); m != nil {
		ents.Year = m[1]
	}

	if m := monthRe.FindStringSubmatch(text); m != nil {
		ents.Month = m[2] + "-" + m[1]
	}

	for _, m := range numberRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		// Values inside the year range are reserved for years, so a bare
		// "2024" is never misread as a measurement.
		if n >= yearRangeLow && n <= yearRangeHigh {
			continue
		}
		ents.Number = &n
		break
	}

	return ents
}

// Package model holds the core observation record and period helpers shared
// across the engine.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Metric identifies which table an observation belongs to.
type Metric int

const (
	// MetricRainfall is monthly rainfall in millimetres.
	MetricRainfall Metric = iota
	// MetricGroundwater is groundwater depth in metres below ground level.
	MetricGroundwater
)

// String returns the human-readable metric name.
func (m Metric) String() string {
	switch m {
	case MetricRainfall:
		return "rainfall"
	case MetricGroundwater:
		return "groundwater"
	default:
		return "unknown"
	}
}

// Observation is a single (state, district, period) measurement. Records are
// immutable once loaded; District is empty for rainfall rows.
type Observation struct {
	State    string
	District string
	Period   string // canonical "YYYY-MM"
	Value    float64
}

// periodRe matches the canonical "YYYY-MM" period form.
var periodRe = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// ParsePeriod splits a canonical "YYYY-MM" key into year and month.
func ParsePeriod(period string) (year int, month int, err error) {
	m := periodRe.FindStringSubmatch(strings.TrimSpace(period))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPeriod, period)
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	return year, month, nil
}

// FormatPeriod renders a year and month as a canonical "YYYY-MM" key.
func FormatPeriod(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// NextPeriod advances a period by exactly one calendar month. December rolls
// over to January of the following year.
func NextPeriod(period string) (string, error) {
	year, month, err := ParsePeriod(period)
	if err != nil {
		return "", err
	}
	if month == 12 {
		return FormatPeriod(year+1, 1), nil
	}
	return FormatPeriod(year, month+1), nil
}

// MonthOf returns the calendar month (1-12) of a canonical period, or 0 when
// the period is malformed.
func MonthOf(period string) int {
	_, month, err := ParsePeriod(period)
	if err != nil {
		return 0
	}
	return month
}

// Package dataset holds the in-memory observation tables the engine queries.
//
// The store is populated once at startup from two CSV tables and is read-only
// afterwards, so it can be shared across concurrent requests without locking.
package dataset

import (
	"sort"
	"strings"

	"github.com/hydrosense/hydrosense/internal/domain/model"
)

// Filter narrows a table query. Empty fields are ignored.
type Filter struct {
	State    string
	District string
	Period   string
}

// TimeseriesRow is one merged per-period row for a state: the rainfall total
// and the mean groundwater depth across the state's districts. A side missing
// for that period reports as zero.
type TimeseriesRow struct {
	Period         string  `json:"year_month"`
	RainfallMM     float64 `json:"rainfall_actual_mm"`
	GroundwaterM   float64 `json:"gw_level_m_bgl"`
	HasRainfall    bool    `json:"-"`
	HasGroundwater bool    `json:"-"`
}

// Store is the immutable snapshot of both observation tables, indexed for
// state and district lookups.
type Store struct {
	rainfall    []model.Observation
	groundwater []model.Observation

	rainByState  map[string][]model.Observation
	gwByState    map[string][]model.Observation
	gwByDistrict map[string]map[string][]model.Observation

	states    []string
	districts map[string][]string
	periods   []string
}

// Normalize canonicalizes a state or district name the same way the loader
// does, so lookups behave identically to load-time indexing.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// States returns the sorted list of states present in the rainfall table.
// Empty names are excluded.
func (s *Store) States() []string {
	out := make([]string, len(s.states))
	copy(out, s.states)
	return out
}

// Districts returns the sorted districts recorded for a state in the
// groundwater table. Unknown states yield an empty list.
func (s *Store) Districts(state string) []string {
	ds := s.districts[Normalize(state)]
	out := make([]string, len(ds))
	copy(out, ds)
	return out
}

// Periods returns the sorted distinct year-month keys of the rainfall table.
func (s *Store) Periods() []string {
	out := make([]string, len(s.periods))
	copy(out, s.periods)
	return out
}

// HasState reports whether the state appears in the rainfall vocabulary.
func (s *Store) HasState(state string) bool {
	_, ok := s.rainByState[Normalize(state)]
	return ok
}

// Rainfall returns rainfall observations matching the filter, sorted
// ascending by period.
func (s *Store) Rainfall(f Filter) []model.Observation {
	base := s.rainfall
	if f.State != "" {
		base = s.rainByState[Normalize(f.State)]
	}
	return filterByPeriod(base, f.Period)
}

// Groundwater returns groundwater observations matching the filter, sorted
// ascending by period.
func (s *Store) Groundwater(f Filter) []model.Observation {
	base := s.groundwater
	if f.State != "" {
		state := Normalize(f.State)
		base = s.gwByState[state]
		if f.District != "" {
			base = s.gwByDistrict[state][Normalize(f.District)]
		}
	} else if f.District != "" {
		// District without state: scan the full table. Rare path, used when
		// a caller only knows the district name.
		var out []model.Observation
		district := Normalize(f.District)
		for _, o := range s.groundwater {
			if o.District == district {
				out = append(out, o)
			}
		}
		base = out
	}
	return filterByPeriod(base, f.Period)
}

// RainfallCount returns the number of loaded rainfall rows.
func (s *Store) RainfallCount() int { return len(s.rainfall) }

// GroundwaterCount returns the number of loaded groundwater rows.
func (s *Store) GroundwaterCount() int { return len(s.groundwater) }

// Timeseries merges the rainfall series and the per-period mean groundwater
// depth for a state over the union of their periods.
func (s *Store) Timeseries(state string) []TimeseriesRow {
	rain := s.Rainfall(Filter{State: state})
	gw := s.Groundwater(Filter{State: state})

	rows := make(map[string]*TimeseriesRow)
	for _, o := range rain {
		row := ensureRow(rows, o.Period)
		row.RainfallMM = o.Value
		row.HasRainfall = true
	}

	gwSum := make(map[string]float64)
	gwCount := make(map[string]int)
	for _, o := range gw {
		gwSum[o.Period] += o.Value
		gwCount[o.Period]++
	}
	for period, sum := range gwSum {
		row := ensureRow(rows, period)
		row.GroundwaterM = sum / float64(gwCount[period])
		row.HasGroundwater = true
	}

	out := make([]TimeseriesRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func ensureRow(rows map[string]*TimeseriesRow, period string) *TimeseriesRow {
	if row, ok := rows[period]; ok {
		return row
	}
	row := &TimeseriesRow{Period: period}
	rows[period] = row
	return row
}

// filterByPeriod copies the (already period-sorted) slice, keeping only the
// given period when one is set.
func filterByPeriod(obs []model.Observation, period string) []model.Observation {
	if period == "" {
		out := make([]model.Observation, len(obs))
		copy(out, obs)
		return out
	}
	period = strings.TrimSpace(period)
	var out []model.Observation
	for _, o := range obs {
		if o.Period == period {
			out = append(out, o)
		}
	}
	return out
}

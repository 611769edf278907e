package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hydrosense/hydrosense/internal/domain/model"
)

// Required CSV columns per table.
const (
	colState    = "state_name"
	colDistrict = "district_name"
	colPeriod   = "year_month"
	colRainfall = "rainfall_actual_mm"
	colGWLevel  = "gw_level_m_bgl"
)

// Load builds a Store from the rainfall and groundwater CSV tables.
//
// Both tables must carry their required columns; a missing column or an
// unreadable header is a hard failure, the store never starts partially
// loaded. Rows whose metric value does not parse as a number are skipped
// rather than failing the load. State and district names
// are trimmed and lower-cased so later lookups are consistent.
func Load(rainfall, groundwater io.Reader) (*Store, error) {
	rainRows, err := readTable(rainfall, "rainfall", []string{colState, colPeriod, colRainfall}, false)
	if err != nil {
		return nil, err
	}
	gwRows, err := readTable(groundwater, "groundwater", []string{colState, colDistrict, colPeriod, colGWLevel}, true)
	if err != nil {
		return nil, err
	}

	s := &Store{
		rainfall:     rainRows,
		groundwater:  gwRows,
		rainByState:  make(map[string][]model.Observation),
		gwByState:    make(map[string][]model.Observation),
		gwByDistrict: make(map[string]map[string][]model.Observation),
		districts:    make(map[string][]string),
	}
	s.index()
	return s, nil
}

// readTable parses one CSV table into observations. The value column is the
// last entry of required; withDistrict selects the groundwater shape.
func readTable(r io.Reader, name string, required []string, withDistrict bool) ([]model.Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s table: %v", ErrMalformedTable, name, err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s table: missing column %q", ErrMissingColumn, name, col)
		}
	}
	valueCol := required[len(required)-1]

	var obs []model.Observation
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s table: %v", ErrMalformedTable, name, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[idx[valueCol]]), 64)
		if err != nil {
			continue // non-numeric measurement, drop the row
		}

		o := model.Observation{
			State:  Normalize(record[idx[colState]]),
			Period: strings.TrimSpace(record[idx[colPeriod]]),
			Value:  value,
		}
		if withDistrict {
			o.District = Normalize(record[idx[colDistrict]])
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// index sorts every table and slice by period and derives the vocabulary
// listings. Called once from Load; the store is immutable afterwards.
func (s *Store) index() {
	sortByPeriod(s.rainfall)
	sortByPeriod(s.groundwater)

	for _, o := range s.rainfall {
		if o.State == "" {
			continue
		}
		s.rainByState[o.State] = append(s.rainByState[o.State], o)
	}
	for _, o := range s.groundwater {
		if o.State == "" {
			continue
		}
		s.gwByState[o.State] = append(s.gwByState[o.State], o)
		if o.District != "" {
			byDistrict := s.gwByDistrict[o.State]
			if byDistrict == nil {
				byDistrict = make(map[string][]model.Observation)
				s.gwByDistrict[o.State] = byDistrict
			}
			byDistrict[o.District] = append(byDistrict[o.District], o)
		}
	}

	s.states = make([]string, 0, len(s.rainByState))
	for state := range s.rainByState {
		s.states = append(s.states, state)
	}
	sort.Strings(s.states)

	for state, byDistrict := range s.gwByDistrict {
		ds := make([]string, 0, len(byDistrict))
		for district := range byDistrict {
			ds = append(ds, district)
		}
		sort.Strings(ds)
		s.districts[state] = ds
	}

	seen := make(map[string]struct{})
	for _, o := range s.rainfall {
		if _, ok := seen[o.Period]; ok {
			continue
		}
		seen[o.Period] = struct{}{}
		s.periods = append(s.periods, o.Period)
	}
	sort.Strings(s.periods)
}

func sortByPeriod(obs []model.Observation) {
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Period < obs[j].Period })
}

// Package results reads the annual results of a simulation run and diffs
// them against expected values.
package results

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gopkg.in/yaml.v3"
)

// ErrNoResults is returned when a tabular report lacks the annual summary.
var ErrNoResults = errors.New("no annual results in tabular report")

// Tabular report names.
const (
	reportABUPS     = "Annual Building Utility Performance Summary"
	tableSiteSource = "Site and Source Energy"
	tableEndUses    = "End Uses"
	tableNotMet     = "Comfort and Setpoint Not Met Summary"

	rowTotalSite    = "Total Site Energy"
	rowTotalEndUses = "Total End Uses"
	rowHeatNotMet   = "Time Setpoint Not Met During Occupied Heating"
	rowCoolNotMet   = "Time Setpoint Not Met During Occupied Cooling"

	colTotalEnergy = "Total Energy [GJ]"
	colEUI         = "Energy Per Total Building Area [MJ/m2]"
	colFacilityHrs = "Facility [Hours]"

	unitGJ = " [GJ]"
)

// Summary is the annual energy summary of a run.
type Summary struct {
	TotalSiteEnergyGJ float64 `json:"total_site_energy_gj" yaml:"total_site_energy_gj"`
	SiteEUIMJPerM2    float64 `json:"site_eui_mj_per_m2" yaml:"site_eui_mj_per_m2"`
	UnmetHeatingHours float64 `json:"unmet_heating_hours" yaml:"unmet_heating_hours"`
	UnmetCoolingHours float64 `json:"unmet_cooling_hours" yaml:"unmet_cooling_hours"`
	// EndUses maps end use to fuel to annual energy in GJ. Zero entries
	// are left out.
	EndUses map[string]map[string]float64 `json:"end_uses_gj,omitempty" yaml:"end_uses_gj,omitempty"`
}

// FuelTotals sums the end uses by fuel.
func (s *Summary) FuelTotals() map[string]float64 {
	byFuel := map[string][]float64{}
	for _, fuels := range s.EndUses {
		for fuel, gj := range fuels {
			byFuel[fuel] = append(byFuel[fuel], gj)
		}
	}
	out := make(map[string]float64, len(byFuel))
	for fuel, v := range byFuel {
		out[fuel] = floats.Sum(v)
	}
	return out
}

// Metrics flattens the summary into named values, the form Compare works
// on. End uses are named "end_use/<end use>/<fuel>" and fuel totals
// "fuel/<fuel>".
func (s *Summary) Metrics() map[string]float64 {
	m := map[string]float64{
		"total_site_energy_gj": s.TotalSiteEnergyGJ,
		"site_eui_mj_per_m2":   s.SiteEUIMJPerM2,
		"unmet_heating_hours":  s.UnmetHeatingHours,
		"unmet_cooling_hours":  s.UnmetCoolingHours,
	}
	for use, fuels := range s.EndUses {
		for fuel, gj := range fuels {
			m["end_use/"+use+"/"+fuel] = gj
		}
	}
	for fuel, gj := range s.FuelTotals() {
		m["fuel/"+fuel] = gj
	}
	return m
}

// ParseTabularCSVFile parses an eplustbl.csv file.
func ParseTabularCSVFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ParseTabularCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseTabularCSV reads the annual summary from an EnergyPlus tabular
// report in comma format.
//
// The report is a sequence of sections. "REPORT:,<name>" opens a report; a
// line with a single cell titles the next table; the table header starts
// with two empty cells and each data row with one.
func ParseTabularCSV(r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	s := &Summary{EndUses: map[string]map[string]float64{}}
	var report, table string
	var header []string
	foundSite := false
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch {
		case rec[0] == "REPORT:" && len(rec) > 1:
			report, table, header = rec[1], "", nil
		case rec[0] != "" && nonEmpty(rec) == 1:
			table, header = strings.TrimSpace(rec[0]), nil
		case rec[0] == "" && len(rec) > 2 && rec[1] == "":
			if nonEmpty(rec) > 0 {
				header = rec[2:]
			}
		case rec[0] == "" && len(rec) > 2 && header != nil:
			row := rowValues(header, rec[2:])
			name := strings.TrimSpace(rec[1])
			switch {
			case report == reportABUPS && table == tableSiteSource && name == rowTotalSite:
				s.TotalSiteEnergyGJ = row[colTotalEnergy]
				s.SiteEUIMJPerM2 = row[colEUI]
				foundSite = true
			case report == reportABUPS && table == tableEndUses && name != rowTotalEndUses:
				for col, v := range row {
					if v == 0 || !strings.HasSuffix(col, unitGJ) {
						continue
					}
					fuel := strings.TrimSuffix(col, unitGJ)
					if s.EndUses[name] == nil {
						s.EndUses[name] = map[string]float64{}
					}
					s.EndUses[name][fuel] = v
				}
			case table == tableNotMet && name == rowHeatNotMet:
				s.UnmetHeatingHours = row[colFacilityHrs]
			case table == tableNotMet && name == rowCoolNotMet:
				s.UnmetCoolingHours = row[colFacilityHrs]
			}
		}
	}
	if !foundSite {
		return nil, ErrNoResults
	}
	return s, nil
}

func nonEmpty(rec []string) int {
	n := 0
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// rowValues pairs the numeric cells of a row with the header. Cells that
// do not parse as numbers are skipped.
func rowValues(header, cells []string) map[string]float64 {
	out := make(map[string]float64, len(cells))
	for i, c := range cells {
		if i >= len(header) {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			continue
		}
		out[strings.TrimSpace(header[i])] = v
	}
	return out
}

// LoadSummary reads a YAML or JSON summary file. Unknown fields are an
// error so a misspelled metric is not silently compared as zero.
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Summary
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// WriteSummary writes s as YAML.
func WriteSummary(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// absTolerance keeps near-zero metrics, such as a few unmet hours, from
// failing on relative noise.
const absTolerance = 0.01

// Diff is one metric that differs beyond tolerance.
type Diff struct {
	Metric   string  `json:"metric" yaml:"metric"`
	Expected float64 `json:"expected" yaml:"expected"`
	Actual   float64 `json:"actual" yaml:"actual"`
	// RelDiff is (actual - expected) / |expected|. It is zero when
	// nothing was expected.
	RelDiff float64 `json:"rel_diff" yaml:"rel_diff"`
}

// Compare returns the metrics of actual that differ from expected by more
// than the relative tolerance, sorted by metric name. A metric present on
// only one side is compared against zero.
func Compare(expected, actual *Summary, tolerance float64) []Diff {
	em, am := expected.Metrics(), actual.Metrics()
	names := make(map[string]bool, len(em)+len(am))
	for k := range em {
		names[k] = true
	}
	for k := range am {
		names[k] = true
	}

	var diffs []Diff
	for name := range names {
		e, a := em[name], am[name]
		if scalar.EqualWithinAbsOrRel(e, a, absTolerance, tolerance) {
			continue
		}
		d := Diff{Metric: name, Expected: e, Actual: a}
		if e != 0 {
			d.RelDiff = (a - e) / math.Abs(e)
		}
		diffs = append(diffs, d)
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Metric < diffs[j].Metric })
	return diffs
}

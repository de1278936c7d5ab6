package standards

import (
	"fmt"
	"math"
	"sort"
)

// NECB climate zones, indexed by heating degree-day band.
var necbClimateZones = []string{"4", "5", "6", "7a", "7b", "8"}

// necbMaxSRR is the largest skylight-to-roof ratio NECB allows.
const necbMaxSRR = 0.05

// NECBWildcard is the selection type of spaces, such as corridors and
// washrooms, that take whatever system serves their neighbors.
const NECBWildcard = "Wildcard"

// NECBClimateZoneIndex returns the 0-based NECB climate zone index for a
// heating degree-day count below 18C.
func NECBClimateZoneIndex(hdd float64) int {
	switch {
	case hdd < 3000:
		return 0
	case hdd < 4000:
		return 1
	case hdd < 5000:
		return 2
	case hdd < 6000:
		return 3
	case hdd < 7000:
		return 4
	}
	return 5
}

// NECBClimateZone returns the NECB climate zone name, "4" through "8".
func NECBClimateZone(hdd float64) string {
	return necbClimateZones[NECBClimateZoneIndex(hdd)]
}

// MaxFDWR is the largest fenestration and door to wall ratio NECB allows:
// 40% up to 4000 HDD, 20% above 7000 HDD, linear in between.
func MaxFDWR(hdd float64) float64 {
	switch {
	case hdd < 4000:
		return 0.40
	case hdd <= 7000:
		return (2000 - 0.2*hdd) / 3000
	}
	return 0.20
}

// MaxSRR is the largest skylight-to-roof ratio NECB allows.
func MaxSRR() float64 { return necbMaxSRR }

// NECBSpace identifies a space for NECB system selection.
type NECBSpace struct {
	Name          string  `json:"name" yaml:"name"`
	SpaceType     string  `json:"space_type" yaml:"space_type"`
	BuildingType  string  `json:"building_type" yaml:"building_type"`
	CoolingLoadKW float64 `json:"cooling_load_kw" yaml:"cooling_load_kw"`
}

// NECBSelection is the outcome of NECB system selection for one space.
type NECBSelection struct {
	SelectionType string `json:"necb_hvac_system_selection_type"`
	SystemType    int    `json:"system_type"`
	Dwelling      bool   `json:"dwelling"`
}

// necbSelectionType reads the system selection type of a space type.
func (s *Standard) necbSelectionType(sp NECBSpace) (string, error) {
	row, err := s.lookup("space_types", Criteria{
		"template":      s.template,
		"space_type":    sp.SpaceType,
		"building_type": sp.BuildingType,
	}, nil, nil)
	if err != nil {
		return "", fmt.Errorf("space %q: %w", sp.Name, err)
	}
	sel, ok := row.String("necb_hvac_system_selection_type")
	if !ok {
		return "", fmt.Errorf("space %q: %w: space type %s has no necb_hvac_system_selection_type", sp.Name, ErrNotFound, sp.SpaceType)
	}
	return sel, nil
}

func between(row Row, minKey, maxKey string, v float64) bool {
	lo, ok := row.Float(minKey)
	if !ok {
		lo = math.Inf(-1)
	}
	hi, ok := row.Float(maxKey)
	if !ok {
		hi = math.Inf(1)
	}
	return lo <= v && v <= hi
}

// IsNECBWildcard reports whether the space type of sp takes its system from
// its neighbors.
func (s *Standard) IsNECBWildcard(sp NECBSpace) (bool, error) {
	sel, err := s.necbSelectionType(sp)
	if err != nil {
		return false, err
	}
	return sel == NECBWildcard, nil
}

// NECBSystemSelection returns the NECB system type, 1 through 7, for a
// space in a building with the given number of above-ground stories. The
// first row of the selection table whose story and cooling load ranges hold
// the space wins.
func (s *Standard) NECBSystemSelection(sp NECBSpace, stories int) (NECBSelection, error) {
	sel, err := s.necbSelectionType(sp)
	if err != nil {
		return NECBSelection{}, err
	}
	t, err := s.data.Table("necb_hvac_system_selection_type")
	if err != nil {
		return NECBSelection{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	for _, row := range t {
		if v, _ := row.String("necb_hvac_system_selection_type"); v != sel {
			continue
		}
		if !between(row, "min_stories", "max_stories", float64(stories)) ||
			!between(row, "min_cooling_capacity_kw", "max_cooling_capacity_kw", sp.CoolingLoadKW) {
			continue
		}
		sys, ok := row.Float("system_type")
		if !ok {
			return NECBSelection{}, fmt.Errorf("space %q: selection row for %s has no system_type", sp.Name, sel)
		}
		dwelling, _ := row["dwelling"].(bool)
		out := NECBSelection{SelectionType: sel, SystemType: int(sys), Dwelling: dwelling}
		s.log("necb").Debugf("Space %s (%s) selects NECB system %d.", sp.Name, sel, out.SystemType)
		return out, nil
	}
	return NECBSelection{}, fmt.Errorf("space %q: %w: no NECB system for %s at %d stories and %s kW",
		sp.Name, ErrNotFound, sel, stories, fmtNum(round(sp.CoolingLoadKW, 2)))
}

// NECBZoneSystemSelection returns the single system type the spaces of a
// thermal zone call for. Wildcard spaces do not vote. It is an error for
// the spaces to call for different systems.
func (s *Standard) NECBZoneSystemSelection(spaces []NECBSpace, stories int) (int, error) {
	seen := map[int]bool{}
	for _, sp := range spaces {
		wild, err := s.IsNECBWildcard(sp)
		if err != nil {
			return 0, err
		}
		if wild {
			continue
		}
		sel, err := s.NECBSystemSelection(sp, stories)
		if err != nil {
			return 0, err
		}
		seen[sel.SystemType] = true
	}
	if len(seen) == 0 {
		return 0, fmt.Errorf("%w: no space in the zone selects an NECB system", ErrNotFound)
	}
	if len(seen) > 1 {
		types := make([]int, 0, len(seen))
		for t := range seen {
			types = append(types, t)
		}
		sort.Ints(types)
		return 0, fmt.Errorf("zone spaces require different systems: %v", types)
	}
	for t := range seen {
		return t, nil
	}
	return 0, nil
}

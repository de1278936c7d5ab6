package standards

import (
	"fmt"
	"sort"
	"strings"
)

// Climate zone name prefixes used by the standards data.
const (
	ASHRAE1692006 = "ASHRAE 169-2006-"
	ASHRAE1692013 = "ASHRAE 169-2013-"
)

// ClimateZoneCode strips the ASHRAE 169 prefix, so "ASHRAE 169-2013-4A"
// becomes "4A". Other names are returned unchanged.
func ClimateZoneCode(climateZone string) string {
	for _, p := range []string{ASHRAE1692006, ASHRAE1692013} {
		if strings.HasPrefix(climateZone, p) {
			return strings.TrimPrefix(climateZone, p)
		}
	}
	return climateZone
}

// isASHRAEZone reports whether climateZone is an ASHRAE 169 zone whose code is
// one of codes.
func isASHRAEZone(climateZone string, codes ...string) bool {
	if !strings.HasPrefix(climateZone, ASHRAE1692006) && !strings.HasPrefix(climateZone, ASHRAE1692013) {
		return false
	}
	code := ClimateZoneCode(climateZone)
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// FindClimateZoneSet returns the climate zone set that contains climateZone.
// When several sets contain it the lexically first one is used.
func (s *Standard) FindClimateZoneSet(climateZone string) (string, error) {
	t, err := s.data.Table("climate_zone_sets")
	if err != nil {
		return "", err
	}
	var sets []string
	for _, row := range t {
		zones, _ := row["climate_zones"].([]any)
		for _, z := range zones {
			if zs, ok := z.(string); ok && zs == climateZone {
				name, _ := row.String("name")
				sets = append(sets, name)
				break
			}
		}
	}

	log := s.log("climate")
	switch {
	case len(sets) == 0:
		log.Errorf("Cannot find a climate zone set containing %s.", climateZone)
		return "", fmt.Errorf("%w: no climate zone set contains %q", ErrNotFound, climateZone)
	case len(sets) > 2:
		log.Errorf("Found more than 2 climate zone sets containing %s; will return the first one.", climateZone)
	}
	sort.Strings(sets)
	log.Debugf("Using climate zone set %s for %s.", sets[0], climateZone)
	return sets[0], nil
}

package standards

import (
	"sort"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Heating fuels that make a zone fossil-fueled.
var fossilFuels = map[string]bool{
	"NaturalGas":      true,
	"PropaneGas":      true,
	"FuelOilNo1":      true,
	"FuelOilNo2":      true,
	"Coal":            true,
	"Diesel":          true,
	"Gasoline":        true,
	"DistrictHeating": true,
}

// Zone is a thermal zone as seen by baseline system selection.
type Zone struct {
	Name string `json:"name" yaml:"name"`
	// AreaM2 is floor area including the zone multiplier.
	AreaM2 float64 `json:"area_m2" yaml:"area_m2"`
	// Occupancy is one of AreaResidential, AreaNonresidential or AreaRetail.
	Occupancy    string   `json:"occupancy" yaml:"occupancy"`
	HeatingFuels []string `json:"heating_fuels,omitempty" yaml:"heating_fuels,omitempty"`
	CoolingFuels []string `json:"cooling_fuels,omitempty" yaml:"cooling_fuels,omitempty"`
	Heated       bool     `json:"heated" yaml:"heated"`
	Cooled       bool     `json:"cooled" yaml:"cooled"`
	Plenum       bool     `json:"plenum" yaml:"plenum"`
	// Stories lists the building stories the zone's spaces are on.
	Stories []string `json:"stories,omitempty" yaml:"stories,omitempty"`
}

func (z Zone) hasHeatingFuel(f string) bool { return contains(z.HeatingFuels, f) }
func (z Zone) hasCoolingFuel(f string) bool { return contains(z.CoolingFuels, f) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// SystemGroup is a set of zones that share one baseline system.
type SystemGroup struct {
	Occupancy string   `json:"occupancy" yaml:"occupancy"`
	Fuel      string   `json:"fuel" yaml:"fuel"`
	Zones     []string `json:"zones" yaml:"zones"`
	AreaFt2   float64  `json:"area_ft2" yaml:"area_ft2"`
	Stories   int      `json:"stories" yaml:"stories"`
}

// ZoneFuelType classifies a zone's heating source.
func (s *Standard) ZoneFuelType(z Zone) string {
	fossil := false
	for _, f := range z.HeatingFuels {
		if fossilFuels[f] {
			fossil = true
			break
		}
	}
	electric := z.hasHeatingFuel("Electricity")

	if s.isXcel() && fossil && electric {
		s.log("baseline").Infof("Customization; %s is heated with both fossil and electric fuels.", z.Name)
		return FuelFossilAndElectric
	}
	switch {
	case fossil:
		return FuelFossil
	case electric:
		return FuelElectric
	case len(z.HeatingFuels) == 0 && len(z.CoolingFuels) == 0:
		return FuelUnconditioned
	}
	s.log("baseline").Warnf("For %s, could not determine fuel type, assuming fossil. Heating fuels = %v; cooling fuels = %v.", z.Name, z.HeatingFuels, z.CoolingFuels)
	return FuelFossil
}

type zoneInfo struct {
	zone    Zone
	areaFt2 float64
	occ     string
	fuel    string
}

type areaTotal struct {
	key     string
	areaFt2 float64
}

// predominant sums area per key and returns the keys by descending area.
// Ties keep the order in which the keys were first seen.
func predominant(zones []zoneInfo, key func(zoneInfo) string) []areaTotal {
	index := map[string]int{}
	var totals []areaTotal
	for _, z := range zones {
		k := key(z)
		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, areaTotal{key: k})
		}
		totals[i].areaFt2 += z.areaFt2
	}
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].areaFt2 > totals[j].areaFt2 })
	return totals
}

type zoneGroup struct {
	occ   string
	fuel  string
	zones []zoneInfo
}

// BaselineSystemGroups splits zones into groups served by one baseline system
// per G3.1.1: by predominant occupancy, then predominant heating fuel, then
// by whether the zones are cooled. Non-predominant occupancies or fuels
// larger than MinimumGroupAreaFt2 form their own groups.
func (s *Standard) BaselineSystemGroups(zones []Zone) ([]SystemGroup, error) {
	log := s.log("baseline")
	exception := s.MinimumGroupAreaFt2()

	var zs []zoneInfo
	for _, z := range zones {
		if z.Plenum {
			log.Infof("%s is a plenum, it will not be assigned a baseline system.", z.Name)
			continue
		}
		if !z.Heated && !z.Cooled {
			log.Infof("%s is unconditioned, it will not be assigned a baseline system.", z.Name)
			continue
		}
		zs = append(zs, zoneInfo{
			zone:    z,
			areaFt2: units.M2ToFT2(z.AreaM2),
			occ:     z.Occupancy,
			fuel:    s.ZoneFuelType(z),
		})
	}
	if len(zs) == 0 {
		log.Warn("The building does not appear to have any conditioned zones. Make sure zones have thermostat with appropriate heating and cooling setpoint schedules.")
		return []SystemGroup{}, nil
	}

	// Occupancy
	occTotals := predominant(zs, func(z zoneInfo) string { return z.occ })
	domOcc := occTotals[0].key
	var occGroups []zoneGroup
	var domOccZones []zoneInfo
	for _, t := range occTotals[1:] {
		members := filterZones(zs, func(z zoneInfo) bool { return z.occ == t.key })
		if t.areaFt2 > exception {
			log.Infof("The portion of the building with an occupancy type of %s is bigger than the minimum exception area of %.0f ft2. It will be assigned a separate HVAC system type.", t.key, exception)
			occGroups = append(occGroups, zoneGroup{occ: t.key, zones: members})
			continue
		}
		domOccZones = append(domOccZones, members...)
	}
	domOccZones = append(filterZones(zs, func(z zoneInfo) bool { return z.occ == domOcc }), domOccZones...)
	occGroups = append(occGroups, zoneGroup{occ: domOcc, zones: domOccZones})

	// Fuel, within each occupancy group
	var fuelGroups []zoneGroup
	for _, og := range occGroups {
		ownOcc := filterZones(og.zones, func(z zoneInfo) bool { return z.occ == og.occ })
		fuelTotals := predominant(ownOcc, func(z zoneInfo) string { return z.fuel })
		domFuel := fuelTotals[0].key
		if domFuel == FuelUnconditioned {
			if len(fuelTotals) < 2 {
				log.Errorf("Could not determine a heating fuel for the %s occupancy group.", og.occ)
				return []SystemGroup{}, nil
			}
			domFuel = fuelTotals[1].key
		}

		domFuelZones := filterZones(og.zones, func(z zoneInfo) bool {
			return z.occ != og.occ || z.fuel == domFuel
		})
		var separate []zoneGroup
		for _, t := range predominant(og.zones, func(z zoneInfo) string { return z.fuel }) {
			if t.key == domFuel {
				continue
			}
			members := filterZones(og.zones, func(z zoneInfo) bool { return z.occ == og.occ && z.fuel == t.key })
			if len(members) == 0 {
				continue
			}
			var area float64
			for _, m := range members {
				area += m.areaFt2
			}
			if area > exception {
				log.Infof("The portion of the building with an occupancy type of %s and fuel type of %s is bigger than the minimum exception area of %.0f ft2. It will be assigned a separate HVAC system type.", og.occ, t.key, exception)
				separate = append(separate, zoneGroup{occ: og.occ, fuel: t.key, zones: members})
				continue
			}
			domFuelZones = append(domFuelZones, members...)
		}
		fuelGroups = append(fuelGroups, separate...)
		fuelGroups = append(fuelGroups, zoneGroup{occ: og.occ, fuel: domFuel, zones: domFuelZones})
	}

	// Heated-only zones
	var final []zoneGroup
	for _, g := range fuelGroups {
		if g.fuel == FuelUnconditioned {
			continue
		}
		var cooled, heatedOnly []zoneInfo
		for _, z := range g.zones {
			if z.zone.Heated && !z.zone.Cooled {
				heatedOnly = append(heatedOnly, z)
				continue
			}
			cooled = append(cooled, z)
		}
		final = append(final, zoneGroup{occ: g.occ, fuel: g.fuel, zones: cooled})
		if len(heatedOnly) > 0 {
			log.Infof("%d zones in the %s group are heated but not cooled; they will be assigned a heating-only system.", len(heatedOnly), g.occ)
			final = append(final, zoneGroup{occ: AreaHeatedOnly, fuel: g.fuel, zones: heatedOnly})
		}
	}

	// District energy anywhere in the building overrides the fuel category.
	var districtHeat, districtCool bool
	for _, z := range zones {
		if z.hasHeatingFuel("DistrictHeating") {
			districtHeat = true
		}
		if z.hasCoolingFuel("DistrictCooling") {
			districtCool = true
		}
	}
	override := ""
	switch {
	case districtHeat && districtCool:
		override = FuelPurchasedHeatAndCooling
		log.Info("The proposed model uses purchased heating and cooling; the baseline will too.")
	case districtHeat:
		override = FuelPurchasedHeat
		log.Info("The proposed model uses purchased heating; the baseline will too.")
	case districtCool:
		override = FuelPurchasedCooling
		log.Info("The proposed model uses purchased cooling; the baseline will too.")
	}

	out := make([]SystemGroup, 0, len(final))
	for _, g := range final {
		sg := SystemGroup{Occupancy: g.occ, Fuel: g.fuel, Zones: make([]string, 0, len(g.zones))}
		if override != "" {
			sg.Fuel = override
		}
		stories := map[string]bool{}
		for _, z := range g.zones {
			sg.Zones = append(sg.Zones, z.zone.Name)
			sg.AreaFt2 += z.areaFt2
			for _, st := range z.zone.Stories {
				stories[st] = true
			}
		}
		sg.Stories = len(stories)
		log.Infof("Final system type group: occ = %s, fuel = %s, area = %.0f ft2, num stories = %d, zones:", sg.Occupancy, sg.Fuel, sg.AreaFt2, sg.Stories)
		for _, name := range sg.Zones {
			log.Infof("--- %s", name)
		}
		out = append(out, sg)
	}
	return out, nil
}

func filterZones(zs []zoneInfo, keep func(zoneInfo) bool) []zoneInfo {
	var out []zoneInfo
	for _, z := range zs {
		if keep(z) {
			out = append(out, z)
		}
	}
	return out
}

package standards

import (
	"fmt"
	"math"
)

// Area types accepted by SystemNumber.
const (
	AreaResidential    = "residential"
	AreaNonresidential = "nonresidential"
	AreaHeatedOnly     = "heatedonly"
	AreaRetail         = "retail"
)

// Fuel categories used by baseline system selection.
const (
	FuelFossil                  = "fossil"
	FuelElectric                = "electric"
	FuelFossilAndElectric       = "fossilandelectric"
	FuelUnconditioned           = "unconditioned"
	FuelPurchasedHeat           = "purchasedheat"
	FuelPurchasedCooling        = "purchasedcooling"
	FuelPurchasedHeatAndCooling = "purchasedheatandcooling"
)

// Baseline system numbers.
const (
	System1Or2  = "1_or_2"
	System3Or4  = "3_or_4"
	System5Or6  = "5_or_6"
	System7Or8  = "7_or_8"
	System9Or10 = "9_or_10"
)

const largeBuildingAreaFt2 = 150000.0

// SystemSpec is a baseline system type and the fuels that serve it. Empty
// fuel strings mean the system has no such service.
type SystemSpec struct {
	Type            string `json:"type" yaml:"type"`
	CentralHeatFuel string `json:"central_heat_fuel,omitempty" yaml:"central_heat_fuel,omitempty"`
	ZoneHeatFuel    string `json:"zone_heat_fuel,omitempty" yaml:"zone_heat_fuel,omitempty"`
	CoolFuel        string `json:"cool_fuel,omitempty" yaml:"cool_fuel,omitempty"`
}

// systemTypes is Table G3.1.1 keyed by system number then fuel category.
var systemTypes = map[string]map[string]SystemSpec{
	System1Or2: {
		FuelFossil:                  {"PTAC", "NaturalGas", "", "Electricity"},
		FuelFossilAndElectric:       {"PTAC", "NaturalGas", "", "Electricity"},
		FuelPurchasedHeat:           {"PTAC", "DistrictHeating", "", "Electricity"},
		FuelPurchasedHeatAndCooling: {"Fan_Coil", "DistrictHeating", "", "DistrictCooling"},
		FuelElectric:                {"PTHP", "Electricity", "", "Electricity"},
		FuelPurchasedCooling:        {"Fan_Coil", "NaturalGas", "", "DistrictCooling"},
	},
	System3Or4: {
		FuelFossil:                  {"PSZ_AC", "NaturalGas", "", "Electricity"},
		FuelFossilAndElectric:       {"PSZ_AC", "NaturalGas", "", "Electricity"},
		FuelPurchasedHeat:           {"PSZ_AC", "DistrictHeating", "", "Electricity"},
		FuelPurchasedHeatAndCooling: {"PSZ_AC", "DistrictHeating", "", "DistrictCooling"},
		FuelElectric:                {"PSZ_HP", "Electricity", "", "Electricity"},
		FuelPurchasedCooling:        {"PSZ_AC", "NaturalGas", "", "DistrictCooling"},
	},
	System5Or6: {
		FuelFossil:                  {"PVAV_Reheat", "NaturalGas", "NaturalGas", "Electricity"},
		FuelFossilAndElectric:       {"PVAV_Reheat", "NaturalGas", "Electricity", "Electricity"},
		FuelPurchasedHeat:           {"PVAV_Reheat", "DistrictHeating", "DistrictHeating", "Electricity"},
		FuelPurchasedHeatAndCooling: {"PVAV_Reheat", "DistrictHeating", "DistrictHeating", "DistrictCooling"},
		FuelElectric:                {"PVAV_PFP_Boxes", "Electricity", "Electricity", "Electricity"},
		FuelPurchasedCooling:        {"PVAV_PFP_Boxes", "Electricity", "Electricity", "DistrictCooling"},
	},
	System7Or8: {
		FuelFossil:                  {"VAV_Reheat", "NaturalGas", "NaturalGas", "Electricity"},
		FuelFossilAndElectric:       {"VAV_Reheat", "NaturalGas", "Electricity", "Electricity"},
		FuelPurchasedHeat:           {"VAV_Reheat", "DistrictHeating", "DistrictHeating", "Electricity"},
		FuelPurchasedHeatAndCooling: {"VAV_Reheat", "DistrictHeating", "DistrictHeating", "DistrictCooling"},
		FuelElectric:                {"VAV_PFP_Boxes", "Electricity", "Electricity", "Electricity"},
		FuelPurchasedCooling:        {"VAV_PFP_Boxes", "Electricity", "Electricity", "DistrictCooling"},
	},
	System9Or10: {
		FuelFossil:                  {"Gas_Furnace", "NaturalGas", "", ""},
		FuelFossilAndElectric:       {"Gas_Furnace", "NaturalGas", "", ""},
		FuelPurchasedHeat:           {"Gas_Furnace", "DistrictHeating", "", ""},
		FuelPurchasedHeatAndCooling: {"Gas_Furnace", "DistrictHeating", "", ""},
		FuelElectric:                {"Electric_Furnace", "Electricity", "", ""},
		FuelPurchasedCooling:        {"Electric_Furnace", "Electricity", "", ""},
	},
}

// SystemNumber returns the baseline system number for a group of zones, or
// false when the area type has no row for this template.
func (s *Standard) SystemNumber(climateZone, areaType, fuelType string, areaFt2 float64, numStories int) (string, bool) {
	p := s.profile
	log := s.log("baseline")

	switch {
	case p.Family == Family179D:
		log.Info("179d: Heat Storage area applied as 90.1-2007 with addenda dn")
		if areaType == AreaRetail && !s.isXcel() {
			areaType = AreaNonresidential
		}
	case p.PRM && s.isXcel():
		log.Info("Custom; per Xcel EDA Program Manual 2014 Table 3.2.2 Baseline HVAC System Types, the 90.1-2010 lookup for HVAC system types shall be used.")
	}

	if areaType == AreaHeatedOnly {
		if p.HeatedOnly == HeatedOnlyHeatingSystem {
			return System9Or10, true
		}
		log.Warn("Per Table G3.1.10.d, where no cooling system exists in the proposed building the cooling system shall be identical to the baseline; add a cooling system to the proposed model manually.")
		areaType = AreaNonresidential
	}

	if areaType == AreaRetail {
		switch p.Retail {
		case RetailSmallSystem, RetailAsNonresidential:
			return System3Or4, true
		default:
			return "", false
		}
	}

	switch areaType {
	case AreaResidential:
		return System1Or2, true
	case AreaNonresidential:
		return nonresidentialSystemNumber(areaFt2, numStories, p.BaselineAreaLimitFt2)
	}
	return "", false
}

func nonresidentialSystemNumber(areaFt2 float64, stories int, limitFt2 float64) (string, bool) {
	switch {
	case stories <= 3 && areaFt2 < limitFt2:
		return System3Or4, true
	case ((stories == 4 || stories == 5) && areaFt2 < limitFt2) ||
		(stories <= 5 && areaFt2 >= limitFt2 && areaFt2 <= largeBuildingAreaFt2):
		return System5Or6, true
	case stories >= 5 || areaFt2 > largeBuildingAreaFt2:
		return System7Or8, true
	}
	return "", false
}

// MinimumGroupAreaFt2 is the area above which a non-predominant occupancy or
// fuel gets its own baseline system.
func (s *Standard) MinimumGroupAreaFt2() float64 {
	if s.profile.PRM && s.isXcel() {
		s.log("baseline").Infof("Customization; per Xcel EDA Program Manual 2014 3.2.1 Mechanical System Selection ii, minimum area for non-predominant conditions reduced to %d ft2.", 5000)
		return 5000
	}
	return 20000
}

// ChangeFuel applies the template's baseline heating fuel rule. PRM
// templates choose electric heat in climate zones 1A-3A and fossil elsewhere,
// independent of the proposed building.
func (s *Standard) ChangeFuel(fuelType, climateZone string) string {
	if !s.profile.PRM {
		return fuelType
	}
	log := s.log("baseline")
	if s.isXcel() {
		log.Info("Custom; per Xcel EDA Program Manual 2014 Table 3.2.2 Baseline HVAC System Types, the 90.1-2010 rules for heating fuel type (based on proposed model) rules apply.")
		return fuelType
	}
	if fuelType != FuelElectric && fuelType != FuelFossil {
		return fuelType
	}
	if isASHRAEZone(climateZone, "1A", "2A", "3A") {
		fuelType = FuelElectric
	} else {
		fuelType = FuelFossil
	}
	log.Infof("Heating fuel is %s for climate zone %s, independent of the heating fuel type in the proposed building, per G3.1.1-3.", fuelType, climateZone)
	return fuelType
}

// SystemType selects the baseline system for a group. The fuel category is
// passed through ChangeFuel before the table lookup.
func (s *Standard) SystemType(climateZone, areaType, fuelType string, areaFt2 float64, numStories int) (SystemSpec, bool) {
	log := s.log("baseline")
	sysNum, _ := s.SystemNumber(climateZone, areaType, fuelType, areaFt2, numStories)
	fuel := s.ChangeFuel(fuelType, climateZone)
	spec, ok := systemTypes[sysNum][fuel]
	if !ok {
		log.Errorf("Could not determine system type for %s, %s, %s, %.0f ft^2, %d stories.", s.template, areaType, fuel, math.Round(areaFt2), numStories)
		return SystemSpec{}, false
	}
	log.Infof("System type is %s for %s, %s, %s, %.0f ft^2, %d stories.", spec.Type, s.template, areaType, fuel, math.Round(areaFt2), numStories)
	if spec.CentralHeatFuel != "" {
		log.Infof("--- %s for main heating", spec.CentralHeatFuel)
	}
	if spec.ZoneHeatFuel != "" {
		log.Infof("--- %s for zone heat/reheat", spec.ZoneHeatFuel)
	}
	if spec.CoolFuel != "" {
		log.Infof("--- %s for cooling", spec.CoolFuel)
	}
	return spec, true
}

// LookupSystemSpec returns the Table G3.1.1 entry for a system number and an
// already-resolved fuel category.
func LookupSystemSpec(systemNumber, fuel string) (SystemSpec, bool) {
	spec, ok := systemTypes[systemNumber][fuel]
	return spec, ok
}

// BaselineFanType is the supply fan type used for baseline VAV systems.
func (s *Standard) BaselineFanType() string {
	if s.profile.PRM {
		return "Variable Speed Fan"
	}
	return "TwoSpeed Fan"
}

// BaselineSystem is one baseline system assignment.
type BaselineSystem struct {
	Group        SystemGroup `json:"group" yaml:"group"`
	SystemNumber string      `json:"system_number" yaml:"system_number"`
	Fuel         string      `json:"fuel" yaml:"fuel"`
	System       SystemSpec  `json:"system" yaml:"system"`
}

// SelectBaselineSystems groups zones and selects a baseline system for
// each group.
func (s *Standard) SelectBaselineSystems(climateZone string, zones []Zone) ([]BaselineSystem, error) {
	groups, err := s.BaselineSystemGroups(zones)
	if err != nil {
		return nil, err
	}
	out := make([]BaselineSystem, 0, len(groups))
	for _, g := range groups {
		spec, ok := s.SystemType(climateZone, g.Occupancy, g.Fuel, g.AreaFt2, g.Stories)
		if !ok {
			return nil, fmt.Errorf("%w: no baseline system for occupancy %q, fuel %q, %.0f ft2, %d stories",
				ErrNotFound, g.Occupancy, g.Fuel, g.AreaFt2, g.Stories)
		}
		sysNum, _ := s.SystemNumber(climateZone, g.Occupancy, g.Fuel, g.AreaFt2, g.Stories)
		out = append(out, BaselineSystem{
			Group:        g,
			SystemNumber: sysNum,
			Fuel:         s.ChangeFuel(g.Fuel, climateZone),
			System:       spec,
		})
	}
	return out, nil
}

package standards

import (
	"fmt"
	"math"
	"strings"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Water heater sub types, used to convert a uniform energy factor.
const (
	SubTypeConsumerStorage = "consumer_storage"
	SubTypeResidentialDuty = "residential_duty"
	SubTypeInstantaneous   = "instantaneous"
)

// Assumed conditions for converting standby and hourly losses to a UA:
// water at 120F is 8.25 lb/gal and sits 70F above the zone.
const (
	whDeltaTF          = 70.0
	whBtuPerGalF       = 8.25
	midriseTankDivisor = 23.0
)

// WaterHeater is a mixed (single node) storage water heater. Quantity is
// the number of identical heaters the object stands for.
type WaterHeater struct {
	Name      string  `json:"name" yaml:"name"`
	FuelType  string  `json:"fuel_type" yaml:"fuel_type"`
	CapacityW float64 `json:"capacity_w" yaml:"capacity_w"`
	VolumeM3  float64 `json:"volume_m3" yaml:"volume_m3"`
	Quantity  int     `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	// BuildingType matters for MidriseApartment, whose modeled tank stands
	// for 23 apartment heaters.
	BuildingType string `json:"building_type,omitempty" yaml:"building_type,omitempty"`
	// PartLoadCurve is the name of the part load factor curve, if any.
	PartLoadCurve string `json:"part_load_curve,omitempty" yaml:"part_load_curve,omitempty"`
}

// WaterHeaterResult holds the efficiency and skin loss a heater gets.
type WaterHeaterResult struct {
	Name              string  `json:"name"`
	ThermalEfficiency float64 `json:"thermal_efficiency"`
	UABtuPerHrF       float64 `json:"ua_btu_per_hr_f"`
	UAWPerK           float64 `json:"ua_w_per_k"`
	ParasiticFuelType string  `json:"parasitic_fuel_type"`
	// Unchanged is set for heat pump water heaters, which keep their inputs.
	Unchanged bool `json:"unchanged,omitempty"`
}

// WaterHeaterSubType classifies a heater for the UEF to EF conversion. It
// returns "" when no class applies.
func WaterHeaterSubType(fuel string, capacityBtuh, volumeGal float64) string {
	capW := units.BtuPerHrToW(capacityBtuh)
	switch {
	case fuel == "NaturalGas" && capacityBtuh <= 75000 && volumeGal >= 20 && volumeGal <= 100,
		fuel == "Electricity" && capW <= 12000 && volumeGal >= 20 && volumeGal <= 120:
		return SubTypeConsumerStorage
	case fuel == "NaturalGas" && capacityBtuh < 105000 && volumeGal < 120,
		fuel == "Oil" && capacityBtuh < 140000 && volumeGal < 120,
		fuel == "Electricity" && capW < 58600 && volumeGal <= 2:
		return SubTypeResidentialDuty
	case volumeGal <= 2:
		return SubTypeInstantaneous
	}
	return ""
}

// UniformEnergyFactorToEnergyFactor converts UEF to EF with the RESNET
// regressions for the heater's sub type.
func (s *Standard) UniformEnergyFactorToEnergyFactor(name, fuel string, uef, capacityBtuh, volumeGal float64) float64 {
	sub := WaterHeaterSubType(fuel, capacityBtuh, volumeGal)
	switch {
	case sub == "":
		s.log("water_heater").Warnf("No sub type identified for %s, Energy Factor (EF) = Uniform Energy Factor (UEF) is assumed.", name)
		return uef
	case sub == SubTypeConsumerStorage && fuel == "NaturalGas":
		return 0.9066*uef + 0.0711
	case sub == SubTypeConsumerStorage && fuel == "Electricity":
		return 2.4029*uef - 1.2844
	case sub == SubTypeResidentialDuty && (fuel == "NaturalGas" || fuel == "Oil"):
		return 1.0005*uef + 0.0019
	case sub == SubTypeResidentialDuty && fuel == "Electricity":
		return 1.0219*uef - 0.0025
	case sub == SubTypeInstantaneous:
		return uef
	}
	s.log("water_heater").Errorf("Invalid sub_type for %s, Energy Factor (EF) = Uniform Energy Factor (UEF) is assumed.", name)
	return uef
}

// EnergyFactorToThermalEfficiencyAndUA converts EF to the thermal efficiency
// and skin loss (Btu/h-F) of the modeled tank. Electric heaters are 100%
// efficient; gas heaters are 82% with a recovery efficiency regressed on EF
// and a burner efficiency of 80%. Other fuels report ok=false.
func EnergyFactorToThermalEfficiencyAndUA(fuel string, ef, capacityBtuh float64) (eff, ua float64, ok bool) {
	switch fuel {
	case "Electricity":
		return 1.0, 41094 * (1/ef - 1) / (24 * 67.5), true
	case "NaturalGas":
		eff = 0.82
		re := -0.1137*ef*ef + 0.1997*ef + 0.731
		return eff, (eff - re) * capacityBtuh / 0.8 / 67.5, true
	}
	return 0, 0, false
}

// inBand keeps rows whose [minimum_<col>, maximum_<col>] band holds v.
// Rows without the band are kept.
func inBand(rows []Row, col string, v float64) []Row {
	var out []Row
	for _, r := range rows {
		lo, okLo := r.Float("minimum_" + col)
		hi, okHi := r.Float("maximum_" + col)
		if (okLo && v < lo) || (okHi && v > hi) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// WaterHeaterRequirement finds the water_heaters row for a heater. A search
// by capacity alone is tried first, then narrowed by storage volume and by
// capacity per gallon. A search only counts when exactly one row is left.
func (s *Standard) WaterHeaterRequirement(fuel string, capacityBtuh, volumeGal float64) (Row, error) {
	t, err := s.data.Table("water_heaters")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	criteria := Criteria{"template": s.template, "fuel_type": fuel, "equipment_type": "Storage Water Heaters"}
	byCap := FindObjects(t, criteria, &capacityBtuh, nil)
	byVol := inBand(byCap, "storage", math.Round(volumeGal))
	var byCapPerVol []Row
	if volumeGal > 0 {
		byCapPerVol = inBand(inBand(byCap, "storage", volumeGal), "capacity_per_storage", capacityBtuh/volumeGal)
	}
	for _, cands := range [][]Row{byCap, byVol, byCapPerVol} {
		if len(cands) == 1 {
			return cands[0], nil
		}
	}
	return nil, fmt.Errorf("%w: no single water_heaters row for %s, %s Btu/h, %s gal (%d by capacity)",
		ErrNotFound, criteria, fmtNum(math.Round(capacityBtuh)), fmtNum(round(volumeGal, 1)), len(byCap))
}

// WaterHeaterEfficiency returns the thermal efficiency and skin loss
// coefficient a heater gets. The requirement row decides the method:
// a thermal efficiency, an energy factor or uniform energy factor with a
// volume derate, a standby loss, an hourly loss, or a standby loss with a
// capacity allowance for large gas heaters. Later methods override earlier
// ones when a row carries several.
func (s *Standard) WaterHeaterEfficiency(wh WaterHeater) (WaterHeaterResult, error) {
	log := s.log("water_heater")
	if strings.Contains(wh.PartLoadCurve, "HPWH_COP") {
		log.Infof("For %s, the workaround for HPWHs has been applied, efficiency will not be changed.", wh.Name)
		return WaterHeaterResult{Name: wh.Name, Unchanged: true}, nil
	}
	qty := float64(wh.Quantity)
	if qty < 1 {
		qty = 1
	}
	if wh.CapacityW <= 0 {
		log.Warnf("For %s, cannot find capacity, standard will not be applied.", wh.Name)
		return WaterHeaterResult{}, fmt.Errorf("water heater %q: %w", wh.Name, ErrNoCapacity)
	}
	if wh.VolumeM3 <= 0 {
		log.Warnf("For %s, cannot find volume, standard will not be applied.", wh.Name)
		return WaterHeaterResult{}, fmt.Errorf("water heater %q: tank volume is not known", wh.Name)
	}
	capBtuh := units.WToBtuPerHr(wh.CapacityW / qty)
	volM3 := wh.VolumeM3 / qty
	midrise := wh.BuildingType == "MidriseApartment"
	if midrise {
		volM3 = wh.VolumeM3 / midriseTankDivisor
	}
	volGal := units.M3ToGal(volM3)

	if wh.FuelType != "NaturalGas" && wh.FuelType != "Electricity" {
		log.Warnf("For %s, fuel type of %s is not yet supported, standard will not be applied.", wh.Name, wh.FuelType)
	}

	props, err := s.WaterHeaterRequirement(wh.FuelType, capBtuh, volGal)
	if err != nil {
		return WaterHeaterResult{}, err
	}
	has := func(k string) bool { _, ok := props.Float(k); return ok }
	val := func(k string) float64 { v, _ := props.Float(k); return v }
	booster := strings.Contains(wh.Name, "Booster")

	var eff, ua float64
	var have bool
	set := func(e, u float64) { eff, ua, have = e, u, true }

	if has("thermal_efficiency") && !has("standby_loss_capacity_allowance") {
		set(val("thermal_efficiency"), 11.37)
	}

	if has("energy_factor_base") && has("energy_factor_volume_derate") {
		ef := val("energy_factor_base") - val("energy_factor_volume_derate")*volGal
		if e, u, ok := EnergyFactorToThermalEfficiencyAndUA(wh.FuelType, ef, capBtuh); ok {
			set(e, u)
			if booster {
				ua *= 2
			}
		}
	}

	if (has("uniform_energy_factor_base") && has("uniform_energy_factor_volume_allowance")) || has("uniform_energy_factor") {
		uef := val("uniform_energy_factor")
		if !has("uniform_energy_factor") {
			uef = val("uniform_energy_factor_base") - val("uniform_energy_factor_volume_allowance")*volGal
		}
		ef := s.UniformEnergyFactorToEnergyFactor(wh.Name, wh.FuelType, uef, capBtuh, volGal)
		if e, u, ok := EnergyFactorToThermalEfficiencyAndUA(wh.FuelType, ef, capBtuh); ok {
			set(e, u)
			if booster {
				ua *= 2
			}
		}
	}

	if has("standby_loss_base") && (has("standby_loss_volume_allowance") || has("standby_loss_square_root_volume_allowance")) {
		var sl float64
		if has("standby_loss_square_root_volume_allowance") {
			sl = val("standby_loss_base") + val("standby_loss_square_root_volume_allowance")*math.Sqrt(volGal)
		} else {
			sl = val("standby_loss_base") + val("standby_loss_volume_allowance")*volGal
		}
		u := sl / whDeltaTF
		if midrise {
			u *= midriseTankDivisor
		}
		if booster {
			u *= 2
		}
		set(1.0, u)
	}

	if has("hourly_loss_base") && has("hourly_loss_volume_allowance") {
		pct := val("hourly_loss_base") + val("hourly_loss_volume_allowance")/volGal
		lossBtuh := pct / 100 * volGal * whBtuPerGalF * whDeltaTF
		set(1.0, lossBtuh/whDeltaTF)
	}

	if has("standby_loss_capacity_allowance") && has("thermal_efficiency") &&
		(has("standby_loss_volume_allowance") || has("standby_loss_square_root_volume_allowance")) {
		volDrt := val("standby_loss_volume_allowance")
		if !has("standby_loss_volume_allowance") {
			volDrt = val("standby_loss_square_root_volume_allowance")
		}
		et := val("thermal_efficiency")
		tankVol := 0.0
		if volGal > 100 {
			tankVol = math.Round(volGal - 100)
		}
		whTankVol := math.Min(volGal, 100)
		slTank := 0.0000005*math.Pow(tankVol, 3) - 0.001*tankVol*tankVol + 1.3519*tankVol + 64.456
		pOn := capBtuh / et
		sl := pOn/val("standby_loss_capacity_allowance") + volDrt*math.Sqrt(whTankVol) + slTank
		u := sl * et / whDeltaTF
		set((u*whDeltaTF+pOn*et)/pOn, u)
	}

	if !have {
		log.Warnf("For %s, cannot calculate efficiency, cannot apply efficiency standard.", wh.Name)
		return WaterHeaterResult{}, fmt.Errorf("water heater %q: %w: no efficiency method in the requirement row", wh.Name, ErrNotFound)
	}

	res := WaterHeaterResult{
		Name:              fmt.Sprintf("%s %s Therm Eff", wh.Name, fmtNum(round(eff, 3))),
		ThermalEfficiency: eff,
		UABtuPerHrF:       ua,
		UAWPerK:           units.BtuPerHrFToWPerK(ua),
		ParasiticFuelType: wh.FuelType,
	}
	log.Debugf("For %s, skin-loss UA = %g W/K.", wh.Name, res.UAWPerK)
	log.Infof("For %s: %s; thermal efficiency = %s, skin-loss UA = %sBtu/hr-R", s.template, res.Name, fmtNum(round(eff, 3)), fmtNum(math.Round(ua)))
	return res, nil
}

package standards

import (
	"fmt"
	"math"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Boiler is a hot water boiler.
type Boiler struct {
	Name string `json:"name" yaml:"name"`
	// FuelType is the simulation fuel name, e.g. NaturalGas.
	FuelType  string  `json:"fuel_type" yaml:"fuel_type"`
	CapacityW float64 `json:"capacity_w" yaml:"capacity_w"`
}

// BoilerResult is the boiler efficiency required by the template.
type BoilerResult struct {
	Name              string  `json:"name"`
	ThermalEfficiency float64 `json:"thermal_efficiency"`
	// Metric is the rating the table row was written in: AFUE, Thermal Eff
	// or Combustion Eff.
	Metric       string  `json:"metric"`
	RatedValue   float64 `json:"rated_value"`
	EffFPLRCurve string  `json:"eff_fplr_curve,omitempty"`
}

// BoilerSearchCriteria maps the boiler fuel onto the boilers table.
func (s *Standard) BoilerSearchCriteria(b Boiler) Criteria {
	fuel := "Gas"
	switch b.FuelType {
	case "NaturalGas":
	case "Electricity":
		fuel = "Electric"
	case "FuelOilNo1", "FuelOilNo2":
		fuel = "Oil"
	default:
		s.log("boiler").Warnf("For %s, a fuel type of %s is not yet supported.  Assuming 'Gas.'", b.Name, b.FuelType)
	}
	return Criteria{"template": s.template, "fuel_type": fuel, "fluid_type": "Hot Water"}
}

// BoilerEfficiency looks up the minimum thermal efficiency and part load
// curve for a boiler. Later metrics in a row win: AFUE, then thermal
// efficiency, then combustion efficiency.
func (s *Standard) BoilerEfficiency(b Boiler) (BoilerResult, error) {
	log := s.log("boiler")
	if b.CapacityW <= 0 {
		log.Warnf("For %s capacity is not available, cannot apply efficiency standard.", b.Name)
		return BoilerResult{}, fmt.Errorf("boiler %q: %w", b.Name, ErrNoCapacity)
	}
	criteria := s.BoilerSearchCriteria(b)
	capBtuh := units.WToBtuPerHr(b.CapacityW)
	kbtuh := math.Round(capBtuh / 1000)

	row, err := s.lookup("boilers", criteria, &capBtuh, nil)
	if err != nil {
		log.Warnf("For %s, cannot find boiler properties with search criteria %s, cannot apply efficiency standard.", b.Name, criteria)
		return BoilerResult{}, err
	}

	res := BoilerResult{Name: b.Name}
	if name, ok := row.String("efffplr"); ok {
		if s.addCurve(name) {
			res.EffFPLRCurve = name
		} else {
			log.Warnf("For %s, cannot find eff_fplr curve, will not be set.", b.Name)
		}
	}

	fuel, fluid := criteria["fuel_type"], criteria["fluid_type"]
	if afue, ok := row.Float("minimum_annual_fuel_utilization_efficiency"); ok {
		res.ThermalEfficiency = units.AFUEToThermalEff(afue)
		res.Metric, res.RatedValue = "AFUE", afue
		res.Name = fmt.Sprintf("%s %.0fkBtu/hr %s AFUE", b.Name, kbtuh, fmtNum(afue))
		log.Infof("For %s: %s: %v %v Capacity = %.0fkBtu/hr; AFUE = %s", s.template, b.Name, fuel, fluid, kbtuh, fmtNum(afue))
	}
	if te, ok := row.Float("minimum_thermal_efficiency"); ok {
		res.ThermalEfficiency = te
		res.Metric, res.RatedValue = "Thermal Eff", te
		res.Name = fmt.Sprintf("%s %.0fkBtu/hr %s Thermal Eff", b.Name, kbtuh, fmtNum(te))
		log.Infof("For %s: %s: %v %v Capacity = %.0fkBtu/hr; Thermal Efficiency = %s", s.template, b.Name, fuel, fluid, kbtuh, fmtNum(te))
	}
	if ce, ok := row.Float("minimum_combustion_efficiency"); ok {
		res.ThermalEfficiency = units.CombustionEffToThermalEff(ce)
		res.Metric, res.RatedValue = "Combustion Eff", ce
		res.Name = fmt.Sprintf("%s %.0fkBtu/hr %s Combustion Eff", b.Name, kbtuh, fmtNum(ce))
		log.Infof("For %s: %s: %v %v Capacity = %.0fkBtu/hr; Combustion Efficiency = %s", s.template, b.Name, fuel, fluid, kbtuh, fmtNum(ce))
	}
	if res.Metric == "" {
		return BoilerResult{}, fmt.Errorf("boiler %q: %w: row has no efficiency for %s", b.Name, ErrNotFound, criteria)
	}
	return res, nil
}

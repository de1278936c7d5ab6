package standards

import (
	"fmt"
	"math"

	"github.com/openstudio-standards/osstd/standards/units"
)

// heatingDXCapacity is the capacity a heat pump heating coil is rated by:
// the paired cooling coil's capacity when there is one.
func (s *Standard) heatingDXCapacity(c DXCoil) float64 {
	log := s.log("coil_dx")
	if c.PairedCoolingCapacityW <= 0 {
		log.Warnf("For %s, the paired DX cooling coil could not be found to determine capacity. Efficiency will incorrectly be based on DX coil's heating capacity.", c.Name)
		if c.CapacityW <= 0 {
			log.Warnf("For %s capacity is not available, cannot apply efficiency standard to paired DX heating coil.", c.Name)
		}
		return c.CapacityW
	}
	capW := c.PairedCoolingCapacityW
	if sub := DXSubcategory(c); sub == "PTAC" || sub == "PTHP" || c.Container == ContainerPTAC {
		capW = zoneMultiplierCapacity(c, capW)
	}
	return capW
}

// HeatingDXMinimumCOP returns the minimum rated heating COP for a single
// speed DX heating coil from the heat_pumps_heating table.
func (s *Standard) HeatingDXMinimumCOP(c DXCoil, withEquipmentType bool) (DXResult, error) {
	l, err := s.heatingDXLookup(c, withEquipmentType)
	if err != nil {
		return DXResult{}, err
	}
	return s.heatingDXCOP(c, l)
}

func (s *Standard) heatingDXLookup(c DXCoil, withEquipmentType bool) (dxLookup, error) {
	const table = "heat_pumps_heating"
	log := s.log("coil_dx")

	capW := s.heatingDXCapacity(c)
	if capW <= 0 {
		return dxLookup{}, fmt.Errorf("DX heating coil %q: %w", c.Name, ErrNoCapacity)
	}
	capBtuh := units.WToBtuPerHr(capW)

	criteria := s.DXSearchCriteria(c, true, withEquipmentType)
	et := ""
	if s.tableHasColumn(table, "equipment_type") || s.profile.NECB {
		et, _ = criteria["equipment_type"].(string)
		switch {
		case et == "PTHP":
			if app := s.PTACApplication(); app != "" {
				criteria["application"] = app
			} else {
				criteria["application"] = nil
			}
		case et == "" && !DXIsHeatPump(c):
			criteria["equipment_type"] = "Heat Pumps"
			et = "Heat Pumps"
		}
		if !s.profile.NECB {
			if capBtuh >= 65000 && et != "PTHP" {
				criteria["rating_condition"] = "47F db/43F wb outdoor air"
				criteria["subcategory"] = nil
			} else if c.ElectricPowerPhase != "" {
				criteria["electric_power_phase"] = c.ElectricPowerPhase
			}
		}
	}
	if s.tableHasColumn(table, "region") {
		criteria["region"] = nil
	}

	row, err := s.lookup(table, criteria, &capBtuh, s.today())
	if err != nil {
		log.Warnf("For %s, cannot find efficiency info using %s, cannot apply efficiency standard.", c.Name, criteria)
		return dxLookup{}, err
	}
	return dxLookup{criteria: criteria, equipmentType: et, row: row, capacityW: capW}, nil
}

func (s *Standard) heatingDXCOP(c DXCoil, l dxLookup) (DXResult, error) {
	log := s.log("coil_dx")
	row := l.row
	capBtuh := units.WToBtuPerHr(l.capacityW)
	kbtuh := math.Round(capBtuh / 1000)
	sub, _ := l.criteria["subcategory"].(string)
	ht, _ := l.criteria["heating_type"].(string)
	res := DXResult{CapacityW: l.capacityW, Criteria: l.criteria}
	set := func(cop float64, metric string, value float64, label string) {
		res.COP, res.Metric, res.RatedValue = cop, metric, value
		res.Name = fmt.Sprintf("%s %.0f Clg kBtu/hr %s%s", c.Name, kbtuh, fmtNum(round(value, 1)), label)
		log.Infof("For %s: %s: %s %s Cooling Capacity = %.0fkBtu/hr; %s = %s", s.template, c.Name, ht, sub, kbtuh, metric, fmtNum(value))
	}

	c1, ok1 := row.Float("pthp_cop_coefficient_1")
	c2, ok2 := row.Float("pthp_cop_coefficient_2")
	if l.equipmentType == "PTHP" && ok1 && ok2 {
		rated := capBtuh
		switch {
		case rated < 7000:
			log.Warnf("For PTHP units, 90.1 heating efficiency depends on paired cooling capacity. Cooling Capacity for %s: %s is %.0f Btu/hr, which is less than the typical minimum equipment size of 7 kBtu/hr. Using default equipment efficiency for a 7 kBtu/hr unit.", c.Name, sub, rated)
			rated = 7000
		case rated > 15000:
			log.Warnf("For PTHP units, 90.1 heating efficiency depends on paired cooling capacity. Cooling Capacity for %s: %s is %.0f Btu/hr, which is more than the typical maximum equipment size of 15 kBtu/hr. Using default equipment efficiency for a 15 kBtu/hr unit.", c.Name, sub, rated)
			rated = 15000
		}
		coph := c1 - c2*rated/1000.0
		set(units.COPHeatingToCOPHeatingNoFan(coph, units.BtuPerHrToW(rated)), "COPH", coph, "COPH")
	}

	if hspf, ok := row.Float("minimum_heating_seasonal_performance_factor"); ok {
		set(units.HSPFToCOPNoFan(hspf), "HSPF", hspf, "HSPF")
	}
	if hspf, ok := row.Float("minimum_heating_seasonal_performance_factor_2"); ok {
		set(units.HSPFToCOPNoFan(hspf), "HSPF2", hspf, "HSPF2")
	}
	if coph, ok := row.Float("minimum_coefficient_of_performance_heating"); ok {
		set(units.COPHeatingToCOPHeatingNoFan(coph, l.capacityW), "COPH", coph, "COPH")
	}
	if eer, ok := row.Float("minimum_energy_efficiency_ratio"); ok {
		set(units.EERToCOPNoFan(eer, 0), "EER", eer, "EER")
	}

	if res.Metric == "" {
		return DXResult{}, fmt.Errorf("DX heating coil %q: %w: no efficiency column for %s", c.Name, ErrNotFound, l.criteria)
	}
	return res, nil
}

// HeatingDXEfficiency applies the typical heat pump heating curves and the
// minimum heating COP to a single speed DX heating coil.
func (s *Standard) HeatingDXEfficiency(c DXCoil) (DXResult, error) {
	l, err := s.heatingDXLookup(c, s.tableHasColumn("heat_pumps_heating", "equipment_type"))
	if err != nil {
		return DXResult{}, err
	}
	res, err := s.heatingDXCOP(c, l)
	if err != nil {
		return DXResult{}, err
	}
	names := overrideCurves(HeatingDXDefaultCurves(), l.row, "heat")
	res.Curves, res.CurvesComplete = s.resolveCurves(names)
	if !res.CurvesComplete {
		s.log("coil_dx").Warnf("For %s, one or more heating curves could not be found and will not be set.", c.Name)
	}
	return res, nil
}

package standards

import (
	"fmt"
	"math"
	"strings"

	"github.com/openstudio-standards/osstd/standards/units"
)

// DXResult is the rated efficiency and curves for a DX coil.
type DXResult struct {
	Name string  `json:"name"`
	COP  float64 `json:"cop"`
	// Metric is the rating the COP was derived from, e.g. SEER, EER, IEER,
	// HSPF, COPH or SCOP.
	Metric     string  `json:"metric"`
	RatedValue float64 `json:"rated_value"`
	// CapacityW is the per-unit capacity used for the lookup.
	CapacityW      float64      `json:"capacity_w"`
	Criteria       Criteria     `json:"criteria"`
	Curves         DXCurveNames `json:"curves"`
	CurvesComplete bool         `json:"curves_complete"`
}

// packagedTerminalEER evaluates the PTAC/PTHP EER equation, which is only
// defined between 7,000 and 15,000 Btu/h.
func packagedTerminalEER(c1, c2, capBtuh float64) float64 {
	capBtuh = math.Max(7000, math.Min(15000, capBtuh))
	return c1 - c2*capBtuh/1000.0
}

type dxLookup struct {
	criteria      Criteria
	equipmentType string
	row           Row
	capacityW     float64
}

func (s *Standard) coolingDXLookup(c DXCoil, withEquipmentType bool) (dxLookup, error) {
	log := s.log("coil_dx")
	heatPump := DXIsHeatPump(c)
	table := "unitary_acs"
	if heatPump {
		table = "heat_pumps"
	}
	criteria := s.DXSearchCriteria(c, false, withEquipmentType)
	et := s.packagedTerminalCriteria(criteria, table, heatPump, "Air Conditioners")
	if s.tableHasColumn(table, "region") {
		criteria["region"] = nil
	}

	if c.CapacityW <= 0 {
		log.Warnf("For %s capacity is not available, cannot apply efficiency standard.", c.Name)
		return dxLookup{}, fmt.Errorf("DX coil %q: %w", c.Name, ErrNoCapacity)
	}
	capW := zoneMultiplierCapacity(c, c.CapacityW)
	if capW != c.CapacityW {
		log.Infof("For %s, total capacity of %.2fkBTU/hr was divided by the zone multiplier of %d to give %.2fkBTU/hr.", c.Name, units.WToKBtuPerHr(c.CapacityW), c.ZoneMultiplier, units.WToKBtuPerHr(capW))
	}
	capBtuh := units.WToBtuPerHr(capW)
	row, err := s.lookup(table, criteria, &capBtuh, s.today())
	if err != nil {
		log.Warnf("For %s, cannot find efficiency info using %s, cannot apply efficiency standard.", c.Name, criteria)
		return dxLookup{}, err
	}
	return dxLookup{criteria: criteria, equipmentType: et, row: row, capacityW: capW}, nil
}

// CoolingDXMinimumCOP returns the minimum rated COP for a single speed DX
// cooling coil. Every efficiency column present in the row is applied in
// turn, so the last one present sets the COP.
func (s *Standard) CoolingDXMinimumCOP(c DXCoil, withEquipmentType bool) (DXResult, error) {
	l, err := s.coolingDXLookup(c, withEquipmentType)
	if err != nil {
		return DXResult{}, err
	}
	return s.coolingDXCOP(c, l)
}

func (s *Standard) coolingDXCOP(c DXCoil, l dxLookup) (DXResult, error) {
	log := s.log("coil_dx")
	row := l.row
	capBtuh := units.WToBtuPerHr(l.capacityW)
	kbtuh := math.Round(capBtuh / 1000)
	sub, _ := l.criteria["subcategory"].(string)
	ht, _ := l.criteria["heating_type"].(string)
	res := DXResult{CapacityW: l.capacityW, Criteria: l.criteria}
	set := func(cop float64, metric string, value float64, name string) {
		res.COP, res.Metric, res.RatedValue, res.Name = cop, metric, value, name
		log.Infof("For %s: %s: %v %s %s Capacity = %.0fkBtu/hr; %s = %s", s.template, c.Name, l.criteria["cooling_type"], ht, sub, kbtuh, metric, fmtNum(value))
	}

	for _, pt := range []string{"PTHP", "PTAC"} {
		c1, ok1 := row.Float(strings.ToLower(pt) + "_eer_coefficient_1")
		c2, ok2 := row.Float(strings.ToLower(pt) + "_eer_coefficient_2")
		if l.equipmentType == pt && ok1 && ok2 {
			eer := packagedTerminalEER(c1, c2, capBtuh)
			set(units.EERToCOPNoFan(eer, 0), "EER", eer, fmt.Sprintf("%s %.0fkBtu/hr %sEER", c.Name, kbtuh, fmtNum(round(eer, 1))))
		}
	}

	if scop, ok := row.Float("minimum_scop"); ok && sub == "CRAC" {
		if c.SensibleHeatRatio <= 0 {
			log.Error("Failed to get autosized sensible heat ratio")
			return DXResult{}, fmt.Errorf("DX coil %q: CRAC rating needs a sensible heat ratio", c.Name)
		}
		cop := round(scop/c.SensibleHeatRatio, 2)
		set(cop, "SCOP", scop, fmt.Sprintf("%s %.0fkBtu/hr %sSCOP %sCOP", c.Name, kbtuh, fmtNum(scop), fmtNum(cop)))
	}

	for _, col := range []string{"minimum_seasonal_energy_efficiency_ratio", "minimum_seasonal_energy_efficiency_ratio_2"} {
		if seer, ok := row.Float(col); ok {
			set(units.SEERToCOPNoFan(seer), "SEER", seer, fmt.Sprintf("%s %.0fkBtu/hr %sSEER", c.Name, kbtuh, fmtNum(seer)))
		}
	}
	for _, col := range []string{"minimum_energy_efficiency_ratio", "minimum_energy_efficiency_ratio_2"} {
		if eer, ok := row.Float(col); ok {
			set(units.EERToCOPNoFan(eer, 0), "EER", eer, fmt.Sprintf("%s %.0fkBtu/hr %sEER", c.Name, kbtuh, fmtNum(eer)))
		}
	}
	if ieer, ok := row.Float("minimum_integrated_energy_efficiency_ratio"); ok && res.Metric == "" {
		set(units.IEERToCOPNoFan(ieer), "IEER", ieer, fmt.Sprintf("%s %.0fkBtu/hr %sIEER", c.Name, kbtuh, fmtNum(ieer)))
	}
	if seer, ok := row.Float("minimum_seasonal_efficiency"); ok {
		set(units.SEERToCOPNoFan(seer), "SEER", seer, fmt.Sprintf("%s %.0fkBtu/hr %sSEER", c.Name, kbtuh, fmtNum(seer)))
	}
	if eer, ok := row.Float("minimum_full_load_efficiency"); ok {
		set(units.EERToCOPNoFan(eer, 0), "EER", eer, fmt.Sprintf("%s %.0fkBtu/hr %sEER", c.Name, kbtuh, fmtNum(eer)))
	}

	if res.Metric == "" {
		return DXResult{}, fmt.Errorf("DX coil %q: %w: no efficiency column for %s", c.Name, ErrNotFound, l.criteria)
	}
	return res, nil
}

// CoolingDXEfficiency applies the typical curves and the minimum COP to a
// single speed DX cooling coil. Curve names in the table row override the
// defaults for the equipment type.
func (s *Standard) CoolingDXEfficiency(c DXCoil) (DXResult, error) {
	table := "unitary_acs"
	if DXIsHeatPump(c) {
		table = "heat_pumps"
	}
	l, err := s.coolingDXLookup(c, s.tableHasColumn(table, "equipment_type"))
	if err != nil {
		return DXResult{}, err
	}
	res, err := s.coolingDXCOP(c, l)
	if err != nil {
		return DXResult{}, err
	}

	et, _ := l.criteria["equipment_type"].(string)
	names := overrideCurves(CoolingDXDefaultCurves(et), l.row, "cool")
	res.Curves, res.CurvesComplete = s.resolveCurves(names)
	if !res.CurvesComplete {
		s.log("coil_dx").Warnf("For %s, one or more cooling curves could not be found and will not be set.", c.Name)
	}
	return res, nil
}

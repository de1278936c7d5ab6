package standards

import "strings"

// Containers a DX coil or fan can sit in. ContainerAirLoop means the
// component is on the supply side of an air loop directly.
const (
	ContainerNone                      = ""
	ContainerAirLoop                   = "AirLoop"
	ContainerUnitaryHeatPumpAirToAir   = "UnitaryHeatPumpAirToAir"
	ContainerUnitarySystem             = "UnitarySystem"
	ContainerUnitaryHeatPumpMultiSpeed = "UnitaryHeatPumpAirToAirMultiSpeed"
	ContainerPTAC                      = "PTAC"
	ContainerPTHP                      = "PTHP"
	ContainerFanCoil                   = "FourPipeFanCoil"
	ContainerVRFTerminal               = "VRFTerminal"
	ContainerWAHP                      = "WaterToAirHeatPump"
	ContainerERV                       = "EnergyRecoveryVentilator"
	ContainerPIU                       = "PIUTerminal"
)

// Heating coil kinds, as found in a coil's container or on its air loop.
const (
	HeatingCoilNone            = ""
	HeatingCoilElectric        = "Electric"
	HeatingCoilGas             = "Gas"
	HeatingCoilGasMultiStage   = "GasMultiStage"
	HeatingCoilWater           = "Water"
	HeatingCoilDXSingleSpeed   = "DXSingleSpeed"
	HeatingCoilDXMultiSpeed    = "DXMultiSpeed"
	HeatingCoilDXVariableSpeed = "DXVariableSpeed"
	HeatingCoilDesuperheater   = "Desuperheater"
	HeatingCoilWAHP            = "WaterToAirHeatPump"
)

// DX coil heating types in the unitary_acs and heat_pumps tables.
const (
	HeatingTypeElectricOrNone = "Electric Resistance or None"
	HeatingTypeAllOther       = "All Other"
)

// DXCoil is a single speed DX coil, cooling or heating, and what surrounds it.
type DXCoil struct {
	Name string `json:"name" yaml:"name"`
	// CondenserType is AirCooled or EvaporativelyCooled. Empty means AirCooled.
	CondenserType string `json:"condenser_type,omitempty" yaml:"condenser_type,omitempty"`
	// CapacityW is the rated total capacity of this coil.
	CapacityW float64 `json:"capacity_w" yaml:"capacity_w"`
	// PairedCoolingCapacityW is the capacity of the cooling coil that shares
	// the heat pump with a heating coil. Zero when there is none.
	PairedCoolingCapacityW float64 `json:"paired_cooling_capacity_w,omitempty" yaml:"paired_cooling_capacity_w,omitempty"`

	Container string `json:"container,omitempty" yaml:"container,omitempty"`
	// ContainerName is the name of the unitary or zone equipment holding the
	// coil.
	ContainerName string `json:"container_name,omitempty" yaml:"container_name,omitempty"`
	// ContainerHeatingCoil is the heating coil kind of the container.
	ContainerHeatingCoil string `json:"container_heating_coil,omitempty" yaml:"container_heating_coil,omitempty"`
	// ContainerSupplementalCoil is the supplemental heating coil kind of a
	// multispeed heat pump.
	ContainerSupplementalCoil string `json:"container_supplemental_coil,omitempty" yaml:"container_supplemental_coil,omitempty"`
	// LoopHeatingCoils lists the heating coil kinds on the supply side of the
	// coil's air loop.
	LoopHeatingCoils []string `json:"loop_heating_coils,omitempty" yaml:"loop_heating_coils,omitempty"`

	ZoneMultiplier     int     `json:"zone_multiplier,omitempty" yaml:"zone_multiplier,omitempty"`
	SensibleHeatRatio  float64 `json:"sensible_heat_ratio,omitempty" yaml:"sensible_heat_ratio,omitempty"`
	ElectricPowerPhase string  `json:"electric_power_phase,omitempty" yaml:"electric_power_phase,omitempty"`
}

func (c DXCoil) onAirLoop() bool { return c.Container == ContainerAirLoop }

func (c DXCoil) loopHas(kinds ...string) bool {
	for _, k := range kinds {
		if contains(c.LoopHeatingCoils, k) {
			return true
		}
	}
	return false
}

func (c DXCoil) condenserType() string {
	if c.CondenserType == "" {
		return AirCooled
	}
	return c.CondenserType
}

// DXHeatingType classifies the heating that accompanies a DX coil. It
// returns "" when it cannot tell.
func DXHeatingType(c DXCoil) string {
	if c.onAirLoop() {
		if c.loopHas(HeatingCoilGas, HeatingCoilWater, HeatingCoilDXSingleSpeed, HeatingCoilDXMultiSpeed,
			HeatingCoilDXVariableSpeed, HeatingCoilGasMultiStage, HeatingCoilDesuperheater, HeatingCoilWAHP) {
			return HeatingTypeAllOther
		}
		return HeatingTypeElectricOrNone
	}

	switch c.Container {
	case ContainerUnitaryHeatPumpAirToAir, ContainerPTHP:
		return HeatingTypeElectricOrNone
	case ContainerUnitarySystem:
		if strings.Contains(c.ContainerName, "Minisplit") {
			return HeatingTypeAllOther
		}
		switch c.ContainerHeatingCoil {
		case HeatingCoilElectric, HeatingCoilDXMultiSpeed, HeatingCoilNone:
			return HeatingTypeElectricOrNone
		case HeatingCoilGas, HeatingCoilGasMultiStage:
			return HeatingTypeAllOther
		}
	case ContainerUnitaryHeatPumpMultiSpeed:
		if c.ContainerHeatingCoil == HeatingCoilDXMultiSpeed || c.ContainerSupplementalCoil == HeatingCoilElectric {
			return HeatingTypeElectricOrNone
		}
		if c.ContainerHeatingCoil == HeatingCoilGas || c.ContainerHeatingCoil == HeatingCoilGasMultiStage {
			return HeatingTypeAllOther
		}
	case ContainerPTAC:
		switch c.ContainerHeatingCoil {
		case HeatingCoilElectric:
			return HeatingTypeElectricOrNone
		case HeatingCoilWater, HeatingCoilGas:
			return HeatingTypeAllOther
		}
	}
	return ""
}

// DXSubcategory is the rating subcategory, read from the coil name.
func DXSubcategory(c DXCoil) string {
	sub := "Single Package"
	switch {
	case strings.Contains(c.Name, "Single Package"):
		sub = "Single Package"
	case strings.Contains(c.Name, "Split System"), strings.Contains(c.Name, "Central Air Source HP"):
		sub = "Split System"
	case strings.Contains(c.Name, "Minisplit HP"):
		sub = "Minisplit System"
	case strings.Contains(c.Name, "CRAC"):
		sub = "CRAC"
	}
	if !c.onAirLoop() && c.Container == ContainerPTHP {
		sub = "PTHP"
	}
	return sub
}

// DXIsHeatPump reports whether the coil is part of a heat pump.
func DXIsHeatPump(c DXCoil) bool {
	if c.onAirLoop() {
		return c.loopHas(HeatingCoilDXSingleSpeed, HeatingCoilDXVariableSpeed)
	}
	switch c.Container {
	case ContainerUnitaryHeatPumpAirToAir, ContainerPTHP:
		return true
	case ContainerUnitaryHeatPumpMultiSpeed:
		return c.ContainerHeatingCoil == HeatingCoilDXMultiSpeed
	}
	return false
}

// DXSearchCriteria builds the search for the unitary_acs, heat_pumps and
// heat_pumps_heating tables. heating marks a heating coil. withEquipmentType
// adds the PTAC or PTHP equipment type for coils inside packaged terminal
// units.
func (s *Standard) DXSearchCriteria(c DXCoil, heating, withEquipmentType bool) Criteria {
	criteria := Criteria{
		"template":     s.template,
		"cooling_type": c.condenserType(),
		"subcategory":  DXSubcategory(c),
	}
	if ht := DXHeatingType(c); ht != "" {
		criteria["heating_type"] = ht
	}
	if heating && DXIsHeatPump(c) && c.Container == ContainerUnitaryHeatPumpAirToAir {
		criteria["heating_type"] = nil
	}
	if withEquipmentType && (c.Container == ContainerPTAC || c.Container == ContainerPTHP) {
		criteria["equipment_type"] = c.Container
		criteria["subcategory"] = nil
		if !s.profile.NECB {
			criteria["heating_type"] = nil
		}
	}
	return criteria
}

// packagedTerminalCriteria adds the application column for packaged
// terminal units, and the generic equipment type for everything else, when
// the table is split by equipment type.
func (s *Standard) packagedTerminalCriteria(criteria Criteria, table string, heatPump bool, generic string) string {
	if !s.tableHasColumn(table, "equipment_type") && !s.profile.NECB {
		return ""
	}
	et, _ := criteria["equipment_type"].(string)
	switch {
	case et == "PTAC" || et == "PTHP":
		if app := s.PTACApplication(); app != "" {
			criteria["application"] = app
		} else {
			criteria["application"] = nil
		}
	case et == "" && !heatPump:
		criteria["equipment_type"] = generic
		et = generic
	}
	return et
}

// PTACApplication is the packaged terminal unit application for the
// template, or "" when the template does not distinguish one.
func (s *Standard) PTACApplication() string { return s.profile.PTACApplication }

// DXCurveNames are the performance curves of a DX coil.
type DXCurveNames struct {
	CapFT   string `json:"cap_ft"`
	CapFFF  string `json:"cap_fff"`
	EIRFT   string `json:"eir_ft"`
	EIRFFF  string `json:"eir_fff"`
	PLFFPLR string `json:"plf_fplr"`
}

// CoolingDXDefaultCurves are the typical cooling curves for an equipment type.
func CoolingDXDefaultCurves(equipmentType string) DXCurveNames {
	if equipmentType == "PTAC" {
		return DXCurveNames{
			CapFT:   "PSZ-Fine Storage DX Coil Cap-FT",
			CapFFF:  "DX Coil Cap-FF",
			EIRFT:   "PSZ-AC DX Coil EIR-FT",
			EIRFFF:  "Split DX Coil EIR-FF",
			PLFFPLR: "HPACCOOLPLFFPLR",
		}
	}
	return DXCurveNames{
		CapFT:   "CoilClgDXQRatio_fTwbToadbSI",
		CapFFF:  "CoilClgDXSnglQRatio_fCFMRatio",
		EIRFT:   "CoilClgDXEIRRatio_fTwbToadbSI",
		EIRFFF:  "CoilClgDXSnglEIRRatio_fCFMRatio",
		PLFFPLR: "CoilClgDXEIRRatio_fQFrac",
	}
}

// HeatingDXDefaultCurves are the typical heat pump heating curves.
func HeatingDXDefaultCurves() DXCurveNames {
	return DXCurveNames{
		CapFT:   "HPACHeatCapFT",
		CapFFF:  "HPACHeatCapFFF",
		EIRFT:   "HPACHeatEIRFT",
		EIRFFF:  "HPACHeatEIRFFF",
		PLFFPLR: "HPACCOOLPLFFPLR",
	}
}

// overrideCurves replaces default curve names with the ones a table row
// names under the given prefix (cool or heat).
func overrideCurves(names DXCurveNames, row Row, prefix string) DXCurveNames {
	for _, o := range []struct {
		key string
		dst *string
	}{
		{prefix + "_cap_ft", &names.CapFT},
		{prefix + "_cap_fflow", &names.CapFFF},
		{prefix + "_eir_ft", &names.EIRFT},
		{prefix + "_eir_fflow", &names.EIRFFF},
		{prefix + "_plf_fplr", &names.PLFFPLR},
	} {
		if v, ok := row.String(o.key); ok && v != "" {
			*o.dst = v
		}
	}
	return names
}

// resolveCurves adds each named curve to the library and blanks the ones
// that do not exist.
func (s *Standard) resolveCurves(names DXCurveNames) (DXCurveNames, bool) {
	complete := true
	for _, n := range []*string{&names.CapFT, &names.CapFFF, &names.EIRFT, &names.EIRFFF, &names.PLFFPLR} {
		if !s.addCurve(*n) {
			*n = ""
			complete = false
		}
	}
	return names, complete
}

// zoneMultiplierCapacity divides a packaged terminal unit's capacity by the
// zone multiplier, since the table ratings are per unit.
func zoneMultiplierCapacity(c DXCoil, capacityW float64) float64 {
	if (c.Container == ContainerPTAC || c.Container == ContainerPTHP) && c.ZoneMultiplier > 1 {
		return capacityW / float64(c.ZoneMultiplier)
	}
	return capacityW
}

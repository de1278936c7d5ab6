package standards

import (
	"fmt"
	"math"
	"strings"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Cooling tower fan speed controls.
const (
	TowerSingleSpeed   = "SingleSpeed"
	TowerTwoSpeed      = "TwoSpeed"
	TowerVariableSpeed = "VariableSpeed"
)

// Cooling tower fan types in the heat_rejection table.
const (
	TowerFanCentrifugal = "Centrifugal"
	TowerFanPropeller   = "Propeller or Axial"
)

// towerLowSpeedFraction is the low-speed fan power of a two-speed tower as
// a fraction of the high-speed power.
const towerLowSpeedFraction = 0.3

// CoolingTower is an open cooling tower. The fan type is read from the name.
type CoolingTower struct {
	Name                  string  `json:"name" yaml:"name"`
	Speed                 string  `json:"speed" yaml:"speed"`
	DesignWaterFlowM3PerS float64 `json:"design_water_flow_m3_per_s" yaml:"design_water_flow_m3_per_s"`
}

// CoolingTowerResult is the fan power a tower gets to meet the minimum
// flow per horsepower.
type CoolingTowerResult struct {
	Name            string  `json:"name"`
	FanType         string  `json:"fan_type"`
	MinGPMPerHP     float64 `json:"minimum_gpm_per_hp"`
	NominalHP       float64 `json:"nominal_hp"`
	FanBHP          float64 `json:"fan_bhp"`
	MotorEfficiency float64 `json:"motor_efficiency"`
	// FanPowerW is the design (or high speed) fan power.
	FanPowerW float64 `json:"fan_power_w"`
	// LowSpeedFanPowerW is set for two-speed towers only.
	LowSpeedFanPowerW float64 `json:"low_speed_fan_power_w,omitempty"`
}

// TowerFanType reads the fan type from the tower name, defaulting to
// propeller or axial.
func (s *Standard) TowerFanType(name string) string {
	switch {
	case strings.Contains(name, "Centrifugal"):
		return TowerFanCentrifugal
	case strings.Contains(name, "Propeller"), strings.Contains(name, "Axial"):
		return TowerFanPropeller
	}
	s.log("cooling_tower").Infof("%s fan type is not discernible from the name. Defaulting to Propeller or Axial.", name)
	return TowerFanPropeller
}

// towerMotorRows returns the motor rows the tower fan is sized from. Data
// sets without four-pole enclosed rows for the template fall back to every
// untyped motor of the template.
func (s *Standard) towerMotorRows() (Table, Criteria) {
	t, err := s.data.Table("motors")
	if err != nil {
		return nil, nil
	}
	criteria := s.motorCriteria()
	if len(FindObjects(t, criteria, nil, nil)) == 0 {
		criteria = Criteria{"template": s.template, "type": nil}
	}
	return t, criteria
}

// CoolingTowerFanPower sizes the tower fan from the minimum gpm/hp of the
// heat_rejection table. The fan brake horsepower is 90% of the nameplate
// size the flow calls for, capped at the largest motor in the table.
func (s *Standard) CoolingTowerFanPower(ct CoolingTower) (CoolingTowerResult, error) {
	log := s.log("cooling_tower")
	if ct.DesignWaterFlowM3PerS <= 0 {
		log.Warnf("For %s design water flow rate is not available, cannot apply efficiency standard.", ct.Name)
		return CoolingTowerResult{}, fmt.Errorf("cooling tower %q: %w", ct.Name, ErrNoCapacity)
	}
	gpm := units.M3PerSToGPM(ct.DesignWaterFlowM3PerS)
	fanType := s.TowerFanType(ct.Name)

	props, err := s.lookup("heat_rejection", Criteria{
		"template":       s.template,
		"equipment_type": "Open Cooling Tower",
		"fan_type":       fanType,
	}, nil, nil)
	if err != nil {
		log.Warnf("For %s, cannot find heat rejection properties, cannot apply standard efficiencies or curves.", ct.Name)
		return CoolingTowerResult{}, err
	}
	minGPMPerHP, ok := props.Float("minimum_performance_gpm_per_hp")
	if !ok || minGPMPerHP <= 0 {
		return CoolingTowerResult{}, fmt.Errorf("cooling tower %q: %w: heat_rejection row has no minimum_performance_gpm_per_hp", ct.Name, ErrNotFound)
	}
	log.Infof("For %s, design water flow = %s gpm, minimum performance = %s gpm/hp (nameplate).", ct.Name, fmtNum(math.Round(gpm)), fmtNum(minGPMPerHP))

	nominalHP := gpm / minGPMPerHP
	bhp := 0.9 * nominalHP
	motorEff := 0.85

	motors, criteria := s.towerMotorRows()
	maxCap := 0.0
	for _, r := range FindObjects(motors, criteria, nil, nil) {
		if v, ok := r.Float("maximum_capacity"); ok && v > maxCap {
			maxCap = v
		}
	}
	if maxCap > 0 && bhp > maxCap {
		bhp = maxCap
	}

	row, found := FindObject(motors, criteria, &bhp, s.today())
	if !found {
		row, found = FindObject(motors, criteria, &bhp, nil)
	}
	if found {
		if e, ok := row.Float("nominal_full_load_efficiency"); ok {
			motorEff = e
		}
		if c, ok := row.Float("maximum_capacity"); ok {
			nominalHP = round(c, 1)
		}
	} else {
		log.Errorf("For %s, could not find motor properties using search criteria: %s, motor_hp = %g hp. Using a default value of %g.", ct.Name, criteria, nominalHP, motorEff)
	}
	if nominalHP >= 2 {
		nominalHP = math.Round(nominalHP)
	}

	actualHP := bhp / motorEff
	w := actualHP * wattsPerHP
	log.Infof("For %s, allowed fan motor nameplate hp = %s hp, fan brake horsepower = %s, and fan motor actual power = %s hp (%s W) at %g motor efficiency.",
		ct.Name, fmtNum(round(nominalHP, 1)), fmtNum(round(bhp, 1)), fmtNum(round(actualHP, 1)), fmtNum(math.Round(w)), motorEff)

	res := CoolingTowerResult{
		Name:            fmt.Sprintf("%s %s gpm/hp", ct.Name, fmtNum(round(minGPMPerHP, 1))),
		FanType:         fanType,
		MinGPMPerHP:     minGPMPerHP,
		NominalHP:       nominalHP,
		FanBHP:          bhp,
		MotorEfficiency: motorEff,
		FanPowerW:       w,
	}
	if ct.Speed == TowerTwoSpeed {
		res.LowSpeedFanPowerW = towerLowSpeedFraction * w
	}
	return res, nil
}

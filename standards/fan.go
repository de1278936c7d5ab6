package standards

import (
	"fmt"
	"math"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Fan kinds.
const (
	FanConstantVolume = "ConstantVolume"
	FanVariableVolume = "VariableVolume"
	FanOnOff          = "OnOff"
	FanZoneExhaust    = "ZoneExhaust"
)

// zoneExhaustMotorEfficiency is assumed for zone exhaust fans, which do not
// carry a motor efficiency of their own.
const zoneExhaustMotorEfficiency = 0.7

// wattsPerHP is the rounded conversion the fan and pump rules use.
const wattsPerHP = 745.7

// Fan is a supply, return or exhaust fan.
type Fan struct {
	Name            string  `json:"name" yaml:"name"`
	Kind            string  `json:"kind" yaml:"kind"`
	MaxFlowM3PerS   float64 `json:"max_flow_m3_per_s" yaml:"max_flow_m3_per_s"`
	PressureRisePa  float64 `json:"pressure_rise_pa" yaml:"pressure_rise_pa"`
	TotalEfficiency float64 `json:"total_efficiency" yaml:"total_efficiency"`
	MotorEfficiency float64 `json:"motor_efficiency,omitempty" yaml:"motor_efficiency,omitempty"`
	// Container is the zone equipment or terminal holding the fan, if any.
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
	// RatedPowerW is the rated electric power reported by a sizing run. Zero
	// means unknown.
	RatedPowerW float64 `json:"rated_power_w,omitempty" yaml:"rated_power_w,omitempty"`
}

func (f Fan) motorEfficiency() float64 {
	if f.Kind == FanZoneExhaust {
		return zoneExhaustMotorEfficiency
	}
	return f.MotorEfficiency
}

// Power is the fan electric power in W.
func (f Fan) Power() float64 {
	return f.PressureRisePa * f.MaxFlowM3PerS / f.TotalEfficiency
}

// BrakeHorsepower is the shaft power delivered by the motor.
func (f Fan) BrakeHorsepower() float64 {
	return f.Power() * f.motorEfficiency() / 746
}

// MotorHorsepower is the electric power expressed in horsepower.
func (f Fan) MotorHorsepower() float64 {
	return f.Power() / wattsPerHP
}

// WithMotorEfficiency replaces the motor and keeps the impeller, so the
// total efficiency scales with the motor.
func (f Fan) WithMotorEfficiency(eff float64) Fan {
	impeller := f.TotalEfficiency / f.motorEfficiency()
	f.TotalEfficiency = eff * impeller
	if f.Kind != FanZoneExhaust {
		f.MotorEfficiency = eff
	}
	return f
}

// WithImpellerEfficiency replaces the impeller and keeps the motor.
func (f Fan) WithImpellerEfficiency(eff float64) Fan {
	f.TotalEfficiency = f.motorEfficiency() * eff
	return f
}

// WithPowerTarget changes the pressure rise so the fan draws targetW.
func (f Fan) WithPowerTarget(targetW float64) Fan {
	f.PressureRisePa = targetW * f.TotalEfficiency / f.MaxFlowM3PerS
	return f
}

// IsSmall reports whether the fan is assumed to be driven by motors under
// 1 hp: zone exhaust fans and fans inside zone equipment or PIU terminals.
func (f Fan) IsSmall() bool {
	if f.Kind == FanZoneExhaust {
		return true
	}
	switch f.Container {
	case ContainerFanCoil, ContainerPTAC, ContainerPTHP, ContainerVRFTerminal, ContainerWAHP, ContainerERV, ContainerPIU:
		return true
	}
	return false
}

// BaselineImpellerEfficiency is the impeller efficiency assumed for the
// baseline fan.
func (f Fan) BaselineImpellerEfficiency() float64 {
	if f.IsSmall() {
		return 0.55
	}
	return 0.65
}

// RatedWPerCFM is the rated power per unit flow. The reported rated power is
// used when known, otherwise the power is computed.
func (f Fan) RatedWPerCFM() (float64, error) {
	if f.MaxFlowM3PerS <= 0 {
		return 0, fmt.Errorf("fan %q: maximum flow rate is not known", f.Name)
	}
	w := f.RatedPowerW
	if w <= 0 {
		w = f.Power()
	}
	return w / units.M3PerSToCFM(f.MaxFlowM3PerS), nil
}

// FanMinimumMotorEfficiencyAndSize returns the minimum motor efficiency and
// the nameplate horsepower for a fan whose brake horsepower is bhp.
func (s *Standard) FanMinimumMotorEfficiencyAndSize(f Fan, bhp float64) (eff, nominalHP float64) {
	const fallback = 0.85
	log := s.log("fan")
	if bhp == 0 {
		return fallback, 0
	}
	if f.IsSmall() {
		nominalHP = 0.5
	} else {
		row, ok := s.motorBand(bhp)
		if !ok {
			log.Errorf("For %s, could not find motor properties using search criteria: %s, motor_bhp = %g hp.", f.Name, s.motorCriteria(), bhp)
			return fallback, bhp
		}
		maxCap, _ := row.Float("maximum_capacity")
		nominalHP = round(maxCap, 1)
		if nominalHP == 9999 {
			log.Warnf("For %s, there is no greater nominal HP.  Use the efficiency of the largest motor category.", f.Name)
			nominalHP = bhp
		}
		if nominalHP >= 2 {
			nominalHP = math.Round(nominalHP)
		}
	}
	eff, ok := s.motorEfficiencyAt(nominalHP)
	if !ok {
		log.Errorf("For %s, could not find nominal motor properties using search criteria: %s, motor_hp = %g hp.", f.Name, s.motorCriteria(), nominalHP)
		return fallback, nominalHP
	}
	return eff, nominalHP
}

// ApplyFanMinimumMotorEfficiency swaps in the minimum efficiency motor for
// a fan with the given brake horsepower.
func (s *Standard) ApplyFanMinimumMotorEfficiency(f Fan, bhp float64) Fan {
	eff, nominal := s.FanMinimumMotorEfficiencyAndSize(f, bhp)
	f = f.WithMotorEfficiency(eff)
	if f.IsSmall() {
		s.log("fan").Infof("For %s: motor eff = %s%%; assumed to represent several less than 1 HP motors.", f.Name, fmtNum(round(eff*100, 2)))
	} else {
		s.log("fan").Infof("For %s: motor nameplate = %gHP, motor eff = %s%%.", f.Name, nominal, fmtNum(round(eff*100, 2)))
	}
	return f
}

// AdjustFanPressureRise sets the pressure rise that makes the fan draw
// targetW and logs the result.
func (s *Standard) AdjustFanPressureRise(f Fan, targetW float64) Fan {
	f = f.WithPowerTarget(targetW)
	s.log("fan").Infof("For %s: pressure rise = %s in w.c., power = %sHP.", f.Name, fmtNum(round(units.PaToInH2O(f.PressureRisePa), 1)), fmtNum(round(f.MotorHorsepower(), 2)))
	return f
}

package standards

import (
	"fmt"
	"math"

	"github.com/openstudio-standards/osstd/standards/units"
)

// pumpImpellerEfficiency is the impeller efficiency the simulation engine
// assumes when it sizes pumps.
const pumpImpellerEfficiency = 0.78

// Pump is a constant or variable speed pump, or a headered bank of pumps.
type Pump struct {
	Name            string  `json:"name" yaml:"name"`
	FlowM3PerS      float64 `json:"flow_m3_per_s" yaml:"flow_m3_per_s"`
	PressureRisePa  float64 `json:"pressure_rise_pa" yaml:"pressure_rise_pa"`
	MotorEfficiency float64 `json:"motor_efficiency" yaml:"motor_efficiency"`
	// NumberInBank is the pump count of a headered bank; FlowM3PerS is then
	// the total flow of the bank.
	NumberInBank int     `json:"number_in_bank,omitempty" yaml:"number_in_bank,omitempty"`
	RatedPowerW  float64 `json:"rated_power_w,omitempty" yaml:"rated_power_w,omitempty"`
}

// flowPerPump is the flow of one pump in a bank.
func (p Pump) flowPerPump() float64 {
	if p.NumberInBank > 1 {
		return p.FlowM3PerS / float64(p.NumberInBank)
	}
	return p.FlowM3PerS
}

// Power is the electric power in W.
func (p Pump) Power() float64 {
	return p.PressureRisePa * p.FlowM3PerS / (pumpImpellerEfficiency * p.MotorEfficiency)
}

// BrakeHorsepower is the shaft power in hp.
func (p Pump) BrakeHorsepower() float64 {
	return p.PressureRisePa * p.FlowM3PerS / pumpImpellerEfficiency / wattsPerHP
}

// MotorHorsepower is the electric power in hp.
func (p Pump) MotorHorsepower() float64 {
	return p.Power() / wattsPerHP
}

// RatedWPerGPM is the rated power per unit flow. The reported rated power
// is used when known, otherwise the power is computed.
func (p Pump) RatedWPerGPM() (float64, error) {
	if p.FlowM3PerS <= 0 {
		return 0, fmt.Errorf("pump %q: rated flow rate is not known", p.Name)
	}
	w := p.RatedPowerW
	if w <= 0 {
		w = p.Power()
	}
	return w / units.M3PerSToGPM(p.FlowM3PerS), nil
}

// PumpMinimumMotorEfficiencyAndSize returns the minimum motor efficiency and
// nameplate horsepower for a pump whose brake horsepower is bhp. The next
// larger nominal motor is picked, so 4.2 bhp gets a 5 hp motor. A pump
// with no load, such as a placeholder on a circulation-free loop, gets a
// perfect motor.
func (s *Standard) PumpMinimumMotorEfficiencyAndSize(p Pump, bhp float64) (eff, nominalHP float64) {
	if bhp == 0 {
		return 1.0, 0
	}
	log := s.log("pump")
	row, ok := s.motorBand(bhp)
	if !ok {
		log.Errorf("For %s, could not find motor properties using search criteria: %s, motor_bhp = %g hp.", p.Name, s.motorCriteria(), bhp)
		return 0.85, bhp
	}
	eff, _ = row.Float("nominal_full_load_efficiency")
	maxCap, _ := row.Float("maximum_capacity")
	nominalHP = nominalMotorHP(maxCap)

	if e, ok := s.motorEfficiencyAt(nominalHP); ok {
		eff = e
	} else {
		log.Errorf("For %s, could not find nominal motor properties using search criteria: %s, motor_hp = %g hp.", p.Name, s.motorCriteria(), nominalHP)
	}
	return eff, nominalHP
}

// ApplyPumpMinimumMotorEfficiency gives the pump the minimum efficiency
// motor for its current brake horsepower.
func (s *Standard) ApplyPumpMinimumMotorEfficiency(p Pump) Pump {
	bhp := p.BrakeHorsepower()
	eff, nominal := s.PumpMinimumMotorEfficiencyAndSize(p, bhp)
	p.MotorEfficiency = eff
	s.log("pump").Infof("For %s: brake hp = %sHP, motor nameplate = %sHP, motor eff = %s%%.", p.Name, fmtNum(round(bhp, 2)), fmtNum(round(nominal, 2)), fmtNum(round(eff*100, 2)))
	return p
}

// ApplyPRMPumpPressureRise sets the motor efficiency and the pressure rise
// that make the pump draw targetWPerGPM.
//
// The motor is looked up twice: once at the electric power, which is a few
// percent above the shaft power, and once at the shaft power that first
// efficiency implies. The lower of the two efficiencies is kept so a pump
// just above a nominal size cannot land in a band that misses the target.
func (s *Standard) ApplyPRMPumpPressureRise(p Pump, targetWPerGPM float64) Pump {
	gpm := units.M3PerSToGPM(p.flowPerPump())
	targetHP := targetWPerGPM * gpm / wattsPerHP

	effHi, hpHi := s.PumpMinimumMotorEfficiencyAndSize(p, targetHP)
	effLo, hpLo := s.PumpMinimumMotorEfficiencyAndSize(p, targetHP*effHi)
	eff := math.Min(effLo, effHi)
	nominal := math.Min(hpLo, hpHi)

	p.MotorEfficiency = eff
	p.PressureRisePa = units.WPerGPMToWsPerM3(targetWPerGPM) * pumpImpellerEfficiency * eff

	log := s.log("pump")
	log.Infof("For %s: motor nameplate = %gHP, motor eff = %s%%; %s W/gpm translates to a pressure rise of %s ftH2O.", p.Name, nominal, fmtNum(round(eff*100, 2)), fmtNum(math.Round(targetWPerGPM)), fmtNum(round(units.PaToFtH2O(p.PressureRisePa), 2)))
	if gpm > 0 {
		log.Debugf("For %s: calculated W/gpm = %s.", p.Name, fmtNum(round(p.Power()/units.M3PerSToGPM(p.FlowM3PerS), 1)))
	}
	return p
}

package standards

import (
	"fmt"
	"sort"
	"strings"
)

// Component kinds accepted by ComponentEfficiency.
const (
	KindBoiler       = "boiler"
	KindChiller      = "chiller"
	KindCoolingDX    = "coil_cooling_dx"
	KindHeatingDX    = "coil_heating_dx"
	KindCoolingTower = "cooling_tower"
	KindWaterHeater  = "water_heater"
	KindPump         = "pump"
	KindFan          = "fan"
)

// validComponentKinds lists the component kinds. Unexported to prevent
// mutation.
var validComponentKinds = map[string]bool{
	KindBoiler:       true,
	KindChiller:      true,
	KindCoolingDX:    true,
	KindHeatingDX:    true,
	KindCoolingTower: true,
	KindWaterHeater:  true,
	KindPump:         true,
	KindFan:          true,
}

// IsValidComponentKind returns true if kind names a component rule.
func IsValidComponentKind(kind string) bool { return validComponentKinds[kind] }

// ValidComponentKinds returns the component kinds, sorted.
func ValidComponentKinds() []string {
	out := make([]string, 0, len(validComponentKinds))
	for k := range validComponentKinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MotorResult is the motor a pump or fan gets.
type MotorResult struct {
	Name            string  `json:"name"`
	BrakeHorsepower float64 `json:"brake_horsepower"`
	NominalHP       float64 `json:"nominal_hp"`
	MotorEfficiency float64 `json:"motor_efficiency"`
	PowerW          float64 `json:"power_w"`
}

// ComponentEfficiency decodes a component of the given kind and returns the
// result of its efficiency rule. decode fills the component struct, so the
// caller chooses the encoding (a YAML node, a JSON body).
func (s *Standard) ComponentEfficiency(kind string, decode func(v any) error) (any, error) {
	if !IsValidComponentKind(kind) {
		return nil, fmt.Errorf("unknown component kind %q; valid kinds: %s", kind, strings.Join(ValidComponentKinds(), ", "))
	}
	switch kind {
	case KindBoiler:
		var b Boiler
		if err := decode(&b); err != nil {
			return nil, err
		}
		return s.BoilerEfficiency(b)
	case KindChiller:
		var c Chiller
		if err := decode(&c); err != nil {
			return nil, err
		}
		return s.ChillerEfficiency(c)
	case KindCoolingDX:
		var c DXCoil
		if err := decode(&c); err != nil {
			return nil, err
		}
		return s.CoolingDXEfficiency(c)
	case KindHeatingDX:
		var c DXCoil
		if err := decode(&c); err != nil {
			return nil, err
		}
		return s.HeatingDXEfficiency(c)
	case KindCoolingTower:
		var ct CoolingTower
		if err := decode(&ct); err != nil {
			return nil, err
		}
		return s.CoolingTowerFanPower(ct)
	case KindWaterHeater:
		var wh WaterHeater
		if err := decode(&wh); err != nil {
			return nil, err
		}
		return s.WaterHeaterEfficiency(wh)
	case KindPump:
		var p Pump
		if err := decode(&p); err != nil {
			return nil, err
		}
		bhp := p.BrakeHorsepower()
		_, hp := s.PumpMinimumMotorEfficiencyAndSize(p, bhp)
		p = s.ApplyPumpMinimumMotorEfficiency(p)
		eff := p.MotorEfficiency
		return MotorResult{Name: p.Name, BrakeHorsepower: bhp, NominalHP: hp, MotorEfficiency: eff, PowerW: p.Power()}, nil
	default:
		var f Fan
		if err := decode(&f); err != nil {
			return nil, err
		}
		if f.TotalEfficiency <= 0 || f.motorEfficiency() <= 0 {
			return nil, fmt.Errorf("fan %q: total and motor efficiency must be positive", f.Name)
		}
		bhp := f.BrakeHorsepower()
		eff, hp := s.FanMinimumMotorEfficiencyAndSize(f, bhp)
		f = s.ApplyFanMinimumMotorEfficiency(f, bhp)
		return MotorResult{Name: f.Name, BrakeHorsepower: bhp, NominalHP: hp, MotorEfficiency: eff, PowerW: f.Power()}, nil
	}
}

package prototype

import "fmt"

// Service water heating systems a prototype can carry.
const (
	SWHMain    = "main"
	SWHBooster = "booster"
	SWHLaundry = "laundry"
)

// ServiceWaterHeating is one service water heating system of a prototype,
// in the IP units of the prototype_inputs table.
type ServiceWaterHeating struct {
	System             string  `json:"system"`
	HeaterVolumeGal    float64 `json:"water_heater_volume_gal"`
	HeaterCapacityBtuh float64 `json:"water_heater_capacity_btu_per_hr"`
	HeaterFuel         string  `json:"water_heater_fuel"`
	// ServiceTempF is the tank setpoint. For boosters it is the boosted
	// temperature.
	ServiceTempF   float64 `json:"service_water_temperature_f"`
	UseTempF       float64 `json:"water_use_temperature_f"`
	PeakFlowGPM    float64 `json:"peak_flowrate_gpm"`
	FlowSchedule   string  `json:"flowrate_schedule"`
	PumpHeadPa     float64 `json:"pump_head_pa,omitempty"`
	PumpMotorEff   float64 `json:"pump_motor_efficiency,omitempty"`
	ParasiticFuelW float64 `json:"parasitic_fuel_consumption_rate,omitempty"`
}

// ServiceWaterHeating returns the inputs of one SWH system. ok is false
// when the prototype has no heater for that system.
func (p *Prototype) ServiceWaterHeating(system string) (ServiceWaterHeating, bool) {
	vol, ok := p.Float(system + "_water_heater_volume")
	if !ok {
		return ServiceWaterHeating{}, false
	}
	f := func(k string) float64 { v, _ := p.Float(k); return v }
	s := func(k string) string { v, _ := p.String(k); return v }
	swh := ServiceWaterHeating{
		System:             system,
		HeaterVolumeGal:    vol,
		HeaterCapacityBtuh: f(system + "_water_heater_capacity"),
		HeaterFuel:         s(system + "_water_heater_fuel"),
		ServiceTempF:       f(system + "_service_water_temperature"),
		UseTempF:           f(system + "_water_use_temperature"),
		PeakFlowGPM:        f(system + "_service_water_peak_flowrate"),
		FlowSchedule:       s(system + "_service_water_flowrate_schedule"),
		PumpHeadPa:         f(system + "_service_water_pump_head"),
		PumpMotorEff:       f(system + "_service_water_pump_motor_efficiency"),
		ParasiticFuelW:     f(system + "_service_water_parasitic_fuel_consumption_rate"),
	}
	if system == SWHBooster {
		swh.ServiceTempF = f("booster_water_temperature")
	}
	return swh, true
}

// ServiceWaterHeatingSystems returns every SWH system the prototype has,
// main first.
func (p *Prototype) ServiceWaterHeatingSystems() []ServiceWaterHeating {
	var out []ServiceWaterHeating
	for _, sys := range []string{SWHMain, SWHBooster, SWHLaundry} {
		if swh, ok := p.ServiceWaterHeating(sys); ok {
			out = append(out, swh)
		}
	}
	return out
}

// Elevators describes the elevator bank of a prototype.
type Elevators struct {
	Count       int    `json:"number_of_elevators"`
	Type        string `json:"elevator_type,omitempty"`
	Schedule    string `json:"elevator_schedule,omitempty"`
	FanSchedule string `json:"elevator_fan_schedule,omitempty"`
}

// Elevators returns the elevator inputs. A count without a type is an
// error, since the type decides the motor load.
func (p *Prototype) Elevators() (Elevators, error) {
	n, _ := p.Float("number_of_elevators")
	e := Elevators{Count: int(n)}
	if e.Count == 0 {
		return e, nil
	}
	e.Type, _ = p.String("elevator_type")
	e.Schedule, _ = p.String("elevator_schedule")
	e.FanSchedule, _ = p.String("elevator_fan_schedule")
	if e.Type == "" {
		return Elevators{}, fmt.Errorf("prototype %s has %d elevators but no elevator_type", Key(p.Template, p.BuildingType), e.Count)
	}
	return e, nil
}

// ExteriorLighting is the exterior lighting power of a prototype, in W.
type ExteriorLighting struct {
	NonDimmingW        float64 `json:"nondimming_exterior_lighting_power"`
	NonDimmingSchedule string  `json:"nondimming_exterior_lighting_schedule,omitempty"`
	OccSensingW        float64 `json:"occ_sensing_exterior_lighting_power"`
	OccSensingSchedule string  `json:"occ_sensing_exterior_lighting_schedule,omitempty"`
}

// TotalW is the connected exterior lighting power.
func (l ExteriorLighting) TotalW() float64 { return l.NonDimmingW + l.OccSensingW }

// ExteriorLighting returns the exterior lighting inputs.
func (p *Prototype) ExteriorLighting() ExteriorLighting {
	var l ExteriorLighting
	l.NonDimmingW, _ = p.Float("nondimming_exterior_lighting_power")
	l.NonDimmingSchedule, _ = p.String("nondimming_exterior_lighting_schedule")
	l.OccSensingW, _ = p.Float("occ_sensing_exterior_lighting_power")
	l.OccSensingSchedule, _ = p.String("occ_sensing_exterior_lighting_schedule")
	return l
}

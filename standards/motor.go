package standards

import "math"

// motorCriteria selects four-pole enclosed motors, which is what every fan
// and pump rule sizes against.
func (s *Standard) motorCriteria() Criteria {
	return Criteria{"template": s.template, "number_of_poles": 4.0, "type": "Enclosed"}
}

// nominalMotorHP turns a motor band's maximum capacity into a nameplate
// size: one decimal below 2 hp, whole horsepower above.
func nominalMotorHP(maxCapacity float64) float64 {
	hp := round(maxCapacity, 1)
	if hp >= 2 {
		hp = math.Round(hp)
	}
	return hp
}

// motorEfficiencyAt returns the nominal full load efficiency of the motor
// band that a nameplate size falls in.
func (s *Standard) motorEfficiencyAt(nominalHP float64) (float64, bool) {
	t, err := s.data.Table("motors")
	if err != nil {
		return 0, false
	}
	row, ok := FindObject(t, s.motorCriteria(), Ptr(nominalHP+0.01), nil)
	if !ok {
		return 0, false
	}
	return row.Float("nominal_full_load_efficiency")
}

// motorBand returns the motor row whose capacity band holds bhp.
func (s *Standard) motorBand(bhp float64) (Row, bool) {
	t, err := s.data.Table("motors")
	if err != nil {
		return nil, false
	}
	return FindObject(t, s.motorCriteria(), &bhp, nil)
}

package standards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstudio-standards/osstd/standards/units"
)

func vavLoop(zones int) AirLoop {
	flow := units.CFMToM3PerS(10000)
	return AirLoop{
		Name:                      "VAV 1",
		DesignSupplyAirFlowM3PerS: flow,
		ZonesServed:               zones,
		FloorAreaServedM2:         units.FT2ToM2(10000),
		OutdoorAir:                true,
		Fans: []Fan{
			{Name: "Return Fan", Kind: FanVariableVolume, MaxFlowM3PerS: flow, PressureRisePa: 300, TotalEfficiency: 0.55, MotorEfficiency: 0.88},
			{Name: "Supply Fan", Kind: FanVariableVolume, MaxFlowM3PerS: flow, PressureRisePa: 1000, TotalEfficiency: 0.6, MotorEfficiency: 0.9},
		},
	}
}

func TestAllowableSystemBrakeHorsepower(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	assert.InDelta(t, 13.0, s.AllowableSystemBrakeHorsepower(vavLoop(5)), 1e-6)

	cv := vavLoop(5)
	cv.Fans[1].Kind = FanConstantVolume
	assert.InDelta(t, 9.4, s.AllowableSystemBrakeHorsepower(cv), 1e-6)

	ducted := vavLoop(5)
	ducted.FullyDuctedReturn = true
	assert.InDelta(t, 13.0+0.5*10000/4131, s.AllowableSystemBrakeHorsepower(ducted), 1e-6)

	exhaustLast := vavLoop(5)
	exhaustLast.Fans = append(exhaustLast.Fans, Fan{Name: "Exhaust", Kind: FanZoneExhaust})
	assert.InDelta(t, 13.0, s.AllowableSystemBrakeHorsepower(exhaustLast), 1e-6, "zone exhaust fans are not the supply fan")

	unserved := vavLoop(5)
	unserved.FloorAreaServedM2 = 0
	assert.InDelta(t, 13.0, s.AllowableSystemBrakeHorsepower(unserved), 1e-6)
}

func TestAllowableSystemBrakeHorsepower_SingleZoneVAV(t *testing.T) {
	s2010 := newTestStandard(t, "90.1-2010")
	assert.InDelta(t, 9.4, s2010.AllowableSystemBrakeHorsepower(vavLoop(1)), 1e-6)
	assert.InDelta(t, 13.0, s2010.AllowableSystemBrakeHorsepower(vavLoop(2)), 1e-6)

	s2013 := newTestStandard(t, "90.1-2013")
	assert.InDelta(t, 13.0, s2013.AllowableSystemBrakeHorsepower(vavLoop(1)), 1e-6)
}

func TestApplyPRMBaselineFanPower(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	s.Data().Set("motors", motorTable("90.1-2013"))
	l := vavLoop(5)

	fans := s.ApplyPRMBaselineFanPower(l)
	require.Len(t, fans, 2)
	for _, f := range fans {
		// 6.5 bhp each lands in the 5-7.5 hp band, nameplate 8 hp
		assert.Equal(t, 0.917, f.MotorEfficiency, f.Name)
		assert.InDelta(t, 6.5*746/0.917, f.Power(), 1e-6, f.Name)
	}
	assert.InDelta(t, 13.0, s.SystemFanBrakeHorsepower(AirLoop{Fans: fans}), 1e-6)

	assert.Nil(t, s.ApplyPRMBaselineFanPower(AirLoop{Name: "empty"}))
}

func TestEconomizerType(t *testing.T) {
	s2019 := newTestStandard(t, "90.1-2019")
	assert.Equal(t, EconomizerDifferentialEnthalpy, s2019.EconomizerType("ASHRAE 169-2013-4A"))
	assert.Equal(t, EconomizerDifferentialDryBulb, s2019.EconomizerType("ASHRAE 169-2013-5B"))
	assert.Equal(t, EconomizerDifferentialDryBulb, s2019.EconomizerType("CEC T24-CEC3"))

	s2013 := newTestStandard(t, "90.1-2013")
	assert.Equal(t, EconomizerFixedDryBulb, s2013.EconomizerType("ASHRAE 169-2013-4A"))
}

func economizerLoop(kind string) AirLoop {
	return AirLoop{Name: "PSZ", OutdoorAir: true, EconomizerType: kind}
}

func TestEconomizerLimits_ByZone(t *testing.T) {
	s := newTestStandard(t, "90.1-2010")
	tests := []struct {
		zone string
		want *float64
	}{
		{"ASHRAE 169-2013-2A", Ptr(65)},
		{"ASHRAE 169-2013-5A", Ptr(70)},
		{"ASHRAE 169-2013-7A", Ptr(70)},
		{"ASHRAE 169-2013-5B", Ptr(75)},
		{"ASHRAE 169-2013-0A", nil},
	}
	for _, tc := range tests {
		got := s.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), tc.zone)
		assert.Equal(t, tc.want, got.DryBulbF, tc.zone)
		assert.Nil(t, got.EnthalpyBtuPerLb)
	}

	zne := newTestStandard(t, "NREL ZNE Ready 2017")
	assert.Equal(t, Ptr(75), zne.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "ASHRAE 169-2013-7A").DryBulbF)
	assert.Nil(t, zne.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "ASHRAE 169-2013-2A").DryBulbF)
}

func TestEconomizerLimits_OtherTypes(t *testing.T) {
	s := newTestStandard(t, "90.1-2010")
	assert.Equal(t, EconomizerLimits{EnthalpyBtuPerLb: Ptr(28)}, s.EconomizerLimits(economizerLoop(EconomizerFixedEnthalpy), "ASHRAE 169-2013-5B"))
	assert.Equal(t, EconomizerLimits{DryBulbF: Ptr(75), DewPointF: Ptr(55)}, s.EconomizerLimits(economizerLoop(EconomizerFixedDewPointAndDryBulb), "ASHRAE 169-2013-5B"))
	assert.Equal(t, EconomizerLimits{}, s.EconomizerLimits(economizerLoop(EconomizerDifferentialDryBulb), "ASHRAE 169-2013-5B"))
	assert.Equal(t, EconomizerLimits{}, s.EconomizerLimits(economizerLoop(EconomizerNone), "ASHRAE 169-2013-5B"))

	noOA := economizerLoop(EconomizerFixedDryBulb)
	noOA.OutdoorAir = false
	assert.Equal(t, EconomizerLimits{}, s.EconomizerLimits(noOA, "ASHRAE 169-2013-5B"))
}

func economizerTable(template string) Table {
	return Table{
		{"template": template, "climate_zone": "ASHRAE 169-2013-4A", "fixed_dry_bulb_high_limit_shutoff_temp": 65.0},
		{"template": template, "climate_zone": "ASHRAE 169-2013-5B", "fixed_dry_bulb_high_limit_shutoff_temp": 75.0},
		{"template": template, "climate_zone": "CEC T24-CEC3", "fixed_dry_bulb_high_limit_shutoff_temp": 73.0},
	}
}

func TestEconomizerLimits_FromTable(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	s.Data().Set("economizers", economizerTable("90.1-2013"))
	assert.Equal(t, Ptr(65), s.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "ASHRAE 169-2013-4A").DryBulbF)
	assert.Equal(t, Ptr(75), s.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "ASHRAE 169-2013-5B").DryBulbF)
	assert.Nil(t, s.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "ASHRAE 169-2013-8A").DryBulbF)
}

func TestEconomizerLimits_DEER(t *testing.T) {
	s := newTestStandard(t, "DEER 2020")
	s.Data().Set("economizers", economizerTable("DEER 2020"))
	got := s.EconomizerLimits(economizerLoop(EconomizerFixedDryBulb), "CEC T24-CEC3")
	assert.Equal(t, EconomizerLimits{DryBulbF: Ptr(73), EnthalpyBtuPerLb: Ptr(28)}, got)
	assert.Equal(t, EconomizerLimits{}, s.EconomizerLimits(economizerLoop(EconomizerFixedEnthalpy), "CEC T24-CEC3"))
}

func TestEconomizerTypeAllowable(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	tests := []struct {
		kind string
		zone string
		want bool
	}{
		{EconomizerFixedEnthalpy, "ASHRAE 169-2013-3B", false},
		{EconomizerFixedEnthalpy, "ASHRAE 169-2013-4A", true},
		{EconomizerDifferentialDryBulb, "ASHRAE 169-2013-2A", false},
		{EconomizerDifferentialDryBulb, "ASHRAE 169-2013-5A", true},
		{EconomizerFixedDryBulb, "ASHRAE 169-2013-2A", true},
		{EconomizerNone, "ASHRAE 169-2013-2A", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, s.EconomizerTypeAllowable(economizerLoop(tc.kind), tc.zone), "%s in %s", tc.kind, tc.zone)
	}

	deer := newTestStandard(t, "DEER 2020")
	assert.True(t, deer.EconomizerTypeAllowable(economizerLoop(EconomizerFixedDryBulb), "CEC T24-CEC3"))
	assert.False(t, deer.EconomizerTypeAllowable(economizerLoop(EconomizerDifferentialEnthalpy), "CEC T24-CEC3"))
}

func TestDCVRequired(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	assert.Equal(t, DCVLimits{WithoutEconomizerCFM: 3000, WithEconomizerCFM: 750}, s.DemandControlVentilationLimits())
	assert.True(t, s.DCVRequired(economizerLoop(EconomizerDifferentialDryBulb), 800))
	assert.False(t, s.DCVRequired(economizerLoop(EconomizerNone), 800))
	assert.True(t, s.DCVRequired(economizerLoop(EconomizerNone), 3500))

	old := newTestStandard(t, "90.1-2004")
	assert.False(t, old.DCVRequired(economizerLoop(EconomizerNone), 1e6))
}

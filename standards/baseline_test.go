package standards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemNumber_Base(t *testing.T) {
	s := newTestStandard(t, "90.1-2010")
	tests := []struct {
		name    string
		area    string
		ft2     float64
		stories int
		want    string
		ok      bool
	}{
		{"residential", AreaResidential, 500000, 10, System1Or2, true},
		{"small low-rise", AreaNonresidential, 50000, 3, System3Or4, true},
		{"4 stories under limit", AreaNonresidential, 50000, 4, System5Or6, true},
		{"over limit up to 150k", AreaNonresidential, 100000, 2, System5Or6, true},
		{"six stories", AreaNonresidential, 50000, 6, System7Or8, true},
		{"over 150k", AreaNonresidential, 200000, 2, System7Or8, true},
		{"heated only treated as nonresidential", AreaHeatedOnly, 10000, 1, System3Or4, true},
		{"retail has no row", AreaRetail, 10000, 1, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.SystemNumber("ASHRAE 169-2013-4A", tc.area, FuelFossil, tc.ft2, tc.stories)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSystemNumber_PRM(t *testing.T) {
	s := newTestStandard(t, "90.1-PRM-2019")
	tests := []struct {
		area    string
		ft2     float64
		stories int
		want    string
	}{
		{AreaNonresidential, 20000, 2, System3Or4},
		{AreaNonresidential, 30000, 2, System5Or6},
		{AreaHeatedOnly, 30000, 2, System9Or10},
		{AreaRetail, 200000, 8, System3Or4},
	}
	for _, tc := range tests {
		got, ok := s.SystemNumber("ASHRAE 169-2013-4A", tc.area, FuelFossil, tc.ft2, tc.stories)
		require.True(t, ok)
		assert.Equal(t, tc.want, got, "%s %.0f ft2 %d stories", tc.area, tc.ft2, tc.stories)
	}
}

func TestSystemNumber_179D(t *testing.T) {
	s := newTestStandard(t, "179D 90.1-2007")
	got, ok := s.SystemNumber("ASHRAE 169-2013-4A", AreaRetail, FuelFossil, 30000, 2)
	require.True(t, ok)
	assert.Equal(t, System5Or6, got, "retail is nonresidential without the customization")

	x := newTestStandard(t, "179D 90.1-2007", WithCustom(CustomXcelEDA))
	got, ok = x.SystemNumber("ASHRAE 169-2013-4A", AreaRetail, FuelFossil, 30000, 2)
	require.True(t, ok)
	assert.Equal(t, System3Or4, got)
}

func TestMinimumGroupAreaFt2(t *testing.T) {
	assert.Equal(t, 20000.0, newTestStandard(t, "90.1-2013").MinimumGroupAreaFt2())
	assert.Equal(t, 20000.0, newTestStandard(t, "90.1-PRM-2019").MinimumGroupAreaFt2())
	assert.Equal(t, 5000.0, newTestStandard(t, "90.1-PRM-2019", WithCustom(CustomXcelEDA)).MinimumGroupAreaFt2())
}

func TestChangeFuel(t *testing.T) {
	base := newTestStandard(t, "90.1-2013")
	assert.Equal(t, FuelFossil, base.ChangeFuel(FuelFossil, "ASHRAE 169-2013-1A"))

	prm := newTestStandard(t, "90.1-PRM-2019")
	assert.Equal(t, FuelElectric, prm.ChangeFuel(FuelFossil, "ASHRAE 169-2013-2A"))
	assert.Equal(t, FuelElectric, prm.ChangeFuel(FuelFossil, "ASHRAE 169-2006-3A"))
	assert.Equal(t, FuelFossil, prm.ChangeFuel(FuelElectric, "ASHRAE 169-2013-3B"))
	assert.Equal(t, FuelPurchasedHeat, prm.ChangeFuel(FuelPurchasedHeat, "ASHRAE 169-2013-1A"))

	xcel := newTestStandard(t, "90.1-PRM-2019", WithCustom(CustomXcelEDA))
	assert.Equal(t, FuelElectric, xcel.ChangeFuel(FuelElectric, "ASHRAE 169-2013-5B"))
}

func TestSystemType(t *testing.T) {
	s := newTestStandard(t, "90.1-2010")
	spec, ok := s.SystemType("ASHRAE 169-2013-5A", AreaNonresidential, FuelElectric, 200000, 6)
	require.True(t, ok)
	assert.Equal(t, SystemSpec{"VAV_PFP_Boxes", "Electricity", "Electricity", "Electricity"}, spec)

	spec, ok = s.SystemType("ASHRAE 169-2013-5A", AreaResidential, FuelPurchasedHeatAndCooling, 2000, 1)
	require.True(t, ok)
	assert.Equal(t, "Fan_Coil", spec.Type)
	assert.Equal(t, "DistrictCooling", spec.CoolFuel)

	_, ok = s.SystemType("ASHRAE 169-2013-5A", AreaRetail, FuelFossil, 2000, 1)
	assert.False(t, ok)

	_, ok = s.SystemType("ASHRAE 169-2013-5A", AreaResidential, FuelUnconditioned, 2000, 1)
	assert.False(t, ok)
}

func TestSystemType_PRMSwitchesFuelByClimate(t *testing.T) {
	s := newTestStandard(t, "90.1-PRM-2019")
	spec, ok := s.SystemType("ASHRAE 169-2013-2A", AreaNonresidential, FuelFossil, 10000, 1)
	require.True(t, ok)
	assert.Equal(t, "PSZ_HP", spec.Type)

	spec, ok = s.SystemType("ASHRAE 169-2013-6A", AreaHeatedOnly, FuelElectric, 10000, 1)
	require.True(t, ok)
	assert.Equal(t, "Gas_Furnace", spec.Type)
	assert.Empty(t, spec.CoolFuel)
}

func TestBaselineFanType(t *testing.T) {
	assert.Equal(t, "TwoSpeed Fan", newTestStandard(t, "90.1-2013").BaselineFanType())
	assert.Equal(t, "Variable Speed Fan", newTestStandard(t, "90.1-PRM-2019").BaselineFanType())
}

func TestSelectBaselineSystems(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	zones := []Zone{
		{Name: "Office 1", AreaM2: 3000, Occupancy: AreaNonresidential, HeatingFuels: []string{"NaturalGas"}, CoolingFuels: []string{"Electricity"}, Heated: true, Cooled: true, Stories: []string{"1"}},
		{Name: "Office 2", AreaM2: 3000, Occupancy: AreaNonresidential, HeatingFuels: []string{"NaturalGas"}, CoolingFuels: []string{"Electricity"}, Heated: true, Cooled: true, Stories: []string{"2"}},
	}
	got, err := s.SelectBaselineSystems("ASHRAE 169-2013-5A", zones)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, System3Or4, got[0].SystemNumber)
	assert.Equal(t, "PSZ_AC", got[0].System.Type)
	assert.Equal(t, 2, got[0].Group.Stories)
}

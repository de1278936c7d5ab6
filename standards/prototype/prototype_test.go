package prototype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstudio-standards/osstd/standards"
	_ "github.com/openstudio-standards/osstd/standards/templates"
)

func TestRegistry_EveryTemplateHasEveryBuildingType(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(Templates())*len(BuildingTypes()))
	assert.Len(t, BuildingTypes(), 17)
	assert.Contains(t, keys, "90.1-2013_SmallOffice")
	assert.Contains(t, keys, "NECB2011_Warehouse")
}

func TestLookup_Definition(t *testing.T) {
	d, err := Lookup("90.1-2010", "SmallOffice")
	require.NoError(t, err)
	assert.Equal(t, "Office", d.LookupBuildingType)
	assert.Equal(t, "geometry/ASHRAE9012010SmallOffice.osm", d.GeometryFile)
	assert.Equal(t, "geometry/ASHRAE9012010SmallOffice.hvac_map.json", d.HVACMapFile)

	d, err = Lookup("NECB2015", "RetailStandalone")
	require.NoError(t, err)
	assert.Equal(t, "RetailStandalone", d.LookupBuildingType)
	assert.Empty(t, d.HVACMapFile)
	assert.Equal(t, "geometry/NECB2015RetailStandalone.osm", d.GeometryFile)

	_, err = Lookup("90.1-2019", "SmallOffice")
	assert.True(t, errors.Is(err, ErrUnknownPrototype))
	assert.Contains(t, err.Error(), "90.1-2019_SmallOffice")
}

func TestLookupName(t *testing.T) {
	tests := []struct {
		template, buildingType, want string
	}{
		{"90.1-2013", "LargeOffice", "Office"},
		{"90.1-2013", "MediumOfficeDetailed", "Office"},
		{"DOE Ref Pre-1980", "RetailStandalone", "Retail"},
		{"90.1-2004", "RetailStripmall", "StripMall"},
		{"90.1-2004", "Hospital", "Hospital"},
		{"NECB2011", "SmallOffice", "SmallOffice"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LookupName(tc.template, tc.buildingType), "%s %s", tc.template, tc.buildingType)
	}
}

func TestIsValidBuildingType(t *testing.T) {
	assert.True(t, IsValidBuildingType("SuperMarket"))
	assert.False(t, IsValidBuildingType("Laboratory"))
}

func TestLoad_DefaultInputs(t *testing.T) {
	std, err := standards.NewStandard("90.1-2013")
	require.NoError(t, err)
	p, err := Load(std, "LargeHotel")
	require.NoError(t, err)
	assert.Equal(t, "90.1-2013_LargeHotel", Key(p.Template, p.BuildingType))

	systems := p.ServiceWaterHeatingSystems()
	require.Len(t, systems, 3)
	assert.Equal(t, []string{SWHMain, SWHBooster, SWHLaundry}, []string{systems[0].System, systems[1].System, systems[2].System})
	assert.Equal(t, 300.0, systems[0].HeaterVolumeGal)
	assert.Equal(t, "NaturalGas", systems[0].HeaterFuel)
	assert.Equal(t, 180.0, systems[1].ServiceTempF)
	assert.Equal(t, "Electricity", systems[1].HeaterFuel)

	elev, err := p.Elevators()
	require.NoError(t, err)
	assert.Equal(t, Elevators{Count: 6, Type: "Traction", Schedule: "LargeHotel Elevator", FanSchedule: "LargeHotel Elevator Fan"}, elev)

	assert.Equal(t, 12000.0, p.ExteriorLighting().TotalW())
}

func TestLoad_NoElevatorsAndNoBooster(t *testing.T) {
	std, err := standards.NewStandard("DOE Ref Pre-1980")
	require.NoError(t, err)
	p, err := Load(std, "SmallOffice")
	require.NoError(t, err)

	_, ok := p.ServiceWaterHeating(SWHBooster)
	assert.False(t, ok)
	main, ok := p.ServiceWaterHeating(SWHMain)
	require.True(t, ok)
	assert.Equal(t, "Electricity", main.HeaterFuel)

	elev, err := p.Elevators()
	require.NoError(t, err)
	assert.Zero(t, elev.Count)
}

func TestLoad_MissingInputs(t *testing.T) {
	d := standards.NewData()
	d.Set("prototype_inputs", standards.Table{
		{"template": "90.1-2013", "building_type": "SmallOffice"},
	})
	std, err := standards.NewStandard("90.1-2013", standards.WithData(d))
	require.NoError(t, err)

	_, err = Load(std, "Warehouse")
	assert.True(t, errors.Is(err, standards.ErrNotFound))

	std2019, err := standards.NewStandard("90.1-2019", standards.WithData(d))
	require.NoError(t, err)
	_, err = Load(std2019, "SmallOffice")
	assert.True(t, errors.Is(err, ErrUnknownPrototype))
}

func TestElevators_CountWithoutType(t *testing.T) {
	p := &Prototype{
		Definition: Definition{Template: "90.1-2013", BuildingType: "MediumOffice"},
		Inputs:     standards.Row{"number_of_elevators": 3.0},
	}
	_, err := p.Elevators()
	assert.Error(t, err)
}

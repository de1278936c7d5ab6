package standards

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadData_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"data/a_boilers.json": {Data: []byte(`{"boilers": {"table": [{"template": "90.1-2013", "afue": 0.8, "minimum_capacity": 0}]}}`)},
		"data/b_boilers.yaml": {Data: []byte("boilers:\n  - template: 90.1-2016\n    afue: 0.82\n")},
		"data/motors.json":    {Data: []byte(`{"motors": [{"template": "90.1-2013", "number_of_poles": 4}]}`)},
		"data/readme.txt":     {Data: []byte("ignored")},
	}
	d, err := LoadData(fsys, "data")
	require.NoError(t, err)
	assert.Equal(t, []string{"boilers", "motors"}, d.Names())

	boilers, err := d.Table("boilers")
	require.NoError(t, err)
	require.Len(t, boilers, 2)
	assert.Equal(t, "90.1-2013", boilers[0]["template"])
	assert.Equal(t, "90.1-2016", boilers[1]["template"])

	// integers decode as float64 from both formats
	v, ok := boilers[0].Float("minimum_capacity")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	motors, _ := d.Table("motors")
	assert.IsType(t, float64(0), motors[0]["number_of_poles"])
}

func TestLoadData_BadFile(t *testing.T) {
	fsys := fstest.MapFS{"data/x.json": {Data: []byte(`{"boilers": 5}`)}}
	_, err := LoadData(fsys, "data")
	assert.Error(t, err)
}

func TestData_TableMissingListsNames(t *testing.T) {
	d := NewData()
	d.Set("chillers", Table{})
	_, err := d.Table("boilers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chillers")
}

func TestData_Merge(t *testing.T) {
	a := NewData()
	a.Set("boilers", Table{{"v": 1.0}})
	b := NewData()
	b.Set("boilers", Table{{"v": 2.0}})
	b.Set("chillers", Table{{"v": 3.0}})
	a.Merge(b)

	boilers, _ := a.Table("boilers")
	assert.Len(t, boilers, 2)
	_, err := a.Table("chillers")
	assert.NoError(t, err)
}

func TestDefaultData_HasCoreTables(t *testing.T) {
	d, err := DefaultData()
	require.NoError(t, err)
	for _, name := range []string{"boilers", "chillers", "unitary_acs", "heat_pumps", "heat_pumps_heating", "motors", "heat_rejection", "water_heaters", "curves", "climate_zone_sets", "economizers", "prototype_inputs"} {
		_, err := d.Table(name)
		assert.NoError(t, err, name)
	}
}

func TestOverlayData_ShadowsEmbeddedRows(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/economizers.json": {Data: []byte(`{"economizers": [{"template": "90.1-2013", "climate_zone": "ASHRAE 169-2013-4A", "fixed_dry_bulb_high_limit_shutoff_temp": 68}]}`)},
	}
	d, err := OverlayData(fsys, "custom")
	require.NoError(t, err)

	rows, err := d.Table("economizers")
	require.NoError(t, err)
	row, ok := FindObject(rows, Criteria{"template": "90.1-2013", "climate_zone": "ASHRAE 169-2013-4A"}, nil, nil)
	require.True(t, ok)
	assert.Equal(t, 68.0, row["fixed_dry_bulb_high_limit_shutoff_temp"])

	def, err := DefaultData()
	require.NoError(t, err)
	embedded, _ := def.Table("economizers")
	assert.Len(t, rows, len(embedded)+1, "embedded data is not modified")
}

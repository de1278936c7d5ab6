package standards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstudio-standards/osstd/standards/units"
)

func boilerTable() Table {
	return Table{
		{"template": "90.1-2013", "fuel_type": "Gas", "fluid_type": "Hot Water", "minimum_capacity": 0.0, "maximum_capacity": 300000.0,
			"minimum_annual_fuel_utilization_efficiency": 0.82, "efffplr": "Boiler with Minimum Turndown"},
		{"template": "90.1-2013", "fuel_type": "Gas", "fluid_type": "Hot Water", "minimum_capacity": 300000.0, "maximum_capacity": 2500000.0,
			"minimum_thermal_efficiency": 0.80, "efffplr": "Boiler with Minimum Turndown"},
		{"template": "90.1-2013", "fuel_type": "Gas", "fluid_type": "Hot Water", "minimum_capacity": 2500000.0, "maximum_capacity": 999999999.0,
			"minimum_combustion_efficiency": 0.82, "efffplr": "Missing Curve"},
		{"template": "90.1-2013", "fuel_type": "Electric", "fluid_type": "Hot Water", "minimum_capacity": 0.0, "maximum_capacity": 999999999.0},
	}
}

func newBoilerStandard(t *testing.T) *Standard {
	s := newTestStandard(t, "90.1-2013")
	s.Data().Set("boilers", boilerTable())
	s.Data().Set("curves", Table{
		{"name": "Boiler with Minimum Turndown", "form": "Quadratic", "coeff_1": 1.0, "coeff_2": 0.0, "coeff_3": 0.0},
	})
	return s
}

func TestBoilerEfficiency_Metrics(t *testing.T) {
	s := newBoilerStandard(t)
	tests := []struct {
		name      string
		capBtuh   float64
		metric    string
		eff       float64
		curve     string
		nameWants string
	}{
		{"small boiler rated in AFUE", 150000, "AFUE", 0.82, "Boiler with Minimum Turndown", "150kBtu/hr 0.82 AFUE"},
		{"medium boiler rated in thermal efficiency", 1000000, "Thermal Eff", 0.80, "Boiler with Minimum Turndown", "1000kBtu/hr 0.8 Thermal Eff"},
		{"large boiler rated in combustion efficiency", 3000000, "Combustion Eff", 0.813, "", "3000kBtu/hr 0.82 Combustion Eff"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.BoilerEfficiency(Boiler{Name: "Boiler", FuelType: "NaturalGas", CapacityW: units.BtuPerHrToW(tc.capBtuh)})
			require.NoError(t, err)
			assert.Equal(t, tc.metric, got.Metric)
			assert.InDelta(t, tc.eff, got.ThermalEfficiency, 1e-9)
			assert.Equal(t, tc.curve, got.EffFPLRCurve)
			assert.Contains(t, got.Name, tc.nameWants)
		})
	}
}

func TestBoilerSearchCriteria_Fuel(t *testing.T) {
	s := newTestStandard(t, "90.1-2013")
	for fuel, want := range map[string]string{
		"NaturalGas":  "Gas",
		"Electricity": "Electric",
		"FuelOilNo2":  "Oil",
		"Propane":     "Gas",
	} {
		assert.Equal(t, want, s.BoilerSearchCriteria(Boiler{FuelType: fuel})["fuel_type"], fuel)
	}
}

func TestBoilerEfficiency_Errors(t *testing.T) {
	s := newBoilerStandard(t)

	_, err := s.BoilerEfficiency(Boiler{Name: "unsized", FuelType: "NaturalGas"})
	assert.ErrorIs(t, err, ErrNoCapacity)

	_, err = s.BoilerEfficiency(Boiler{Name: "electric", FuelType: "Electricity", CapacityW: 100000})
	assert.ErrorIs(t, err, ErrNotFound, "row without an efficiency column")

	other := newTestStandard(t, "90.1-2010")
	other.Data().Set("boilers", boilerTable())
	_, err = other.BoilerEfficiency(Boiler{Name: "b", FuelType: "NaturalGas", CapacityW: 100000})
	assert.ErrorIs(t, err, ErrNotFound)
}

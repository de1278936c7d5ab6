package standards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func jsonDecoder(body string) func(v any) error {
	return func(v any) error { return json.Unmarshal([]byte(body), v) }
}

func TestComponentEfficiency_Kinds(t *testing.T) {
	s := newDefaultStandard(t, "90.1-2013")

	res, err := s.ComponentEfficiency(KindBoiler, jsonDecoder(`{"name":"Boiler","fuel_type":"NaturalGas","capacity_w":293071}`))
	require.NoError(t, err)
	boiler, ok := res.(BoilerResult)
	require.True(t, ok)
	assert.Equal(t, "Thermal Eff", boiler.Metric)

	res, err = s.ComponentEfficiency(KindPump, jsonDecoder(`{"name":"HW Pump","flow_m3_per_s":0.01,"pressure_rise_pa":179352,"motor_efficiency":0.9}`))
	require.NoError(t, err)
	pump := res.(MotorResult)
	assert.Greater(t, pump.NominalHP, pump.BrakeHorsepower)
	assert.Greater(t, pump.MotorEfficiency, 0.85)
	assert.Greater(t, pump.PowerW, 0.0)
}

func TestComponentEfficiency_YAMLNode(t *testing.T) {
	s := newDefaultStandard(t, "90.1-2013")
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("name: Cooling Tower Propeller\nspeed: TwoSpeed\ndesign_water_flow_m3_per_s: 0.0252\n"), &node))

	res, err := s.ComponentEfficiency(KindCoolingTower, node.Decode)
	require.NoError(t, err)
	ct := res.(CoolingTowerResult)
	assert.Equal(t, "Propeller or Axial", ct.FanType)
}

func TestComponentEfficiency_Errors(t *testing.T) {
	s := newDefaultStandard(t, "90.1-2013")

	_, err := s.ComponentEfficiency("heat_exchanger", jsonDecoder(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), KindCoolingDX)

	_, err = s.ComponentEfficiency(KindFan, jsonDecoder(`{"name":"Supply Fan","kind":"ConstantVolume"}`))
	assert.Error(t, err)

	_, err = s.ComponentEfficiency(KindChiller, jsonDecoder(`not json`))
	assert.Error(t, err)
}

func TestValidComponentKinds_Sorted(t *testing.T) {
	kinds := ValidComponentKinds()
	assert.Len(t, kinds, 8)
	assert.IsNonDecreasing(t, kinds)
	assert.True(t, IsValidComponentKind(KindWaterHeater))
}

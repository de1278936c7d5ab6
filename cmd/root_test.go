package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c and its subcommands to its default,
// since the flag variables are package globals shared between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{envTemplate, envDataDir, envCustom, envOpenStudio, envEnergyPlus} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRoot_RejectsInvalidSettings(t *testing.T) {
	_, err := runCLI(t, "templates", "--log", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = runCLI(t, "templates", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestTemplates_JSON(t *testing.T) {
	out, err := runCLI(t, "templates", "-o", "json")
	require.NoError(t, err)
	var entries []struct {
		Template string `json:"template"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	var names []string
	for _, e := range entries {
		names = append(names, e.Template)
	}
	assert.Contains(t, names, "90.1-2013")
	assert.Contains(t, names, "NECB2015")
}

func TestTables_ListsEmbeddedTables(t *testing.T) {
	out, err := runCLI(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "boilers")
	assert.Contains(t, out, "prototype_inputs")
}

func TestLookup_CapacityBand(t *testing.T) {
	// GIVEN a gas hot water boiler search at 1,000,000 Btu/h
	out, err := runCLI(t, "lookup", "boilers", "fuel_type=Gas", "fluid_type=Hot Water",
		"--template", "90.1-2013", "--capacity", "1000000", "-o", "json")

	// THEN only the 300,000 to 2,500,000 Btu/h row matches
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 0.8, rows[0]["minimum_thermal_efficiency"])
}

func TestLookup_TemplateFromEnvironment(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv(envTemplate, "90.1-2013")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"lookup", "boilers", "fuel_type=Gas", "--limit", "1", "-o", "json"})
	require.NoError(t, rootCmd.Execute())
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "90.1-2013", rows[0]["template"])
}

func TestLookup_Errors(t *testing.T) {
	_, err := runCLI(t, "lookup", "boilers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template given")

	_, err = runCLI(t, "lookup", "boilers", "fuel_type=Plasma", "--template", "90.1-2013")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching standards data")

	_, err = runCLI(t, "lookup", "furnaces", "--template", "90.1-2013")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown standards table")

	_, err = runCLI(t, "lookup", "boilers", "fuel_type", "--template", "90.1-2013")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column=value")
}

func TestLookup_DataDirShadowsEmbeddedRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "economizers.json", `{"economizers": [{"template": "90.1-2013", "climate_zone": "ASHRAE 169-2013-4A", "fixed_dry_bulb_high_limit_shutoff_temp": 68}]}`)

	out, err := runCLI(t, "lookup", "economizers", "climate_zone=ASHRAE 169-2013-4A",
		"--template", "90.1-2013", "--data-dir", dir, "--limit", "1", "-o", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 68.0, rows[0]["fixed_dry_bulb_high_limit_shutoff_temp"])
}

func TestEfficiency_ComponentsFile(t *testing.T) {
	// GIVEN a components file with a boiler and a pump
	path := writeFile(t, t.TempDir(), "components.yaml", `
template: 90.1-2013
components:
  - kind: boiler
    component:
      name: Boiler
      fuel_type: NaturalGas
      capacity_w: 293071
  - kind: pump
    component:
      name: HW Pump
      flow_m3_per_s: 0.01
      pressure_rise_pa: 179352
      motor_efficiency: 0.9
`)

	// WHEN the efficiency rules run
	out, err := runCLI(t, "efficiency", "-f", path, "-o", "json")

	// THEN each component gets a result
	require.NoError(t, err)
	var entries []struct {
		Kind   string         `json:"kind"`
		Result map[string]any `json:"result"`
		Error  string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Thermal Eff", entries[0].Result["metric"])
	assert.Equal(t, "HW Pump", entries[1].Result["name"])
	assert.Empty(t, entries[1].Error)
}

func TestEfficiency_ReportsFailedComponents(t *testing.T) {
	path := writeFile(t, t.TempDir(), "components.yaml", `
template: 90.1-2013
components:
  - kind: fan
    component:
      name: Supply Fan
`)
	out, err := runCLI(t, "efficiency", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 components failed")
	assert.Contains(t, out, "Supply Fan")
}

func TestBaseline_ZonesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zones.yaml", `
template: 90.1-2013
climate_zone: ASHRAE 169-2013-5A
zones:
  - {name: Office 1, area_m2: 3000, occupancy: nonresidential, heating_fuels: [NaturalGas], cooling_fuels: [Electricity], heated: true, cooled: true, stories: ["1"]}
  - {name: Office 2, area_m2: 3000, occupancy: nonresidential, heating_fuels: [NaturalGas], cooling_fuels: [Electricity], heated: true, cooled: true, stories: ["2"]}
`)
	out, err := runCLI(t, "baseline", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PSZ_AC")
	assert.Contains(t, out, "Office 1")
	assert.Contains(t, out, "Office 2")
}

func TestBaselineSystemType(t *testing.T) {
	out, err := runCLI(t, "baseline", "system-type", "--template", "90.1-2010",
		"--climate-zone", "ASHRAE 169-2013-5A", "--fuel", "electric", "--area", "200000", "--stories", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "VAV_PFP_Boxes")

	_, err = runCLI(t, "baseline", "system-type", "--template", "90.1-2010", "--area-type", "retail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no baseline system")
}

func TestPrototype_ListAndShow(t *testing.T) {
	out, err := runCLI(t, "prototype", "list", "--template", "90.1-2010", "-o", "json")
	require.NoError(t, err)
	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 17)

	_, err = runCLI(t, "prototype", "list", "--template", "90.1-1999")
	assert.Error(t, err)

	out, err = runCLI(t, "prototype", "show", "LargeHotel", "--template", "90.1-2013")
	require.NoError(t, err)
	assert.Contains(t, out, "90.1-2013_LargeHotel")
	assert.Contains(t, out, "6 Traction")
	assert.Contains(t, out, "booster water heater")
}

func TestCompare_MatchesExpected(t *testing.T) {
	out, err := runCLI(t, "compare", "../testdata/SmallOffice_expected.yaml", "../testdata/eplustbl.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "matches expected results")
}

func TestCompare_ReportsDifferences(t *testing.T) {
	// GIVEN expected results with a higher total than the run produced
	expected := writeFile(t, t.TempDir(), "expected.yaml", "total_site_energy_gj: 300\n")

	// WHEN the run is compared
	out, err := runCLI(t, "compare", expected, "../testdata/eplustbl.csv")

	// THEN the total is reported and the command fails
	require.Error(t, err)
	assert.ErrorIs(t, err, errResultsDiffer)
	assert.Contains(t, out, "total_site_energy_gj")
}

func TestSummary_PrintsExpectedResultsFile(t *testing.T) {
	out, err := runCLI(t, "summary", "../testdata/eplustbl.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "total_site_energy_gj: 281.64"), out)
}

func TestBatch_RunsAndComparesEachJob(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake simulation engine is a shell script")
	}
	tbl, err := filepath.Abs("../testdata/eplustbl.csv")
	require.NoError(t, err)
	expected, err := filepath.Abs("../testdata/SmallOffice_expected.yaml")
	require.NoError(t, err)

	// GIVEN an engine that copies a known report into the output directory
	dir := t.TempDir()
	engine := writeFile(t, dir, "energyplus", "#!/bin/sh\nmkdir -p \"$4\"\ncp '"+tbl+"' \"$4/eplustbl.csv\"\necho 'EnergyPlus Completed Successfully' > \"$4/eplusout.end\"\n")
	require.NoError(t, os.Chmod(engine, 0o755))
	writeFile(t, dir, "SmallOffice.idf", "Building,SmallOffice;")
	writeFile(t, dir, "Denver.epw", "LOCATION,Denver")
	batch := writeFile(t, dir, "batch.yaml", `
work_dir: runs
workers: 2
jobs:
  - {model: SmallOffice.idf, weather: Denver.epw, expected: `+expected+`}
  - {name: SmallOffice_copy, model: SmallOffice.idf, weather: Denver.epw}
`)

	// WHEN the batch runs
	out, err := runCLI(t, "batch", "-f", batch, "--energyplus", engine)

	// THEN both runs finish and the one with expected results matches
	require.NoError(t, err)
	assert.Contains(t, out, "matches expected")
	assert.Contains(t, out, "SmallOffice_copy")
	assert.FileExists(t, filepath.Join(dir, "runs", "SmallOffice", "run", "eplustbl.csv"))
}

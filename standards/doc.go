// Package standards applies building-energy code requirements to simulation
// inputs. It owns the standards data tables, the per-template rule profiles,
// and the component rules that turn a table lookup into the parameters that
// get pushed into an energy model.
//
// # Reading Guide
//
// Start with these files:
//   - data.go, find.go: standards data tables and the row search every rule uses
//   - template.go, standard.go: the template registry and the Standard handle
//   - baseline.go, groups.go: the Appendix G baseline system decision tables
//
// # Architecture
//
// A Standard is a single concrete type. What differs between templates
// (90.1 vintages, PRM, 179D, DEER, DOE reference, NREL ZNE Ready, NECB) is
// described by a Profile registered under the template name. Profiles are
// registered from init() in standards/templates, which callers import for
// side effects:
//
//	import _ "github.com/openstudio-standards/osstd/standards/templates"
//
// Sub-packages:
//   - standards/units/: unit and efficiency-metric conversions
//   - standards/curve/: performance curves, evaluation and fitting
//   - standards/prototype/: prototype building registry
//   - standards/stddata/: embedded default standards data
//   - standards/simrun/: EnergyPlus and OpenStudio CLI runner
//   - standards/results/: tabular output parsing and comparison
//
// # Components
//
// Component rules take plain structs (Boiler, Chiller, DXCoil, Fan, Pump,
// CoolingTower, WaterHeater, AirLoop, Space, NECBSpace) and return result
// structs. A rule that cannot find its data returns an error wrapping
// ErrNotFound.
package standards

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/standards/prototype"
)

// prototypeCmd groups the prototype registry commands.
var prototypeCmd = &cobra.Command{
	Use:   "prototype",
	Short: "Inspect the DOE and NECB prototype buildings",
}

// prototypeListCmd lists the registered prototypes, for --template only
// when it is given.
var prototypeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered prototypes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var defs []prototype.Definition
		var rows [][]string
		for _, t := range prototype.Templates() {
			if template != "" && t != template {
				continue
			}
			for _, bt := range prototype.BuildingTypes() {
				d, err := prototype.Lookup(t, bt)
				if err != nil {
					return err
				}
				defs = append(defs, d)
				rows = append(rows, []string{d.Template, d.BuildingType, d.LookupBuildingType, d.GeometryFile})
			}
		}
		if len(defs) == 0 {
			return fmt.Errorf("%w: no prototypes for template %q", prototype.ErrUnknownPrototype, template)
		}
		return printTable(cmd.OutOrStdout(), fmt.Sprintf("Prototypes (%d)", len(defs)), []string{"Template", "Building type", "Lookup name", "Geometry"}, rows, defs)
	},
}

// prototypeShowCmd prints the inputs of one prototype.
var prototypeShowCmd = &cobra.Command{
	Use:   "show <building type>",
	Short: "Show the inputs of the prototype of --template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStandard()
		if err != nil {
			return err
		}
		p, err := prototype.Load(s, args[0])
		if err != nil {
			return err
		}
		elevators, err := p.Elevators()
		if err != nil {
			return err
		}
		lighting := p.ExteriorLighting()

		rows := [][]string{
			{"geometry", p.GeometryFile},
			{"hvac map", p.HVACMapFile},
			{"lookup building type", p.LookupBuildingType},
			{"elevators", strconv.Itoa(elevators.Count) + " " + elevators.Type},
			{"exterior lighting (W)", num(lighting.TotalW())},
		}
		for _, swh := range p.ServiceWaterHeatingSystems() {
			rows = append(rows, []string{
				swh.System + " water heater",
				fmt.Sprintf("%s gal, %s Btu/h, %s, %s F", num(swh.HeaterVolumeGal), num(swh.HeaterCapacityBtuh), swh.HeaterFuel, num(swh.ServiceTempF)),
			})
		}
		title := fmt.Sprintf("Prototype %s", prototype.Key(p.Template, p.BuildingType))
		return printTable(cmd.OutOrStdout(), title, []string{"Input", "Value"}, rows, p)
	},
}

func init() {
	prototypeCmd.AddCommand(prototypeListCmd)
	prototypeCmd.AddCommand(prototypeShowCmd)
	rootCmd.AddCommand(prototypeCmd)
}

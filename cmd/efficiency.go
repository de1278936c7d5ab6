package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/standards"
)

var componentsFilePath string // Path to the components input file

// efficiencyCmd applies the component efficiency rules to a file of
// components.
var efficiencyCmd = &cobra.Command{
	Use:   "efficiency -f components.yaml",
	Short: "Look up the efficiency a template requires for each component",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var f ComponentsFile
		if err := loadYAML(componentsFilePath, &f); err != nil {
			return err
		}
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%s: %w", componentsFilePath, err)
		}
		if f.Template != "" {
			template = f.Template
		}
		if f.Custom != "" {
			custom = f.Custom
		}
		s, err := newStandard()
		if err != nil {
			return err
		}

		type entry struct {
			Kind   string `json:"kind"`
			Result any    `json:"result,omitempty"`
			Error  string `json:"error,omitempty"`
		}
		var entries []entry
		var rows [][]string
		failed := 0
		for _, c := range f.Components {
			res, err := s.ComponentEfficiency(c.Kind, c.Component.Decode)
			if err != nil {
				failed++
				logrus.Errorf("%s: %v", c.Kind, err)
				entries = append(entries, entry{Kind: c.Kind, Error: err.Error()})
				rows = append(rows, []string{c.Kind, "", failStyle.Render(err.Error())})
				continue
			}
			entries = append(entries, entry{Kind: c.Kind, Result: res})
			name, summary := describeResult(res)
			rows = append(rows, []string{c.Kind, name, summary})
		}
		title := fmt.Sprintf("Component efficiency, %s", s.Template())
		if err := printTable(cmd.OutOrStdout(), title, []string{"Kind", "Name", "Requirement"}, rows, entries); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d components failed", failed, len(f.Components))
		}
		return nil
	},
}

// describeResult summarizes a rule result in one table cell.
func describeResult(res any) (name, summary string) {
	switch r := res.(type) {
	case standards.BoilerResult:
		return r.Name, fmt.Sprintf("%s %s, thermal eff %s", r.Metric, num(r.RatedValue), num(r.ThermalEfficiency))
	case standards.ChillerResult:
		return r.Name, fmt.Sprintf("%s kW/ton, COP %s, %s", num(r.KWPerTon), num(r.COP), r.CompliancePath)
	case standards.DXResult:
		return r.Name, fmt.Sprintf("%s %s, COP %s", r.Metric, num(r.RatedValue), num(r.COP))
	case standards.CoolingTowerResult:
		return r.Name, fmt.Sprintf("%s gpm/hp, %s hp motor at %s", num(r.MinGPMPerHP), num(r.NominalHP), num(r.MotorEfficiency))
	case standards.WaterHeaterResult:
		if r.Unchanged {
			return r.Name, "heat pump water heater, unchanged"
		}
		return r.Name, fmt.Sprintf("thermal eff %s, UA %s Btu/h-F", num(r.ThermalEfficiency), num(r.UABtuPerHrF))
	case standards.MotorResult:
		return r.Name, fmt.Sprintf("%s bhp, %s hp motor at %s, %s W", num(r.BrakeHorsepower), num(r.NominalHP), num(r.MotorEfficiency), num(r.PowerW))
	}
	return "", fmt.Sprint(res)
}

func init() {
	efficiencyCmd.Flags().StringVarP(&componentsFilePath, "file", "f", "", "Components YAML/JSON file")
	_ = efficiencyCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(efficiencyCmd)
}

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/standards"
)

var (
	lookupCapacity float64 // Capacity the bands are searched at; 0 disables
	lookupLimit    int     // Maximum number of rows printed
)

// templatesCmd lists the registered templates.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the registered templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type entry struct {
			Template string            `json:"template"`
			Profile  standards.Profile `json:"profile"`
		}
		var entries []entry
		var rows [][]string
		for _, name := range standards.Templates() {
			p, err := standards.LookupProfile(name)
			if err != nil {
				return err
			}
			entries = append(entries, entry{Template: name, Profile: p})
			rows = append(rows, []string{name, p.Family, strconv.FormatBool(p.PRM), num(p.BaselineAreaLimitFt2)})
		}
		return printTable(cmd.OutOrStdout(), "Templates", []string{"Template", "Family", "PRM", "Baseline area limit (ft2)"}, rows, entries)
	},
}

// tablesCmd lists the standards tables in use.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the standards tables and their row counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadData()
		if err != nil {
			return err
		}
		counts := map[string]int{}
		var rows [][]string
		for _, name := range d.Names() {
			t, _ := d.Table(name)
			counts[name] = len(t)
			rows = append(rows, []string{name, strconv.Itoa(len(t))})
		}
		return printTable(cmd.OutOrStdout(), "Standards tables", []string{"Table", "Rows"}, rows, counts)
	},
}

// loadData returns the tables the persistent flags select, without
// requiring a template.
func loadData() (*standards.Data, error) {
	if dataDir == "" {
		return standards.DefaultData()
	}
	return standards.OverlayData(os.DirFS(dataDir), ".")
}

// lookupCmd searches a standards table.
var lookupCmd = &cobra.Command{
	Use:   "lookup <table> [column=value ...]",
	Short: "Search a standards table",
	Long: `Search a standards table for rows matching column=value criteria.

The template column is filled from --template unless given. Numbers are
compared as numbers and "null" matches rows where the column is null or
missing. With --capacity, rows must satisfy
minimum_capacity < capacity <= maximum_capacity.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStandard()
		if err != nil {
			return err
		}
		criteria, err := standards.ParseCriteria(args[1:])
		if err != nil {
			return err
		}
		if _, set := criteria["template"]; !set {
			criteria["template"] = s.Template()
		}
		var capacity *float64
		if lookupCapacity > 0 {
			capacity = standards.Ptr(lookupCapacity)
		}
		found, err := s.TableRows(args[0], criteria, capacity)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("%w in %s for %s", standards.ErrNotFound, args[0], criteria)
		}
		if lookupLimit > 0 && len(found) > lookupLimit {
			found = found[:lookupLimit]
		}
		headers, rows := rowsTable(found)
		title := fmt.Sprintf("%s %s (%d rows)", args[0], criteria, len(found))
		return printTable(cmd.OutOrStdout(), title, headers, rows, found)
	},
}

// rowsTable lays out standards rows with the union of their columns,
// sorted, as headers.
func rowsTable(found []standards.Row) ([]string, [][]string) {
	seen := map[string]bool{}
	var headers []string
	for _, r := range found {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)
	rows := make([][]string, 0, len(found))
	for _, r := range found {
		line := make([]string, len(headers))
		for i, h := range headers {
			switch v := r[h].(type) {
			case nil:
				line[i] = ""
			case float64:
				line[i] = strconv.FormatFloat(v, 'g', -1, 64)
			default:
				line[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, line)
	}
	return headers, rows
}

func init() {
	lookupCmd.Flags().Float64Var(&lookupCapacity, "capacity", 0, "Capacity in the table's units (e.g. Btu/h, tons, hp)")
	lookupCmd.Flags().IntVar(&lookupLimit, "limit", 20, "Maximum number of rows to print; 0 prints all")

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(lookupCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/standards/results"
	"github.com/openstudio-standards/osstd/standards/simrun"
)

var (
	simModel      string        // .osm or .idf model
	simWeather    string        // EPW weather file
	simRunDir     string        // Run directory
	simWorkDir    string        // Parent of run directories
	simExpected   string        // Expected results file
	simTolerance  float64       // Relative tolerance for result diffs
	simTimeout    time.Duration // Per-run timeout
	simOpenStudio string        // OpenStudio CLI executable
	simEnergyPlus string        // EnergyPlus executable
	batchFilePath string        // Path to the batch file
	batchWorkers  int           // Simultaneous runs
)

// errResultsDiffer is returned when a run does not match its expected
// results.
var errResultsDiffer = errors.New("results differ from expected")

func newRunner(progress io.Writer) *simrun.Runner {
	if simOpenStudio == "" {
		simOpenStudio = os.Getenv(envOpenStudio)
	}
	if simEnergyPlus == "" {
		simEnergyPlus = os.Getenv(envEnergyPlus)
	}
	return &simrun.Runner{
		WorkDir:    simWorkDir,
		OpenStudio: simOpenStudio,
		EnergyPlus: simEnergyPlus,
		Timeout:    simTimeout,
		Progress:   progress,
	}
}

// simulateCmd runs one model.
var simulateCmd = &cobra.Command{
	Use:   "simulate --model in.osm --weather in.epw",
	Short: "Run an annual simulation and check it finished cleanly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		job := simrun.Job{Model: simModel, Weather: simWeather, RunDir: simRunDir, Expected: simExpected}
		res, err := newRunner(nil).Run(ctx, job)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s finished in %s: %s\n", res.ID, res.Elapsed.Round(time.Millisecond), res.RunDir)
		if job.Expected == "" {
			return nil
		}
		return checkRun(cmd.OutOrStdout(), res, simTolerance)
	},
}

// checkRun compares the tabular results of a run with its expected file.
func checkRun(w io.Writer, res *simrun.Result, tolerance float64) error {
	actual, err := results.ParseTabularCSVFile(res.TabularCSV())
	if err != nil {
		return err
	}
	expected, err := results.LoadSummary(res.Job.Expected)
	if err != nil {
		return err
	}
	return printDiffs(w, filepath.Base(res.RunDir), results.Compare(expected, actual, tolerance))
}

func printDiffs(w io.Writer, name string, diffs []results.Diff) error {
	if len(diffs) == 0 {
		if outputFormat == formatJSON {
			return printJSON(w, diffs)
		}
		fmt.Fprintf(w, "%s matches expected results\n", name)
		return nil
	}
	var rows [][]string
	for _, d := range diffs {
		rows = append(rows, []string{d.Metric, num(d.Expected), num(d.Actual), failStyle.Render(fmt.Sprintf("%+.2f%%", d.RelDiff*100))})
	}
	if err := printTable(w, fmt.Sprintf("%s: %d differences", name, len(diffs)), []string{"Metric", "Expected", "Actual", "Diff"}, rows, diffs); err != nil {
		return err
	}
	return fmt.Errorf("%s: %w (%d metrics)", name, errResultsDiffer, len(diffs))
}

// batchCmd runs the jobs of a batch file in parallel.
var batchCmd = &cobra.Command{
	Use:   "batch -f jobs.yaml",
	Short: "Run a batch of simulations and compare each against its expected results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadBatchFile(batchFilePath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("work-dir") && f.WorkDir != "" {
			simWorkDir = f.WorkDir
		}
		if !cmd.Flags().Changed("timeout") && f.Timeout > 0 {
			simTimeout = f.Timeout
		}
		if !cmd.Flags().Changed("tolerance") && f.Tolerance > 0 {
			simTolerance = f.Tolerance
		}
		if !cmd.Flags().Changed("workers") && f.Workers > 0 {
			batchWorkers = f.Workers
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		runs, runErr := newRunner(cmd.ErrOrStderr()).RunBatch(ctx, f.Jobs, batchWorkers)
		if runs == nil {
			return runErr
		}

		var rows [][]string
		failed := 0
		for _, r := range runs {
			status := "ok"
			switch {
			case r.Err != "":
				status = failStyle.Render("failed")
				failed++
			case r.Job.Expected != "":
				if err := checkRun(io.Discard, r, simTolerance); err != nil {
					status = failStyle.Render(err.Error())
					failed++
				} else {
					status = "matches expected"
				}
			}
			rows = append(rows, []string{filepath.Base(r.RunDir), r.RunDir, r.Elapsed.Round(time.Second).String(), status})
		}
		if err := printTable(cmd.OutOrStdout(), "Batch results", []string{"Run", "Directory", "Elapsed", "Status"}, rows, runs); err != nil {
			return err
		}
		if runErr != nil {
			logrus.Debugf("batch errors: %v", runErr)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d runs failed", failed, len(runs))
		}
		return nil
	},
}

// compareCmd diffs a tabular report against expected results.
var compareCmd = &cobra.Command{
	Use:   "compare <expected.yaml> <eplustbl.csv>",
	Short: "Compare the annual results of a run with expected values",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, err := results.LoadSummary(args[0])
		if err != nil {
			return err
		}
		actual, err := results.ParseTabularCSVFile(args[1])
		if err != nil {
			return err
		}
		return printDiffs(cmd.OutOrStdout(), args[1], results.Compare(expected, actual, simTolerance))
	},
}

// summaryCmd prints the annual summary of a tabular report as YAML, the
// format expected results files use.
var summaryCmd = &cobra.Command{
	Use:   "summary <eplustbl.csv>",
	Short: "Print the annual results of a run as an expected results file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := results.ParseTabularCSVFile(args[0])
		if err != nil {
			return err
		}
		if outputFormat == formatJSON {
			return printJSON(cmd.OutOrStdout(), s)
		}
		return results.WriteSummary(cmd.OutOrStdout(), s)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simModel, "model", "", "Model file (.osm or .idf)")
	simulateCmd.Flags().StringVar(&simWeather, "weather", "", "EPW weather file")
	simulateCmd.Flags().StringVar(&simRunDir, "run-dir", "", "Run directory (default <work-dir>/<model name>)")
	simulateCmd.Flags().StringVar(&simExpected, "expected", "", "Expected results YAML/JSON to compare against")
	_ = simulateCmd.MarkFlagRequired("model")
	_ = simulateCmd.MarkFlagRequired("weather")

	batchCmd.Flags().StringVarP(&batchFilePath, "file", "f", "", "Batch YAML/JSON file")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Simultaneous runs (default: number of CPUs)")
	_ = batchCmd.MarkFlagRequired("file")

	for _, c := range []*cobra.Command{simulateCmd, batchCmd} {
		c.Flags().StringVar(&simWorkDir, "work-dir", ".", "Parent directory of the run directories")
		c.Flags().DurationVar(&simTimeout, "timeout", 0, "Per-run timeout, e.g. 2h (0 disables)")
		c.Flags().StringVar(&simOpenStudio, "openstudio", "", "OpenStudio CLI executable (default $"+envOpenStudio+" or openstudio)")
		c.Flags().StringVar(&simEnergyPlus, "energyplus", "", "EnergyPlus executable (default $"+envEnergyPlus+" or energyplus)")
	}
	for _, c := range []*cobra.Command{simulateCmd, batchCmd, compareCmd} {
		c.Flags().Float64Var(&simTolerance, "tolerance", 0.01, "Relative tolerance for result diffs")
	}

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(summaryCmd)
}

// Package simrun runs annual simulations of standards models with the
// OpenStudio CLI or EnergyPlus and checks that they finished cleanly.
//
// Each run gets its own directory holding the model, the weather file
// copied as in.epw and, for OpenStudio models, an in.osw workflow. The
// engine writes its outputs under <run dir>/run. A run fails when the
// results are missing or eplusout.end does not report a successful
// completion; severe errors in eplusout.err that did not stop the engine
// are logged as warnings.
package simrun

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Binary names.
const (
	binOpenStudio = "openstudio"
	binEnergyPlus = "energyplus"
)

// Run directory layout.
const (
	fileEPW    = "in.epw"
	fileOSM    = "in.osm"
	fileIDF    = "in.idf"
	fileOSW    = "in.osw"
	fileLog    = "simrun.log"
	dirOutputs = "run"

	fileSQL    = "eplusout.sql"
	fileTblCSV = "eplustbl.csv"
	fileErr    = "eplusout.err"
	fileEnd    = "eplusout.end"
)

// completedMarker is what eplusout.end starts with after a clean run.
const completedMarker = "EnergyPlus Completed Successfully"

var (
	// ErrInvalidJob is returned for a job that cannot be started.
	ErrInvalidJob = errors.New("invalid simulation job")
	// ErrRunFailed is returned when the engine did not finish the run.
	ErrRunFailed = errors.New("simulation failed")
)

// Job is one simulation to run.
type Job struct {
	// Name labels the run and names its directory. It defaults to the
	// model file name without extension.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Model is an .osm or .idf file.
	Model   string `json:"model" yaml:"model"`
	Weather string `json:"weather" yaml:"weather"`
	// RunDir overrides <Runner.WorkDir>/<Name>.
	RunDir string `json:"run_dir,omitempty" yaml:"run_dir,omitempty"`
	// Expected is an optional results file the run is compared against.
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

func (j Job) name() string {
	if j.Name != "" {
		return j.Name
	}
	return strings.TrimSuffix(filepath.Base(j.Model), filepath.Ext(j.Model))
}

// Result describes a finished run.
type Result struct {
	ID        string        `json:"id" yaml:"id"`
	Job       Job           `json:"job" yaml:"job"`
	RunDir    string        `json:"run_dir" yaml:"run_dir"`
	OutputDir string        `json:"output_dir" yaml:"output_dir"`
	Severe    []string      `json:"severe,omitempty" yaml:"severe,omitempty"`
	Fatal     []string      `json:"fatal,omitempty" yaml:"fatal,omitempty"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	// Err is set by RunBatch for jobs that failed.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TabularCSV is the path of the tabular report of the run.
func (r *Result) TabularCSV() string { return filepath.Join(r.OutputDir, fileTblCSV) }

// Runner runs simulation jobs. The zero value runs the engines found on
// PATH from the current directory with no timeout.
type Runner struct {
	WorkDir string
	// OpenStudio and EnergyPlus are the engine executables.
	OpenStudio string
	EnergyPlus string
	// Timeout bounds each run when positive.
	Timeout time.Duration
	// Progress receives the batch progress bar. Nil disables it.
	Progress io.Writer
}

func (r *Runner) runDir(job Job) string {
	if job.RunDir != "" {
		return job.RunDir
	}
	return filepath.Join(r.WorkDir, job.name())
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

// cmdOpenStudio runs `openstudio run -w in.osw` in dir.
func (r *Runner) cmdOpenStudio(ctx context.Context, dir string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, orDefault(r.OpenStudio, binOpenStudio), "run", "-w", fileOSW)
	cmd.Dir = dir
	return cmd
}

// cmdEnergyPlus runs EnergyPlus on in.idf in dir, writing to dir/run.
func (r *Runner) cmdEnergyPlus(ctx context.Context, dir string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, orDefault(r.EnergyPlus, binEnergyPlus), "-w", fileEPW, "-d", dirOutputs, fileIDF)
	cmd.Dir = dir
	return cmd
}

// workflow is the subset of the OpenStudio workflow JSON a plain annual
// run needs.
type workflow struct {
	SeedFile    string `json:"seed_file"`
	WeatherFile string `json:"weather_file"`
	Steps       []any  `json:"steps"`
}

// prepare lays out the run directory and returns the command to run.
func (r *Runner) prepare(ctx context.Context, job Job, dir string) (*exec.Cmd, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}
	if err := copyFile(job.Weather, filepath.Join(dir, fileEPW)); err != nil {
		return nil, fmt.Errorf("copying weather file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(job.Model)) {
	case ".osm":
		if err := copyFile(job.Model, filepath.Join(dir, fileOSM)); err != nil {
			return nil, fmt.Errorf("copying model: %w", err)
		}
		osw, err := json.MarshalIndent(workflow{SeedFile: fileOSM, WeatherFile: fileEPW, Steps: []any{}}, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, fileOSW), osw, 0o644); err != nil {
			return nil, fmt.Errorf("writing workflow: %w", err)
		}
		return r.cmdOpenStudio(ctx, dir), nil
	default:
		if err := copyFile(job.Model, filepath.Join(dir, fileIDF)); err != nil {
			return nil, fmt.Errorf("copying model: %w", err)
		}
		return r.cmdEnergyPlus(ctx, dir), nil
	}
}

func validateJob(job Job) error {
	if job.Model == "" {
		return fmt.Errorf("%w: no model", ErrInvalidJob)
	}
	switch strings.ToLower(filepath.Ext(job.Model)) {
	case ".osm", ".idf":
	default:
		return fmt.Errorf("%w: model %s is neither .osm nor .idf", ErrInvalidJob, job.Model)
	}
	if job.Weather == "" {
		return fmt.Errorf("%w: no weather file for %s", ErrInvalidJob, job.Model)
	}
	return nil
}

// Run runs one job to completion. Once the engine has been started the
// returned Result is non-nil, including for failed runs.
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	res := &Result{ID: uuid.NewString(), Job: job, RunDir: r.runDir(job)}
	res.OutputDir = filepath.Join(res.RunDir, dirOutputs)
	log := logrus.WithFields(logrus.Fields{"component": "simrun", "run": job.name(), "id": res.ID})

	cmd, err := r.prepare(ctx, job, res.RunDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJob, job.name(), err)
	}
	logFile, err := os.Create(filepath.Join(res.RunDir, fileLog))
	if err != nil {
		return res, err
	}
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.WaitDelay = 5 * time.Second

	log.Debugf("Starting simulation here: %s.", res.RunDir)
	start := time.Now()
	log.Infof("Started simulation %s at %s", res.RunDir, start.Format("15:04:05.000"))
	runErr := cmd.Run()
	res.Elapsed = time.Since(start)
	if ctx.Err() != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrRunFailed, job.name(), ctx.Err())
	}
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return res, fmt.Errorf("%w: %s: %w", ErrRunFailed, job.name(), runErr)
	}
	log.Infof("Finished simulation %s at %s", res.RunDir, time.Now().Format("15:04:05.000"))

	return res, checkOutputs(res, log)
}

// checkOutputs inspects the engine outputs of a finished process.
func checkOutputs(res *Result, log *logrus.Entry) error {
	errPath := filepath.Join(res.OutputDir, fileErr)
	if !exists(filepath.Join(res.OutputDir, fileSQL)) && !exists(filepath.Join(res.OutputDir, fileTblCSV)) {
		// Without results the engine most likely crashed, and the reason
		// is in eplusout.err.
		errs, err := os.ReadFile(errPath)
		if err != nil {
			log.Errorf("Results for the run couldn't be found here: %s.", res.OutputDir)
			return fmt.Errorf("%w: %s: no results in %s", ErrRunFailed, res.Job.name(), res.OutputDir)
		}
		log.Errorf("The run did not finish because of the following errors: %s", errs)
		res.Severe, res.Fatal = scanErrors(errs)
		return fmt.Errorf("%w: %s: %s", ErrRunFailed, res.Job.name(), strings.TrimSpace(string(errs)))
	}

	if errs, err := os.ReadFile(errPath); err == nil {
		res.Severe, res.Fatal = scanErrors(errs)
	}
	reported := append(append([]string{}, res.Fatal...), res.Severe...)

	end, _ := os.ReadFile(filepath.Join(res.OutputDir, fileEnd))
	if !bytes.Contains(end, []byte(completedMarker)) {
		log.Errorf("The run did not finish and had following errors: %s", strings.Join(reported, "\n"))
		return fmt.Errorf("%w: %s did not complete: %s", ErrRunFailed, res.Job.name(), strings.Join(reported, "; "))
	}
	if len(res.Severe) > 0 {
		log.Warnf("The run completed but had the following severe errors: %s", strings.Join(res.Severe, "\n"))
	}
	return nil
}

// scanErrors returns the severe and fatal messages of an eplusout.err
// file, in file order.
func scanErrors(errFile []byte) (severe, fatal []string) {
	sc := bufio.NewScanner(bytes.NewReader(errFile))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "** Severe"):
			severe = append(severe, message(line))
		case strings.HasPrefix(line, "**  Fatal"):
			fatal = append(fatal, message(line))
		}
	}
	return severe, fatal
}

// message strips the "** Severe  **" style prefix.
func message(line string) string {
	rest := strings.TrimPrefix(line, "**")
	if i := strings.Index(rest, "**"); i >= 0 {
		rest = rest[i+2:]
	}
	return strings.TrimSpace(rest)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

package simrun

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstudio-standards/osstd/standards/internal/testutil"
)

// fakeEnergyPlus succeeds with one severe error unless the model mentions
// "broken", in which case it crashes before writing results.
const fakeEnergyPlus = `
test -f in.epw || exit 2
test -f in.idf || exit 2
mkdir -p "$4"
if grep -q broken in.idf; then
  cat > "$4/eplusout.err" <<'EOF'
Program Version,EnergyPlus, Version 24.1.0
   **  Fatal  ** GetInput: Errors found in input
   ************* EnergyPlus Terminated--Fatal Error Detected.
EOF
  exit 1
fi
: > "$4/eplusout.sql"
cat > "$4/eplusout.err" <<'EOF'
Program Version,EnergyPlus, Version 24.1.0
   ** Warning ** Weather file location will be used rather than entered Location object.
   ** Severe  ** GetSurfaceData: Zone="ATTIC" has no surfaces
   **   ~~~   ** ...occurs in Zone ATTIC
   ************* EnergyPlus Completed Successfully-- 1 Warning; 1 Severe Errors
EOF
echo "EnergyPlus Completed Successfully-- 1 Warning; 1 Severe Errors; Elapsed Time=00hr 00min  2.00sec" > "$4/eplusout.end"
`

// writeJob writes a model and a weather file into dir.
func writeJob(t *testing.T, dir, name, ext, model string) Job {
	t.Helper()
	in := filepath.Join(dir, "inputs")
	require.NoError(t, os.MkdirAll(in, 0o755))
	modelPath := filepath.Join(in, name+ext)
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o644))
	epw := filepath.Join(in, "USA_CO_Denver.epw")
	require.NoError(t, os.WriteFile(epw, []byte("LOCATION,Denver"), 0o644))
	return Job{Name: name, Model: modelPath, Weather: epw}
}

func TestRun_EnergyPlusWithSevereErrorsSucceeds(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{WorkDir: filepath.Join(dir, "runs"), EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", fakeEnergyPlus)}
	job := writeJob(t, dir, "SmallOffice", ".idf", "Building,SmallOffice;")

	res, err := r.Run(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, filepath.Join(dir, "runs", "SmallOffice"), res.RunDir)
	assert.Equal(t, []string{`GetSurfaceData: Zone="ATTIC" has no surfaces`}, res.Severe)
	assert.Empty(t, res.Fatal)
	assert.FileExists(t, filepath.Join(res.RunDir, "in.epw"))
	assert.FileExists(t, filepath.Join(res.RunDir, "in.idf"))
	assert.Equal(t, filepath.Join(res.RunDir, "run", "eplustbl.csv"), res.TabularCSV())
}

func TestRun_CrashReportsErrFile(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{WorkDir: dir, EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", fakeEnergyPlus)}
	job := writeJob(t, dir, "Broken", ".idf", "broken")

	res, err := r.Run(context.Background(), job)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunFailed))
	assert.Contains(t, err.Error(), "Errors found in input")
	require.NotNil(t, res)
	assert.Equal(t, []string{"GetInput: Errors found in input"}, res.Fatal)
}

func TestRun_NoOutputsAtAll(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{WorkDir: dir, EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", "exit 0\n")}
	job := writeJob(t, dir, "Empty", ".idf", "")

	_, err := r.Run(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}

func TestRun_IncompleteRunFails(t *testing.T) {
	dir := t.TempDir()
	script := `
mkdir -p run
: > run/eplusout.sql
echo "   **  Fatal  ** Program terminated: EnergyPlus Terminated--Error(s) Detected." > run/eplusout.err
echo "EnergyPlus Terminated--Fatal Error Detected. 0 Warning; 0 Severe Errors" > run/eplusout.end
`
	r := &Runner{WorkDir: dir, EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", script)}
	job := writeJob(t, dir, "Terminated", ".idf", "")

	res, err := r.Run(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not complete")
	assert.Len(t, res.Fatal, 1)
}

func TestRun_OpenStudioWorkflow(t *testing.T) {
	dir := t.TempDir()
	script := `
[ "$1" = run ] && [ "$2" = -w ] && [ "$3" = in.osw ] || exit 3
test -f in.osm || exit 2
mkdir -p run
: > run/eplustbl.csv
echo "EnergyPlus Completed Successfully-- 0 Warning; 0 Severe Errors" > run/eplusout.end
`
	r := &Runner{WorkDir: dir, OpenStudio: testutil.FakeExecutable(t, dir, "openstudio", script)}
	job := writeJob(t, dir, "Warehouse", ".osm", "OS:Version")

	res, err := r.Run(context.Background(), job)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.RunDir, "in.osw"))
	require.NoError(t, err)
	var osw map[string]any
	require.NoError(t, json.Unmarshal(data, &osw))
	assert.Equal(t, "in.osm", osw["seed_file"])
	assert.Equal(t, "in.epw", osw["weather_file"])
}

func TestRun_Timeout(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		WorkDir:    dir,
		EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", "sleep 10\n"),
		Timeout:    100 * time.Millisecond,
	}
	job := writeJob(t, dir, "Slow", ".idf", "")

	_, err := r.Run(context.Background(), job)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRun_InvalidJobs(t *testing.T) {
	r := &Runner{}
	tests := []struct {
		name string
		job  Job
	}{
		{"no model", Job{Weather: "w.epw"}},
		{"gbxml model", Job{Model: "m.xml", Weather: "w.epw"}},
		{"no weather", Job{Model: "m.osm"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), tc.job)
			assert.True(t, errors.Is(err, ErrInvalidJob))
		})
	}
}

func TestRun_MissingWeatherFile(t *testing.T) {
	dir := t.TempDir()
	job := writeJob(t, dir, "SmallOffice", ".idf", "")
	job.Weather = filepath.Join(dir, "missing.epw")

	_, err := (&Runner{WorkDir: dir}).Run(context.Background(), job)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJob))
	assert.Contains(t, err.Error(), "weather")
}

func TestScanErrors(t *testing.T) {
	errFile := []byte(`   ** Severe  ** first
   **   ~~~   ** detail
   ** Warning ** ignored
   **  Fatal  ** stop
   ** Severe  ** second
`)
	severe, fatal := scanErrors(errFile)
	assert.Equal(t, []string{"first", "second"}, severe)
	assert.Equal(t, []string{"stop"}, fatal)
}

func TestRunBatch_OrderAndFailures(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		WorkDir:    filepath.Join(dir, "runs"),
		EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", fakeEnergyPlus),
		Progress:   io.Discard,
	}
	jobs := []Job{
		writeJob(t, dir, "A", ".idf", ""),
		writeJob(t, dir, "B", ".idf", "broken"),
		writeJob(t, dir, "C", ".idf", ""),
	}

	results, err := r.RunBatch(context.Background(), jobs, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunFailed))
	require.Len(t, results, 3)
	for i, name := range []string{"A", "B", "C"} {
		assert.Equal(t, name, results[i].Job.Name)
	}
	assert.Empty(t, results[0].Err)
	assert.Contains(t, results[1].Err, "Errors found in input")
	assert.Empty(t, results[2].Err)
}

func TestRunBatch_SharedRunDirectory(t *testing.T) {
	dir := t.TempDir()
	a := writeJob(t, dir, "Same", ".idf", "")
	_, err := (&Runner{WorkDir: dir}).RunBatch(context.Background(), []Job{a, a}, 1)
	assert.True(t, errors.Is(err, ErrInvalidJob))
}

func TestRunBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{WorkDir: dir, EnergyPlus: testutil.FakeExecutable(t, dir, "energyplus", fakeEnergyPlus)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.RunBatch(ctx, []Job{writeJob(t, dir, "A", ".idf", "")}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
}

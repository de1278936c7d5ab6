// Package testutil provides shared test infrastructure for the standards
// packages: golden files under the repository testdata/ directory, fake
// simulation engines and float assertions.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestdataPath returns the path of name in the repository testdata/
// directory. The path is resolved relative to this source file:
// standards/internal/testutil/ -> testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGolden decodes the YAML or JSON golden file name into v.
func LoadGolden(t *testing.T, name string, v any) {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, name))
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to parse golden file %s: %v", name, err)
	}
}

// FakeExecutable writes a shell script named name into dir and returns its
// path. Tests that use it are skipped on Windows.
func FakeExecutable(t *testing.T, dir, name, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake executables are shell scripts")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("Failed to write fake executable: %v", err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

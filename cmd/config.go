package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openstudio-standards/osstd/standards"
	"github.com/openstudio-standards/osstd/standards/simrun"
)

// loadYAML decodes a YAML (or JSON) input file into v with strict field
// checking, so a misspelled key is an error rather than a silent default.
func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ComponentsFile is the input of `osstd efficiency -f`.
type ComponentsFile struct {
	// Template and Custom override the persistent flags when set.
	Template   string          `yaml:"template"`
	Custom     string          `yaml:"custom"`
	Components []ComponentSpec `yaml:"components"`
}

// ComponentSpec is one component; Component is decoded into the struct the
// kind selects.
type ComponentSpec struct {
	Kind      string    `yaml:"kind"`
	Component yaml.Node `yaml:"component"`
}

// Validate checks kinds before any rule runs.
func (f *ComponentsFile) Validate() error {
	if len(f.Components) == 0 {
		return fmt.Errorf("no components")
	}
	for i, c := range f.Components {
		if !standards.IsValidComponentKind(c.Kind) {
			return fmt.Errorf("components[%d]: unknown kind %q; valid kinds: %v", i, c.Kind, standards.ValidComponentKinds())
		}
		if c.Component.Kind == 0 {
			return fmt.Errorf("components[%d]: no component", i)
		}
	}
	return nil
}

// BaselineFile is the input of `osstd baseline -f`.
type BaselineFile struct {
	Template    string           `yaml:"template"`
	Custom      string           `yaml:"custom"`
	ClimateZone string           `yaml:"climate_zone"`
	Zones       []standards.Zone `yaml:"zones"`
}

// Validate checks the climate zone and zone list.
func (f *BaselineFile) Validate() error {
	if f.ClimateZone == "" {
		return fmt.Errorf("no climate_zone")
	}
	if len(f.Zones) == 0 {
		return fmt.Errorf("no zones")
	}
	seen := map[string]bool{}
	for i, z := range f.Zones {
		if z.Name == "" {
			return fmt.Errorf("zones[%d]: no name", i)
		}
		if seen[z.Name] {
			return fmt.Errorf("zones[%d]: duplicate zone %q", i, z.Name)
		}
		seen[z.Name] = true
	}
	return nil
}

// BatchFile is the input of `osstd batch -f`. Relative paths are resolved
// against the directory of the file.
type BatchFile struct {
	WorkDir   string        `yaml:"work_dir"`
	Workers   int           `yaml:"workers"`
	Timeout   time.Duration `yaml:"timeout"`
	Tolerance float64       `yaml:"tolerance"`
	Jobs      []simrun.Job  `yaml:"jobs"`
}

// Validate checks the batch settings.
func (f *BatchFile) Validate() error {
	if len(f.Jobs) == 0 {
		return fmt.Errorf("no jobs")
	}
	if f.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", f.Workers)
	}
	if f.Tolerance < 0 || f.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in [0, 1), got %g", f.Tolerance)
	}
	return nil
}

// resolve makes the paths of the batch relative to base.
func (f *BatchFile) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	f.WorkDir = abs(f.WorkDir)
	for i := range f.Jobs {
		f.Jobs[i].Model = abs(f.Jobs[i].Model)
		f.Jobs[i].Weather = abs(f.Jobs[i].Weather)
		f.Jobs[i].RunDir = abs(f.Jobs[i].RunDir)
		f.Jobs[i].Expected = abs(f.Jobs[i].Expected)
	}
}

// loadBatchFile reads, validates and resolves a batch file.
func loadBatchFile(path string) (*BatchFile, error) {
	var f BatchFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.resolve(filepath.Dir(path))
	return &f, nil
}

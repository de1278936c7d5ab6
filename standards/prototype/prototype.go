// Package prototype is the registry of DOE and NECB prototype buildings.
// A prototype is a (template, building type) pair; its inputs, such as
// service water heating sizes, elevator counts and exterior lighting power,
// live in the prototype_inputs standards table rather than in code.
package prototype

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/openstudio-standards/osstd/standards"
)

// ErrUnknownPrototype is returned for a key that is not registered.
var ErrUnknownPrototype = errors.New("unknown prototype")

// validBuildingTypes are the building types every prototype template
// covers. Unexported to prevent mutation.
var validBuildingTypes = map[string]bool{
	"FullServiceRestaurant":  true,
	"HighriseApartment":      true,
	"Hospital":               true,
	"LargeHotel":             true,
	"LargeOffice":            true,
	"MediumOffice":           true,
	"MidriseApartment":       true,
	"Outpatient":             true,
	"PrimarySchool":          true,
	"QuickServiceRestaurant": true,
	"RetailStandalone":       true,
	"RetailStripmall":        true,
	"SecondarySchool":        true,
	"SmallHotel":             true,
	"SmallOffice":            true,
	"SuperMarket":            true,
	"Warehouse":              true,
}

// classNames maps each prototype template to the prefix its geometry files
// are named with.
var classNames = map[string]string{
	"90.1-2004":           "ASHRAE9012004",
	"90.1-2007":           "ASHRAE9012007",
	"90.1-2010":           "ASHRAE9012010",
	"90.1-2013":           "ASHRAE9012013",
	"DOE Ref Pre-1980":    "DOERefPre1980",
	"DOE Ref 1980-2004":   "DOERef1980to2004",
	"NREL ZNE Ready 2017": "NRELZNEReady2017",
	"NECB2011":            "NECB2011",
	"NECB2015":            "NECB2015",
}

// IsValidBuildingType returns true if name is a prototype building type.
func IsValidBuildingType(name string) bool { return validBuildingTypes[name] }

// BuildingTypes returns the prototype building types, sorted.
func BuildingTypes() []string { return sortedKeys(validBuildingTypes) }

// Templates returns the templates that have prototypes, sorted.
func Templates() []string {
	out := make([]string, 0, len(classNames))
	for t := range classNames {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Key is the registry key of a prototype.
func Key(template, buildingType string) string {
	return template + "_" + buildingType
}

// Definition is the static part of a prototype: everything but its inputs.
type Definition struct {
	Template     string `json:"template" yaml:"template"`
	BuildingType string `json:"building_type" yaml:"building_type"`
	// LookupBuildingType is the building type used in standards lookups,
	// e.g. Office for SmallOffice.
	LookupBuildingType string `json:"lookup_building_type" yaml:"lookup_building_type"`
	GeometryFile       string `json:"geometry_file" yaml:"geometry_file"`
	// HVACMapFile is empty for NECB prototypes, whose systems are selected
	// from the space types.
	HVACMapFile string `json:"hvac_map_file,omitempty" yaml:"hvac_map_file,omitempty"`
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Definition{}
)

// Register adds a prototype definition. It panics on a duplicate key, like
// standards.Register.
func Register(d Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()
	k := Key(d.Template, d.BuildingType)
	if _, dup := registry[k]; dup {
		panic("prototype: Register called twice for " + k)
	}
	registry[k] = d
}

func init() {
	for template, class := range classNames {
		necb := strings.HasPrefix(template, "NECB")
		for bt := range validBuildingTypes {
			d := Definition{
				Template:           template,
				BuildingType:       bt,
				LookupBuildingType: LookupName(template, bt),
				GeometryFile:       "geometry/" + class + bt + ".osm",
			}
			if !necb {
				d.HVACMapFile = "geometry/" + class + bt + ".hvac_map.json"
			}
			Register(d)
		}
	}
}

// Keys returns every registered key, sorted.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the definition registered for template and buildingType.
func Lookup(template, buildingType string) (Definition, error) {
	registryMu.RLock()
	d, ok := registry[Key(template, buildingType)]
	registryMu.RUnlock()
	if !ok {
		return Definition{}, fmt.Errorf("%w %q; templates: %s; building types: %s", ErrUnknownPrototype,
			Key(template, buildingType), strings.Join(Templates(), ", "), strings.Join(BuildingTypes(), ", "))
	}
	return d, nil
}

// LookupName maps a prototype building type to the building type the
// standards tables use. The 90.1 family shares space types between the
// office sizes and names the retail types differently; NECB uses the
// building type as is.
func LookupName(template, buildingType string) string {
	if strings.HasPrefix(template, "NECB") {
		return buildingType
	}
	switch buildingType {
	case "SmallOffice", "MediumOffice", "LargeOffice", "SmallOfficeDetailed", "MediumOfficeDetailed", "LargeOfficeDetailed":
		return "Office"
	case "RetailStandalone":
		return "Retail"
	case "RetailStripmall":
		return "StripMall"
	}
	return buildingType
}

// Prototype is a registered prototype with its inputs loaded.
type Prototype struct {
	Definition
	Inputs standards.Row `json:"inputs" yaml:"inputs"`
}

// Load builds the prototype for buildingType under the template of std,
// reading its inputs from the prototype_inputs table.
func Load(std *standards.Standard, buildingType string) (*Prototype, error) {
	d, err := Lookup(std.Template(), buildingType)
	if err != nil {
		return nil, err
	}
	t, err := std.Data().Table("prototype_inputs")
	if err != nil {
		return nil, err
	}
	criteria := standards.Criteria{"template": d.Template, "building_type": d.BuildingType}
	row, ok := standards.FindObject(t, criteria, nil, nil)
	if !ok {
		logrus.WithField("component", "prototype").Errorf("Could not find prototype inputs for %s, cannot create model.", criteria)
		return nil, fmt.Errorf("%w: no prototype inputs for %s", standards.ErrNotFound, Key(d.Template, d.BuildingType))
	}
	return &Prototype{Definition: d, Inputs: row}, nil
}

// Float returns a numeric input.
func (p *Prototype) Float(key string) (float64, bool) { return p.Inputs.Float(key) }

// String returns a text input.
func (p *Prototype) String(key string) (string, bool) { return p.Inputs.String(key) }

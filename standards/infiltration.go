package standards

import (
	"fmt"
	"math"
	"strings"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Surface types and boundary conditions, as the simulation engine names them.
const (
	SurfaceWall        = "Wall"
	SurfaceRoofCeiling = "RoofCeiling"
	SurfaceFloor       = "Floor"

	BoundaryOutdoors = "Outdoors"
	BoundaryGround   = "Ground"
)

// Sub-surface types.
const (
	SubSurfaceDoor         = "Door"
	SubSurfaceOverheadDoor = "OverheadDoor"
	SubSurfaceGlassDoor    = "GlassDoor"
	SubSurfaceFixedWindow  = "FixedWindow"
	SubSurfaceOperable     = "OperableWindow"
	SubSurfaceSkylight     = "Skylight"
	SubSurfaceTDDDome      = "TubularDaylightDome"
	SubSurfaceTDDDiffuser  = "TubularDaylightDiffuser"
)

// Component infiltration performance levels.
const (
	InfiltrationBaseline = "baseline"
	InfiltrationAdvanced = "advanced"
)

// cfmPerFt2PerM3PerSPerM2 converts a leakage rate in cfm/ft2 to m3/s-m2.
const cfmPerFt2PerM3PerSPerM2 = 196.85

// Velocity term of the design flow rate equation used for every space.
const infiltrationVelocityCoefficient = 0.224

// Prototype pressure conditions from PNNL-18898.
const (
	infilTerrainAlpha  = 0.22
	infilTestPressure  = 75.0
	infilWindSpeed     = 4.47
	infilAirDensity    = 1.18
	infilSurfacePressC = 0.1617
	infilFlowExponent  = 0.65
)

var surfaceInfiltrationCFMPerFt2 = map[string]map[string]float64{
	InfiltrationBaseline: {
		"roof":             0.12,
		"exterior_wall":    0.12,
		"below_grade_wall": 0.12,
		"slab_on_grade":    0.12,
	},
	InfiltrationAdvanced: {
		"roof":             0.04,
		"exterior_wall":    0.04,
		"below_grade_wall": 0.04,
		"slab_on_grade":    0.04,
	},
}

var subSurfaceInfiltrationCFMPerFt2 = map[string]map[string]float64{
	InfiltrationBaseline: {
		"opaque_door":                      0.40,
		"loading_dock_door":                0.40,
		"swinging_or_revolving_glass_door": 1.0,
		"window":                           0.40,
		"skylight":                         0.40,
	},
	InfiltrationAdvanced: {
		"opaque_door":                      0.20,
		"loading_dock_door":                0.20,
		"swinging_or_revolving_glass_door": 1.0,
		"window":                           0.20,
		"skylight":                         0.20,
	},
}

// SubSurface is a window, door or skylight.
type SubSurface struct {
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type" yaml:"type"`
	NetAreaM2 float64 `json:"net_area_m2" yaml:"net_area_m2"`
}

// Surface is a wall, roof or floor of a space.
type Surface struct {
	Name        string       `json:"name" yaml:"name"`
	Type        string       `json:"type" yaml:"type"`
	Boundary    string       `json:"boundary" yaml:"boundary"`
	NetAreaM2   float64      `json:"net_area_m2" yaml:"net_area_m2"`
	SubSurfaces []SubSurface `json:"sub_surfaces,omitempty" yaml:"sub_surfaces,omitempty"`
}

// Space is the envelope of one space.
type Space struct {
	Name                  string    `json:"name" yaml:"name"`
	StandardsSpaceType    string    `json:"standards_space_type,omitempty" yaml:"standards_space_type,omitempty"`
	StandardsBuildingType string    `json:"standards_building_type,omitempty" yaml:"standards_building_type,omitempty"`
	Surfaces              []Surface `json:"surfaces" yaml:"surfaces"`
}

func (sp Space) area(keep func(Surface) bool) float64 {
	var a float64
	for _, s := range sp.Surfaces {
		if !keep(s) {
			continue
		}
		a += s.NetAreaM2
		for _, sub := range s.SubSurfaces {
			a += sub.NetAreaM2
		}
	}
	return a
}

// ExteriorArea is the gross area of surfaces facing outdoors.
func (sp Space) ExteriorArea() float64 {
	return sp.area(func(s Surface) bool { return s.Boundary == BoundaryOutdoors })
}

// ExteriorWallAndWindowArea is the gross area of exterior walls.
func (sp Space) ExteriorWallAndWindowArea() float64 {
	return sp.area(func(s Surface) bool { return s.Boundary == BoundaryOutdoors && s.Type == SurfaceWall })
}

// ExteriorWallRoofAndOpeningArea is the gross area of exterior walls and roofs.
func (sp Space) ExteriorWallRoofAndOpeningArea() float64 {
	return sp.area(func(s Surface) bool {
		return s.Boundary == BoundaryOutdoors && (s.Type == SurfaceWall || s.Type == SurfaceRoofCeiling)
	})
}

// Infiltration is a design flow rate infiltration object.
type Infiltration struct {
	Name string `json:"name"`
	// FlowPerExteriorAreaM3PerSM2 is spread over every exterior surface of
	// the space, floors included.
	FlowPerExteriorAreaM3PerSM2 float64 `json:"flow_per_exterior_area_m3_per_s_m2"`
	ConstantCoefficient         float64 `json:"constant_coefficient"`
	TemperatureCoefficient      float64 `json:"temperature_coefficient"`
	VelocityCoefficient         float64 `json:"velocity_coefficient"`
	VelocitySquaredCoefficient  float64 `json:"velocity_squared_coefficient"`
}

// AdjustInfiltrationToLowerPressure scales a leakage rate measured at one
// pressure to another with the power law.
func AdjustInfiltrationToLowerPressure(rate, fromPa, toPa, exponent float64) float64 {
	return rate * math.Pow(toPa/fromPa, exponent)
}

// AdjustInfiltrationToPrototypeConditions converts a leakage rate at 75 Pa
// to the typical wind-driven pressure the prototype buildings see.
func AdjustInfiltrationToPrototypeConditions(rateAt75Pa float64) float64 {
	p := 0.5 * infilSurfacePressC * infilAirDensity * infilWindSpeed * infilWindSpeed
	return (1.0 + infilTerrainAlpha) * rateAt75Pa * math.Pow(p/infilTestPressure, infilFlowExponent)
}

// SpaceInfiltration returns the infiltration object for a space. It returns
// nil, without error, for spaces with no exterior walls and, outside NECB,
// for data centers.
func (s *Standard) SpaceInfiltration(sp Space) (*Infiltration, error) {
	log := s.log("infiltration")
	st := strings.ToLower(sp.StandardsSpaceType)
	bt := strings.ToLower(sp.StandardsBuildingType)
	if !s.profile.NECB && (strings.Contains(st, "data center") || strings.Contains(st, "datacenter") ||
		(strings.Contains(bt, "datacenter") && strings.Contains(st, "computerroom"))) {
		return nil, nil
	}

	var total float64
	if rate := s.profile.InfiltrationM3PerSPerM2; rate > 0 {
		area := sp.ExteriorWallRoofAndOpeningArea()
		if area <= 0 {
			log.Infof("For %s, no exterior wall area was found, no infiltration will be added.", s.template)
			return nil, nil
		}
		total = rate * area
	} else {
		base := s.profile.InfiltrationCFMPerFt2At75Pa
		if base == 0 {
			return nil, nil
		}
		adj := AdjustInfiltrationToPrototypeConditions(base)
		area := sp.ExteriorWallAndWindowArea()
		if area <= 0 {
			log.Infof("For %s, no exterior wall area was found, no infiltration will be added.", sp.Name)
			return nil, nil
		}
		log.Infof("For %s, set infiltration rate to %s cfm/ft2 exterior wall area (aka %s cfm/ft2 @75Pa).", sp.Name, fmtNum(round(adj, 3)), fmtNum(base))
		total = adj / cfmPerFt2PerM3PerSPerM2 * area
	}

	ext := sp.ExteriorArea()
	if ext <= 0 {
		return nil, fmt.Errorf("space %q: exterior area is zero", sp.Name)
	}
	perArea := total / ext
	log.Debugf("For %s, adj infil = %s m^3/s*m^2.", sp.Name, fmtNum(round(perArea, 8)))

	inf := &Infiltration{
		Name:                        sp.Name + " Infiltration",
		FlowPerExteriorAreaM3PerSM2: perArea,
		VelocityCoefficient:         infiltrationVelocityCoefficient,
	}
	if !s.profile.NECB {
		inf.FlowPerExteriorAreaM3PerSM2 = round(perArea, 13)
	}
	return inf, nil
}

// SurfaceComponentInfiltration is the leakage of an opaque surface, in m3/s,
// at the given performance level. Interior surfaces leak nothing.
func (s *Standard) SurfaceComponentInfiltration(surf Surface, level string) float64 {
	rates, ok := surfaceInfiltrationCFMPerFt2[level]
	if !ok {
		return 0
	}
	var key string
	switch {
	case surf.Boundary == BoundaryOutdoors && surf.Type == SurfaceRoofCeiling:
		key = "roof"
	case surf.Boundary == BoundaryOutdoors && surf.Type == SurfaceWall:
		key = "exterior_wall"
	case surf.Boundary == BoundaryGround && surf.Type == SurfaceWall:
		key = "below_grade_wall"
	case surf.Boundary == BoundaryGround && surf.Type == SurfaceFloor:
		key = "slab_on_grade"
	case surf.Boundary != BoundaryOutdoors && surf.Boundary != BoundaryGround:
		return 0
	default:
		s.log("infiltration").Warnf("For %s, could not determine surface type for infiltration, will not be included in calculation.", surf.Name)
		return 0
	}
	return units.CFMToM3PerS(units.M2ToFT2(surf.NetAreaM2) * rates[key])
}

// SubSurfaceComponentInfiltration is the leakage of a window, door or
// skylight in an exterior surface, in m3/s.
func (s *Standard) SubSurfaceComponentInfiltration(sub SubSurface, level string) float64 {
	rates, ok := subSurfaceInfiltrationCFMPerFt2[level]
	if !ok {
		return 0
	}
	var key string
	switch sub.Type {
	case SubSurfaceDoor:
		key = "opaque_door"
	case SubSurfaceOverheadDoor:
		key = "loading_dock_door"
	case SubSurfaceGlassDoor:
		s.log("infiltration").Infof("For %s, assuming swinging_or_revolving_glass_door for infiltration calculation.", sub.Name)
		key = "swinging_or_revolving_glass_door"
	case SubSurfaceFixedWindow, SubSurfaceOperable:
		key = "window"
	case SubSurfaceSkylight, SubSurfaceTDDDome, SubSurfaceTDDDiffuser:
		key = "skylight"
	default:
		s.log("infiltration").Warnf("For %s, could not determine surface type for infiltration, will not be included in calculation.", sub.Name)
		return 0
	}
	return units.CFMToM3PerS(units.M2ToFT2(sub.NetAreaM2) * rates[key])
}

// ComponentInfiltration sums the component leakage of every exterior
// surface of a space and its openings, in m3/s.
func (s *Standard) ComponentInfiltration(sp Space, level string) float64 {
	var total float64
	for _, surf := range sp.Surfaces {
		total += s.SurfaceComponentInfiltration(surf, level)
		if surf.Boundary != BoundaryOutdoors {
			continue
		}
		for _, sub := range surf.SubSurfaces {
			total += s.SubSurfaceComponentInfiltration(sub, level)
		}
	}
	return total
}

package standards

import (
	"fmt"
	"math"
	"strings"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Chiller condenser types.
const (
	AirCooled   = "AirCooled"
	WaterCooled = "WaterCooled"
)

var compressorTypes = []string{"Reciprocating", "Rotary Screw", "Scroll", "Centrifugal"}

// Chiller is an electric EIR chiller.
type Chiller struct {
	Name          string  `json:"name" yaml:"name"`
	CondenserType string  `json:"condenser_type" yaml:"condenser_type"`
	CapacityW     float64 `json:"capacity_w" yaml:"capacity_w"`
	// CompressorType overrides the compressor type parsed from the name.
	CompressorType string `json:"compressor_type,omitempty" yaml:"compressor_type,omitempty"`
}

// ChillerResult holds the chiller efficiency and performance curves.
type ChillerResult struct {
	Name           string  `json:"name"`
	COP            float64 `json:"cop"`
	KWPerTon       float64 `json:"kw_per_ton"`
	CapFTCurve     string  `json:"cap_ft_curve,omitempty"`
	EIRFTCurve     string  `json:"eir_ft_curve,omitempty"`
	EIRFPLRCurve   string  `json:"eir_fplr_curve,omitempty"`
	CompliancePath string  `json:"compliance_path,omitempty"`
	// Complete is false when one of the curves could not be set.
	Complete bool `json:"complete"`
}

// ChillerSearchCriteria builds the chillers table search for c.
func (s *Standard) ChillerSearchCriteria(c Chiller) Criteria {
	criteria := Criteria{"template": s.template, "cooling_type": c.CondenserType}
	switch c.CondenserType {
	case AirCooled:
		condenser := "WithCondenser"
		if !strings.Contains(c.Name, "WithCondenser") && strings.Contains(c.Name, "WithoutCondenser") {
			condenser = "WithoutCondenser"
		}
		criteria["condenser_type"] = condenser
	case WaterCooled:
		compressor := c.CompressorType
		if compressor == "" {
			for _, t := range compressorTypes {
				if strings.Contains(c.Name, t) {
					compressor = t
					break
				}
			}
		}
		if compressor != "" {
			criteria["compressor_type"] = compressor
		}
	}
	criteria["compliance_path"] = "Path A"
	return criteria
}

func (s *Standard) chillerRow(c Chiller, criteria Criteria, tons float64) (Row, error) {
	t, err := s.data.Table("chillers")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if row, ok := FindObject(t, criteria, &tons, s.today()); ok {
		return row, nil
	}
	delete(criteria, "compliance_path")
	if row, ok := FindObject(t, criteria, &tons, s.today()); ok {
		return row, nil
	}
	return nil, fmt.Errorf("chiller %q: %w in chillers for %s, capacity %g tons", c.Name, ErrNotFound, criteria, tons)
}

func chillerCOP(row Row) (float64, bool) {
	if cop, ok := row.Float("minimum_coefficient_of_performance"); ok {
		return cop, true
	}
	if eer, ok := row.Float("minimum_energy_efficiency_ratio"); ok {
		return units.EERToCOPNoFan(eer, 0), true
	}
	if kw, ok := row.Float("minimum_kilowatts_per_tons"); ok {
		return units.KWPerTonToCOP(kw), true
	}
	return 0, false
}

// ChillerMinimumCOP returns the minimum full load COP for a chiller.
func (s *Standard) ChillerMinimumCOP(c Chiller) (float64, error) {
	if c.CapacityW <= 0 {
		s.log("chiller").Warnf("For %s capacity is not available, cannot apply efficiency standard.", c.Name)
		return 0, fmt.Errorf("chiller %q: %w", c.Name, ErrNoCapacity)
	}
	row, err := s.chillerRow(c, s.ChillerSearchCriteria(c), units.WToTons(c.CapacityW))
	if err != nil {
		s.log("chiller").Warnf("For %s, cannot find minimum full load efficiency.", c.Name)
		return 0, err
	}
	cop, ok := chillerCOP(row)
	if !ok {
		s.log("chiller").Warnf("For %s, cannot find minimum full load efficiency.", c.Name)
		return 0, fmt.Errorf("chiller %q: %w: no efficiency column", c.Name, ErrNotFound)
	}
	return cop, nil
}

func chillerCurveNames(coolingType, compressor string, tons float64) (capFT, eirFT, eirFPLR string) {
	switch coolingType {
	case AirCooled:
		return "AirCooled_Chiller_2010_PathA_CAPFT", "AirCooled_Chiller_2010_PathA_EIRFT", "AirCooled_Chiller_AllCapacities_2004_2010_EIRFPLR"
	case WaterCooled:
		switch compressor {
		case "Centrifugal":
			if tons >= 150 {
				return "WaterCooled_Centrifugal_Chiller_GT150_2004_CAPFT", "WaterCooled_Centrifugal_Chiller_GT150_2004_EIRFT", "ChlrWtrCentPathAAllEIRRatio_fQRatio"
			}
			return "WaterCooled_Centrifugal_Chiller_LT150_2004_CAPFT", "WaterCooled_Centrifugal_Chiller_LT150_2004_EIRFT", "ChlrWtrCentPathAAllEIRRatio_fQRatio"
		case "Reciprocating", "Rotary Screw", "Scroll":
			return "ChlrWtrPosDispPathAAllQRatio_fTchwsTcwsSI", "ChlrWtrPosDispPathAAllEIRRatio_fTchwsTcwsSI", "ChlrWtrCentPathAAllEIRRatio_fQRatio"
		}
	}
	return "", "", ""
}

// ChillerEfficiency applies the minimum COP and the typical performance
// curves to a chiller.
func (s *Standard) ChillerEfficiency(c Chiller) (ChillerResult, error) {
	log := s.log("chiller")
	if c.CapacityW <= 0 {
		log.Warnf("For %s capacity is not available, cannot apply efficiency standard.", c.Name)
		return ChillerResult{}, fmt.Errorf("chiller %q: %w", c.Name, ErrNoCapacity)
	}
	criteria := s.ChillerSearchCriteria(c)
	tons := units.WToTons(c.CapacityW)
	row, err := s.chillerRow(c, criteria, tons)
	if err != nil {
		log.Warnf("For %s, cannot find chiller properties using %s, cannot apply standard efficiencies or curves.", c.Name, criteria)
		return ChillerResult{}, err
	}
	cop, ok := chillerCOP(row)
	if !ok {
		log.Warnf("For %s, cannot find minimum full load efficiency.", c.Name)
		return ChillerResult{}, fmt.Errorf("chiller %q: %w: no efficiency column", c.Name, ErrNotFound)
	}

	res := ChillerResult{COP: cop, KWPerTon: units.COPToKWPerTon(cop), Complete: true}
	res.CompliancePath, _ = criteria["compliance_path"].(string)
	compressor, _ := criteria["compressor_type"].(string)
	condenser, _ := criteria["condenser_type"].(string)

	capFT, eirFT, eirFPLR := chillerCurveNames(c.CondenserType, compressor, tons)
	for _, cv := range []struct {
		name string
		dst  *string
		what string
	}{
		{capFT, &res.CapFTCurve, "the capacity of the chiller as a function of temperature"},
		{eirFT, &res.EIRFTCurve, "the EIR of the chiller as a function of temperature"},
		{eirFPLR, &res.EIRFPLRCurve, "the EIR of the chiller as a function of part load ratio"},
	} {
		switch {
		case cv.name == "":
			log.Warnf("For %s, cannot find performance curve describing %s, will not be set.", c.Name, cv.what)
			res.Complete = false
		case !s.addCurve(cv.name):
			log.Warnf("For %s, the performance curve describing %s could not be found.", c.Name, cv.what)
			res.Complete = false
		default:
			*cv.dst = cv.name
		}
	}

	res.Name = fmt.Sprintf("%s %.0ftons %skW/ton", c.Name, math.Round(tons), fmtNum(round(res.KWPerTon, 3)))
	log.Infof("For %s: %s: %s %s %s Capacity = %.0ftons; COP = %s (%skW/ton)", s.template, res.Name, c.CondenserType, condenser, compressor, math.Round(tons), fmtNum(round(cop, 1)), fmtNum(round(res.KWPerTon, 3)))
	return res, nil
}

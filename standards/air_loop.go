package standards

import (
	"math"

	"github.com/openstudio-standards/osstd/standards/units"
)

// Economizer control types, named as the simulation engine names them.
const (
	EconomizerNone                           = "NoEconomizer"
	EconomizerFixedDryBulb                   = "FixedDryBulb"
	EconomizerFixedEnthalpy                  = "FixedEnthalpy"
	EconomizerDifferentialDryBulb            = "DifferentialDryBulb"
	EconomizerDifferentialEnthalpy           = "DifferentialEnthalpy"
	EconomizerFixedDewPointAndDryBulb        = "FixedDewPointAndDryBulb"
	EconomizerElectronicEnthalpy             = "ElectronicEnthalpy"
	EconomizerDifferentialDryBulbAndEnthalpy = "DifferentialDryBulbAndEnthalpy"
)

// fixedEnthalpyLimit is the high limit for fixed enthalpy control, Btu/lb.
const fixedEnthalpyLimit = 28.0

// AirLoop describes a central air system.
type AirLoop struct {
	Name                      string  `json:"name" yaml:"name"`
	DesignSupplyAirFlowM3PerS float64 `json:"design_supply_air_flow_m3_per_s" yaml:"design_supply_air_flow_m3_per_s"`
	ZonesServed               int     `json:"zones_served" yaml:"zones_served"`
	FloorAreaServedM2         float64 `json:"floor_area_served_m2" yaml:"floor_area_served_m2"`
	FullyDuctedReturn         bool    `json:"fully_ducted_return,omitempty" yaml:"fully_ducted_return,omitempty"`
	// OutdoorAir is false for loops without an outdoor air system.
	OutdoorAir     bool   `json:"outdoor_air" yaml:"outdoor_air"`
	EconomizerType string `json:"economizer_type,omitempty" yaml:"economizer_type,omitempty"`
	// Fans are the supply, return, relief and exhaust fans in flow order.
	// The last non-exhaust fan is taken as the supply fan.
	Fans []Fan `json:"fans" yaml:"fans"`
}

// EconomizerLimits are the high-limit shutoff settings for an economizer.
// Nil fields have no limit.
type EconomizerLimits struct {
	DryBulbF         *float64 `json:"drybulb_limit_f,omitempty"`
	EnthalpyBtuPerLb *float64 `json:"enthalpy_limit_btu_per_lb,omitempty"`
	DewPointF        *float64 `json:"dewpoint_limit_f,omitempty"`
}

func (l *AirLoop) supplyFanKind() string {
	for i := len(l.Fans) - 1; i >= 0; i-- {
		if l.Fans[i].Kind != FanZoneExhaust {
			return l.Fans[i].Kind
		}
	}
	return ""
}

// FanPowerPressureDropAdjustment is the allowance for pressure-dropping
// devices, in bhp. Only the fully ducted return credit is modeled.
func (s *Standard) FanPowerPressureDropAdjustment(l AirLoop) float64 {
	var inWC float64
	if l.FullyDuctedReturn {
		inWC += 0.5
		s.log("air_loop").Infof("--Added 0.5 in wc for Fully ducted return and/or exhaust air systems")
	}
	cfm := units.M3PerSToCFM(l.DesignSupplyAirFlowM3PerS)
	bhp := inWC * cfm / 4131
	s.log("air_loop").Debugf("For %s: Fan Power Limitation Pressure Drop Adjustment = %s bhp", l.Name, fmtNum(round(bhp, 2)))
	return bhp
}

// AllowableSystemBrakeHorsepower is the baseline fan system allowance.
// Constant volume and on/off supply fans get 0.00094 bhp/cfm, variable
// volume fans 0.0013 bhp/cfm. Under 90.1-2010 a variable volume system
// serving one zone gets the constant volume allowance.
func (s *Standard) AllowableSystemBrakeHorsepower(l AirLoop) float64 {
	log := s.log("air_loop")
	cfm := units.M3PerSToCFM(l.DesignSupplyAirFlowM3PerS)
	adj := s.FanPowerPressureDropAdjustment(l)

	kind := l.supplyFanKind()
	if s.template == "90.1-2010" && kind == FanVariableVolume && l.ZonesServed == 1 {
		kind = FanConstantVolume
		log.Infof("For %s: Using the constant volume limitation because single-zone VAV system.", l.Name)
	}

	var bhp float64
	switch kind {
	case FanConstantVolume, FanOnOff:
		bhp = cfm*0.00094 + adj
	case FanVariableVolume:
		bhp = cfm*0.0013 + adj
	}
	log.Infof("For %s: Allowable brake horsepower = %sHP based on %s cfm and %s bhp of adjustment.", l.Name, fmtNum(round(bhp, 2)), fmtNum(math.Round(cfm)), fmtNum(round(adj, 2)))

	if l.FloorAreaServedM2 == 0 {
		log.Warnf("AirLoopHVAC %s serves zero floor area. Check that it has thermal zones attached to it, and that they have non-zero floor area'.", l.Name)
		return bhp
	}
	ft2 := units.M2ToFT2(l.FloorAreaServedM2)
	log.Debugf("For %s: area served = %s ft^2.", l.Name, fmtNum(math.Round(ft2)))
	log.Debugf("For %s: flow per area = %s cfm/ft^2.", l.Name, fmtNum(round(cfm/ft2, 2)))
	if bhp > 0 {
		log.Debugf("For %s: flow per hp = %s cfm/hp.", l.Name, fmtNum(math.Round(cfm/bhp)))
	}
	return bhp
}

// ApplyPRMBaselineFanPower splits the allowable system brake horsepower
// evenly between the fans of the loop, gives each the minimum efficiency
// motor for its share and sets its pressure rise to draw the allowed power.
func (s *Standard) ApplyPRMBaselineFanPower(l AirLoop) []Fan {
	if len(l.Fans) == 0 {
		return nil
	}
	share := s.AllowableSystemBrakeHorsepower(l) / float64(len(l.Fans))
	out := make([]Fan, len(l.Fans))
	for i, f := range l.Fans {
		f = s.ApplyFanMinimumMotorEfficiency(f, share)
		allowedW := share * 746 / f.motorEfficiency()
		out[i] = s.AdjustFanPressureRise(f, allowedW)
	}
	return out
}

// SystemFanBrakeHorsepower sums the brake horsepower of the loop fans.
func (s *Standard) SystemFanBrakeHorsepower(l AirLoop) float64 {
	var bhp float64
	for _, f := range l.Fans {
		bhp += f.BrakeHorsepower()
	}
	return bhp
}

// EconomizerType is the economizer control prototype air loops get.
// Templates that select by climate zone use differential enthalpy in the
// humid zones 0A through 4A and differential dry-bulb elsewhere.
func (s *Standard) EconomizerType(climateZone string) string {
	if !s.profile.EconomizerTypeByZone {
		return EconomizerFixedDryBulb
	}
	if isASHRAEZone(climateZone, "0A", "1A", "2A", "3A", "4A") {
		return EconomizerDifferentialEnthalpy
	}
	return EconomizerDifferentialDryBulb
}

// EconomizerLimits returns the high-limit settings for the economizer on l.
// Loops without outdoor air or without an economizer have no limits.
func (s *Standard) EconomizerLimits(l AirLoop, climateZone string) EconomizerLimits {
	var lim EconomizerLimits
	if !l.OutdoorAir || l.EconomizerType == "" || l.EconomizerType == EconomizerNone {
		s.log("air_loop").Debugf("For %s no economizer", l.Name)
		return lim
	}

	if s.profile.Economizer == EconomizerLimitsDEER {
		if l.EconomizerType == EconomizerFixedDryBulb {
			lim.EnthalpyBtuPerLb = Ptr(fixedEnthalpyLimit)
			lim.DryBulbF = s.tabledDryBulbLimit(climateZone)
		}
		return lim
	}

	switch l.EconomizerType {
	case EconomizerFixedDryBulb:
		switch s.profile.Economizer {
		case EconomizerLimitsFromTable:
			lim.DryBulbF = s.tabledDryBulbLimit(climateZone)
		case EconomizerLimitsZNE:
			switch {
			case isASHRAEZone(climateZone, "1B", "2B", "3B", "3C", "4B", "4C", "5B", "5C", "6B", "7A", "7B", "8A", "8B"):
				lim.DryBulbF = Ptr(75)
			case isASHRAEZone(climateZone, "5A", "6A"):
				lim.DryBulbF = Ptr(70)
			}
		default:
			switch {
			case isASHRAEZone(climateZone, "1B", "2B", "3B", "3C", "4B", "4C", "5B", "5C", "6B", "7B", "8A", "8B"):
				lim.DryBulbF = Ptr(75)
			case isASHRAEZone(climateZone, "5A", "6A", "7A"):
				lim.DryBulbF = Ptr(70)
			case isASHRAEZone(climateZone, "1A", "2A", "3A", "4A"):
				lim.DryBulbF = Ptr(65)
			}
		}
	case EconomizerFixedEnthalpy:
		lim.EnthalpyBtuPerLb = Ptr(fixedEnthalpyLimit)
	case EconomizerFixedDewPointAndDryBulb:
		lim.DryBulbF = Ptr(75)
		lim.DewPointF = Ptr(55)
	case EconomizerDifferentialDryBulb, EconomizerDifferentialEnthalpy:
		s.log("air_loop").Debugf("For %s: Economizer type = %s, no limits defined.", l.Name, l.EconomizerType)
	}
	s.log("air_loop").Infof("For %s: Economizer type = %s, limits [%s,%s,%s]", l.Name, l.EconomizerType, fmtOpt(lim.DryBulbF), fmtOpt(lim.EnthalpyBtuPerLb), fmtOpt(lim.DewPointF))
	return lim
}

func (s *Standard) tabledDryBulbLimit(climateZone string) *float64 {
	row, err := s.lookup("economizers", Criteria{"template": s.template, "climate_zone": climateZone}, nil, nil)
	if err != nil {
		s.log("air_loop").Warnf("No economizer limits for %s: %v", climateZone, err)
		return nil
	}
	v, ok := row.Float("fixed_dry_bulb_high_limit_shutoff_temp")
	if !ok {
		return nil
	}
	return &v
}

func fmtOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtNum(*v)
}

// EconomizerTypeAllowable reports whether the economizer on l is permitted
// in climateZone. Loops without an economizer always pass.
func (s *Standard) EconomizerTypeAllowable(l AirLoop, climateZone string) bool {
	if !l.OutdoorAir || l.EconomizerType == "" || l.EconomizerType == EconomizerNone {
		return true
	}
	if s.profile.Family == FamilyDEER {
		return l.EconomizerType == EconomizerFixedDryBulb
	}
	var prohibited string
	switch {
	case isASHRAEZone(climateZone, "0B", "1B", "2B", "3B", "3C", "4B", "4C", "5B", "6B", "7A", "7B", "8A", "8B"):
		prohibited = EconomizerFixedEnthalpy
	case isASHRAEZone(climateZone, "0A", "1A", "2A", "3A", "4A"):
		prohibited = EconomizerDifferentialDryBulb
	}
	return l.EconomizerType != prohibited
}

// DemandControlVentilationLimits returns the outdoor air flows, in cfm,
// above which DCV is required for systems without and with an economizer.
func (s *Standard) DemandControlVentilationLimits() DCVLimits {
	return s.profile.DCV
}

// DCVRequired reports whether a loop with the given outdoor air flow needs
// demand control ventilation.
func (s *Standard) DCVRequired(l AirLoop, outdoorAirCFM float64) bool {
	lim := s.profile.DCV
	if lim.WithEconomizerCFM == 0 && lim.WithoutEconomizerCFM == 0 {
		return false
	}
	hasEcon := l.OutdoorAir && l.EconomizerType != "" && l.EconomizerType != EconomizerNone
	if hasEcon {
		return outdoorAirCFM > lim.WithEconomizerCFM
	}
	return outdoorAirCFM > lim.WithoutEconomizerCFM
}

package units

import "math"

// Efficiency conversions follow the PNNL regressions the 90.1 prototype
// models are built with. "NoFan" variants strip the rated indoor fan power so
// the result can be used as the coil COP in the simulation engine.

// SEERToCOPNoFan converts a seasonal energy efficiency ratio to a coil COP.
func SEERToCOPNoFan(seer float64) float64 {
	return -0.0076*seer*seer + 0.3796*seer
}

// COPNoFanToSEER is the inverse of SEERToCOPNoFan.
func COPNoFanToSEER(cop float64) float64 {
	delta := 0.3796*0.3796 - 4.0*0.0076*cop
	return (0.3796 - math.Sqrt(delta)) / (2.0 * 0.0076)
}

// SEERToCOP converts SEER to a COP that includes fan power.
func SEERToCOP(seer float64) float64 {
	eer := -0.0182*seer*seer + 1.1088*seer
	return EERToCOP(eer)
}

// COPToSEER is the inverse of SEERToCOP.
func COPToSEER(cop float64) float64 {
	eer := COPToEER(cop)
	delta := 1.1088*1.1088 - 4.0*0.0182*eer
	return (1.1088 - math.Sqrt(delta)) / (2.0 * 0.0182)
}

// COPHeatingToCOPHeatingNoFan converts a heating COP at 47F to a coil COP.
func COPHeatingToCOPHeatingNoFan(coph47, capacityW float64) float64 {
	btuh := WToBtuPerHr(capacityW)
	return 1.48e-7*coph47*btuh + 1.062*coph47
}

// HSPFToCOPNoFan converts a heating seasonal performance factor to a coil COP.
func HSPFToCOPNoFan(hspf float64) float64 {
	return -0.0296*hspf*hspf + 0.7134*hspf
}

// HSPFToCOP converts HSPF to a COP that includes fan power.
func HSPFToCOP(hspf float64) float64 {
	return -0.0255*hspf*hspf + 0.6239*hspf
}

// pnnlBtuPerWh is the rounded conversion the PNNL fan-power regressions were
// fitted with.
const pnnlBtuPerWh = 3.413

// EERToCOPNoFan converts EER to a coil COP. A capacity of zero or less selects
// the capacity-independent regression.
func EERToCOPNoFan(eer, capacityW float64) float64 {
	if capacityW <= 0 {
		const r = 0.12 // fan power ratio
		return (eer/pnnlBtuPerWh + r) / (1 - r)
	}
	btuh := WToBtuPerHr(capacityW)
	return 7.84e-8*eer*btuh + 0.338*eer
}

// COPNoFanToEER is the inverse of EERToCOPNoFan.
func COPNoFanToEER(cop, capacityW float64) float64 {
	if capacityW <= 0 {
		const r = 0.12
		return pnnlBtuPerWh * (cop*(1-r) - r)
	}
	btuh := WToBtuPerHr(capacityW)
	return cop / (7.84e-8*btuh + 0.338)
}

// IEERToCOPNoFan converts an integrated energy efficiency ratio to a coil COP.
func IEERToCOPNoFan(ieer float64) float64 {
	eer := 0.0183*ieer*ieer - 0.4552*ieer + 13.21
	return EERToCOPNoFan(eer, 0)
}

// EERToCOP converts EER (Btu/Wh) to COP.
func EERToCOP(eer float64) float64 { return eer / BtuPerHrPerW }

// COPToEER converts COP to EER.
func COPToEER(cop float64) float64 { return cop * BtuPerHrPerW }

// COPToKWPerTon converts COP to kW/ton.
func COPToKWPerTon(cop float64) float64 { return KWPerTonPerCOP / cop }

// KWPerTonToCOP converts kW/ton to COP.
func KWPerTonToCOP(kwPerTon float64) float64 { return KWPerTonPerCOP / kwPerTon }

// AFUEToThermalEff treats AFUE as thermal efficiency.
func AFUEToThermalEff(afue float64) float64 { return afue }

// ThermalEffToAFUE treats thermal efficiency as AFUE.
func ThermalEffToAFUE(teff float64) float64 { return teff }

// CombustionEffToThermalEff subtracts the flue loss allowance.
func CombustionEffToThermalEff(ec float64) float64 { return ec - 0.007 }

// ThermalEffToCombustionEff adds the flue loss allowance.
func ThermalEffToCombustionEff(et float64) float64 { return et + 0.007 }

// Package units converts between the SI units the simulation engine stores and
// the IP units the standards tables are written in, and between the
// efficiency metrics used by equipment ratings.
package units

// Conversion factors match the OpenStudio unit system.
const (
	BtuPerHrPerW   = 3.412141633 // 1 W in Btu/h
	BtuPerHrPerTon = 12000.0
	GPMPerM3PerS   = 15850.32314
	CFMPerM3PerS   = 2118.880003
	FT2PerM2       = 10.76391042
	PaPerInH2O     = 249.08891
	PaPerFtH2O     = 2989.06692
	GalPerM3       = 264.1720524
	WPerHP         = 745.6998716
	KWPerTonPerCOP = 3.517 // kW/ton <-> COP, as written in the 90.1 tables
	JPerGJ         = 1.0e9
	KBtuPerGJ      = 947817.1203
	WPerKPerBtuHrF = 0.5275279 // 1 Btu/h-F in W/K
)

// WToBtuPerHr converts watts to Btu/h.
func WToBtuPerHr(w float64) float64 { return w * BtuPerHrPerW }

// BtuPerHrToW converts Btu/h to watts.
func BtuPerHrToW(btuh float64) float64 { return btuh / BtuPerHrPerW }

// WToKBtuPerHr converts watts to kBtu/h.
func WToKBtuPerHr(w float64) float64 { return WToBtuPerHr(w) / 1000.0 }

// KBtuPerHrToW converts kBtu/h to watts.
func KBtuPerHrToW(kbtuh float64) float64 { return BtuPerHrToW(kbtuh * 1000.0) }

// WToTons converts watts of cooling to refrigeration tons.
func WToTons(w float64) float64 { return WToBtuPerHr(w) / BtuPerHrPerTon }

// TonsToW converts refrigeration tons to watts.
func TonsToW(tons float64) float64 { return BtuPerHrToW(tons * BtuPerHrPerTon) }

// M3PerSToGPM converts a volumetric water flow to gallons per minute.
func M3PerSToGPM(v float64) float64 { return v * GPMPerM3PerS }

// GPMToM3PerS converts gallons per minute to m3/s.
func GPMToM3PerS(gpm float64) float64 { return gpm / GPMPerM3PerS }

// M3PerSToCFM converts a volumetric air flow to cubic feet per minute.
func M3PerSToCFM(v float64) float64 { return v * CFMPerM3PerS }

// CFMToM3PerS converts cubic feet per minute to m3/s.
func CFMToM3PerS(cfm float64) float64 { return cfm / CFMPerM3PerS }

// M2ToFT2 converts square meters to square feet.
func M2ToFT2(a float64) float64 { return a * FT2PerM2 }

// FT2ToM2 converts square feet to square meters.
func FT2ToM2(a float64) float64 { return a / FT2PerM2 }

// PaToInH2O converts pascals to inches of water column.
func PaToInH2O(p float64) float64 { return p / PaPerInH2O }

// InH2OToPa converts inches of water column to pascals.
func InH2OToPa(p float64) float64 { return p * PaPerInH2O }

// PaToFtH2O converts pascals to feet of water column.
func PaToFtH2O(p float64) float64 { return p / PaPerFtH2O }

// BtuPerHrFToWPerK converts a heat loss coefficient from Btu/h-F to W/K.
func BtuPerHrFToWPerK(ua float64) float64 { return ua * WPerKPerBtuHrF }

// M3ToGal converts cubic meters to US gallons.
func M3ToGal(v float64) float64 { return v * GalPerM3 }

// GalToM3 converts US gallons to cubic meters.
func GalToM3(v float64) float64 { return v / GalPerM3 }

// WToHP converts watts to horsepower.
func WToHP(w float64) float64 { return w / WPerHP }

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*1.8 + 32.0 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32.0) / 1.8 }

// GJToKBtu converts gigajoules to kBtu.
func GJToKBtu(gj float64) float64 { return gj * KBtuPerGJ }

// WPerGPMToWsPerM3 converts a pump power density in W/gpm to W*s/m3, which is
// the same as the pressure rise in Pa for a lossless pump.
func WPerGPMToWsPerM3(wPerGPM float64) float64 {
	return wPerGPM * GPMPerM3PerS
}

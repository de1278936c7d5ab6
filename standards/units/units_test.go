package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		to   func(float64) float64
		from func(float64) float64
		in   float64
	}{
		{"W<->Btu/h", WToBtuPerHr, BtuPerHrToW, 1234.5},
		{"W<->kBtu/h", WToKBtuPerHr, KBtuPerHrToW, 88000},
		{"W<->tons", WToTons, TonsToW, 350000},
		{"m3/s<->gpm", M3PerSToGPM, GPMToM3PerS, 0.012},
		{"m3/s<->cfm", M3PerSToCFM, CFMToM3PerS, 4.7},
		{"m2<->ft2", M2ToFT2, FT2ToM2, 1858.06},
		{"Pa<->inH2O", PaToInH2O, InH2OToPa, 622.5},
		{"m3<->gal", M3ToGal, GalToM3, 0.7},
		{"C<->F", CToF, FToC, 21.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.in, tc.from(tc.to(tc.in)), 1e-9)
		})
	}
}

func TestWToTons_OneTon(t *testing.T) {
	assert.InDelta(t, 1.0, WToTons(3516.8528), 1e-6)
}

func TestSEERConversions(t *testing.T) {
	cop := SEERToCOPNoFan(13.0)
	assert.InDelta(t, -0.0076*169+0.3796*13, cop, 1e-12)
	assert.InDelta(t, 13.0, COPNoFanToSEER(cop), 1e-9)

	copFan := SEERToCOP(14.0)
	assert.InDelta(t, 14.0, COPToSEER(copFan), 1e-9)
}

func TestEERToCOPNoFan(t *testing.T) {
	// capacity-independent form
	got := EERToCOPNoFan(11.0, 0)
	want := (11.0/3.413 + 0.12) / 0.88
	assert.InDelta(t, want, got, 1e-12)
	assert.InDelta(t, 11.0, COPNoFanToEER(got, 0), 1e-9)

	// capacity form
	capW := BtuPerHrToW(100000)
	got = EERToCOPNoFan(11.0, capW)
	assert.InDelta(t, 7.84e-8*11.0*100000+0.338*11.0, got, 1e-9)
	assert.InDelta(t, 11.0, COPNoFanToEER(got, capW), 1e-9)
}

func TestIEERToCOPNoFan(t *testing.T) {
	eer := 0.0183*12.8*12.8 - 0.4552*12.8 + 13.21
	assert.InDelta(t, EERToCOPNoFan(eer, 0), IEERToCOPNoFan(12.8), 1e-12)
}

func TestHeatingConversions(t *testing.T) {
	assert.InDelta(t, -0.0296*64+0.7134*8, HSPFToCOPNoFan(8), 1e-12)
	assert.InDelta(t, -0.0255*64+0.6239*8, HSPFToCOP(8), 1e-12)
	capW := BtuPerHrToW(12000)
	assert.InDelta(t, 1.48e-7*3.3*12000+1.062*3.3, COPHeatingToCOPHeatingNoFan(3.3, capW), 1e-9)
}

func TestChillerAndBoilerConversions(t *testing.T) {
	assert.InDelta(t, 3.517/0.576, KWPerTonToCOP(0.576), 1e-12)
	assert.InDelta(t, 0.576, COPToKWPerTon(KWPerTonToCOP(0.576)), 1e-12)
	assert.InDelta(t, 10.0/3.412141633, EERToCOP(10.0), 1e-12)
	assert.Equal(t, 0.8, AFUEToThermalEff(0.8))
	assert.Equal(t, 0.8, ThermalEffToAFUE(0.8))
	assert.InDelta(t, 0.813, CombustionEffToThermalEff(0.82), 1e-12)
	assert.InDelta(t, 0.82, ThermalEffToCombustionEff(0.813), 1e-12)
	assert.False(t, math.IsNaN(COPNoFanToSEER(3.0)))
}

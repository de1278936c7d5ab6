package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func biquadRow() map[string]any {
	return map[string]any{
		"name":    "CoilClgDXQRatio_fTwbToadbSI",
		"form":    "BiQuadratic",
		"coeff_1": 0.9712, "coeff_2": 0.0066, "coeff_3": 0.0,
		"coeff_4": -0.0010, "coeff_5": -0.0001, "coeff_6": 0.0,
		"minimum_independent_variable_1":    12.8,
		"maximum_independent_variable_1":    26.7,
		"minimum_independent_variable_2":    7.2,
		"maximum_independent_variable_2":    48.1,
		"minimum_dependent_variable_output": 0.5,
	}
}

func TestFromRow_BiQuadratic(t *testing.T) {
	c, err := FromRow(biquadRow())
	require.NoError(t, err)
	assert.Equal(t, BiQuadratic, c.Form)
	assert.Len(t, c.Coeffs, 6)
	require.NotNil(t, c.MaxY)
	assert.Equal(t, 48.1, *c.MaxY)
	assert.Nil(t, c.MaxOut)
}

func TestFromRow_BiLinearStoredAsBiquadratic(t *testing.T) {
	c, err := FromRow(map[string]any{
		"name": "bl", "form": "BiLinear", "coeff_1": 1.0, "coeff_2": 2.0, "coeff_3": 3.0,
	})
	require.NoError(t, err)
	assert.Equal(t, BiQuadratic, c.Form)
	assert.Equal(t, []float64{1, 2, 0, 3, 0, 0}, c.Coeffs)
	assert.InDelta(t, 1+2*2+3*5, c.Evaluate(2, 5), 1e-12)
}

func TestFromRow_Errors(t *testing.T) {
	_, err := FromRow(map[string]any{"name": "x", "form": "Exponent"})
	assert.ErrorContains(t, err, "invalid form")

	_, err = FromRow(map[string]any{"name": "x", "form": "Linear", "coeff_1": 1.0})
	assert.ErrorContains(t, err, "coeff_2")
}

func TestEvaluate_Clamps(t *testing.T) {
	c, err := FromRow(biquadRow())
	require.NoError(t, err)

	// x below its minimum evaluates at the minimum
	assert.InDelta(t, c.Evaluate(12.8, 20), c.Evaluate(0, 20), 1e-12)
	// y above its maximum evaluates at the maximum
	assert.InDelta(t, c.Evaluate(20, 48.1), c.Evaluate(20, 60), 1e-12)

	lin := &Curve{Name: "lin", Form: Linear, Coeffs: []float64{0, 1}}
	hi := 0.8
	lin.MaxOut = &hi
	assert.Equal(t, 0.8, lin.Evaluate(3, 0))
	assert.Equal(t, 0.5, lin.Evaluate(0.5, 0))
}

func TestEvaluate_Forms(t *testing.T) {
	tests := []struct {
		form   Form
		coeffs []float64
		x, y   float64
		want   float64
	}{
		{Linear, []float64{1, 2}, 3, 0, 7},
		{Quadratic, []float64{1, 2, 3}, 2, 0, 17},
		{Cubic, []float64{1, 0, 0, 1}, 2, 0, 9},
		{BiCubic, []float64{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}, 1, 2, 1 + 8 + 2 + 4},
	}
	for _, tc := range tests {
		t.Run(string(tc.form), func(t *testing.T) {
			c := &Curve{Form: tc.form, Coeffs: tc.coeffs}
			assert.InDelta(t, tc.want, c.Evaluate(tc.x, tc.y), 1e-12)
		})
	}
}

func TestLibrary_AddReusesByName(t *testing.T) {
	lib := NewLibrary([]map[string]any{biquadRow()})
	a, err := lib.Add("CoilClgDXQRatio_fTwbToadbSI")
	require.NoError(t, err)
	b, err := lib.Add("CoilClgDXQRatio_fTwbToadbSI")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"CoilClgDXQRatio_fTwbToadbSI"}, lib.Added())

	_, err = lib.Add("missing")
	assert.Error(t, err)
}

func TestConvertBiquadratic_RoundTrip(t *testing.T) {
	ip := []float64{0.8, 0.01, -0.0001, 0.002, -0.00003, 0.00005}
	si, err := ConvertBiquadratic(ip, IPToSI)
	require.NoError(t, err)

	// same output at 67F/95F and 19.444C/35C
	ipCurve := &Curve{Form: BiQuadratic, Coeffs: ip}
	siCurve := &Curve{Form: BiQuadratic, Coeffs: si}
	assert.InDelta(t, ipCurve.Evaluate(67, 95), siCurve.Evaluate((67-32)/1.8, 35), 1e-9)

	back, err := ConvertBiquadratic(si, SIToIP)
	require.NoError(t, err)
	assert.InDeltaSlice(t, ip, back, 1e-9)

	_, err = ConvertBiquadratic([]float64{1, 2}, IPToSI)
	assert.Error(t, err)
}

func TestFitBiquadratic_RecoversCoefficients(t *testing.T) {
	want := []float64{0.9, 0.02, -0.0003, -0.01, 0.0001, -0.0002}
	truth := &Curve{Form: BiQuadratic, Coeffs: want}
	var xs, ys, zs []float64
	for x := 12.0; x <= 24; x += 3 {
		for y := 18.0; y <= 46; y += 7 {
			xs = append(xs, x)
			ys = append(ys, y)
			zs = append(zs, truth.Evaluate(x, y))
		}
	}
	got, err := FitBiquadratic(xs, ys, zs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-8)
}

func TestFitQuadratic(t *testing.T) {
	got, err := FitQuadratic([]float64{0, 0.25, 0.5, 0.75, 1}, []float64{0.2, 0.3125, 0.45, 0.6125, 0.8})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.2}, got, 1e-9)

	_, err = FitQuadratic([]float64{1, 2}, []float64{1, 2})
	assert.Error(t, err)
}

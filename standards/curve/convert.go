package curve

import "fmt"

// Direction selects the unit conversion applied by ConvertBiquadratic.
type Direction int

const (
	IPToSI Direction = iota
	SIToIP
)

// ConvertBiquadratic rewrites the six coefficients of a biquadratic in
// temperature so that it takes Celsius instead of Fahrenheit inputs (IPToSI)
// or the reverse. The curve output is unchanged.
func ConvertBiquadratic(coeffs []float64, dir Direction) ([]float64, error) {
	if len(coeffs) != 6 {
		return nil, fmt.Errorf("biquadratic needs 6 coefficients, got %d", len(coeffs))
	}
	c := coeffs
	switch dir {
	case IPToSI:
		return []float64{
			c[0] + 32.0*(c[1]+c[3]) + 1024.0*(c[2]+c[4]+c[5]),
			9.0/5.0*c[1] + 576.0/5.0*c[2] + 288.0/5.0*c[5],
			81.0 / 25.0 * c[2],
			9.0/5.0*c[3] + 576.0/5.0*c[4] + 288.0/5.0*c[5],
			81.0 / 25.0 * c[4],
			81.0 / 25.0 * c[5],
		}, nil
	case SIToIP:
		return []float64{
			c[0] - 160.0/9.0*(c[1]+c[3]) + 25600.0/81.0*(c[2]+c[4]+c[5]),
			5.0 / 9.0 * (c[1] - 320.0/9.0*c[2] - 160.0/9.0*c[5]),
			25.0 / 81.0 * c[2],
			5.0 / 9.0 * (c[3] - 320.0/9.0*c[4] - 160.0/9.0*c[5]),
			25.0 / 81.0 * c[4],
			25.0 / 81.0 * c[5],
		}, nil
	}
	return nil, fmt.Errorf("unknown conversion direction %d", dir)
}

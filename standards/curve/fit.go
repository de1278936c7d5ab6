package curve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FitQuadratic returns the least-squares coefficients of
// z = c0 + c1*x + c2*x^2.
func FitQuadratic(x, z []float64) ([]float64, error) {
	if len(x) != len(z) {
		return nil, fmt.Errorf("fit quadratic: %d x values for %d outputs", len(x), len(z))
	}
	return solve(len(x), 3, func(i int) []float64 {
		return []float64{1, x[i], x[i] * x[i]}
	}, z)
}

// FitBiquadratic returns the least-squares coefficients of
// z = c0 + c1*x + c2*x^2 + c3*y + c4*y^2 + c5*x*y.
func FitBiquadratic(x, y, z []float64) ([]float64, error) {
	if len(x) != len(z) || len(y) != len(z) {
		return nil, fmt.Errorf("fit biquadratic: mismatched inputs x=%d y=%d z=%d", len(x), len(y), len(z))
	}
	return solve(len(x), 6, func(i int) []float64 {
		return []float64{1, x[i], x[i] * x[i], y[i], y[i] * y[i], x[i] * y[i]}
	}, z)
}

func solve(n, terms int, row func(int) []float64, z []float64) ([]float64, error) {
	if n < terms {
		return nil, fmt.Errorf("need at least %d points to fit %d coefficients, got %d", terms, terms, n)
	}
	a := mat.NewDense(n, terms, nil)
	for i := 0; i < n; i++ {
		a.SetRow(i, row(i))
	}
	b := mat.NewVecDense(n, append([]float64(nil), z...))

	var qr mat.QR
	qr.Factorize(a)
	var coeffs mat.VecDense
	if err := qr.SolveVecTo(&coeffs, false, b); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}
	return mat.Col(nil, 0, &coeffs), nil
}

// Package curve holds performance curves as they appear in the standards
// data: coefficients, independent variable limits and output limits.
package curve

import (
	"fmt"
	"math"
)

// Form is the functional shape of a curve.
type Form string

const (
	Linear      Form = "Linear"
	Quadratic   Form = "Quadratic"
	Cubic       Form = "Cubic"
	BiLinear    Form = "BiLinear"
	BiQuadratic Form = "BiQuadratic"
	BiCubic     Form = "BiCubic"
)

// coefficientCounts is the number of coeff_N columns read for each form.
var coefficientCounts = map[Form]int{
	Linear:      2,
	Quadratic:   3,
	Cubic:       4,
	BiLinear:    3,
	BiQuadratic: 6,
	BiCubic:     10,
}

// Curve is a named performance curve. BiLinear rows are stored as a
// biquadratic with the squared and cross terms set to zero, so Form is never
// BiLinear after FromRow.
type Curve struct {
	Name   string    `json:"name" yaml:"name"`
	Form   Form      `json:"form" yaml:"form"`
	Coeffs []float64 `json:"coefficients" yaml:"coefficients"`

	MinX   *float64 `json:"minimum_x,omitempty" yaml:"minimum_x,omitempty"`
	MaxX   *float64 `json:"maximum_x,omitempty" yaml:"maximum_x,omitempty"`
	MinY   *float64 `json:"minimum_y,omitempty" yaml:"minimum_y,omitempty"`
	MaxY   *float64 `json:"maximum_y,omitempty" yaml:"maximum_y,omitempty"`
	MinOut *float64 `json:"minimum_output,omitempty" yaml:"minimum_output,omitempty"`
	MaxOut *float64 `json:"maximum_output,omitempty" yaml:"maximum_output,omitempty"`
}

// FromRow builds a curve from a row of the curves table.
func FromRow(row map[string]any) (*Curve, error) {
	name, _ := row["name"].(string)
	formName, _ := row["form"].(string)
	form := Form(formName)
	n, ok := coefficientCounts[form]
	if !ok {
		return nil, fmt.Errorf("curve %q has an invalid form %q", name, formName)
	}

	raw := make([]float64, n)
	for i := range raw {
		key := fmt.Sprintf("coeff_%d", i+1)
		v, ok := number(row[key])
		if !ok {
			return nil, fmt.Errorf("curve %q: missing %s", name, key)
		}
		raw[i] = v
	}

	c := &Curve{Name: name, Form: form, Coeffs: raw}
	if form == BiLinear {
		c.Form = BiQuadratic
		c.Coeffs = []float64{raw[0], raw[1], 0, raw[2], 0, 0}
	}
	c.MinX = optional(row, "minimum_independent_variable_1")
	c.MaxX = optional(row, "maximum_independent_variable_1")
	if c.TwoVariables() {
		c.MinY = optional(row, "minimum_independent_variable_2")
		c.MaxY = optional(row, "maximum_independent_variable_2")
	}
	c.MinOut = optional(row, "minimum_dependent_variable_output")
	c.MaxOut = optional(row, "maximum_dependent_variable_output")
	return c, nil
}

// TwoVariables reports whether the curve takes an x and a y.
func (c *Curve) TwoVariables() bool {
	return c.Form == BiQuadratic || c.Form == BiCubic || c.Form == BiLinear
}

// Evaluate returns the curve output. Inputs are clamped to the independent
// variable limits and the result to the output limits. y is ignored by
// single-variable curves.
func (c *Curve) Evaluate(x, y float64) float64 {
	x = clamp(x, c.MinX, c.MaxX)
	y = clamp(y, c.MinY, c.MaxY)
	k := c.Coeffs
	var out float64
	switch c.Form {
	case Linear:
		out = k[0] + k[1]*x
	case Quadratic:
		out = k[0] + k[1]*x + k[2]*x*x
	case Cubic:
		out = k[0] + k[1]*x + k[2]*x*x + k[3]*x*x*x
	case BiQuadratic:
		out = k[0] + k[1]*x + k[2]*x*x + k[3]*y + k[4]*y*y + k[5]*x*y
	case BiCubic:
		out = k[0] + k[1]*x + k[2]*x*x + k[3]*y + k[4]*y*y + k[5]*x*y +
			k[6]*x*x*x + k[7]*y*y*y + k[8]*x*x*y + k[9]*x*y*y
	default:
		return math.NaN()
	}
	return clamp(out, c.MinOut, c.MaxOut)
}

func clamp(v float64, lo, hi *float64) float64 {
	if lo != nil && v < *lo {
		v = *lo
	}
	if hi != nil && v > *hi {
		v = *hi
	}
	return v
}

func optional(row map[string]any, key string) *float64 {
	v, ok := number(row[key])
	if !ok {
		return nil
	}
	return &v
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

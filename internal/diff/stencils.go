// Package diff approximates derivatives with finite-difference stencils:
// forward, backward, central and five-point, plus Richardson
// extrapolation over any of them. The central stencil doubles as the
// derivative fallback for Newton-Raphson when no analytic derivative is
// supplied.
package diff

import (
	"fmt"
	"math"
)

// Func is a scalar function that may be undefined at some points.
type Func = func(x float64) (float64, error)

// Method selects the base stencil.
type Method string

const (
	Forward   Method = "forward"
	Backward  Method = "backward"
	Central   Method = "central"
	FivePoint Method = "five_point"
)

// DefaultStep is the step used when the caller does not choose one.
const DefaultStep = 1e-5

// Sample is one function evaluation used by a stencil.
type Sample struct {
	X float64
	F float64
}

// Result is the outcome of one derivative approximation.
type Result struct {
	Value      float64
	Method     Method
	Order      int // derivative order, 1..3
	Step       float64
	Point      float64
	ErrorOrder string
	Samples    []Sample
	Richardson bool
}

// stencil is a fixed linear combination of samples at offsets from x,
// scaled by factor*h^power.
type stencil struct {
	offsets []float64
	coeffs  []float64
	factor  float64
	power   int
	errOrd  string
	// accuracy exponent p in the O(h^p) truncation term; Richardson
	// cancellation uses it to form the 2^p weights.
	accuracy int
}

var stencils = map[Method]map[int]stencil{
	Forward: {
		1: {[]float64{0, 1}, []float64{-1, 1}, 1, 1, "O(h)", 1},
		2: {[]float64{0, 1, 2}, []float64{1, -2, 1}, 1, 2, "O(h)", 1},
		3: {[]float64{0, 1, 2, 3}, []float64{-1, 3, -3, 1}, 1, 3, "O(h)", 1},
	},
	Backward: {
		1: {[]float64{-1, 0}, []float64{-1, 1}, 1, 1, "O(h)", 1},
		2: {[]float64{-2, -1, 0}, []float64{1, -2, 1}, 1, 2, "O(h)", 1},
		3: {[]float64{-3, -2, -1, 0}, []float64{-1, 3, -3, 1}, 1, 3, "O(h)", 1},
	},
	Central: {
		1: {[]float64{-1, 1}, []float64{-1, 1}, 2, 1, "O(h²)", 2},
		2: {[]float64{-1, 0, 1}, []float64{1, -2, 1}, 1, 2, "O(h²)", 2},
		3: {[]float64{-2, -1, 1, 2}, []float64{-1, 2, -2, 1}, 2, 3, "O(h²)", 2},
	},
	FivePoint: {
		1: {[]float64{-2, -1, 1, 2}, []float64{1, -8, 8, -1}, 12, 1, "O(h⁴)", 4},
		2: {[]float64{-2, -1, 0, 1, 2}, []float64{-1, 16, -30, 16, -1}, 12, 2, "O(h⁴)", 4},
	},
}

// Derivative approximates the order-th derivative of f at x using the
// given stencil and step h. Supported orders: 1..3 for forward, backward
// and central, 1..2 for the five-point stencil.
func Derivative(m Method, f Func, x, h float64, order int) (*Result, error) {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("step must be positive and finite, got %g", h)
	}
	byOrder, ok := stencils[m]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", m)
	}
	s, ok := byOrder[order]
	if !ok {
		return nil, fmt.Errorf("%s stencil does not support derivative order %d", m, order)
	}

	samples := make([]Sample, len(s.offsets))
	sum := 0.0
	for i, off := range s.offsets {
		xi := x + off*h
		fi, err := f(xi)
		if err != nil {
			return nil, fmt.Errorf("evaluating stencil point x=%g: %w", xi, err)
		}
		samples[i] = Sample{X: xi, F: fi}
		sum += s.coeffs[i] * fi
	}

	return &Result{
		Value:      sum / (s.factor * math.Pow(h, float64(s.power))),
		Method:     m,
		Order:      order,
		Step:       h,
		Point:      x,
		ErrorOrder: s.errOrd,
		Samples:    samples,
	}, nil
}

// First approximates the first derivative; shorthand for the common case.
func First(m Method, f Func, x, h float64) (*Result, error) {
	return Derivative(m, f, x, h, 1)
}

// CentralFunc returns a reusable first-derivative approximation built on
// the central stencil with the default step. roots.NewtonRaphson uses it
// when no analytic derivative is supplied.
func CentralFunc(f Func) Func {
	return func(x float64) (float64, error) {
		r, err := Derivative(Central, f, x, DefaultStep, 1)
		if err != nil {
			return 0, err
		}
		return r.Value, nil
	}
}

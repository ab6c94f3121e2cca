// Package ode integrates scalar initial-value problems dy/dt = f(t, y).
//
// Fixed-step methods: [Euler] (first order), [Heun] and [RK2] (second
// order), [RK4] (fourth order). [RK45] is an adaptive embedded
// Runge-Kutta pair with step-size control.
package ode

import (
	"fmt"

	"github.com/dfranco-uni/numlab/internal/validate"
)

// Func is the right-hand side f(t, y). It may be undefined at some
// points, which aborts the step.
type Func = func(t, y float64) (float64, error)

// Step records one step attempt. Fixed-step methods record only accepted
// steps; RK45 also records rejections.
type Step struct {
	Index       int
	T           float64
	Y           float64
	H           float64
	ErrEstimate float64
	Accepted    bool
}

// Result is a computed trajectory. T and Y are parallel, starting at the
// initial condition.
type Result struct {
	Method         string
	T              []float64
	Y              []float64
	H              float64 // fixed step size; last accepted h for RK45
	Steps          int
	Rejected       int
	MaxErrEstimate float64
	Trace          []Step
}

// stepFn advances y from t by h with a single fixed-step update.
type stepFn func(f Func, t, y, h float64) (float64, error)

func eulerStep(f Func, t, y, h float64) (float64, error) {
	k, err := f(t, y)
	if err != nil {
		return 0, err
	}
	return y + h*k, nil
}

func heunStep(f Func, t, y, h float64) (float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return 0, err
	}
	// predictor: plain Euler step
	k2, err := f(t+h, y+h*k1)
	if err != nil {
		return 0, err
	}
	// corrector: trapezoidal average of the two slopes
	return y + h/2*(k1+k2), nil
}

func rk2Step(f Func, t, y, h float64) (float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return 0, err
	}
	k2, err := f(t+h/2, y+h/2*k1)
	if err != nil {
		return 0, err
	}
	return y + h*k2, nil
}

func rk4Step(f Func, t, y, h float64) (float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return 0, err
	}
	k2, err := f(t+h/2, y+h/2*k1)
	if err != nil {
		return 0, err
	}
	k3, err := f(t+h/2, y+h/2*k2)
	if err != nil {
		return 0, err
	}
	k4, err := f(t+h, y+h*k3)
	if err != nil {
		return 0, err
	}
	return y + h/6*(k1+2*k2+2*k3+k4), nil
}

// fixedStep runs a fixed-step method over [t0, tf] producing n nodes
// (n−1 steps of width (tf−t0)/(n−1)).
func fixedStep(method string, step stepFn, f Func, t0, tf, y0 float64, n int) (*Result, error) {
	if err := validate.Interval(t0, tf); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 nodes, got %d", n)
	}
	if err := validate.SubdivisionsIn(n-1, 1, validate.MaxSubdivisions); err != nil {
		return nil, err
	}

	h := (tf - t0) / float64(n-1)
	res := &Result{
		Method: method,
		T:      make([]float64, 0, n),
		Y:      make([]float64, 0, n),
		H:      h,
		Trace:  make([]Step, 0, n-1),
	}
	res.T = append(res.T, t0)
	res.Y = append(res.Y, y0)

	t, y := t0, y0
	for i := 0; i < n-1; i++ {
		yNext, err := step(f, t, y, h)
		if err != nil {
			return nil, fmt.Errorf("step %d at t=%g: %w", i+1, t, err)
		}
		t = t0 + float64(i+1)*h
		y = yNext
		res.T = append(res.T, t)
		res.Y = append(res.Y, y)
		res.Trace = append(res.Trace, Step{Index: i + 1, T: t, Y: y, H: h, Accepted: true})
		res.Steps++
	}
	return res, nil
}

// StepRK4 advances a single classical Runge-Kutta step, for callers that
// drive the integration themselves (live views, custom stopping rules).
func StepRK4(f Func, t, y, h float64) (float64, error) {
	return rk4Step(f, t, y, h)
}

// Euler integrates with the explicit Euler method, O(h) local accuracy.
func Euler(f Func, t0, tf, y0 float64, n int) (*Result, error) {
	return fixedStep("euler", eulerStep, f, t0, tf, y0, n)
}

// Heun integrates with the predictor-corrector Heun method, O(h²).
func Heun(f Func, t0, tf, y0 float64, n int) (*Result, error) {
	return fixedStep("heun", heunStep, f, t0, tf, y0, n)
}

// RK2 integrates with the explicit midpoint method, O(h²).
func RK2(f Func, t0, tf, y0 float64, n int) (*Result, error) {
	return fixedStep("rk2", rk2Step, f, t0, tf, y0, n)
}

// RK4 integrates with the classical fourth-order Runge-Kutta method.
func RK4(f Func, t0, tf, y0 float64, n int) (*Result, error) {
	return fixedStep("rk4", rk4Step, f, t0, tf, y0, n)
}

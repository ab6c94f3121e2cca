package ode

import (
	"errors"
	"fmt"
	"math"

	"github.com/dfranco-uni/numlab/internal/validate"
)

// ErrStepSizeUnderflow reports an adaptive solve that cannot satisfy the
// tolerance without shrinking the step below the allowed minimum.
var ErrStepSizeUnderflow = errors.New("step size underflow")

// Dormand-Prince coefficients for the embedded 4(5) pair.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	// 5th-order weights minus the embedded 4th-order weights; the dot
	// product with the stages is the local error estimate.
	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// step-size controller constants.
const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

// AdaptiveOptions bound an RK45 solve. Zero values fall back to the
// defaults.
type AdaptiveOptions struct {
	Tol      float64 // local error tolerance (default 1e-6)
	H0       float64 // initial step (default (tf−t0)/100)
	HMin     float64 // abort threshold (default 1e-10)
	HMax     float64 // growth cap (default tf−t0)
	MaxSteps int     // accepted-step budget (default 1_000_000)
}

func (o AdaptiveOptions) withDefaults(span float64) AdaptiveOptions {
	if o.Tol <= 0 {
		o.Tol = 1e-6
	}
	if o.H0 <= 0 {
		o.H0 = span / 100
	}
	if o.HMin <= 0 {
		o.HMin = 1e-10
	}
	if o.HMax <= 0 || o.HMax > span {
		o.HMax = span
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = 1_000_000
	}
	return o
}

// rk45Stage computes the shared stages for one step and returns the
// 5th-order estimate together with the local error |y5 − y4|.
func rk45Stage(f Func, t, y, h float64) (y5, errEst float64, err error) {
	k1, err := f(t, y)
	if err != nil {
		return 0, 0, err
	}
	k2, err := f(t+a2*h, y+h*b21*k1)
	if err != nil {
		return 0, 0, err
	}
	k3, err := f(t+a3*h, y+h*(b31*k1+b32*k2))
	if err != nil {
		return 0, 0, err
	}
	k4, err := f(t+a4*h, y+h*(b41*k1+b42*k2+b43*k3))
	if err != nil {
		return 0, 0, err
	}
	k5, err := f(t+a5*h, y+h*(b51*k1+b52*k2+b53*k3+b54*k4))
	if err != nil {
		return 0, 0, err
	}
	k6, err := f(t+h, y+h*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5))
	if err != nil {
		return 0, 0, err
	}

	y5 = y + h*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)

	// FSAL stage evaluated at the 5th-order estimate
	k7, err := f(t+h, y5)
	if err != nil {
		return 0, 0, err
	}

	errEst = math.Abs(h * (dc1*k1 + dc3*k3 + dc4*k4 + dc5*k5 + dc6*k6 + dc7*k7))
	return y5, errEst, nil
}

// RK45 integrates dy/dt = f(t, y) over [t0, tf] with the adaptive
// Dormand-Prince embedded pair. Steps whose error estimate exceeds the
// tolerance are rejected and retried with a smaller h; accepted steps
// grow h for the next attempt, capped at HMax. The final step is
// truncated to land exactly on tf, so the trajectory never overshoots.
func RK45(f Func, t0, tf, y0 float64, opts AdaptiveOptions) (*Result, error) {
	if err := validate.Interval(t0, tf); err != nil {
		return nil, err
	}
	o := opts.withDefaults(tf - t0)

	res := &Result{
		Method: "rk45",
		T:      []float64{t0},
		Y:      []float64{y0},
	}

	t, y, h := t0, y0, math.Min(o.H0, o.HMax)
	for t < tf {
		if res.Steps >= o.MaxSteps {
			return res, fmt.Errorf("step budget of %d exhausted at t=%g", o.MaxSteps, t)
		}
		truncated := false
		if t+h > tf {
			h = tf - t
			truncated = true
		}

		y5, errEst, err := rk45Stage(f, t, y, h)
		if err != nil {
			return nil, fmt.Errorf("at t=%g, h=%g: %w", t, h, err)
		}

		// scale factor from the 5th-root error ratio, clamped so a
		// single step never shrinks or grows too violently
		var scale float64
		if errEst == 0 {
			scale = maxScale
		} else {
			scale = safety * math.Pow(o.Tol/errEst, 0.2)
			scale = math.Min(maxScale, math.Max(minScale, scale))
		}

		if errEst <= o.Tol {
			if truncated {
				t = tf
			} else {
				t += h
			}
			y = y5
			res.T = append(res.T, t)
			res.Y = append(res.Y, y)
			res.Steps++
			res.H = h
			res.MaxErrEstimate = math.Max(res.MaxErrEstimate, errEst)
			res.Trace = append(res.Trace, Step{
				Index: res.Steps, T: t, Y: y, H: h, ErrEstimate: errEst, Accepted: true,
			})
			if !truncated {
				h = math.Min(h*scale, o.HMax)
			}
			continue
		}

		res.Rejected++
		res.Trace = append(res.Trace, Step{
			Index: res.Steps + 1, T: t, Y: y, H: h, ErrEstimate: errEst, Accepted: false,
		})
		h *= scale
		if h < o.HMin {
			return res, fmt.Errorf("%w: h=%g below minimum %g at t=%g", ErrStepSizeUnderflow, h, o.HMin, t)
		}
	}
	return res, nil
}

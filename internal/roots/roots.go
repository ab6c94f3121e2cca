// Package roots finds zeros of scalar functions: bisection,
// Newton-Raphson, fixed-point iteration with optional Aitken
// acceleration, and the secant method.
//
// All methods share the stopping rule |f(x)| < tol or |x_new − x_old| <
// tol, bounded by a maximum iteration count. Running out of iterations is
// not an error: the result carries Converged=false together with the best
// available estimate. Errors are reserved for violated preconditions
// (invalid bracket, vanishing derivative) and evaluation failures.
package roots

import (
	"errors"
	"fmt"
	"math"

	"github.com/dfranco-uni/numlab/internal/diff"
	"github.com/dfranco-uni/numlab/internal/validate"
)

// Func is a scalar function that may be undefined at some points.
type Func = func(x float64) (float64, error)

var (
	// ErrInvalidBracket reports f(a)·f(b) >= 0 for bisection.
	ErrInvalidBracket = errors.New("no sign change over bracket")
	// ErrZeroDerivative reports a vanishing derivative (Newton) or a
	// vanishing secant denominator.
	ErrZeroDerivative = errors.New("derivative too close to zero")
)

// derivativeFloor guards the Newton and secant divisions.
const derivativeFloor = 1e-12

// Options bound a solve. Zero values fall back to the defaults.
type Options struct {
	Tol     float64
	MaxIter int
}

const (
	DefaultTol     = 1e-6
	DefaultMaxIter = 100
)

func (o Options) withDefaults() Options {
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	return o
}

// Iteration is one step of an iterative solve. A and B are only set by
// bracketing methods.
type Iteration struct {
	Index int
	X     float64
	A     float64
	B     float64
	FX    float64
	Err   float64
}

// Result is the outcome of a solve. Immutable once returned.
type Result struct {
	Method     string
	Root       float64
	FuncValue  float64
	Err        float64
	Iterations int
	Converged  bool
	Trace      []Iteration
}

// Bisect finds a root of f inside the bracket [a, b], which must satisfy
// f(a)·f(b) < 0. Converges linearly, halving the bracket each step, in at
// most ceil(log2((b−a)/tol)) iterations.
func Bisect(f Func, a, b float64, opts Options) (*Result, error) {
	o := opts.withDefaults()
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}

	fa, err := f(a)
	if err != nil {
		return nil, fmt.Errorf("evaluating f(a): %w", err)
	}
	fb, err := f(b)
	if err != nil {
		return nil, fmt.Errorf("evaluating f(b): %w", err)
	}
	if fa*fb >= 0 {
		return nil, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrInvalidBracket, a, fa, b, fb)
	}

	res := &Result{Method: "bisection", Trace: make([]Iteration, 0, o.MaxIter)}
	for i := 0; i < o.MaxIter; i++ {
		m := (a + b) / 2
		fm, err := f(m)
		if err != nil {
			return nil, fmt.Errorf("evaluating f(%g): %w", m, err)
		}
		half := (b - a) / 2

		res.Trace = append(res.Trace, Iteration{Index: i + 1, X: m, A: a, B: b, FX: fm, Err: half})
		res.Root, res.FuncValue, res.Err, res.Iterations = m, fm, half, i+1

		if math.Abs(fm) < o.Tol || half < o.Tol {
			res.Converged = true
			return res, nil
		}

		if fa*fm < 0 {
			b = m
		} else {
			a, fa = m, fm
		}
	}
	return res, nil
}

// NewtonRaphson iterates x_{n+1} = x_n − f(x_n)/f'(x_n) from x0. When df
// is nil the derivative is approximated with the central-difference
// stencil. A derivative below the guard threshold aborts with
// ErrZeroDerivative.
func NewtonRaphson(f, df Func, x0 float64, opts Options) (*Result, error) {
	o := opts.withDefaults()
	if df == nil {
		df = diff.CentralFunc(f)
	}

	res := &Result{Method: "newton-raphson", Trace: make([]Iteration, 0, o.MaxIter)}
	x := x0
	for i := 0; i < o.MaxIter; i++ {
		fx, err := f(x)
		if err != nil {
			return nil, fmt.Errorf("evaluating f(%g): %w", x, err)
		}
		dfx, err := df(x)
		if err != nil {
			return nil, fmt.Errorf("evaluating f'(%g): %w", x, err)
		}
		if math.Abs(dfx) < derivativeFloor {
			return nil, fmt.Errorf("%w: f'(%g)=%g", ErrZeroDerivative, x, dfx)
		}

		xNew := x - fx/dfx
		step := math.Abs(xNew - x)

		res.Trace = append(res.Trace, Iteration{Index: i + 1, X: x, FX: fx, Err: step})
		res.Root, res.FuncValue, res.Err, res.Iterations = xNew, fx, step, i+1

		if step < o.Tol || math.Abs(fx) < o.Tol {
			if fv, err := f(xNew); err == nil {
				res.FuncValue = fv
			}
			res.Converged = true
			return res, nil
		}
		x = xNew
	}
	return res, nil
}

// Secant iterates from two seeds x0, x1 using the secant update. The
// denominator f(x_n) − f(x_{n−1}) is guarded like Newton's derivative.
func Secant(f Func, x0, x1 float64, opts Options) (*Result, error) {
	o := opts.withDefaults()
	if err := validate.Distinct("secant seeds", x0, x1); err != nil {
		return nil, err
	}

	xPrev, xCur := x0, x1
	fPrev, err := f(xPrev)
	if err != nil {
		return nil, fmt.Errorf("evaluating f(%g): %w", xPrev, err)
	}
	fCur, err := f(xCur)
	if err != nil {
		return nil, fmt.Errorf("evaluating f(%g): %w", xCur, err)
	}

	res := &Result{Method: "secant", Trace: make([]Iteration, 0, o.MaxIter)}
	for i := 0; i < o.MaxIter; i++ {
		denom := fCur - fPrev
		if math.Abs(denom) < derivativeFloor {
			return nil, fmt.Errorf("%w: f(%g)−f(%g)=%g", ErrZeroDerivative, xCur, xPrev, denom)
		}

		xNew := xCur - fCur*(xCur-xPrev)/denom
		step := math.Abs(xNew - xCur)

		res.Trace = append(res.Trace, Iteration{Index: i + 1, X: xNew, FX: fCur, Err: step})
		res.Root, res.FuncValue, res.Err, res.Iterations = xNew, fCur, step, i+1

		fNew, err := f(xNew)
		if err != nil {
			return nil, fmt.Errorf("evaluating f(%g): %w", xNew, err)
		}
		if step < o.Tol || math.Abs(fNew) < o.Tol {
			res.FuncValue = fNew
			res.Converged = true
			return res, nil
		}

		xPrev, fPrev = xCur, fCur
		xCur, fCur = xNew, fNew
	}
	return res, nil
}

// FixedPoint iterates x_{n+1} = g(x_n). Convergence requires |g'| < 1
// near the fixed point, which is not verified a priori: divergence shows
// up as iteration exhaustion or a non-finite iterate, both reported as
// non-convergence rather than an error.
func FixedPoint(g Func, x0 float64, opts Options) (*Result, error) {
	o := opts.withDefaults()

	res := &Result{Method: "fixed-point", Trace: make([]Iteration, 0, o.MaxIter)}
	x := x0
	for i := 0; i < o.MaxIter; i++ {
		xNew, err := g(x)
		if err != nil {
			// overflow or domain failure mid-iteration: divergence
			res.Root, res.Iterations = x, i
			return res, nil
		}
		step := math.Abs(xNew - x)

		res.Trace = append(res.Trace, Iteration{Index: i + 1, X: xNew, FX: xNew, Err: step})
		res.Root, res.Err, res.Iterations = xNew, step, i+1

		if step < o.Tol {
			res.Converged = true
			res.FuncValue = residual(g, xNew)
			return res, nil
		}
		x = xNew
	}
	res.FuncValue = residual(g, res.Root)
	return res, nil
}

// Aitken accelerates fixed-point iteration with the Δ² formula
// x_new = x − (x1−x)² / (x2 − 2·x1 + x). When the denominator
// underflows, the step falls back to the plain fixed-point iterate.
func Aitken(g Func, x0 float64, opts Options) (*Result, error) {
	o := opts.withDefaults()

	res := &Result{Method: "aitken", Trace: make([]Iteration, 0, o.MaxIter)}
	x := x0
	for i := 0; i < o.MaxIter; i++ {
		x1, err := g(x)
		if err != nil {
			res.Root, res.Iterations = x, i
			return res, nil
		}
		x2, err := g(x1)
		if err != nil {
			res.Root, res.Iterations = x, i
			return res, nil
		}

		var xNew float64
		if denom := x2 - 2*x1 + x; math.Abs(denom) < 1e-14 {
			xNew = x2
		} else {
			xNew = x - (x1-x)*(x1-x)/denom
			if math.IsNaN(xNew) || math.IsInf(xNew, 0) {
				xNew = x2
			}
		}
		step := math.Abs(xNew - x)

		res.Trace = append(res.Trace, Iteration{Index: i + 1, X: xNew, FX: x2, Err: step})
		res.Root, res.Err, res.Iterations = xNew, step, i+1

		if step < o.Tol {
			res.Converged = true
			res.FuncValue = residual(g, xNew)
			return res, nil
		}
		x = xNew
	}
	res.FuncValue = residual(g, res.Root)
	return res, nil
}

// FixedPointForm rewrites f(x) = 0 as x = g(x) with g(x) = x + damping·f(x).
// damping 1 is the plain form; small values (e.g. 0.1) damp oscillation.
func FixedPointForm(f Func, damping float64) Func {
	return func(x float64) (float64, error) {
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		return x + damping*fx, nil
	}
}

// residual reports |x − g(x)|, the fixed-point analogue of |f(root)|.
func residual(g Func, x float64) float64 {
	gx, err := g(x)
	if err != nil {
		return math.NaN()
	}
	return math.Abs(x - gx)
}

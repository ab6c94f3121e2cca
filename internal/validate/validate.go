// Package validate holds the pure precondition checks shared by the
// numerical engines: interval ordering, subdivision-count constraints and
// numeric sanity. Checks either pass or fail with an [*Error] naming the
// violated constraint; there is no silent coercion.
package validate

import (
	"fmt"
	"math"
)

// Subdivision bounds accepted by the composite quadrature rules.
const (
	MinSubdivisions = 1
	MaxSubdivisions = 1_000_000
)

// Error names a violated constraint together with the offending value(s).
type Error struct {
	Constraint string
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Constraint, e.Detail)
}

func errf(constraint, format string, args ...any) error {
	return &Error{Constraint: constraint, Detail: fmt.Sprintf(format, args...)}
}

// Finite rejects NaN and infinities.
func Finite(name string, v float64) error {
	if math.IsNaN(v) {
		return errf("finite value required", "%s is NaN", name)
	}
	if math.IsInf(v, 0) {
		return errf("finite value required", "%s is infinite (%g)", name, v)
	}
	return nil
}

// Interval checks that [a, b] is a valid ordered interval with finite,
// strictly increasing bounds.
func Interval(a, b float64) error {
	if err := Finite("lower bound a", a); err != nil {
		return err
	}
	if err := Finite("upper bound b", b); err != nil {
		return err
	}
	if a >= b {
		return errf("interval requires a < b", "got a=%g, b=%g", a, b)
	}
	return nil
}

// Subdivisions checks n against the default bounds.
func Subdivisions(n int) error {
	return SubdivisionsIn(n, MinSubdivisions, MaxSubdivisions)
}

// SubdivisionsIn checks min <= n <= max.
func SubdivisionsIn(n, min, max int) error {
	if n < min {
		return errf("too few subdivisions", "n=%d, need at least %d", n, min)
	}
	if n > max {
		return errf("too many subdivisions", "n=%d, limit is %d", n, max)
	}
	return nil
}

// Simpson13N checks the Simpson 1/3 panel constraint: an even number of
// sub-intervals, so each panel spans exactly two of them.
func Simpson13N(n int) error {
	if err := Subdivisions(n); err != nil {
		return err
	}
	if n%2 != 0 {
		return errf("Simpson 1/3 requires even n", "got n=%d", n)
	}
	return nil
}

// Simpson38N checks the Simpson 3/8 panel constraint: n divisible by 3.
func Simpson38N(n int) error {
	if err := Subdivisions(n); err != nil {
		return err
	}
	if n%3 != 0 {
		return errf("Simpson 3/8 requires n divisible by 3", "got n=%d", n)
	}
	return nil
}

// Distinct rejects coincident seed points (secant, interpolation nodes).
func Distinct(name string, a, b float64) error {
	if math.Abs(a-b) < 1e-12 {
		return errf("distinct values required", "%s: %g and %g coincide", name, a, b)
	}
	return nil
}

// Package interp builds Lagrange interpolating polynomials: the unique
// polynomial of degree n−1 passing exactly through n given points.
package interp

import (
	"fmt"

	"github.com/dfranco-uni/numlab/internal/validate"
)

// Point is one interpolation node.
type Point struct {
	X, Y float64
}

// Polynomial is a compiled Lagrange interpolant. Immutable once built.
type Polynomial struct {
	points []Point
}

// Lagrange builds the interpolant through the given points. Nodes must
// have pairwise distinct abscissas.
func Lagrange(points []Point) (*Polynomial, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 points, got %d", len(points))
	}
	for i := range points {
		if err := validate.Finite(fmt.Sprintf("x[%d]", i), points[i].X); err != nil {
			return nil, err
		}
		if err := validate.Finite(fmt.Sprintf("y[%d]", i), points[i].Y); err != nil {
			return nil, err
		}
		for j := i + 1; j < len(points); j++ {
			if err := validate.Distinct("interpolation nodes", points[i].X, points[j].X); err != nil {
				return nil, err
			}
		}
	}
	ps := make([]Point, len(points))
	copy(ps, points)
	return &Polynomial{points: ps}, nil
}

// Degree returns the polynomial degree, one less than the node count.
func (p *Polynomial) Degree() int { return len(p.points) - 1 }

// Basis evaluates the j-th Lagrange basis polynomial
// L_j(x) = Π_{i≠j} (x − x_i)/(x_j − x_i).
func (p *Polynomial) Basis(j int, x float64) float64 {
	result := 1.0
	xj := p.points[j].X
	for i, pt := range p.points {
		if i != j {
			result *= (x - pt.X) / (xj - pt.X)
		}
	}
	return result
}

// Eval evaluates the interpolant: Σ_j y_j·L_j(x).
func (p *Polynomial) Eval(x float64) float64 {
	sum := 0.0
	for j, pt := range p.points {
		sum += pt.Y * p.Basis(j, x)
	}
	return sum
}

// Terms returns the per-node contributions y_j·L_j(x), useful for
// tabulating how each node pulls the interpolant at x.
func (p *Polynomial) Terms(x float64) []float64 {
	terms := make([]float64, len(p.points))
	for j, pt := range p.points {
		terms[j] = pt.Y * p.Basis(j, x)
	}
	return terms
}

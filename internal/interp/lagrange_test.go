package interp

import (
	"math"
	"testing"
)

func TestLagrange_PassesThroughNodes(t *testing.T) {
	pts := []Point{{0, 1}, {1, 3}, {2, 2}, {4, -1}}
	poly, err := Lagrange(pts)
	if err != nil {
		t.Fatalf("Lagrange failed: %v", err)
	}
	for _, p := range pts {
		if got := poly.Eval(p.X); math.Abs(got-p.Y) > 1e-12 {
			t.Errorf("P(%g) = %g, want %g", p.X, got, p.Y)
		}
	}
}

func TestLagrange_ReproducesQuadratic(t *testing.T) {
	// three nodes of f(x) = x² − x + 2 determine it exactly
	f := func(x float64) float64 { return x*x - x + 2 }
	pts := []Point{{-1, f(-1)}, {0, f(0)}, {2, f(2)}}
	poly, err := Lagrange(pts)
	if err != nil {
		t.Fatalf("Lagrange failed: %v", err)
	}
	if poly.Degree() != 2 {
		t.Errorf("degree = %d, want 2", poly.Degree())
	}
	for _, x := range []float64{-2, -0.5, 0.7, 1.3, 5} {
		if got := poly.Eval(x); math.Abs(got-f(x)) > 1e-10 {
			t.Errorf("P(%g) = %g, want %g", x, got, f(x))
		}
	}
}

func TestLagrange_BasisPartitionOfUnity(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {3, 0}, {6, 0}}
	poly, err := Lagrange(pts)
	if err != nil {
		t.Fatalf("Lagrange failed: %v", err)
	}
	for _, x := range []float64{-1, 0.5, 2, 10} {
		sum := 0.0
		for j := range pts {
			sum += poly.Basis(j, x)
		}
		if math.Abs(sum-1) > 1e-10 {
			t.Errorf("Σ L_j(%g) = %g, want 1", x, sum)
		}
	}
}

func TestLagrange_RejectsDuplicateNodes(t *testing.T) {
	if _, err := Lagrange([]Point{{0, 1}, {0, 2}, {1, 3}}); err == nil {
		t.Error("duplicate abscissas accepted")
	}
}

func TestLagrange_RejectsTooFewOrNonFinite(t *testing.T) {
	if _, err := Lagrange([]Point{{0, 1}}); err == nil {
		t.Error("single point accepted")
	}
	if _, err := Lagrange([]Point{{0, 1}, {math.NaN(), 2}}); err == nil {
		t.Error("NaN abscissa accepted")
	}
}

func TestLagrange_TermsSumToEval(t *testing.T) {
	poly, err := Lagrange([]Point{{0, 2}, {1, -1}, {2, 4}})
	if err != nil {
		t.Fatalf("Lagrange failed: %v", err)
	}
	x := 1.7
	sum := 0.0
	for _, term := range poly.Terms(x) {
		sum += term
	}
	if math.Abs(sum-poly.Eval(x)) > 1e-12 {
		t.Errorf("terms sum %g != Eval %g", sum, poly.Eval(x))
	}
}

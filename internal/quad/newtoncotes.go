// Package quad integrates scalar functions with the Newton-Cotes family
// of rules: rectangle (midpoint), trapezoid, Simpson 1/3 and Simpson 3/8,
// in simple and composite form.
//
// Every rule is a deterministic closed-form weighted sum; the error order
// is analytic metadata on the result, not a measured quantity. Integrands
// are evaluated strictly one point at a time, and an evaluation failure
// at any node aborts the computation naming the failing abscissa.
package quad

import (
	"fmt"

	"github.com/dfranco-uni/numlab/internal/validate"
)

// Func is a scalar integrand that may be undefined at some points.
type Func = func(x float64) (float64, error)

// Node is one sampled integrand point retained for display.
type Node struct {
	X float64
	F float64
}

// maxNodes caps the sample retained on a Result.
const maxNodes = 10

// Result is the outcome of one quadrature rule application.
type Result struct {
	Method      string
	Value       float64
	A, B        float64
	N           int // composite sub-intervals; 1 for simple rules
	H           float64
	Evaluations int
	ErrorOrder  string
	Nodes       []Node
}

func evalAt(f Func, x float64) (float64, error) {
	v, err := f(x)
	if err != nil {
		return 0, fmt.Errorf("integrand undefined at x=%g: %w", x, err)
	}
	return v, nil
}

// RectangleSimple applies the midpoint rule I ≈ (b−a)·f((a+b)/2).
func RectangleSimple(f Func, a, b float64) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	m := (a + b) / 2
	fm, err := evalAt(f, m)
	if err != nil {
		return nil, err
	}
	return &Result{
		Method: "rectangle (simple)", Value: (b - a) * fm,
		A: a, B: b, N: 1, H: b - a, Evaluations: 1,
		ErrorOrder: "O(h³)",
		Nodes:      []Node{{X: m, F: fm}},
	}, nil
}

// TrapezoidSimple applies I ≈ (b−a)/2·[f(a) + f(b)].
func TrapezoidSimple(f Func, a, b float64) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	fa, err := evalAt(f, a)
	if err != nil {
		return nil, err
	}
	fb, err := evalAt(f, b)
	if err != nil {
		return nil, err
	}
	return &Result{
		Method: "trapezoid (simple)", Value: (b - a) / 2 * (fa + fb),
		A: a, B: b, N: 1, H: b - a, Evaluations: 2,
		ErrorOrder: "O(h³)",
		Nodes:      []Node{{X: a, F: fa}, {X: b, F: fb}},
	}, nil
}

// Simpson13Simple applies I ≈ h/3·[f(a) + 4f(m) + f(b)] with h = (b−a)/2.
func Simpson13Simple(f Func, a, b float64) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	h := (b - a) / 2
	xs := []float64{a, a + h, b}
	ws := []float64{1, 4, 1}
	sum := 0.0
	nodes := make([]Node, len(xs))
	for i, x := range xs {
		fx, err := evalAt(f, x)
		if err != nil {
			return nil, err
		}
		nodes[i] = Node{X: x, F: fx}
		sum += ws[i] * fx
	}
	return &Result{
		Method: "simpson 1/3 (simple)", Value: h / 3 * sum,
		A: a, B: b, N: 2, H: h, Evaluations: 3,
		ErrorOrder: "O(h⁵)",
		Nodes:      nodes,
	}, nil
}

// Simpson38Simple applies I ≈ 3h/8·[f(a) + 3f(a+h) + 3f(a+2h) + f(b)]
// with h = (b−a)/3.
func Simpson38Simple(f Func, a, b float64) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	h := (b - a) / 3
	xs := []float64{a, a + h, a + 2*h, b}
	ws := []float64{1, 3, 3, 1}
	sum := 0.0
	nodes := make([]Node, len(xs))
	for i, x := range xs {
		fx, err := evalAt(f, x)
		if err != nil {
			return nil, err
		}
		nodes[i] = Node{X: x, F: fx}
		sum += ws[i] * fx
	}
	return &Result{
		Method: "simpson 3/8 (simple)", Value: 3 * h / 8 * sum,
		A: a, B: b, N: 3, H: h, Evaluations: 4,
		ErrorOrder: "O(h⁵)",
		Nodes:      nodes,
	}, nil
}

// Rectangle applies the composite midpoint rule over n panels.
func Rectangle(f Func, a, b float64, n int) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	if err := validate.Subdivisions(n); err != nil {
		return nil, err
	}
	h := (b - a) / float64(n)
	sum := 0.0
	nodes := make([]Node, 0, maxNodes)
	for i := 0; i < n; i++ {
		xi := a + (float64(i)+0.5)*h
		fi, err := evalAt(f, xi)
		if err != nil {
			return nil, err
		}
		sum += fi
		if len(nodes) < maxNodes {
			nodes = append(nodes, Node{X: xi, F: fi})
		}
	}
	return &Result{
		Method: "rectangle (composite)", Value: h * sum,
		A: a, B: b, N: n, H: h, Evaluations: n,
		ErrorOrder: "O(h²)",
		Nodes:      nodes,
	}, nil
}

// Trapezoid applies the composite trapezoid rule over n panels.
func Trapezoid(f Func, a, b float64, n int) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	if err := validate.Subdivisions(n); err != nil {
		return nil, err
	}
	h := (b - a) / float64(n)
	nodes := make([]Node, 0, maxNodes)

	sum := 0.0
	for i := 0; i <= n; i++ {
		xi := a + float64(i)*h
		fi, err := evalAt(f, xi)
		if err != nil {
			return nil, err
		}
		w := 2.0
		if i == 0 || i == n {
			w = 1.0
		}
		sum += w * fi
		if len(nodes) < maxNodes {
			nodes = append(nodes, Node{X: xi, F: fi})
		}
	}
	return &Result{
		Method: "trapezoid (composite)", Value: h / 2 * sum,
		A: a, B: b, N: n, H: h, Evaluations: n + 1,
		ErrorOrder: "O(h²)",
		Nodes:      nodes,
	}, nil
}

// Simpson13 applies the composite Simpson 1/3 rule. n must be even so the
// sub-intervals pair into whole parabolic panels.
func Simpson13(f Func, a, b float64, n int) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	if err := validate.Simpson13N(n); err != nil {
		return nil, err
	}
	h := (b - a) / float64(n)
	nodes := make([]Node, 0, maxNodes)

	sum := 0.0
	for i := 0; i <= n; i++ {
		xi := a + float64(i)*h
		fi, err := evalAt(f, xi)
		if err != nil {
			return nil, err
		}
		w := 4.0
		switch {
		case i == 0 || i == n:
			w = 1.0
		case i%2 == 0:
			w = 2.0
		}
		sum += w * fi
		if len(nodes) < maxNodes {
			nodes = append(nodes, Node{X: xi, F: fi})
		}
	}
	return &Result{
		Method: "simpson 1/3 (composite)", Value: h / 3 * sum,
		A: a, B: b, N: n, H: h, Evaluations: n + 1,
		ErrorOrder: "O(h⁴)",
		Nodes:      nodes,
	}, nil
}

// Simpson38 applies the composite Simpson 3/8 rule. n must be a multiple
// of 3.
func Simpson38(f Func, a, b float64, n int) (*Result, error) {
	if err := validate.Interval(a, b); err != nil {
		return nil, err
	}
	if err := validate.Simpson38N(n); err != nil {
		return nil, err
	}
	h := (b - a) / float64(n)
	nodes := make([]Node, 0, maxNodes)

	sum := 0.0
	for i := 0; i <= n; i++ {
		xi := a + float64(i)*h
		fi, err := evalAt(f, xi)
		if err != nil {
			return nil, err
		}
		w := 3.0
		switch {
		case i == 0 || i == n:
			w = 1.0
		case i%3 == 0:
			w = 2.0
		}
		sum += w * fi
		if len(nodes) < maxNodes {
			nodes = append(nodes, Node{X: xi, F: fi})
		}
	}
	return &Result{
		Method: "simpson 3/8 (composite)", Value: 3 * h / 8 * sum,
		A: a, B: b, N: n, H: h, Evaluations: n + 1,
		ErrorOrder: "O(h⁴)",
		Nodes:      nodes,
	}, nil
}

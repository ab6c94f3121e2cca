package ode

import (
	"errors"
	"math"
	"testing"
)

// dy/dt = −y, y(0) = 1, exact solution e^{−t}
func decay(t, y float64) (float64, error) { return -y, nil }

func TestFixedStep_DecayAccuracy(t *testing.T) {
	exact := math.Exp(-1)
	tests := []struct {
		name   string
		method func(Func, float64, float64, float64, int) (*Result, error)
		n      int
		tol    float64
	}{
		{"euler", Euler, 101, 5e-3},
		{"heun", Heun, 101, 5e-5},
		{"rk2", RK2, 101, 5e-5},
		{"rk4", RK4, 101, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.method(decay, 0, 1, 1, tt.n)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.name, err)
			}
			got := res.Y[len(res.Y)-1]
			if math.Abs(got-exact) > tt.tol {
				t.Errorf("%s y(1) = %.10f, want %.10f ± %g", tt.name, got, exact, tt.tol)
			}
		})
	}
}

func TestFixedStep_NodeLayout(t *testing.T) {
	res, err := Euler(decay, 0, 1, 1, 11)
	if err != nil {
		t.Fatalf("Euler failed: %v", err)
	}
	if len(res.T) != 11 || len(res.Y) != 11 {
		t.Fatalf("got %d/%d nodes, want 11", len(res.T), len(res.Y))
	}
	if res.T[0] != 0 || math.Abs(res.T[10]-1) > 1e-15 {
		t.Errorf("endpoints = %g, %g", res.T[0], res.T[10])
	}
	if math.Abs(res.H-0.1) > 1e-15 {
		t.Errorf("H = %g, want 0.1", res.H)
	}
	if res.Steps != 10 {
		t.Errorf("Steps = %d, want 10", res.Steps)
	}
}

func TestFixedStep_Validation(t *testing.T) {
	if _, err := RK4(decay, 1, 0, 1, 10); err == nil {
		t.Error("reversed span accepted")
	}
	if _, err := RK4(decay, 0, 1, 1, 1); err == nil {
		t.Error("single node accepted")
	}
}

func TestFixedStep_PropagatesEvalFailure(t *testing.T) {
	f := func(t, y float64) (float64, error) {
		if y < 0.5 {
			return 0, errors.New("undefined")
		}
		return -y, nil
	}
	if _, err := Euler(f, 0, 2, 1, 50); err == nil {
		t.Error("expected propagated evaluation failure")
	}
}

func TestRK4_MatchesExponential(t *testing.T) {
	// h = 0.01 over [0, 1]
	res, err := RK4(decay, 0, 1, 1, 101)
	if err != nil {
		t.Fatalf("RK4 failed: %v", err)
	}
	got := res.Y[len(res.Y)-1]
	if math.Abs(got-math.Exp(-1)) > 1e-6 {
		t.Errorf("RK4 y(1) = %.12f, want e^-1 within 1e-6", got)
	}
}

func TestRK45_NeverOvershoots(t *testing.T) {
	res, err := RK45(decay, 0, 1, 1, AdaptiveOptions{Tol: 1e-8})
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	tf := res.T[len(res.T)-1]
	if tf != 1.0 {
		t.Errorf("final t = %.17f, want exactly 1", tf)
	}
	for i := 1; i < len(res.T); i++ {
		if res.T[i] <= res.T[i-1] {
			t.Fatalf("time not monotone at node %d: %g <= %g", i, res.T[i], res.T[i-1])
		}
		if res.T[i] > 1.0 {
			t.Fatalf("node %d overshoots tf: %g", i, res.T[i])
		}
	}
}

func TestRK45_LinearODE_NoRejections(t *testing.T) {
	// dy/dt = 2: every embedded estimate is exact, so no step may be
	// rejected
	linear := func(t, y float64) (float64, error) { return 2, nil }
	res, err := RK45(linear, 0, 1, 0, AdaptiveOptions{Tol: 1e-10})
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	if res.Rejected != 0 {
		t.Errorf("rejected %d steps on a linear ODE, want 0", res.Rejected)
	}
	got := res.Y[len(res.Y)-1]
	if math.Abs(got-2.0) > 1e-12 {
		t.Errorf("y(1) = %.15f, want 2", got)
	}
}

func TestRK45_Accuracy(t *testing.T) {
	res, err := RK45(decay, 0, 1, 1, AdaptiveOptions{Tol: 1e-9})
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	got := res.Y[len(res.Y)-1]
	if math.Abs(got-math.Exp(-1)) > 1e-7 {
		t.Errorf("y(1) = %.12f, want e^-1", got)
	}
}

func TestRK45_Reproducible(t *testing.T) {
	run := func() *Result {
		res, err := RK45(decay, 0, 2, 1, AdaptiveOptions{Tol: 1e-7})
		if err != nil {
			t.Fatalf("RK45 failed: %v", err)
		}
		return res
	}
	a, b := run(), run()
	if len(a.T) != len(b.T) {
		t.Fatalf("node counts differ: %d vs %d", len(a.T), len(b.T))
	}
	for i := range a.T {
		if a.T[i] != b.T[i] || a.Y[i] != b.Y[i] {
			t.Fatalf("trajectories differ at node %d", i)
		}
	}
	if a.Rejected != b.Rejected {
		t.Errorf("rejection counts differ: %d vs %d", a.Rejected, b.Rejected)
	}
}

func TestRK45_StepSizeUnderflow(t *testing.T) {
	// an unsatisfiable tolerance with a high HMin forces underflow on a
	// stiff-ish slope
	stiff := func(t, y float64) (float64, error) { return -1e6 * y, nil }
	_, err := RK45(stiff, 0, 1, 1, AdaptiveOptions{Tol: 1e-300, HMin: 1e-3})
	if !errors.Is(err, ErrStepSizeUnderflow) {
		t.Errorf("got %v, want ErrStepSizeUnderflow", err)
	}
}

func TestRK45_TracksRejectedSteps(t *testing.T) {
	// a sharp pulse makes the initial h too optimistic somewhere
	pulse := func(t, y float64) (float64, error) {
		return math.Exp(-1000 * (t - 0.5) * (t - 0.5)), nil
	}
	res, err := RK45(pulse, 0, 1, 0, AdaptiveOptions{Tol: 1e-10, H0: 0.2})
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	if res.Rejected == 0 {
		t.Skip("no rejections on this platform; nothing to assert")
	}
	rejected := 0
	for _, s := range res.Trace {
		if !s.Accepted {
			rejected++
		}
	}
	if rejected != res.Rejected {
		t.Errorf("trace records %d rejections, counter says %d", rejected, res.Rejected)
	}
}

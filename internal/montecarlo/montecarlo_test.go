package montecarlo

import (
	"math"
	"testing"
)

func constOne(args ...float64) (float64, error) { return 1, nil }

func params1D(n int, seed int64) Params {
	return Params{Samples: n, Seed: seed, Dimensions: 1, XRange: [2]float64{0, 1}}
}

func TestSimulate_ZeroVariance(t *testing.T) {
	for _, seed := range []int64{1, 42, 12345} {
		res, err := Simulate(constOne, params1D(500, seed))
		if err != nil {
			t.Fatalf("Simulate failed: %v", err)
		}
		if res.Estimate != 1.0 {
			t.Errorf("seed %d: estimate = %v, want exactly 1.0", seed, res.Estimate)
		}
		if res.StdErr != 0 {
			t.Errorf("seed %d: stderr = %v, want 0", seed, res.StdErr)
		}
		if res.CI[0] != 1.0 || res.CI[1] != 1.0 {
			t.Errorf("seed %d: CI = %v, want [1, 1]", seed, res.CI)
		}
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	f := func(args ...float64) (float64, error) { return args[0] * args[0], nil }
	a, err := Simulate(f, params1D(10000, 7))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	b, err := Simulate(f, params1D(10000, 7))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if a.Estimate != b.Estimate || a.StdDev != b.StdDev {
		t.Error("identical seeds produced different results")
	}
	if len(a.Points) != len(b.Points) {
		t.Fatal("point counts differ")
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("points differ at index %d", i)
		}
	}
}

func TestSimulate_DifferentSeedsDiffer(t *testing.T) {
	f := func(args ...float64) (float64, error) { return args[0], nil }
	a, _ := Simulate(f, params1D(1000, 1))
	b, _ := Simulate(f, params1D(1000, 2))
	if a.Estimate == b.Estimate {
		t.Error("different seeds produced identical estimates")
	}
}

func TestSimulate_EstimatesQuarterCircle(t *testing.T) {
	// ∫₀¹ √(1−x²) dx = π/4
	f := func(args ...float64) (float64, error) {
		return math.Sqrt(1 - args[0]*args[0]), nil
	}
	res, err := Simulate(f, params1D(200000, 99))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if math.Abs(res.Estimate-math.Pi/4) > 5e-3 {
		t.Errorf("estimate = %.5f, want %.5f", res.Estimate, math.Pi/4)
	}
	lo, hi := res.CI[0], res.CI[1]
	if lo >= hi {
		t.Errorf("degenerate CI %v", res.CI)
	}
	if res.Estimate < lo || res.Estimate > hi {
		t.Errorf("estimate %g outside its own CI %v", res.Estimate, res.CI)
	}
}

func TestSimulate_2D(t *testing.T) {
	// ∫∫ 1 over [0,2]×[0,3] = 6
	res, err := Simulate(constOne, Params{
		Samples: 1000, Seed: 3, Dimensions: 2,
		XRange: [2]float64{0, 2}, YRange: [2]float64{0, 3},
	})
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if res.Volume != 6 {
		t.Errorf("volume = %g, want 6", res.Volume)
	}
	if res.Estimate != 6 {
		t.Errorf("estimate = %g, want exactly 6", res.Estimate)
	}
}

func TestSimulate_ExcludesUndefinedSamples(t *testing.T) {
	f := func(args ...float64) (float64, error) {
		if args[0] < 0.5 {
			return 0, errUndefined
		}
		return 1, nil
	}
	res, err := Simulate(f, params1D(2000, 11))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if res.Excluded == 0 {
		t.Error("no samples excluded, expected roughly half")
	}
	if res.Included+res.Excluded != 2000 {
		t.Errorf("included %d + excluded %d != 2000", res.Included, res.Excluded)
	}
	// surviving values are all 1, estimate must still be volume×mean = 1
	if res.Estimate != 1.0 {
		t.Errorf("estimate = %g, want 1", res.Estimate)
	}
}

var errUndefined = &undefErr{}

type undefErr struct{}

func (*undefErr) Error() string { return "undefined" }

func TestSimulate_AllExcludedFails(t *testing.T) {
	bad := func(args ...float64) (float64, error) { return 0, errUndefined }
	if _, err := Simulate(bad, params1D(100, 1)); err == nil {
		t.Error("all-excluded run succeeded, want error")
	}
}

func TestSimulate_MaxErrorWidensInterval(t *testing.T) {
	// Smaller max error ⇒ higher confidence ⇒ wider interval. The
	// inverse relationship is intentional.
	f := func(args ...float64) (float64, error) { return args[0], nil }
	base := params1D(5000, 21)

	loose := base
	loose.MaxError = 0.10
	tight := base
	tight.MaxError = 0.01

	rl, err := Simulate(f, loose)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	rt, err := Simulate(f, tight)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	widthLoose := rl.CI[1] - rl.CI[0]
	widthTight := rt.CI[1] - rt.CI[0]
	if widthTight <= widthLoose {
		t.Errorf("MaxError=0.01 width %g not wider than MaxError=0.10 width %g",
			widthTight, widthLoose)
	}
}

func TestZValue(t *testing.T) {
	tests := []struct {
		maxErr float64
		want   float64
	}{
		{0.05, 1.95996},
		{0.01, 2.57583},
		{0.10, 1.64485},
	}
	for _, tt := range tests {
		if got := zValue(tt.maxErr); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("zValue(%g) = %.5f, want %.5f", tt.maxErr, got, tt.want)
		}
	}
}

func TestConvergenceTrace(t *testing.T) {
	f := func(args ...float64) (float64, error) { return args[0], nil }

	res, err := Simulate(f, params1D(100000, 5))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(res.Convergence) == 0 {
		t.Fatal("empty convergence trace")
	}
	// counts strictly increasing, roughly log-spaced, ending at N
	for i := 1; i < len(res.Convergence); i++ {
		if res.Convergence[i].N <= res.Convergence[i-1].N {
			t.Fatalf("trace counts not increasing at %d", i)
		}
	}
	last := res.Convergence[len(res.Convergence)-1]
	if last.N != res.Included {
		t.Errorf("trace ends at N=%d, want %d", last.N, res.Included)
	}
	if last.Estimate != res.Estimate {
		t.Errorf("final trace estimate %g != result estimate %g", last.Estimate, res.Estimate)
	}
	if len(res.Convergence) > 35 {
		t.Errorf("trace has %d points, want ~30", len(res.Convergence))
	}
}

func TestSimulate_Validation(t *testing.T) {
	f := constOne
	cases := []Params{
		{Samples: 0, Seed: 1, Dimensions: 1, XRange: [2]float64{0, 1}},
		{Samples: 10, Seed: 1, Dimensions: 3, XRange: [2]float64{0, 1}},
		{Samples: 10, Seed: 1, Dimensions: 1, XRange: [2]float64{1, 0}},
		{Samples: 10, Seed: 1, Dimensions: 2, XRange: [2]float64{0, 1}}, // missing y range
		{Samples: 10, Seed: 1, Dimensions: 1, XRange: [2]float64{0, 1}, MaxError: 1.5},
	}
	for i, p := range cases {
		if _, err := Simulate(f, p); err == nil {
			t.Errorf("case %d accepted invalid params %+v", i, p)
		}
	}
}

// Package montecarlo estimates 1D and 2D integrals by uniform random
// sampling, with standard-error and confidence-interval statistics and a
// logarithmic convergence trace.
//
// Sampling is driven by a generator local to each Simulate call, seeded
// from the parameters: identical inputs produce identical output, and
// concurrent calls never share generator state.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dfranco-uni/numlab/internal/validate"
)

// Func evaluates the integrand at one sample: one argument in 1D, two in
// 2D. An error marks the point as undefined; the sample is excluded.
type Func = func(args ...float64) (float64, error)

// DefaultMaxError is the confidence-level parameter used when the caller
// leaves it unset.
const DefaultMaxError = 0.05

// Params configure one simulation.
type Params struct {
	Samples    int
	Seed       int64
	MaxError   float64
	Dimensions int
	XRange     [2]float64
	YRange     [2]float64
}

// Point is one drawn sample. Y is meaningful only in 2D. Positive
// classifies the point for scatter display (f ≥ 0 vs f < 0).
type Point struct {
	X, Y     float64
	F        float64
	Positive bool
}

// TracePoint is one re-aggregation of the running mean.
type TracePoint struct {
	N        int
	Estimate float64
}

// Result is the outcome of one simulation. StdDev is the raw sample
// deviation of the function values; StdErr and CI are volume-scaled.
type Result struct {
	Estimate    float64
	Volume      float64
	Mean        float64
	StdDev      float64
	StdErr      float64
	Z           float64
	CI          [2]float64
	Points      []Point
	Convergence []TracePoint
	Included    int
	Excluded    int
}

// Simulate draws Samples points uniformly over the domain, excludes the
// ones where the integrand is undefined, and estimates the integral as
// volume × mean(values).
//
// The confidence interval is estimate ± z·(volume·stderr) with
// z = Φ⁻¹(1 − MaxError/2). MaxError acts as a confidence-level parameter:
// a smaller MaxError selects a higher confidence level and therefore a
// WIDER interval. The inverse relationship is intentional and must not
// be "fixed".
func Simulate(f Func, p Params) (*Result, error) {
	if p.Samples <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", p.Samples)
	}
	if p.Dimensions != 1 && p.Dimensions != 2 {
		return nil, fmt.Errorf("only 1D and 2D integration supported, got %d dimensions", p.Dimensions)
	}
	if err := validate.Interval(p.XRange[0], p.XRange[1]); err != nil {
		return nil, fmt.Errorf("x range: %w", err)
	}
	if p.Dimensions == 2 {
		if err := validate.Interval(p.YRange[0], p.YRange[1]); err != nil {
			return nil, fmt.Errorf("y range: %w", err)
		}
	}
	maxErr := p.MaxError
	if maxErr == 0 {
		maxErr = DefaultMaxError
	}
	if maxErr <= 0 || maxErr >= 1 {
		return nil, fmt.Errorf("max error must lie in (0, 1), got %g", maxErr)
	}

	volume := p.XRange[1] - p.XRange[0]
	if p.Dimensions == 2 {
		volume *= p.YRange[1] - p.YRange[0]
	}

	rng := rand.New(rand.NewSource(p.Seed))

	res := &Result{
		Volume: volume,
		Points: make([]Point, 0, p.Samples),
	}
	values := make([]float64, 0, p.Samples)

	for i := 0; i < p.Samples; i++ {
		x := p.XRange[0] + rng.Float64()*(p.XRange[1]-p.XRange[0])
		var v float64
		var err error
		pt := Point{X: x}
		if p.Dimensions == 1 {
			v, err = f(x)
		} else {
			y := p.YRange[0] + rng.Float64()*(p.YRange[1]-p.YRange[0])
			pt.Y = y
			v, err = f(x, y)
		}
		if err != nil {
			// undefined at this point: excluded, not fatal
			res.Excluded++
			continue
		}
		pt.F = v
		pt.Positive = v >= 0
		res.Points = append(res.Points, pt)
		values = append(values, v)
	}

	n := len(values)
	res.Included = n
	if n == 0 {
		return nil, fmt.Errorf("all %d samples were excluded; integrand undefined over the domain", p.Samples)
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	if n > 1 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(n - 1)
	}
	stdDev := math.Sqrt(variance)
	stdErr := stdDev / math.Sqrt(float64(n))

	res.Mean = mean
	res.Estimate = volume * mean
	res.StdDev = stdDev
	res.StdErr = volume * stdErr
	res.Z = zValue(maxErr)

	margin := res.Z * res.StdErr
	res.CI = [2]float64{res.Estimate - margin, res.Estimate + margin}

	res.Convergence = convergenceTrace(values, volume)
	return res, nil
}

// zValue is the standard normal quantile Φ⁻¹(1 − maxErr/2).
func zValue(maxErr float64) float64 {
	return math.Sqrt2 * math.Erfinv(1-maxErr)
}

// convergenceTrace re-aggregates the running mean at spaced sample
// counts without re-drawing: every 10 samples up to 100, then ~30
// logarithmically spaced counts.
func convergenceTrace(values []float64, volume float64) []TracePoint {
	n := len(values)
	if n < 2 {
		return []TracePoint{{N: n, Estimate: volume * values[0]}}
	}

	counts := traceCounts(n)
	trace := make([]TracePoint, 0, len(counts))

	sum := 0.0
	next := 0
	for i, v := range values {
		sum += v
		if next < len(counts) && i+1 == counts[next] {
			trace = append(trace, TracePoint{N: i + 1, Estimate: volume * (sum / float64(i+1))})
			next++
		}
	}
	return trace
}

func traceCounts(n int) []int {
	if n <= 100 {
		counts := make([]int, 0, n/10+1)
		for c := 10; c <= n; c += 10 {
			counts = append(counts, c)
		}
		if len(counts) == 0 || counts[len(counts)-1] != n {
			counts = append(counts, n)
		}
		return counts
	}

	const points = 30
	counts := make([]int, 0, points)
	lo, hi := math.Log10(10), math.Log10(float64(n))
	prev := 0
	for i := 0; i < points; i++ {
		c := int(math.Round(math.Pow(10, lo+(hi-lo)*float64(i)/float64(points-1))))
		if c <= prev {
			continue
		}
		counts = append(counts, c)
		prev = c
	}
	if counts[len(counts)-1] != n {
		counts = append(counts, n)
	}
	return counts
}

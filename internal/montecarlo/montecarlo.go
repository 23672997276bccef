// Package montecarlo implements seeded Monte Carlo estimators. Every
// estimator takes its random source from the caller so a fixed seed always
// reproduces the same estimate.
package montecarlo

import (
	"context"
	"math"
	"math/rand"

	"github.com/san-kum/numlab/internal/numeric"
)

// MaxRecordedSamples caps the points kept on a PiEstimate for plotting.
const MaxRecordedSamples = 5000

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sample is one dart thrown at [-1,1]².
type Sample struct {
	X, Y   float64
	Inside bool
}

// PiEstimate is the result of a dart-throwing estimate of π.
type PiEstimate struct {
	N      int
	Inside int
	Pi     float64
	// Samples holds the first MaxRecordedSamples darts.
	Samples []Sample

	hits []bool
}

// AbsError returns |estimate - π|.
func (e PiEstimate) AbsError() float64 { return math.Abs(e.Pi - math.Pi) }

// HistoryPoint is the running estimate after N darts.
type HistoryPoint struct {
	N     int
	Pi    float64
	Error float64
}

// History returns the running estimate every `every` darts, always
// including the final one.
func (e PiEstimate) History(every int) []HistoryPoint {
	if every < 1 || len(e.hits) == 0 {
		return nil
	}
	var out []HistoryPoint
	inside := 0
	for i, hit := range e.hits {
		if hit {
			inside++
		}
		n := i + 1
		if n%every == 0 || n == len(e.hits) {
			pi := 4 * float64(inside) / float64(n)
			out = append(out, HistoryPoint{N: n, Pi: pi, Error: math.Abs(pi - math.Pi)})
		}
	}
	return out
}

// EstimatePi throws n uniform darts at [-1,1]² and counts those landing in
// the unit circle.
func EstimatePi(n int, rng *rand.Rand) (PiEstimate, error) {
	if err := validate("EstimatePi", n, rng); err != nil {
		return PiEstimate{}, err
	}

	est := PiEstimate{N: n, hits: make([]bool, n)}
	for i := 0; i < n; i++ {
		x := 2*rng.Float64() - 1
		y := 2*rng.Float64() - 1
		in := x*x+y*y <= 1
		if in {
			est.Inside++
		}
		est.hits[i] = in
		if i < MaxRecordedSamples {
			est.Samples = append(est.Samples, Sample{X: x, Y: y, Inside: in})
		}
	}
	est.Pi = 4 * float64(est.Inside) / float64(n)
	return est, nil
}

// Estimate is a mean-value integral estimate.
type Estimate struct {
	N      int
	Value  float64
	StdErr float64
}

// Integrate estimates ∫_a^b f by averaging f at n uniform points.
func Integrate(f func(float64) float64, a, b float64, n int, rng *rand.Rand) (Estimate, error) {
	if err := validate("Integrate", n, rng); err != nil {
		return Estimate{}, err
	}
	if f == nil {
		return Estimate{}, numeric.Errorf("Integrate", numeric.InvalidInput, "nil integrand")
	}
	if !numeric.IsFinite(a) || !numeric.IsFinite(b) || a >= b {
		return Estimate{}, numeric.Errorf("Integrate", numeric.InvalidInput, "need finite a < b, got [%g, %g]", a, b)
	}

	width := b - a
	var mean, m2 float64
	for i := 1; i <= n; i++ {
		v := f(a + width*rng.Float64())
		d := v - mean
		mean += d / float64(i)
		m2 += d * (v - mean)
	}

	est := Estimate{N: n, Value: width * mean}
	if n > 1 {
		est.StdErr = width * math.Sqrt(m2/float64(n-1)/float64(n))
	}
	return est, nil
}

// Ensemble runs fn once per run with its own generator seeded
// seedStart+run. Runs execute concurrently and results keep run order. The
// first error wins; ctx cancellation stops runs that have not started.
func Ensemble[T any](ctx context.Context, runs int, seedStart int64, fn func(ctx context.Context, rng *rand.Rand) (T, error)) ([]T, error) {
	if runs < 1 {
		return nil, numeric.Errorf("Ensemble", numeric.InvalidInput, "need runs >= 1, got %d", runs)
	}

	results := make([]T, runs)
	errs := make([]error, runs)
	numeric.ParallelFor(runs, 1, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			results[i], errs[i] = fn(ctx, NewRand(seedStart+int64(i)))
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Summary is the spread of an ensemble of scalar estimates.
type Summary struct {
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize reduces values to mean, sample standard deviation and range.
func Summarize(values []float64) Summary {
	s := Summary{Runs: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Min, s.Max = values[0], values[0]
	for _, v := range values {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(values))
	if len(values) > 1 {
		ss := 0.0
		for _, v := range values {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.StdDev = math.Sqrt(ss / float64(len(values)-1))
	}
	return s
}

func validate(op string, n int, rng *rand.Rand) error {
	if n < 1 {
		return numeric.Errorf(op, numeric.InvalidInput, "need n >= 1, got %d", n)
	}
	if rng == nil {
		return numeric.Errorf(op, numeric.InvalidInput, "nil random source")
	}
	return nil
}

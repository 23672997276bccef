// Package roots finds zeros of scalar functions and records every iterate
// so the convergence can be plotted.
package roots

import (
	"math"
	"sort"

	"github.com/san-kum/numlab/internal/numeric"
)

// Func is a scalar function.
type Func func(x float64) float64

// Iteration is one step of a root finder.
type Iteration struct {
	N  int
	X  float64
	FX float64
	// Width is the bracket width for bisection and |Δx| for Newton/secant.
	Width float64
}

// Trace is the full history of a root search.
type Trace struct {
	Method     string
	Iterations []Iteration
	Root       float64
	Converged  bool
}

// Errors returns |x_n - root| for every iterate.
func (tr Trace) Errors(root float64) []float64 {
	out := make([]float64, len(tr.Iterations))
	for i, it := range tr.Iterations {
		out[i] = math.Abs(it.X - root)
	}
	return out
}

// Newton runs Newton–Raphson from x0 until |Δx| < tol or f(x) == 0. A
// derivative with magnitude below numeric.Epsilon stops the search with a
// Degenerate error and returns the trace so far.
func Newton(f, df Func, x0, tol float64, maxIter int) (Trace, error) {
	if err := validate("Newton", tol, maxIter); err != nil {
		return Trace{}, err
	}
	if f == nil || df == nil {
		return Trace{}, numeric.Errorf("Newton", numeric.InvalidInput, "nil function")
	}
	if !numeric.IsFinite(x0) {
		return Trace{}, numeric.Errorf("Newton", numeric.InvalidInput, "x0 is not finite")
	}

	tr := Trace{Method: "newton", Root: x0}
	x := x0
	for n := 1; n <= maxIter; n++ {
		fx, d := f(x), df(x)
		if fx == 0 {
			tr.Converged = true
			break
		}
		if math.Abs(d) < numeric.Epsilon {
			return tr, numeric.Errorf("Newton", numeric.Degenerate, "derivative vanishes at x=%g", x)
		}
		next := x - fx/d
		if !numeric.IsFinite(next) {
			return tr, numeric.Errorf("Newton", numeric.Degenerate, "iterate diverged after x=%g", x)
		}
		step := math.Abs(next - x)
		x = next
		tr.Iterations = append(tr.Iterations, Iteration{N: n, X: x, FX: f(x), Width: step})
		tr.Root = x
		if step < tol {
			tr.Converged = true
			break
		}
	}
	return tr, nil
}

// Secant runs the secant method from x0, x1.
func Secant(f Func, x0, x1, tol float64, maxIter int) (Trace, error) {
	if err := validate("Secant", tol, maxIter); err != nil {
		return Trace{}, err
	}
	if f == nil {
		return Trace{}, numeric.Errorf("Secant", numeric.InvalidInput, "nil function")
	}
	if x0 == x1 {
		return Trace{}, numeric.Errorf("Secant", numeric.InvalidInput, "starting points coincide")
	}

	tr := Trace{Method: "secant", Root: x1}
	f0, f1 := f(x0), f(x1)
	for n := 1; n <= maxIter; n++ {
		if f1 == 0 {
			tr.Converged = true
			break
		}
		denom := f1 - f0
		if denom == 0 {
			return tr, numeric.Errorf("Secant", numeric.Degenerate, "flat secant at x=%g", x1)
		}
		x2 := x1 - f1*(x1-x0)/denom
		step := math.Abs(x2 - x1)
		x0, f0 = x1, f1
		x1, f1 = x2, f(x2)
		tr.Iterations = append(tr.Iterations, Iteration{N: n, X: x1, FX: f1, Width: step})
		tr.Root = x1
		if step < tol {
			tr.Converged = true
			break
		}
	}
	return tr, nil
}

// Bisection halves [a, b] until it is narrower than 2·tol. The bracket
// must contain a sign change.
func Bisection(f Func, a, b, tol float64, maxIter int) (Trace, error) {
	if err := validate("Bisection", tol, maxIter); err != nil {
		return Trace{}, err
	}
	if f == nil {
		return Trace{}, numeric.Errorf("Bisection", numeric.InvalidInput, "nil function")
	}
	if !numeric.IsFinite(a) || !numeric.IsFinite(b) || a >= b {
		return Trace{}, numeric.Errorf("Bisection", numeric.InvalidInput, "need finite a < b, got [%g, %g]", a, b)
	}

	fa, fb := f(a), f(b)
	tr := Trace{Method: "bisection"}
	switch {
	case fa == 0:
		tr.Root, tr.Converged = a, true
		return tr, nil
	case fb == 0:
		tr.Root, tr.Converged = b, true
		return tr, nil
	case math.Signbit(fa) == math.Signbit(fb):
		return tr, numeric.Errorf("Bisection", numeric.InvalidInput, "no sign change on [%g, %g]", a, b)
	}

	for n := 1; n <= maxIter; n++ {
		mid := a + (b-a)/2
		fm := f(mid)
		tr.Iterations = append(tr.Iterations, Iteration{N: n, X: mid, FX: fm, Width: b - a})
		tr.Root = mid
		if fm == 0 || (b-a)/2 < tol {
			tr.Converged = true
			break
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return tr, nil
}

func validate(op string, tol float64, maxIter int) error {
	if !(tol > 0) {
		return numeric.Errorf(op, numeric.InvalidInput, "need tol > 0, got %g", tol)
	}
	if maxIter < 1 {
		return numeric.Errorf(op, numeric.InvalidInput, "need maxIter >= 1, got %d", maxIter)
	}
	return nil
}

// Problem is a preset equation with a starting point and a bracket.
type Problem struct {
	Name  string
	Label string
	F, DF Func
	X0    float64
	A, B  float64
}

var problems = map[string]Problem{
	"cubic": {
		Name:  "cubic",
		Label: "x³ - 2x - 5",
		F:     func(x float64) float64 { return x*x*x - 2*x - 5 },
		DF:    func(x float64) float64 { return 3*x*x - 2 },
		X0:    2, A: 2, B: 3,
	},
	"sqrt2": {
		Name:  "sqrt2",
		Label: "x² - 2",
		F:     func(x float64) float64 { return x*x - 2 },
		DF:    func(x float64) float64 { return 2 * x },
		X0:    1, A: 0, B: 2,
	},
	"dottie": {
		Name:  "dottie",
		Label: "cos(x) - x",
		F:     func(x float64) float64 { return math.Cos(x) - x },
		DF:    func(x float64) float64 { return -math.Sin(x) - 1 },
		X0:    1, A: 0, B: 1,
	},
}

// LookupProblem returns the preset with the given name.
func LookupProblem(name string) (Problem, bool) {
	p, ok := problems[name]
	return p, ok
}

// ProblemNames lists presets in sorted order.
func ProblemNames() []string {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

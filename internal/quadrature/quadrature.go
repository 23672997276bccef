package quadrature

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// Func is a pure scalar integrand.
type Func func(x float64) float64

// Rule selects a quadrature rule.
type Rule int

const (
	Left Rule = iota
	Right
	Midpoint
	Trapezoid
	Simpson
)

// ReferenceSubdivisions is the midpoint subdivision count used for the
// reference value.
const ReferenceSubdivisions = 200000

// DefaultConvergenceSteps are the subdivision counts used by convergence
// sweeps when the caller does not supply its own.
var DefaultConvergenceSteps = []int{2, 4, 8, 16, 32, 64, 128}

var ruleNames = map[Rule]string{
	Left:      "left",
	Right:     "right",
	Midpoint:  "midpoint",
	Trapezoid: "trapezoid",
	Simpson:   "simpson",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Rules lists every rule in declaration order.
func Rules() []Rule {
	return []Rule{Left, Right, Midpoint, Trapezoid, Simpson}
}

// ParseRule maps a rule name to its Rule.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "rectangle-left":
		return Left, nil
	case "right", "rectangle-right":
		return Right, nil
	case "midpoint", "mid":
		return Midpoint, nil
	case "trapezoid", "trapezoidal", "trap":
		return Trapezoid, nil
	case "simpson":
		return Simpson, nil
	}
	return 0, numeric.Errorf("ParseRule", numeric.InvalidInput, "unknown rule %q", name)
}

// Result bundles an approximation with its error against the reference.
type Result struct {
	Rule Rule
	// N is the subdivision count actually used (Simpson rounds odd n up).
	N         int
	Approx    float64
	Reference float64
	AbsError  float64
	RelError  float64
}

// Integrate approximates ∫_a^b f(x) dx with n subintervals using rule r and
// reports the error against the reference value.
func Integrate(f Func, a, b float64, n int, r Rule) (Result, error) {
	approx, used, err := Approximate(f, a, b, n, r)
	if err != nil {
		return Result{}, err
	}
	return newResult(r, used, approx, Reference(f, a, b)), nil
}

// Approximate returns the rule's approximation and the effective
// subdivision count without computing a reference.
func Approximate(f Func, a, b float64, n int, r Rule) (float64, int, error) {
	if err := validate("Integrate", f, a, b, n); err != nil {
		return 0, 0, err
	}

	switch r {
	case Left:
		return rectangle(f, a, b, n, 0), n, nil
	case Right:
		return rectangle(f, a, b, n, 1), n, nil
	case Midpoint:
		return rectangle(f, a, b, n, 0.5), n, nil
	case Trapezoid:
		return trapezoid(f, a, b, n), n, nil
	case Simpson:
		if n%2 != 0 {
			n++
		}
		return simpson(f, a, b, n), n, nil
	}
	return 0, 0, numeric.Errorf("Integrate", numeric.InvalidInput, "unknown rule %d", int(r))
}

// Reference computes the high-resolution midpoint value used for error
// reporting.
func Reference(f Func, a, b float64) float64 {
	return rectangle(f, a, b, ReferenceSubdivisions, 0.5)
}

// Convergence integrates with every subdivision count in ns, sharing one
// reference value. A nil ns uses DefaultConvergenceSteps.
func Convergence(f Func, a, b float64, r Rule, ns []int) ([]Result, error) {
	if ns == nil {
		ns = DefaultConvergenceSteps
	}
	if err := validate("Convergence", f, a, b, 1); err != nil {
		return nil, err
	}

	ref := Reference(f, a, b)
	out := make([]Result, 0, len(ns))
	for _, n := range ns {
		approx, used, err := Approximate(f, a, b, n, r)
		if err != nil {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}
		out = append(out, newResult(r, used, approx, ref))
	}
	return out, nil
}

func newResult(r Rule, n int, approx, ref float64) Result {
	abs := math.Abs(approx - ref)
	rel := abs
	if ref != 0 {
		rel = abs / math.Abs(ref)
	}
	return Result{Rule: r, N: n, Approx: approx, Reference: ref, AbsError: abs, RelError: rel}
}

func validate(op string, f Func, a, b float64, n int) error {
	switch {
	case f == nil:
		return numeric.Errorf(op, numeric.InvalidInput, "nil integrand")
	case !numeric.IsFinite(a) || !numeric.IsFinite(b):
		return numeric.Errorf(op, numeric.InvalidInput, "bounds must be finite")
	case a >= b:
		return numeric.Errorf(op, numeric.InvalidInput, "need a < b, got [%g, %g]", a, b)
	case n < 1:
		return numeric.Errorf(op, numeric.InvalidInput, "need n >= 1, got %d", n)
	}
	return nil
}

// rectangle sums f at a+(i+offset)·h; offset 0, 1 and 0.5 give the left,
// right and midpoint rules.
func rectangle(f Func, a, b float64, n int, offset float64) float64 {
	h := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += f(a + (float64(i)+offset)*h)
	}
	return sum * h
}

func trapezoid(f Func, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}

// simpson requires even n.
func simpson(f Func, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		sum += w * f(a+float64(i)*h)
	}
	return sum * h / 3
}

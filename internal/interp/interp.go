package interp

import (
	"fmt"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// Method selects an interpolation strategy.
type Method int

const (
	Linear Method = iota
	Lagrange
	Newton
	NaturalCubicSpline
)

var methodNames = map[Method]string{
	Linear:             "linear",
	Lagrange:           "lagrange",
	Newton:             "newton",
	NaturalCubicSpline: "natural-cubic-spline",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Methods lists every supported method in declaration order.
func Methods() []Method {
	return []Method{Linear, Lagrange, Newton, NaturalCubicSpline}
}

// ParseMethod maps a method name to its Method. "spline" is accepted as an
// alias for the natural cubic spline.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "lagrange":
		return Lagrange, nil
	case "newton":
		return Newton, nil
	case "natural-cubic-spline", "spline", "cubic":
		return NaturalCubicSpline, nil
	}
	return 0, numeric.Errorf("ParseMethod", numeric.InvalidInput, "unknown method %q", name)
}

// Interpolant is a curve built from control points.
type Interpolant interface {
	Eval(x float64) float64
}

// New builds the interpolant for points using method m. A natural cubic
// spline over fewer than three points falls back to linear interpolation.
func New(points []numeric.Point, m Method) (Interpolant, error) {
	switch m {
	case Linear:
		return NewLinear(points)
	case Lagrange:
		return NewLagrange(points)
	case Newton:
		return DividedDifferences(points)
	case NaturalCubicSpline:
		if len(points) == 2 {
			return NewLinear(points)
		}
		return NewSpline(points)
	}
	return nil, numeric.Errorf("New", numeric.InvalidInput, "unknown method %d", int(m))
}

// Evaluate returns the value at x of the curve through points built with
// method m. Tables are rebuilt on every call.
func Evaluate(points []numeric.Point, x float64, m Method) (float64, error) {
	ip, err := New(points, m)
	if err != nil {
		return 0, err
	}
	return ip.Eval(x), nil
}

// Sample evaluates the interpolant at steps+1 evenly spaced abscissas
// covering [from, to]. The interpolant is built once.
func Sample(points []numeric.Point, m Method, from, to float64, steps int) ([]numeric.Point, error) {
	if steps < 1 {
		return nil, numeric.Errorf("Sample", numeric.InvalidInput, "steps must be >= 1, got %d", steps)
	}
	ip, err := New(points, m)
	if err != nil {
		return nil, err
	}

	out := make([]numeric.Point, steps+1)
	for i := 0; i <= steps; i++ {
		x := from + (to-from)*float64(i)/float64(steps)
		out[i] = numeric.Point{X: x, Y: ip.Eval(x)}
	}
	return out, nil
}

// prepare validates points and returns a sorted copy. It rejects fewer
// than minPoints samples, non-finite coordinates and repeated abscissas.
func prepare(op string, points []numeric.Point, minPoints int) ([]numeric.Point, error) {
	if len(points) < minPoints {
		return nil, numeric.Errorf(op, numeric.InvalidInput, "need at least %d points, got %d", minPoints, len(points))
	}
	for i, p := range points {
		if !p.IsValid() {
			return nil, numeric.Errorf(op, numeric.InvalidInput, "point %d is not finite", i)
		}
	}

	sorted := numeric.SortedByX(points)
	if idx, ok := numeric.DistinctX(sorted); !ok {
		return nil, numeric.Errorf(op, numeric.Degenerate, "duplicate abscissa x=%g", sorted[idx].X)
	}
	return sorted, nil
}

package quadrature

import "github.com/san-kum/numlab/internal/numeric"

// Panel is the shape one rule draws over a slice of the interval: a
// rectangle, a trapezoid, or (Simpson) a parabola through three points.
type Panel struct {
	Rule   Rule
	X0, X1 float64
	// Y0 and Y1 are the heights at X0 and X1. Rectangles have Y0 == Y1.
	Y0, Y1 float64
	// YMid is the parabola height at the panel midpoint (Simpson only).
	YMid float64
}

// Area returns the signed area the panel contributes to the approximation.
func (p Panel) Area() float64 {
	w := p.X1 - p.X0
	switch p.Rule {
	case Simpson:
		return w / 6 * (p.Y0 + 4*p.YMid + p.Y1)
	case Trapezoid:
		return w * (p.Y0 + p.Y1) / 2
	default:
		return w * p.Y0
	}
}

// Height returns the panel's top edge at x, for drawing.
func (p Panel) Height(x float64) float64 {
	switch p.Rule {
	case Simpson:
		// Lagrange parabola through (X0,Y0), (mid,YMid), (X1,Y1).
		m := (p.X0 + p.X1) / 2
		l0 := (x - m) * (x - p.X1) / ((p.X0 - m) * (p.X0 - p.X1))
		l1 := (x - p.X0) * (x - p.X1) / ((m - p.X0) * (m - p.X1))
		l2 := (x - p.X0) * (x - m) / ((p.X1 - p.X0) * (p.X1 - m))
		return p.Y0*l0 + p.YMid*l1 + p.Y1*l2
	case Trapezoid:
		t := (x - p.X0) / (p.X1 - p.X0)
		return p.Y0 + t*(p.Y1-p.Y0)
	default:
		return p.Y0
	}
}

// Panels returns the shapes drawn by rule r over n subintervals. Simpson
// panels span two subintervals each; odd n is rounded up.
func Panels(f Func, a, b float64, n int, r Rule) ([]Panel, error) {
	if err := validate("Panels", f, a, b, n); err != nil {
		return nil, err
	}
	if r == Simpson && n%2 != 0 {
		n++
	}

	h := (b - a) / float64(n)
	x := func(i int) float64 { return a + float64(i)*h }

	var out []Panel
	switch r {
	case Left, Right, Midpoint:
		offset := map[Rule]float64{Left: 0, Right: 1, Midpoint: 0.5}[r]
		out = make([]Panel, n)
		for i := range out {
			y := f(a + (float64(i)+offset)*h)
			out[i] = Panel{Rule: r, X0: x(i), X1: x(i + 1), Y0: y, Y1: y}
		}
	case Trapezoid:
		out = make([]Panel, n)
		for i := range out {
			out[i] = Panel{Rule: r, X0: x(i), X1: x(i + 1), Y0: f(x(i)), Y1: f(x(i + 1))}
		}
	case Simpson:
		out = make([]Panel, n/2)
		for i := range out {
			out[i] = Panel{
				Rule: r,
				X0:   x(2 * i), X1: x(2*i + 2),
				Y0: f(x(2 * i)), YMid: f(x(2*i + 1)), Y1: f(x(2*i + 2)),
			}
		}
	default:
		return nil, numeric.Errorf("Panels", numeric.InvalidInput, "unknown rule %d", int(r))
	}
	return out, nil
}

package interp

import "github.com/san-kum/numlab/internal/numeric"

// LinearInterpolant joins consecutive points with straight segments.
type LinearInterpolant struct {
	pts []numeric.Point
}

// NewLinear builds a piecewise linear interpolant over at least two points.
func NewLinear(points []numeric.Point) (*LinearInterpolant, error) {
	sorted, err := prepare("Linear", points, 2)
	if err != nil {
		return nil, err
	}
	return &LinearInterpolant{pts: sorted}, nil
}

// Eval finds the bracketing segment by linear scan. Outside the sample
// range the nearest edge segment is extended.
func (l *LinearInterpolant) Eval(x float64) float64 {
	pts := l.pts
	n := len(pts)

	for i := 0; i < n-1; i++ {
		if x >= pts[i].X && x <= pts[i+1].X {
			return lerp(pts[i], pts[i+1], x)
		}
	}

	if x < pts[0].X {
		return lerp(pts[0], pts[1], x)
	}
	return lerp(pts[n-2], pts[n-1], x)
}

func lerp(p0, p1 numeric.Point, x float64) float64 {
	t := (x - p0.X) / (p1.X - p0.X)
	return p0.Y + t*(p1.Y-p0.Y)
}

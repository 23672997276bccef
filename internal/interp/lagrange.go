package interp

import "github.com/san-kum/numlab/internal/numeric"

// LagrangeInterpolant evaluates the Lagrange form of the interpolating
// polynomial directly. Each query costs O(n²).
type LagrangeInterpolant struct {
	pts []numeric.Point
}

// NewLagrange builds a Lagrange interpolant over at least two points.
func NewLagrange(points []numeric.Point) (*LagrangeInterpolant, error) {
	sorted, err := prepare("Lagrange", points, 2)
	if err != nil {
		return nil, err
	}
	return &LagrangeInterpolant{pts: sorted}, nil
}

// Eval computes Σ y_i · Π_{j≠i} (x−x_j)/(x_i−x_j).
func (l *LagrangeInterpolant) Eval(x float64) float64 {
	result := 0.0
	for i := range l.pts {
		result += l.pts[i].Y * l.basis(i, x)
	}
	return result
}

// Basis returns L_i(x), the i-th basis polynomial over the sorted nodes.
func (l *LagrangeInterpolant) Basis(i int, x float64) float64 {
	if i < 0 || i >= len(l.pts) {
		return 0
	}
	return l.basis(i, x)
}

// Nodes returns the sorted interpolation nodes.
func (l *LagrangeInterpolant) Nodes() []numeric.Point {
	out := make([]numeric.Point, len(l.pts))
	copy(out, l.pts)
	return out
}

func (l *LagrangeInterpolant) basis(i int, x float64) float64 {
	term := 1.0
	xi := l.pts[i].X
	for j := range l.pts {
		if j != i {
			term *= (x - l.pts[j].X) / (xi - l.pts[j].X)
		}
	}
	return term
}

// LagrangeBasis returns L_i(x) for the i-th node after sorting points by X.
func LagrangeBasis(points []numeric.Point, i int, x float64) (float64, error) {
	l, err := NewLagrange(points)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(l.pts) {
		return 0, numeric.Errorf("LagrangeBasis", numeric.InvalidInput, "basis index %d out of range [0,%d)", i, len(l.pts))
	}
	return l.basis(i, x), nil
}

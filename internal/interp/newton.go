package interp

import "github.com/san-kum/numlab/internal/numeric"

// NewtonPolynomial is the Newton form of the interpolating polynomial.
//
// Only the top row of the divided-difference table (the coefficients) and
// its last anti-diagonal are retained: that is all Extend needs to append
// one node in O(n).
type NewtonPolynomial struct {
	xs     []float64
	coeffs []float64
	// edge[j] = f[x_{n-1-j}, ..., x_{n-1}]
	edge []float64
}

// DividedDifferences builds the Newton polynomial over at least two points
// in O(n²).
func DividedDifferences(points []numeric.Point) (*NewtonPolynomial, error) {
	sorted, err := prepare("Newton", points, 2)
	if err != nil {
		return nil, err
	}

	n := len(sorted)
	xs := make([]float64, n)
	for i, p := range sorted {
		xs[i] = p.X
	}

	dd := divide(sorted)

	coeffs := make([]float64, n)
	copy(coeffs, dd[0])

	edge := make([]float64, n)
	for j := 0; j < n; j++ {
		edge[j] = dd[n-1-j][j]
	}

	return &NewtonPolynomial{xs: xs, coeffs: coeffs, edge: edge}, nil
}

// divide fills the square table dd where dd[i][j] = f[x_i, ..., x_{i+j}].
// Entries with i+j >= n are left at zero.
func divide(pts []numeric.Point) [][]float64 {
	n := len(pts)
	dd := make([][]float64, n)
	for i := range dd {
		dd[i] = make([]float64, n)
		dd[i][0] = pts[i].Y
	}

	for j := 1; j < n; j++ {
		for i := 0; i < n-j; i++ {
			dd[i][j] = (dd[i+1][j-1] - dd[i][j-1]) / (pts[i+j].X - pts[i].X)
		}
	}
	return dd
}

// DividedDifferenceTable returns the full n×n table for display. Entry
// [i][j] is only meaningful when i+j < n.
func DividedDifferenceTable(points []numeric.Point) ([][]float64, error) {
	sorted, err := prepare("Newton", points, 2)
	if err != nil {
		return nil, err
	}
	return divide(sorted), nil
}

// Eval evaluates the polynomial with Horner-style nested multiplication.
func (p *NewtonPolynomial) Eval(x float64) float64 {
	n := len(p.coeffs)
	result := p.coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		result = result*(x-p.xs[i]) + p.coeffs[i]
	}
	return result
}

// Coefficients returns f[x_0], f[x_0,x_1], ..., f[x_0..x_{n-1}].
func (p *NewtonPolynomial) Coefficients() []float64 {
	out := make([]float64, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Nodes returns the node abscissas in insertion order.
func (p *NewtonPolynomial) Nodes() []float64 {
	out := make([]float64, len(p.xs))
	copy(out, p.xs)
	return out
}

// Degree returns the polynomial degree, len(nodes)-1.
func (p *NewtonPolynomial) Degree() int { return len(p.coeffs) - 1 }

// Extend returns a new polynomial that additionally passes through pt. The
// receiver is not modified. Cost is O(n).
func (p *NewtonPolynomial) Extend(pt numeric.Point) (*NewtonPolynomial, error) {
	if !pt.IsValid() {
		return nil, numeric.Errorf("Newton.Extend", numeric.InvalidInput, "point is not finite")
	}
	for _, x := range p.xs {
		if x == pt.X {
			return nil, numeric.Errorf("Newton.Extend", numeric.Degenerate, "duplicate abscissa x=%g", pt.X)
		}
	}

	n := len(p.xs)
	edge := make([]float64, n+1)
	edge[0] = pt.Y
	for j := 1; j <= n; j++ {
		edge[j] = (edge[j-1] - p.edge[j-1]) / (pt.X - p.xs[n-j])
	}

	xs := make([]float64, n+1)
	copy(xs, p.xs)
	xs[n] = pt.X

	coeffs := make([]float64, n+1)
	copy(coeffs, p.coeffs)
	coeffs[n] = edge[n]

	return &NewtonPolynomial{xs: xs, coeffs: coeffs, edge: edge}, nil
}

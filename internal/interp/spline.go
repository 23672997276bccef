package interp

import "github.com/san-kum/numlab/internal/numeric"

// Segment is one cubic piece of a spline, valid on [X0, X1]:
//
//	S(x) = A + B·dx + C·dx² + D·dx³,  dx = x − X0
type Segment struct {
	X0, X1     float64
	A, B, C, D float64
}

// Eval evaluates the segment cubic at x.
func (s Segment) Eval(x float64) float64 {
	dx := x - s.X0
	return s.A + dx*(s.B+dx*(s.C+dx*s.D))
}

// Spline is a natural cubic spline: C² continuous with zero second
// derivative at both endpoints.
type Spline struct {
	xs, ys  []float64
	b, c, d []float64
}

// NewSpline solves the tridiagonal system for the natural cubic spline
// through at least three points.
func NewSpline(points []numeric.Point) (*Spline, error) {
	sorted, err := prepare("Spline", points, 3)
	if err != nil {
		return nil, err
	}

	n := len(sorted)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range sorted {
		xs[i], ys[i] = p.X, p.Y
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}

	alpha := make([]float64, n-1)
	for i := 1; i < n-1; i++ {
		alpha[i] = 3/h[i]*(ys[i+1]-ys[i]) - 3/h[i-1]*(ys[i]-ys[i-1])
	}

	// Forward sweep.
	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1
	for i := 1; i < n-1; i++ {
		l[i] = 2*(xs[i+1]-xs[i-1]) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}
	l[n-1] = 1

	// Back substitution; c[n-1] = 0 is the natural end condition.
	c := make([]float64, n)
	b := make([]float64, n-1)
	d := make([]float64, n-1)
	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (ys[j+1]-ys[j])/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}

	return &Spline{xs: xs, ys: ys, b: b, c: c[:n-1], d: d}, nil
}

// Segments returns the per-segment cubic coefficients.
func (s *Spline) Segments() []Segment {
	out := make([]Segment, len(s.b))
	for i := range out {
		out[i] = Segment{
			X0: s.xs[i], X1: s.xs[i+1],
			A: s.ys[i], B: s.b[i], C: s.c[i], D: s.d[i],
		}
	}
	return out
}

// segment returns the index of the segment owning x. Points left of the
// range use the first segment, points right of it the last.
func (s *Spline) segment(x float64) int {
	last := len(s.b) - 1
	for j := 0; j < last; j++ {
		if x <= s.xs[j+1] {
			return j
		}
	}
	return last
}

// Eval evaluates the spline at x, extrapolating with the edge cubics.
func (s *Spline) Eval(x float64) float64 {
	i := s.segment(x)
	dx := x - s.xs[i]
	return s.ys[i] + dx*(s.b[i]+dx*(s.c[i]+dx*s.d[i]))
}

// Derivative returns S'(x).
func (s *Spline) Derivative(x float64) float64 {
	i := s.segment(x)
	dx := x - s.xs[i]
	return s.b[i] + dx*(2*s.c[i]+3*dx*s.d[i])
}

// SecondDerivative returns the second derivative of the spline at x. It is
// zero at both endpoints.
func (s *Spline) SecondDerivative(x float64) float64 {
	i := s.segment(x)
	dx := x - s.xs[i]
	return 2*s.c[i] + 6*s.d[i]*dx
}

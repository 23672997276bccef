package numeric

import (
	"fmt"
	"math"
	"sort"
)

// Epsilon is the absolute threshold below which pivots, norms and
// denominators are treated as zero.
const Epsilon = 1e-10

// Point is a sample (x, y) pair.
type Point struct {
	X, Y float64
}

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// SortedByX returns a copy of pts ordered by ascending X. The input is
// never modified.
func SortedByX(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// DistinctX reports whether the abscissas of a slice sorted by X are
// pairwise distinct. It returns the index of the first repeated abscissa
// otherwise.
func DistinctX(sorted []Point) (int, bool) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].X == sorted[i-1].X {
			return i, false
		}
	}
	return -1, true
}

// Bounds returns the minimum and maximum X and Y over pts.
func Bounds(pts []Point) (minX, maxX, minY, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// Vector is a dense real vector. Binary operations require operands of
// equal length and panic otherwise.
type Vector []float64

func (v Vector) Clone() Vector { return append(Vector(nil), v...) }

// IsValid reports whether every component is finite.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean length.
func (v Vector) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vector) Dot(x Vector) float64 {
	mustMatch("Dot", v, x)
	sum := 0.0
	for i, vi := range v {
		sum += vi * x[i]
	}
	return sum
}

func (v Vector) Add(x Vector) Vector { return v.AXPY(1, x) }

func (v Vector) Sub(x Vector) Vector { return v.AXPY(-1, x) }

func (v Vector) Scale(a float64) Vector {
	out := make(Vector, len(v))
	for i, vi := range v {
		out[i] = a * vi
	}
	return out
}

// AXPY returns v + a*x.
func (v Vector) AXPY(a float64, x Vector) Vector {
	mustMatch("AXPY", v, x)
	out := make(Vector, len(v))
	for i, vi := range v {
		out[i] = vi + a*x[i]
	}
	return out
}

func mustMatch(op string, v, x Vector) {
	if len(v) != len(x) {
		panic(fmt.Sprintf("numeric: Vector.%s length mismatch %d != %d", op, len(v), len(x)))
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool { return isFinite(x) }

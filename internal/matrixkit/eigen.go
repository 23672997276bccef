package matrixkit

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// EigenResult holds the real eigenpairs of a 2×2 matrix, λ₁ ≥ λ₂.
type EigenResult struct {
	Values  [2]float64
	Vectors [2]numeric.Vector

	Trace        float64
	Det          float64
	Discriminant float64

	Valid bool
	Kind  numeric.Kind
}

// Eigen solves the characteristic polynomial of a 2×2 matrix. Complex
// eigenvalues (negative discriminant) yield Valid=false with Kind
// Unsupported.
func Eigen(a Matrix) (EigenResult, error) {
	if err := require2x2("Eigen", a); err != nil {
		return EigenResult{}, err
	}
	return eigen2(a.At(0, 0), a.At(0, 1), a.At(1, 0), a.At(1, 1)), nil
}

func eigen2(a, b, c, d float64) EigenResult {
	res := EigenResult{Trace: a + d, Det: a*d - b*c}
	if b == c {
		// Symmetric input: same value as trace²-4det, but never rounds below zero.
		res.Discriminant = (a-d)*(a-d) + 4*b*b
	} else {
		res.Discriminant = res.Trace*res.Trace - 4*res.Det
	}
	if res.Discriminant < 0 {
		res.Kind = numeric.Unsupported
		return res
	}

	root := math.Sqrt(res.Discriminant)
	res.Values = [2]float64{(res.Trace + root) / 2, (res.Trace - root) / 2}
	for i, l := range res.Values {
		res.Vectors[i] = eigenvector(a, b, c, d, l)
	}
	res.Valid = true
	return res
}

// eigenvector picks (b, λ-a), then (λ-d, c), then a standard basis vector.
func eigenvector(a, b, c, d, l float64) numeric.Vector {
	var v numeric.Vector
	switch {
	case math.Abs(b) > Epsilon:
		v = numeric.Vector{b, l - a}
	case math.Abs(c) > Epsilon:
		v = numeric.Vector{l - d, c}
	case math.Abs(l-a) < Epsilon:
		return numeric.Vector{1, 0}
	default:
		return numeric.Vector{0, 1}
	}
	return v.Scale(1 / v.Norm())
}

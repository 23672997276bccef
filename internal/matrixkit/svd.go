package matrixkit

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// SVDResult holds A = U·Σ·Vᵀ for a 2×2 matrix, σ₁ ≥ σ₂ ≥ 0.
type SVDResult struct {
	Sigma [2]float64
	U, V  Matrix

	Valid bool
	Kind  numeric.Kind
}

// Condition returns σ₁/σ₂, or +Inf when σ₂ is effectively zero.
func (r SVDResult) Condition() float64 {
	if r.Sigma[1] < Epsilon {
		return math.Inf(1)
	}
	return r.Sigma[0] / r.Sigma[1]
}

// SigmaMatrix returns Σ as a diagonal matrix.
func (r SVDResult) SigmaMatrix() Matrix {
	return Matrix{rows: 2, cols: 2, data: []float64{r.Sigma[0], 0, 0, r.Sigma[1]}}
}

// SVD decomposes a 2×2 matrix through the eigenpairs of AᵀA. Singular
// values are √max(0, λ) and U's first column is A·v₁/σ₁.
func SVD(a Matrix) (SVDResult, error) {
	if err := require2x2("SVD", a); err != nil {
		return SVDResult{}, err
	}

	ata, _ := Mul(Transpose(a), a)
	eig := eigen2(ata.At(0, 0), ata.At(0, 1), ata.At(0, 1), ata.At(1, 1))
	if !eig.Valid {
		return SVDResult{Kind: eig.Kind}, nil
	}

	v1 := eig.Vectors[0]
	// AᵀA is symmetric so its eigenvectors are orthogonal.
	v2 := numeric.Vector{-v1[1], v1[0]}

	res := SVDResult{Valid: true}
	for i, l := range eig.Values {
		res.Sigma[i] = math.Sqrt(math.Max(0, l))
	}
	res.V = Matrix{rows: 2, cols: 2, data: []float64{v1[0], v2[0], v1[1], v2[1]}}

	u1 := numeric.Vector{1, 0}
	if res.Sigma[0] >= Epsilon {
		av1, _ := Apply(a, v1)
		u1 = av1.Scale(1 / res.Sigma[0])
	}
	// In 2-D the second left vector is ±u1 rotated by 90°, oriented so
	// that A·v2 = σ₂·u2 with σ₂ ≥ 0.
	u2 := numeric.Vector{-u1[1], u1[0]}
	if av2, _ := Apply(a, v2); av2.Dot(u2) < 0 {
		u2 = u2.Scale(-1)
	}
	res.U = Matrix{rows: 2, cols: 2, data: []float64{u1[0], u2[0], u1[1], u2[1]}}
	return res, nil
}

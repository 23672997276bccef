package matrixkit

import "github.com/san-kum/numlab/internal/numeric"

// QRResult holds A = Q·R with orthonormal columns in Q (m×n) and upper
// triangular R (n×n).
type QRResult struct {
	Q, R Matrix

	Valid bool
	Kind  numeric.Kind
	// Column is the first column whose residual vanished when Valid is false.
	Column int
}

// QR orthogonalizes the columns of an m×n matrix of any shape with
// classical Gram–Schmidt. A residual norm below Epsilon marks the result
// Degenerate and leaves that column of Q zero. A wide matrix (m < n) always
// ends Degenerate, at column m or earlier, with rows of R past the rank
// left zero.
func QR(a Matrix) (QRResult, error) {
	m, n := a.Dims()
	q, r := zeros(m, n), zeros(n, n)
	res := QRResult{Valid: true}
	cols := make([]numeric.Vector, n)
	for j := 0; j < n; j++ {
		aj := a.Col(j)
		v := aj.Clone()
		for i := 0; i < j; i++ {
			rij := cols[i].Dot(aj)
			r.set(i, j, rij)
			v = v.AXPY(-rij, cols[i])
		}

		norm := v.Norm()
		r.set(j, j, norm)
		if norm < Epsilon {
			if res.Valid {
				res.Valid, res.Kind, res.Column = false, numeric.Degenerate, j
			}
			cols[j] = make(numeric.Vector, m)
			continue
		}
		cols[j] = v.Scale(1 / norm)
		for i, x := range cols[j] {
			q.set(i, j, x)
		}
	}
	res.Q, res.R = q, r
	return res, nil
}

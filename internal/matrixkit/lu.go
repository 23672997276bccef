package matrixkit

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// LUResult holds A = L·U with unit-diagonal L.
type LUResult struct {
	L, U Matrix

	Valid bool
	Kind  numeric.Kind
	// Pivot is the row whose pivot vanished when Valid is false.
	Pivot int
}

// Det returns the product of U's diagonal.
func (r LUResult) Det() float64 {
	det := 1.0
	for i := 0; i < r.U.rows; i++ {
		det *= r.U.At(i, i)
	}
	return det
}

// LU factors a square matrix with Doolittle's method and no pivoting. A
// pivot with |u_ii| < Epsilon that would be divided by marks the result
// Degenerate; the factors hold the rows computed before it.
func LU(a Matrix) (LUResult, error) {
	if !a.IsSquare() {
		return LUResult{}, numeric.Errorf("LU", numeric.InvalidInput, "need a square matrix, got %dx%d", a.rows, a.cols)
	}

	n := a.rows
	l, u := Identity(n), zeros(n, n)
	for i := 0; i < n; i++ {
		for k := i; k < n; k++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += l.At(i, j) * u.At(j, k)
			}
			u.set(i, k, a.At(i, k)-sum)
		}
		if i == n-1 {
			break
		}

		pivot := u.At(i, i)
		if math.Abs(pivot) < Epsilon {
			return LUResult{L: l, U: u, Kind: numeric.Degenerate, Pivot: i}, nil
		}
		for k := i + 1; k < n; k++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += l.At(k, j) * u.At(j, i)
			}
			l.set(k, i, (a.At(k, i)-sum)/pivot)
		}
	}
	return LUResult{L: l, U: u, Valid: true}, nil
}

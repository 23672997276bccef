package matrixkit

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Rotation2 returns the counter-clockwise rotation by theta radians.
func Rotation2(theta float64) Matrix {
	s, c := math.Sincos(theta)
	return Matrix{rows: 2, cols: 2, data: []float64{c, -s, s, c}}
}

// TransformCircle maps steps points of the unit circle through a 2×2
// matrix, producing the ellipse the matrix stretches it into.
func TransformCircle(a Matrix, steps int) ([]numeric.Point, error) {
	if err := require2x2("TransformCircle", a); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, numeric.Errorf("TransformCircle", numeric.InvalidInput, "need steps >= 1, got %d", steps)
	}
	out := make([]numeric.Point, steps)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(steps))
		out[i] = numeric.Point{
			X: a.At(0, 0)*c + a.At(0, 1)*s,
			Y: a.At(1, 0)*c + a.At(1, 1)*s,
		}
	}
	return out, nil
}

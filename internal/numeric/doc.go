// Package numeric provides the primitives shared by the numerical methods
// packages of numlab.
//
// The package defines the small vocabulary every method speaks:
//
//   - [Point]: a sample (x, y) pair
//   - [Vector]: a dense real vector with arithmetic helpers
//   - [Kind]: the failure taxonomy (invalid input, degenerate, unsupported)
//   - [Error]: a typed error carrying the operation and [Kind]
//
// # Error Handling
//
// Malformed calls (too few points, n = 0 subdivisions, wrong matrix shape)
// return an error that matches one of the sentinels via errors.Is:
//
//	_, err := interp.Evaluate(pts, 0.5, interp.Lagrange)
//	if errors.Is(err, numeric.ErrDegenerate) {
//	    // duplicate abscissas
//	}
//
// Algorithmic failures inside decompositions are reported on the result
// value instead (Valid=false plus a Kind) so callers always have something
// to display.
//
// # Thread Safety
//
// All values are immutable once built and every function is pure; callers
// may share them between goroutines without locking.
package numeric

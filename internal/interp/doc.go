// Package interp evaluates interpolating curves through a set of control
// points.
//
// Four interchangeable methods are provided:
//
//   - [Linear]: piecewise linear, extrapolating with the edge segment slopes
//   - [Lagrange]: direct Lagrange form, O(n²) per query
//   - [Newton]: divided-difference table built once, O(n) Horner evaluation
//   - [NaturalCubicSpline]: C² cubic spline with zero end curvature
//
// # Example
//
//	pts := []numeric.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 0}}
//	y, err := interp.Evaluate(pts, 1.5, interp.NaturalCubicSpline)
//
// For many queries against the same points build the interpolant once with
// [New] and call Eval repeatedly.
//
// Input points may arrive in any order; they are sorted by X internally.
// Duplicate abscissas are rejected with [numeric.ErrDegenerate] before any
// table is built. Lagrange and Newton forms are numerically unstable for
// large n or closely spaced nodes; this is inherent to the methods.
package interp

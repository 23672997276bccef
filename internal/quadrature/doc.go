// Package quadrature approximates definite integrals with fixed-step
// Newton–Cotes rules.
//
// Supported rules:
//
//   - [Left], [Right], [Midpoint]: rectangle rules, O(h) / O(h) / O(h²)
//   - [Trapezoid]: average of the left and right rules, O(h²)
//   - [Simpson]: composite parabolic rule, O(h⁴); odd n is rounded up
//
// Every [Result] carries a reference value computed independently with a
// high-resolution midpoint rule so callers can show the approximation error
// next to the approximation:
//
//	res, err := quadrature.Integrate(math.Sin, 0, math.Pi, 8, quadrature.Simpson)
//	fmt.Println(res.Approx, res.AbsError)
//
// The reference value is for error reporting only and is never returned as
// the approximation.
package quadrature

package spectrum

import "github.com/san-kum/numlab/internal/numeric"

// Circle is one link of an epicycle chain.
type Circle struct {
	Center numeric.Point
	Radius float64
	Freq   int
	// Tip is where this link's arm ends and the next circle is centered.
	Tip numeric.Point
}

// Epicycles lays out the first k coefficients head to tail at time t. The
// last circle's Tip equals Reconstruct(coeffs, k, t).
func Epicycles(coeffs Spectrum, k int, t float64) []Circle {
	head := coeffs.Truncate(k)
	chain := make([]Circle, len(head))
	var center numeric.Point
	for i, c := range head {
		tip := center.Add(c.At(t))
		chain[i] = Circle{Center: center, Radius: c.Amplitude, Freq: c.Freq, Tip: tip}
		center = tip
	}
	return chain
}

// Trace samples the reconstructed path at steps+1 evenly spaced times in
// [0, t]. It returns nil when steps < 1.
func Trace(coeffs Spectrum, k int, t float64, steps int) []numeric.Point {
	if steps < 1 {
		return nil
	}
	path := make([]numeric.Point, steps+1)
	for j := range path {
		path[j] = Reconstruct(coeffs, k, t*float64(j)/float64(steps))
	}
	return path
}

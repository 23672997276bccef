// Package spectrum decomposes closed 2-D curves into rotating phasors
// ("epicycles") with a direct discrete Fourier transform.
//
// A curve of N samples is read as complex values z = x + iy taken at
// t_n = 2πn/N. [Decompose] returns one [Coefficient] per frequency sorted by
// amplitude, and [Reconstruct] sums the k largest back into a point:
//
//	s, _ := spectrum.Decompose(samples)
//	p := spectrum.Reconstruct(s, 10, t)
//
// Using every coefficient reproduces the samples at their own t_n. The
// transform is O(N²); no FFT is used.
package spectrum

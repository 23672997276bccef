// Package matrixkit implements small dense matrix decompositions for
// visualizing linear maps: a real 2×2 eigen solver, a 2×2 SVD built on it,
// Doolittle LU without pivoting, and classical Gram–Schmidt QR.
//
// Numerical failure (complex eigenvalues, zero pivots, dependent columns) is
// reported through Valid and Kind on the result so callers always have
// something to draw. Only malformed shapes return an error.
package matrixkit

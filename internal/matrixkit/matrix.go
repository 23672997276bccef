package matrixkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// Epsilon is the threshold below which pivots, norms and off-diagonal
// entries count as zero.
const Epsilon = numeric.Epsilon

// Matrix is an immutable row-major dense matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New copies data into a rows×cols matrix.
func New(rows, cols int, data []float64) (Matrix, error) {
	if rows < 1 || cols < 1 {
		return Matrix{}, numeric.Errorf("New", numeric.InvalidInput, "dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return Matrix{}, numeric.Errorf("New", numeric.InvalidInput, "need %d values for %dx%d, got %d", rows*cols, rows, cols, len(data))
	}
	for i, v := range data {
		if !numeric.IsFinite(v) {
			return Matrix{}, numeric.Errorf("New", numeric.InvalidInput, "entry %d is not finite", i)
		}
	}
	return Matrix{rows: rows, cols: cols, data: append([]float64(nil), data...)}, nil
}

// FromRows builds a matrix from equal-length rows.
func FromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, numeric.Errorf("FromRows", numeric.InvalidInput, "no rows")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return Matrix{}, numeric.Errorf("FromRows", numeric.InvalidInput, "row %d has %d entries, want %d", i, len(r), cols)
		}
		data = append(data, r...)
	}
	return New(len(rows), cols, data)
}

// Parse reads "a,b;c,d" notation: rows separated by ';', entries by ','.
func Parse(s string) (Matrix, error) {
	var rows [][]float64
	for _, line := range strings.Split(s, ";") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []float64
		for _, field := range strings.Split(line, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Matrix{}, numeric.Errorf("Parse", numeric.InvalidInput, "bad entry %q", field)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Identity returns the n×n identity.
func Identity(n int) Matrix {
	m := zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func zeros(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

// Dims returns rows and columns.
func (m Matrix) Dims() (int, int) { return m.rows, m.cols }

// At returns the entry at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

func (m Matrix) set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float64 {
	return append([]float64(nil), m.data[i*m.cols:(i+1)*m.cols]...)
}

// Col returns a copy of column j.
func (m Matrix) Col(j int) numeric.Vector {
	out := make(numeric.Vector, m.rows)
	for i := range out {
		out[i] = m.At(i, j)
	}
	return out
}

// RawData returns a copy of the row-major entries.
func (m Matrix) RawData() []float64 { return append([]float64(nil), m.data...) }

func (m Matrix) IsSquare() bool { return m.rows == m.cols && m.rows > 0 }

// Equal reports whether m and o have the same shape and entries within tol.
func (m Matrix) Equal(o Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		d := v - o.data[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		b.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%9.4f", m.At(i, j))
		}
		b.WriteString(" ]\n")
	}
	return b.String()
}

// Mul returns a·b.
func Mul(a, b Matrix) (Matrix, error) {
	if a.cols != b.rows {
		return Matrix{}, numeric.Errorf("Mul", numeric.InvalidInput, "shape mismatch %dx%d · %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	out := zeros(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.At(i, k)
			for j := 0; j < b.cols; j++ {
				out.data[i*out.cols+j] += aik * b.At(k, j)
			}
		}
	}
	return out, nil
}

// Transpose returns aᵀ.
func Transpose(a Matrix) Matrix {
	out := zeros(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.set(j, i, a.At(i, j))
		}
	}
	return out
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(a Matrix) (float64, error) {
	if !a.IsSquare() {
		return 0, numeric.Errorf("Trace", numeric.InvalidInput, "need a square matrix, got %dx%d", a.rows, a.cols)
	}
	t := 0.0
	for i := 0; i < a.rows; i++ {
		t += a.At(i, i)
	}
	return t, nil
}

// Det2 returns ad − bc for a 2×2 matrix.
func Det2(a Matrix) (float64, error) {
	if err := require2x2("Det2", a); err != nil {
		return 0, err
	}
	return a.At(0, 0)*a.At(1, 1) - a.At(0, 1)*a.At(1, 0), nil
}

// Apply returns a·v.
func Apply(a Matrix, v numeric.Vector) (numeric.Vector, error) {
	if len(v) != a.cols {
		return nil, numeric.Errorf("Apply", numeric.InvalidInput, "vector length %d, want %d", len(v), a.cols)
	}
	out := make(numeric.Vector, a.rows)
	for i := range out {
		for j, x := range v {
			out[i] += a.At(i, j) * x
		}
	}
	return out, nil
}

func require2x2(op string, a Matrix) error {
	if a.rows != 2 || a.cols != 2 {
		return numeric.Errorf(op, numeric.InvalidInput, "need a 2x2 matrix, got %dx%d", a.rows, a.cols)
	}
	return nil
}

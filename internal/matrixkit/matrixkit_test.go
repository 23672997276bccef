package matrixkit

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/numlab/internal/numeric"
)

const tol = 1e-9

func m2(a, b, c, d float64) Matrix {
	m, err := New(2, 2, []float64{a, b, c, d})
	if err != nil {
		panic(err)
	}
	return m
}

func mustParse(t *testing.T, s string) Matrix {
	t.Helper()
	m, err := Parse(s)
	require.NoError(t, err)
	return m
}

func requireMatrixEqual(t *testing.T, want, got Matrix) {
	t.Helper()
	require.Truef(t, want.Equal(got, tol), "want\n%s\ngot\n%s", want, got)
}

func TestEigen_TraceAndDeterminant(t *testing.T) {
	cases := map[string]Matrix{
		"symmetric": m2(3, 1, 1, 3),
		"diagonal":  m2(5, 0, 0, -2),
		"shear":     m2(1, 1, 0, 1),
		"lower":     m2(2, 0, 4, 7),
		"general":   m2(4, 1, 2, 3),
		"singular":  m2(1, 2, 2, 4),
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Eigen(a)
			require.NoError(t, err)
			require.True(t, res.Valid)
			require.Equal(t, numeric.OK, res.Kind)

			tr, _ := Trace(a)
			det, _ := Det2(a)
			assert.InDelta(t, tr, res.Values[0]+res.Values[1], tol)
			assert.InDelta(t, det, res.Values[0]*res.Values[1], tol)
			assert.GreaterOrEqual(t, res.Values[0], res.Values[1])
		})
	}
}

func TestEigen_VectorsSatisfyDefinition(t *testing.T) {
	for _, a := range []Matrix{m2(3, 1, 1, 3), m2(4, 1, 2, 3), m2(2, 0, 4, 7), m2(5, 0, 0, -2)} {
		res, err := Eigen(a)
		require.NoError(t, err)
		for i, v := range res.Vectors {
			assert.InDelta(t, 1, v.Norm(), tol)
			av, err := Apply(a, v)
			require.NoError(t, err)
			for j := range av {
				assert.InDelta(t, res.Values[i]*v[j], av[j], tol)
			}
		}
	}
}

func TestEigen_FallbackChain(t *testing.T) {
	res, err := Eigen(m2(2, 0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, [2]float64{3, 2}, res.Values)
	assert.Equal(t, numeric.Vector{0, 1}, res.Vectors[0])
	assert.Equal(t, numeric.Vector{1, 0}, res.Vectors[1])

	res, err = Eigen(m2(3, 0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, numeric.Vector{1, 0}, res.Vectors[0])
	assert.Equal(t, numeric.Vector{0, 1}, res.Vectors[1])

	// b vanishes, c does not: (λ-d, c) branch.
	res, err = Eigen(m2(2, 0, 4, 7))
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Vectors[0][0], tol)
	assert.InDelta(t, 1, math.Abs(res.Vectors[0][1]), tol)
}

func TestEigen_ComplexIsUnsupported(t *testing.T) {
	res, err := Eigen(Rotation2(math.Pi / 2))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, numeric.Unsupported, res.Kind)
	assert.Less(t, res.Discriminant, 0.0)
}

func TestEigen_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	checked := 0
	for checked < 20 {
		data := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		res, err := Eigen(m2(data[0], data[1], data[2], data[3]))
		require.NoError(t, err)
		if !res.Valid {
			continue
		}
		var eig mat.Eigen
		require.True(t, eig.Factorize(mat.NewDense(2, 2, data), mat.EigenNone))
		vals := eig.Values(nil)
		want := []float64{real(vals[0]), real(vals[1])}
		sort.Sort(sort.Reverse(sort.Float64Slice(want)))
		assert.InDelta(t, want[0], res.Values[0], 1e-8)
		assert.InDelta(t, want[1], res.Values[1], 1e-8)
		checked++
	}
}

func TestSVD_Reconstructs(t *testing.T) {
	cases := map[string]Matrix{
		"symmetric": m2(3, 1, 1, 3),
		"general":   m2(4, 1, 2, 3),
		"rotation":  Rotation2(0.7),
		"singular":  m2(1, 2, 2, 4),
		"zero":      m2(0, 0, 0, 0),
		"negative":  m2(-2, 0, 0, -5),
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := SVD(a)
			require.NoError(t, err)
			require.True(t, res.Valid)
			assert.GreaterOrEqual(t, res.Sigma[0], res.Sigma[1])
			assert.GreaterOrEqual(t, res.Sigma[1], 0.0)

			us, _ := Mul(res.U, res.SigmaMatrix())
			got, _ := Mul(us, Transpose(res.V))
			requireMatrixEqual(t, a, got)

			utu, _ := Mul(Transpose(res.U), res.U)
			requireMatrixEqual(t, Identity(2), utu)
			vtv, _ := Mul(Transpose(res.V), res.V)
			requireMatrixEqual(t, Identity(2), vtv)
		})
	}
}

func TestSVD_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		data := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		res, err := SVD(m2(data[0], data[1], data[2], data[3]))
		require.NoError(t, err)

		var svd mat.SVD
		require.True(t, svd.Factorize(mat.NewDense(2, 2, data), mat.SVDNone))
		want := svd.Values(nil)
		assert.InDelta(t, want[0], res.Sigma[0], 1e-7)
		assert.InDelta(t, want[1], res.Sigma[1], 1e-7)
	}
}

func TestSVD_Condition(t *testing.T) {
	res, err := SVD(m2(4, 0, 0, 2))
	require.NoError(t, err)
	assert.InDelta(t, 2, res.Condition(), tol)

	res, err = SVD(m2(1, 2, 2, 4))
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Condition(), 1))
}

func TestLU_TwoByTwoFormula(t *testing.T) {
	res, err := LU(m2(4, 3, 6, 3))
	require.NoError(t, err)
	require.True(t, res.Valid)
	requireMatrixEqual(t, m2(1, 0, 1.5, 1), res.L)
	requireMatrixEqual(t, m2(4, 3, 0, -1.5), res.U)
	assert.InDelta(t, -6, res.Det(), tol)
}

func TestLU_Reconstructs(t *testing.T) {
	for _, s := range []string{
		"2,1,1; 4,-6,0; -2,7,2",
		"3,1;1,3",
		"1,2;2,4",
		"10,2,3,4; 1,9,2,1; 2,1,8,3; 1,1,1,7",
	} {
		a := mustParse(t, s)
		res, err := LU(a)
		require.NoError(t, err)
		require.True(t, res.Valid, s)
		got, _ := Mul(res.L, res.U)
		requireMatrixEqual(t, a, got)
		for i := 0; i < a.Rows(); i++ {
			assert.Equal(t, 1.0, res.L.At(i, i))
			for j := i + 1; j < a.Cols(); j++ {
				assert.Equal(t, 0.0, res.L.At(i, j))
				assert.Equal(t, 0.0, res.U.At(j, i))
			}
		}
	}
}

func TestLU_ZeroPivot(t *testing.T) {
	res, err := LU(m2(0, 1, 1, 0))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, numeric.Degenerate, res.Kind)
	assert.Equal(t, 0, res.Pivot)

	res, err = LU(mustParse(t, "1,2,3; 2,4,5; 1,1,1"))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 1, res.Pivot)
}

func TestQR_Orthonormal(t *testing.T) {
	for _, s := range []string{
		"3,1;1,3",
		"1,1; 1,0; 0,1",
		"12,-51,4; 6,167,-68; -4,24,-41",
	} {
		a := mustParse(t, s)
		res, err := QR(a)
		require.NoError(t, err)
		require.True(t, res.Valid, s)

		qtq, _ := Mul(Transpose(res.Q), res.Q)
		requireMatrixEqual(t, Identity(a.Cols()), qtq)
		qr, _ := Mul(res.Q, res.R)
		requireMatrixEqual(t, a, qr)
		for i := 0; i < a.Cols(); i++ {
			assert.Greater(t, res.R.At(i, i), 0.0)
			for j := 0; j < i; j++ {
				assert.Equal(t, 0.0, res.R.At(i, j))
			}
		}
	}
}

func TestQR_Degenerate(t *testing.T) {
	res, err := QR(mustParse(t, "1,2;2,4"))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, numeric.Degenerate, res.Kind)
	assert.Equal(t, 1, res.Column)
	assert.Equal(t, numeric.Vector{0, 0}, res.Q.Col(1))

	res, err = QR(mustParse(t, "0,1;0,2"))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 0, res.Column)
}

func TestQR_Wide(t *testing.T) {
	a := mustParse(t, "1,0,2;0,1,3")
	res, err := QR(a)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, numeric.Degenerate, res.Kind)
	assert.Equal(t, 2, res.Column)

	rows, cols := res.Q.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	rows, cols = res.R.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)

	// the first two columns still factor exactly
	assert.Equal(t, numeric.Vector{1, 0}, res.Q.Col(0))
	assert.Equal(t, numeric.Vector{0, 1}, res.Q.Col(1))
	assert.InDelta(t, 2, res.R.At(0, 2), 1e-12)
	assert.InDelta(t, 3, res.R.At(1, 2), 1e-12)
	assert.InDelta(t, 0, res.R.At(2, 2), 1e-12)
	assert.Equal(t, numeric.Vector{0, 0}, res.Q.Col(2))
}

func TestShapeErrors(t *testing.T) {
	wide := mustParse(t, "1,2,3;4,5,6")

	_, err := Eigen(wide)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = SVD(wide)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = LU(wide)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = Mul(wide, wide)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = Trace(wide)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
}

func TestParse(t *testing.T) {
	a, err := Parse(" 3, 1 ; 1 ,3 ")
	require.NoError(t, err)
	requireMatrixEqual(t, m2(3, 1, 1, 3), a)

	_, err = Parse("1,2;3")
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = Parse("1,x;3,4")
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = Parse("")
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
	_, err = New(2, 2, []float64{1, math.NaN(), 0, 1})
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
}

func TestMatrix_AccessorsCopy(t *testing.T) {
	a := m2(1, 2, 3, 4)
	row := a.Row(0)
	row[0] = 99
	raw := a.RawData()
	raw[1] = 99
	assert.Equal(t, 1.0, a.At(0, 0))
	assert.Equal(t, 2.0, a.At(0, 1))
	requireMatrixEqual(t, m2(1, 3, 2, 4), Transpose(a))
}

func TestTransformCircle(t *testing.T) {
	pts, err := TransformCircle(Rotation2(0.3), 16)
	require.NoError(t, err)
	require.Len(t, pts, 16)
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p.X, p.Y), tol)
	}

	pts, err = TransformCircle(m2(3, 0, 0, 0.5), 4)
	require.NoError(t, err)
	assert.InDelta(t, 3, pts[0].X, tol)
	assert.InDelta(t, 0.5, pts[1].Y, tol)

	_, err = TransformCircle(m2(1, 0, 0, 1), 0)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
}

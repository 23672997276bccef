package lab

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/storage"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("chemistry")
	require.ErrorIs(t, err, numeric.ErrInvalidInput)
}

func TestRegistry_RunsEveryPreset(t *testing.T) {
	reg := NewRegistry()
	for _, labName := range config.Labs() {
		for _, name := range config.ListPresets(labName) {
			t.Run(labName+"/"+name, func(t *testing.T) {
				cfg := config.GetPreset(labName, name)
				out, err := reg.Run(context.Background(), cfg)
				require.NoError(t, err)
				assert.Equal(t, labName, out.Lab.String())
				assert.NotNil(t, out.Payload)
				assert.NotEmpty(t, out.Metrics)
				for _, row := range out.Table.Rows {
					assert.Len(t, row, len(out.Table.Columns))
				}
			})
		}
	}
}

func TestRegistry_DefaultConfig(t *testing.T) {
	out, err := NewRegistry().Run(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	res, ok := out.Payload.(*InterpResult)
	require.True(t, ok)
	assert.Len(t, res.Coefficients, 5)
	assert.Len(t, res.Curve, config.DefaultConfig().Interp.Steps+1)
}

func TestInterpolation_LagrangeScenario(t *testing.T) {
	out, err := NewRegistry().Run(context.Background(), config.GetPreset("interpolation", "three-points"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.Metrics["value"])
	assert.Equal(t, "lagrange", out.Method)
}

func TestIntegration_SweepTable(t *testing.T) {
	cfg := config.GetPreset("integration", "sin")
	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)

	res := out.Payload.(*IntegrationResult)
	require.True(t, res.HasExact)
	assert.InDelta(t, 2, res.Exact, 1e-15)
	assert.Len(t, out.Table.Rows, 7)
	assert.Equal(t, []string{"n", "approx", "abs_error", "rel_error"}, out.Table.Columns)
	assert.Len(t, res.Panels, 4)
	assert.Less(t, out.Metrics["abs_error"], 1e-3)
}

func TestFourier_FullReconstruction(t *testing.T) {
	cfg := config.GetPreset("fourier", "square")
	cfg.Fourier.Circles = 0
	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Less(t, out.Metrics["max_error"], 1e-6)
	assert.InDelta(t, 1, out.Metrics["energy"], 1e-12)

	res := out.Payload.(*FourierResult)
	assert.Len(t, res.Spectrum, 100)
	assert.Len(t, res.Reconstruction, 201)
}

func TestMatrix_DegenerateIsNotAnError(t *testing.T) {
	out, err := NewRegistry().Run(context.Background(), config.GetPreset("matrix", "zero-pivot"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Metrics["valid"])
	res := out.Payload.(*MatrixResult)
	assert.Equal(t, numeric.Degenerate, res.Kind)
	assert.Len(t, res.Image, 64)

	cfg := config.DefaultConfig()
	cfg.Lab, cfg.Method, cfg.Matrix.Entries = "matrix", "eigen", "0,-1;1,0"
	out, err = NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, numeric.Unsupported, out.Payload.(*MatrixResult).Kind)
	assert.Empty(t, out.Table.Rows)
}

func TestMonteCarlo_SeedReproducible(t *testing.T) {
	cfg := config.GetPreset("montecarlo", "ensemble")
	a, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Metrics, b.Metrics)
	assert.Equal(t, a.Table, b.Table)
	assert.Len(t, a.Table.Rows, 16)

	cfg.Seed++
	c, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Metrics["pi"], c.Metrics["pi"])
}

func TestMonteCarlo_Integral(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lab, cfg.Method = "montecarlo", "integral"
	cfg.MonteCarlo.Samples = 50000
	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2, out.Metrics["value"], 0.05)
	assert.Equal(t, 2.0, out.Metrics["exact"])
}

func TestODE_Adaptive(t *testing.T) {
	cfg := config.GetPreset("ode", "rk4")
	cfg.Method = "adaptive"
	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Less(t, out.Metrics["max_error"], 1e-6)
	assert.Equal(t, []string{"t", "y0", "error"}, out.Table.Columns)
}

func TestRoots_Newton(t *testing.T) {
	out, err := NewRegistry().Run(context.Background(), config.GetPreset("roots", "newton"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Metrics["converged"])
	assert.InDelta(t, 2.0945514815423265, out.Metrics["root"], 1e-9)
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry()
	cfg := config.DefaultConfig()

	cfg.Lab = "alchemy"
	_, err := reg.Run(context.Background(), cfg)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)

	cfg = config.DefaultConfig()
	cfg.Method = "hermite"
	_, err = reg.Run(context.Background(), cfg)
	require.ErrorIs(t, err, numeric.ErrInvalidInput)

	cfg = config.DefaultConfig()
	cfg.Interp.Points = "0:1,0:2"
	_, err = reg.Run(context.Background(), cfg)
	require.ErrorIs(t, err, numeric.ErrDegenerate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reg.Run(ctx, config.DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_MethodsAndCatalog(t *testing.T) {
	reg := NewRegistry()
	for _, k := range Kinds() {
		assert.NotEmpty(t, reg.Methods(k), k.String())
	}
	assert.Contains(t, reg.Catalog(Fourier), "heart")
	assert.Contains(t, reg.Catalog(Integration), "wave")
	assert.Contains(t, reg.Methods(ODE), "adaptive")
	assert.Nil(t, reg.Catalog(Interpolation))
	assert.Nil(t, reg.Methods(Kind(99)))
}

func TestOutcome_Metadata(t *testing.T) {
	out, err := NewRegistry().Run(context.Background(), config.GetPreset("roots", "bisection"))
	require.NoError(t, err)
	meta := out.Metadata()
	assert.Equal(t, "roots", meta.Lab)
	assert.Equal(t, "bisection", meta.Method)
	assert.Equal(t, "cubic", meta.Params["problem"])
	assert.False(t, math.IsNaN(meta.Metrics["root"]))
	assert.Equal(t, "converged", out.MetricNames()[0])
}

func TestMatrix_SingularSVDSaves(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lab, cfg.Method = "matrix", "svd"
	cfg.Matrix.Entries = "1,2;2,4"

	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, math.IsInf(out.Metrics["condition"], 1))

	meta := out.Metadata()
	assert.NotContains(t, meta.Metrics, "condition")
	assert.Contains(t, meta.Metrics, "sigma1")

	st := storage.New(t.TempDir())
	runID, err := st.Save(meta, out.Table)
	require.NoError(t, err)
	loaded, err := st.Load(runID)
	require.NoError(t, err)
	assert.InDelta(t, 5, loaded.Metrics["sigma1"], 1e-9)
	assert.InDelta(t, 0, loaded.Metrics["sigma2"], 1e-9)
}

func TestMatrix_WideQR(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lab, cfg.Method = "matrix", "qr"
	cfg.Matrix.Entries = "1,0,2;0,1,3"

	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Metrics["valid"])
	assert.Equal(t, 2.0, out.Metrics["column"])
	assert.Nil(t, out.Payload.(*MatrixResult).Image)
}

func TestInterpolation_TableAndBasis(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lab, cfg.Method = "interpolation", "newton"
	cfg.Interp.Points = "0:1,1:2,2:0"
	cfg.Interp.Steps = 10
	cfg.Interp.Basis = true

	out, err := NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	res := out.Payload.(*InterpResult)

	require.Len(t, res.Table, 3)
	assert.Equal(t, []float64{1, 1, -1.5}, res.Table[0])
	assert.Equal(t, res.Coefficients, res.Table[0])
	assert.Equal(t, -2.0, res.Table[1][1])

	require.Len(t, res.Basis, 3)
	for j, c := range res.Curve {
		sum := 0.0
		for i := range res.Basis {
			require.Len(t, res.Basis[i], len(res.Curve))
			assert.Equal(t, c.X, res.Basis[i][j].X)
			sum += res.Basis[i][j].Y
		}
		assert.InDelta(t, 1, sum, 1e-12)
	}
	assert.InDelta(t, 1, res.Basis[1][len(res.Curve)/2].Y, 1e-12)

	cfg.Method, cfg.Interp.Basis = "linear", false
	out, err = NewRegistry().Run(context.Background(), cfg)
	require.NoError(t, err)
	res = out.Payload.(*InterpResult)
	assert.Nil(t, res.Table)
	assert.Nil(t, res.Basis)
}

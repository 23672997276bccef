package lab

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/interp"
	"github.com/san-kum/numlab/internal/matrixkit"
	"github.com/san-kum/numlab/internal/montecarlo"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/ode"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/roots"
	"github.com/san-kum/numlab/internal/spectrum"
	"github.com/san-kum/numlab/internal/storage"
)

const (
	defaultCurveSteps = 60
	circleImageSteps  = 64
	adaptiveTol       = 1e-8
)

type InterpResult struct {
	Method interp.Method
	// Points are the nodes sorted by x.
	Points       []numeric.Point
	X, Value     float64
	Curve        []numeric.Point
	Coefficients []float64
	// Table is the divided-difference table; [i][j] is set for i+j < n.
	Table    [][]float64
	Segments []interp.Segment
	// Basis holds L_i sampled on the curve abscissas, one series per node.
	Basis [][]numeric.Point
}

func runInterpolation(_ context.Context, cfg *config.Config) (*Outcome, error) {
	pts, err := cfg.InterpPoints()
	if err != nil {
		return nil, err
	}
	m, err := interp.ParseMethod(cfg.Method)
	if err != nil {
		return nil, err
	}
	value, err := interp.Evaluate(pts, cfg.Interp.X, m)
	if err != nil {
		return nil, err
	}

	steps := cfg.Interp.Steps
	if steps < 1 {
		steps = defaultCurveSteps
	}
	minX, maxX, _, _ := numeric.Bounds(pts)
	curve, err := interp.Sample(pts, m, minX, maxX, steps)
	if err != nil {
		return nil, err
	}

	res := &InterpResult{
		Method: m,
		Points: numeric.SortedByX(pts),
		X:      cfg.Interp.X,
		Value:  value,
		Curve:  curve,
	}
	switch m {
	case interp.Newton:
		p, err := interp.DividedDifferences(pts)
		if err != nil {
			return nil, err
		}
		res.Coefficients = p.Coefficients()
		if res.Table, err = interp.DividedDifferenceTable(pts); err != nil {
			return nil, err
		}
	case interp.NaturalCubicSpline:
		if len(pts) >= 3 {
			s, err := interp.NewSpline(pts)
			if err != nil {
				return nil, err
			}
			res.Segments = s.Segments()
		}
	}
	if cfg.Interp.Basis {
		if res.Basis, err = basisCurves(pts, curve); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Method: m.String(),
		Params: map[string]string{"points": numeric.FormatPoints(res.Points)},
		Metrics: map[string]float64{
			"x":      cfg.Interp.X,
			"value":  value,
			"points": float64(len(pts)),
		},
		Table:   pointTable("x", "y", curve),
		Payload: res,
	}, nil
}

func basisCurves(pts, curve []numeric.Point) ([][]numeric.Point, error) {
	out := make([][]numeric.Point, len(pts))
	for i := range out {
		out[i] = make([]numeric.Point, len(curve))
		for j, c := range curve {
			y, err := interp.LagrangeBasis(pts, i, c.X)
			if err != nil {
				return nil, err
			}
			out[i][j] = numeric.Point{X: c.X, Y: y}
		}
	}
	return out, nil
}

type IntegrationResult struct {
	Integrand quadrature.Integrand
	A, B      float64
	Result    quadrature.Result
	Sweep     []quadrature.Result
	Panels    []quadrature.Panel
	Exact     float64
	HasExact  bool
}

func lookupIntegrand(cfg *config.Config) (quadrature.Integrand, float64, float64, error) {
	in, ok := quadrature.LookupIntegrand(cfg.Integrate.Func)
	if !ok {
		return in, 0, 0, numeric.Errorf("integrand", numeric.InvalidInput, "unknown integrand %q", cfg.Integrate.Func)
	}
	a, b := cfg.Integrate.A, cfg.Integrate.B
	if a == 0 && b == 0 {
		a, b = in.A, in.B
	}
	return in, a, b, nil
}

func runIntegration(_ context.Context, cfg *config.Config) (*Outcome, error) {
	in, a, b, err := lookupIntegrand(cfg)
	if err != nil {
		return nil, err
	}
	rule, err := quadrature.ParseRule(cfg.Method)
	if err != nil {
		return nil, err
	}

	res, err := quadrature.Integrate(in.F, a, b, cfg.Integrate.N, rule)
	if err != nil {
		return nil, err
	}
	panels, err := quadrature.Panels(in.F, a, b, cfg.Integrate.N, rule)
	if err != nil {
		return nil, err
	}
	sweep, err := quadrature.Convergence(in.F, a, b, rule, cfg.Integrate.Sweep)
	if err != nil {
		return nil, err
	}

	out := &IntegrationResult{Integrand: in, A: a, B: b, Result: res, Sweep: sweep, Panels: panels}
	out.Exact, out.HasExact = in.Exact(a, b)

	metrics := map[string]float64{
		"n":         float64(res.N),
		"approx":    res.Approx,
		"reference": res.Reference,
		"abs_error": res.AbsError,
		"rel_error": res.RelError,
	}
	if out.HasExact {
		metrics["exact"] = out.Exact
	}

	table := storage.Table{Columns: []string{"n", "approx", "abs_error", "rel_error"}}
	for _, r := range sweep {
		table.Rows = append(table.Rows, []float64{float64(r.N), r.Approx, r.AbsError, r.RelError})
	}

	return &Outcome{
		Method:  rule.String(),
		Params:  map[string]string{"func": in.Name, "a": ftoa(a), "b": ftoa(b)},
		Metrics: metrics,
		Table:   table,
		Payload: out,
	}, nil
}

type FourierResult struct {
	Shape    spectrum.Shape
	Samples  []numeric.Point
	Spectrum spectrum.Spectrum
	Circles  int
	// Reconstruction is one full period drawn with Circles terms.
	Reconstruction []numeric.Point
}

func runFourier(_ context.Context, cfg *config.Config) (*Outcome, error) {
	shape, ok := spectrum.LookupShape(cfg.Fourier.Shape)
	if !ok {
		return nil, numeric.Errorf("fourier", numeric.InvalidInput, "unknown shape %q", cfg.Fourier.Shape)
	}
	n := cfg.Fourier.Points
	if n <= 0 {
		n = shape.DefaultPoints
	}
	samples := shape.Sample(n)

	method := cfg.Method
	var (
		s   spectrum.Spectrum
		err error
	)
	switch method {
	case "", "dft":
		method = "dft"
		s, err = spectrum.Decompose(samples)
	case "centered":
		s, err = spectrum.DecomposeCentered(samples, (n-1)/2)
	default:
		err = numeric.Errorf("fourier", numeric.InvalidInput, "unknown method %q", cfg.Method)
	}
	if err != nil {
		return nil, err
	}

	circles := cfg.Fourier.Circles
	if circles <= 0 || circles > len(s) {
		circles = len(s)
	}

	maxErr := 0.0
	for i, p := range samples {
		q := spectrum.Reconstruct(s, circles, 2*math.Pi*float64(i)/float64(n))
		maxErr = math.Max(maxErr, p.Dist(q))
	}

	res := &FourierResult{
		Shape:          shape,
		Samples:        samples,
		Spectrum:       s,
		Circles:        circles,
		Reconstruction: spectrum.Trace(s, circles, 2*math.Pi, 2*n),
	}

	table := storage.Table{Columns: []string{"freq", "amplitude", "phase"}}
	for _, c := range s {
		table.Rows = append(table.Rows, []float64{float64(c.Freq), c.Amplitude, c.Phase})
	}

	return &Outcome{
		Method: method,
		Params: map[string]string{"shape": shape.Name},
		Metrics: map[string]float64{
			"samples":   float64(n),
			"circles":   float64(circles),
			"energy":    s.EnergyFraction(circles),
			"max_error": maxErr,
		},
		Table:   table,
		Payload: res,
	}, nil
}

type MatrixResult struct {
	Op    string
	Input matrixkit.Matrix
	Eigen *matrixkit.EigenResult
	SVD   *matrixkit.SVDResult
	LU    *matrixkit.LUResult
	QR    *matrixkit.QRResult
	// Image is the unit circle mapped through a 2×2 input.
	Image []numeric.Point
	Valid bool
	Kind  numeric.Kind
}

func runMatrix(_ context.Context, cfg *config.Config) (*Outcome, error) {
	a, err := matrixkit.Parse(cfg.Matrix.Entries)
	if err != nil {
		return nil, err
	}

	res := &MatrixResult{Op: cfg.Method, Input: a}
	metrics := map[string]float64{}
	var table storage.Table

	switch cfg.Method {
	case "eigen":
		e, err := matrixkit.Eigen(a)
		if err != nil {
			return nil, err
		}
		res.Eigen, res.Valid, res.Kind = &e, e.Valid, e.Kind
		metrics["trace"], metrics["det"], metrics["discriminant"] = e.Trace, e.Det, e.Discriminant
		if e.Valid {
			metrics["lambda1"], metrics["lambda2"] = e.Values[0], e.Values[1]
		}
		table = vectorTable(e.Vectors[:])
	case "svd":
		s, err := matrixkit.SVD(a)
		if err != nil {
			return nil, err
		}
		res.SVD, res.Valid, res.Kind = &s, s.Valid, s.Kind
		if s.Valid {
			metrics["sigma1"], metrics["sigma2"] = s.Sigma[0], s.Sigma[1]
			metrics["condition"] = s.Condition()
			table = factorTable([]string{"U", "V"}, s.U, s.V)
		}
	case "lu":
		l, err := matrixkit.LU(a)
		if err != nil {
			return nil, err
		}
		res.LU, res.Valid, res.Kind = &l, l.Valid, l.Kind
		if l.Valid {
			metrics["det"] = l.Det()
		} else {
			metrics["pivot"] = float64(l.Pivot)
		}
		table = factorTable([]string{"L", "U"}, l.L, l.U)
	case "qr":
		q, err := matrixkit.QR(a)
		if err != nil {
			return nil, err
		}
		res.QR, res.Valid, res.Kind = &q, q.Valid, q.Kind
		if !q.Valid {
			metrics["column"] = float64(q.Column)
		}
		table = factorTable([]string{"Q", "R"}, q.Q, q.R)
	default:
		return nil, numeric.Errorf("matrix", numeric.InvalidInput, "unknown decomposition %q", cfg.Method)
	}
	metrics["valid"] = boolMetric(res.Valid)

	if a.Rows() == 2 && a.Cols() == 2 {
		res.Image, _ = matrixkit.TransformCircle(a, circleImageSteps)
	}

	return &Outcome{
		Method:  cfg.Method,
		Params:  map[string]string{"entries": cfg.Matrix.Entries},
		Metrics: metrics,
		Table:   table,
		Payload: res,
	}, nil
}

type MonteCarloResult struct {
	Method    string
	Samples   int
	Pi        []montecarlo.PiEstimate
	Integrals []montecarlo.Estimate
	Integrand quadrature.Integrand
	Summary   montecarlo.Summary
}

func runMonteCarlo(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	runs := cfg.MonteCarlo.Runs
	if runs < 1 {
		runs = 1
	}
	samples := cfg.MonteCarlo.Samples
	res := &MonteCarloResult{Method: cfg.Method, Samples: samples}
	metrics := map[string]float64{"runs": float64(runs), "samples": float64(samples)}
	var table storage.Table
	params := map[string]string{}

	switch cfg.Method {
	case "", "pi":
		res.Method = "pi"
		ests, err := montecarlo.Ensemble(ctx, runs, cfg.Seed, func(_ context.Context, rng *rand.Rand) (montecarlo.PiEstimate, error) {
			return montecarlo.EstimatePi(samples, rng)
		})
		if err != nil {
			return nil, err
		}
		res.Pi = ests
		values := make([]float64, len(ests))
		for i, e := range ests {
			values[i] = e.Pi
		}
		res.Summary = montecarlo.Summarize(values)
		metrics["pi"] = res.Summary.Mean
		metrics["abs_error"] = math.Abs(res.Summary.Mean - math.Pi)
		metrics["stddev"] = res.Summary.StdDev

		if runs == 1 {
			table.Columns = []string{"n", "pi", "abs_error"}
			every := samples / 100
			if every < 1 {
				every = 1
			}
			for _, h := range ests[0].History(every) {
				table.Rows = append(table.Rows, []float64{float64(h.N), h.Pi, h.Error})
			}
		} else {
			table.Columns = []string{"run", "pi", "abs_error"}
			for i, e := range ests {
				table.Rows = append(table.Rows, []float64{float64(i), e.Pi, e.AbsError()})
			}
		}
	case "integral":
		in, a, b, err := lookupIntegrand(cfg)
		if err != nil {
			return nil, err
		}
		ests, err := montecarlo.Ensemble(ctx, runs, cfg.Seed, func(_ context.Context, rng *rand.Rand) (montecarlo.Estimate, error) {
			return montecarlo.Integrate(in.F, a, b, samples, rng)
		})
		if err != nil {
			return nil, err
		}
		res.Integrand, res.Integrals = in, ests
		values := make([]float64, len(ests))
		table.Columns = []string{"run", "value", "std_err"}
		for i, e := range ests {
			values[i] = e.Value
			table.Rows = append(table.Rows, []float64{float64(i), e.Value, e.StdErr})
		}
		res.Summary = montecarlo.Summarize(values)
		metrics["value"] = res.Summary.Mean
		metrics["std_err"] = ests[0].StdErr
		if exact, ok := in.Exact(a, b); ok {
			metrics["exact"] = exact
		}
		params["func"] = in.Name
	default:
		return nil, numeric.Errorf("montecarlo", numeric.InvalidInput, "unknown estimator %q", cfg.Method)
	}

	return &Outcome{
		Method:  res.Method,
		Params:  params,
		Metrics: metrics,
		Table:   table,
		Payload: res,
	}, nil
}

type ODEResult struct {
	Problem    ode.Problem
	Method     string
	Step       float64
	Trajectory ode.Trajectory
}

func runODE(_ context.Context, cfg *config.Config) (*Outcome, error) {
	p, ok := ode.LookupProblem(cfg.ODE.Problem)
	if !ok {
		return nil, numeric.Errorf("ode", numeric.InvalidInput, "unknown problem %q", cfg.ODE.Problem)
	}

	var (
		tr  ode.Trajectory
		err error
	)
	if cfg.Method == "adaptive" {
		tr, err = ode.SolveAdaptive(p.System, p.Y0, p.T0, p.T1, cfg.ODE.Step, adaptiveTol)
		if err == nil {
			ode.CompareExact(&tr, p.Exact)
		}
	} else {
		tr, err = p.Run(cfg.Method, cfg.ODE.Step)
	}
	if err != nil {
		return nil, err
	}

	dim := len(p.Y0)
	table := storage.Table{Columns: []string{"t"}}
	for i := 0; i < dim; i++ {
		table.Columns = append(table.Columns, fmt.Sprintf("y%d", i))
	}
	table.Columns = append(table.Columns, "error")
	for i, t := range tr.T {
		row := append([]float64{t}, tr.Y[i]...)
		table.Rows = append(table.Rows, append(row, tr.Err[i]))
	}

	return &Outcome{
		Method: cfg.Method,
		Params: map[string]string{"problem": p.Name, "step": ftoa(cfg.ODE.Step)},
		Metrics: map[string]float64{
			"steps":       float64(tr.Len() - 1),
			"max_error":   tr.MaxError(),
			"final_error": tr.Err[len(tr.Err)-1],
		},
		Table:   table,
		Payload: &ODEResult{Problem: p, Method: cfg.Method, Step: cfg.ODE.Step, Trajectory: tr},
	}, nil
}

type RootsResult struct {
	Problem roots.Problem
	Trace   roots.Trace
}

func runRoots(_ context.Context, cfg *config.Config) (*Outcome, error) {
	p, ok := roots.LookupProblem(cfg.Roots.Problem)
	if !ok {
		return nil, numeric.Errorf("roots", numeric.InvalidInput, "unknown problem %q", cfg.Roots.Problem)
	}
	tol, maxIter := cfg.Roots.Tol, cfg.Roots.MaxIter

	var (
		tr  roots.Trace
		err error
	)
	switch cfg.Method {
	case "newton":
		tr, err = roots.Newton(p.F, p.DF, p.X0, tol, maxIter)
	case "bisection":
		tr, err = roots.Bisection(p.F, p.A, p.B, tol, maxIter)
	case "secant":
		tr, err = roots.Secant(p.F, p.A, p.B, tol, maxIter)
	default:
		err = numeric.Errorf("roots", numeric.InvalidInput, "unknown method %q", cfg.Method)
	}
	if err != nil {
		return nil, err
	}

	table := storage.Table{Columns: []string{"n", "x", "fx", "width"}}
	for _, it := range tr.Iterations {
		table.Rows = append(table.Rows, []float64{float64(it.N), it.X, it.FX, it.Width})
	}

	return &Outcome{
		Method: cfg.Method,
		Params: map[string]string{"problem": p.Name},
		Metrics: map[string]float64{
			"root":       tr.Root,
			"residual":   math.Abs(p.F(tr.Root)),
			"iterations": float64(len(tr.Iterations)),
			"converged":  boolMetric(tr.Converged),
		},
		Table:   table,
		Payload: &RootsResult{Problem: p, Trace: tr},
	}, nil
}

func pointTable(xName, yName string, pts []numeric.Point) storage.Table {
	t := storage.Table{Columns: []string{xName, yName}, Rows: make([][]float64, len(pts))}
	for i, p := range pts {
		t.Rows[i] = []float64{p.X, p.Y}
	}
	return t
}

func vectorTable(vs []numeric.Vector) storage.Table {
	t := storage.Table{Columns: []string{"index", "x", "y"}}
	for i, v := range vs {
		if len(v) == 2 {
			t.Rows = append(t.Rows, []float64{float64(i), v[0], v[1]})
		}
	}
	return t
}

// factorTable lists factor entries by (row, col), padding with NaN where a
// factor is smaller than the largest one.
func factorTable(names []string, factors ...matrixkit.Matrix) storage.Table {
	t := storage.Table{Columns: append([]string{"row", "col"}, names...)}
	rows, cols := 0, 0
	for _, f := range factors {
		rows = max(rows, f.Rows())
		cols = max(cols, f.Cols())
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row := []float64{float64(i), float64(j)}
			for _, f := range factors {
				v := math.NaN()
				if i < f.Rows() && j < f.Cols() {
					v = f.At(i, j)
				}
				row = append(row, v)
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

func boolMetric(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func interpMethods() []string {
	var out []string
	for _, m := range interp.Methods() {
		out = append(out, m.String())
	}
	return out
}

func ruleNames() []string {
	var out []string
	for _, r := range quadrature.Rules() {
		out = append(out, r.String())
	}
	return out
}

func odeMethods() []string { return append(ode.StepperNames(), "adaptive") }

var (
	integrandNames = quadrature.IntegrandNames
	shapeNames     = spectrum.ShapeNames
	odeProblems    = ode.ProblemNames
	rootProblems   = roots.ProblemNames
)

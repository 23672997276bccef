package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numlab/internal/export"
	"github.com/san-kum/numlab/internal/lab"
	"github.com/san-kum/numlab/internal/matrixkit"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/viz"
	"github.com/spf13/cobra"
)

const (
	plotWidth    = 60
	plotHeight   = 12
	canvasWidth  = 40
	canvasHeight = 16
	topTerms     = 10
)

func render(cmd *cobra.Command, out *lab.Outcome) error {
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s · %s", out.Lab, out.Method)))
	fmt.Println(viz.Separator(40))

	switch p := out.Payload.(type) {
	case *lab.InterpResult:
		return renderInterp(p)
	case *lab.IntegrationResult:
		if cmd.Name() == "converge" {
			return renderConvergence(p)
		}
		return renderIntegration(p)
	case *lab.FourierResult:
		return renderFourier(out, p)
	case *lab.MatrixResult:
		return renderMatrix(p)
	case *lab.MonteCarloResult:
		renderMonteCarlo(p)
	case *lab.ODEResult:
		renderODE(p)
	case *lab.RootsResult:
		renderRoots(p)
	default:
		for _, name := range out.MetricNames() {
			fmt.Println(viz.KV(name, out.Metrics[name]))
		}
	}
	return nil
}

func renderInterp(r *lab.InterpResult) error {
	fmt.Println(viz.KV("points", numeric.FormatPoints(r.Points)))
	fmt.Println(viz.KV(fmt.Sprintf("p(%g)", r.X), r.Value))

	if len(r.Coefficients) > 0 {
		fmt.Println("\ndivided differences:")
		for i, c := range r.Coefficients {
			fmt.Printf("  c%d = %.10g\n", i, c)
		}
	}
	if len(r.Table) > 0 {
		fmt.Println()
		if err := printDividedDifferences(r.Points, r.Table); err != nil {
			return err
		}
	}
	if len(r.Segments) > 0 {
		fmt.Println("\nspline segments  a + b(x-x0) + c(x-x0)² + d(x-x0)³:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "X0\tX1\tA\tB\tC\tD")
		for _, s := range r.Segments {
			fmt.Fprintf(w, "%g\t%g\t%.6f\t%.6f\t%.6f\t%.6f\n", s.X0, s.X1, s.A, s.B, s.C, s.D)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if plotCurve && len(r.Curve) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ys(r.Curve),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s interpolant on [%g, %g]", r.Method, r.Curve[0].X, r.Curve[len(r.Curve)-1].X)),
		))
	}

	if len(r.Basis) > 0 && len(r.Curve) > 1 {
		series := make([][]float64, len(r.Basis))
		legends := make([]string, len(r.Basis))
		for i, b := range r.Basis {
			series[i] = ys(b)
			legends[i] = fmt.Sprintf("L%d", i)
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesColors(basisColors(len(series))...),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption("Lagrange basis polynomials"),
		))
	}

	return writeSVG(export.CurvesSVG([]export.Series{
		{Name: "interpolant", Points: r.Curve},
		{Name: "nodes", Points: r.Points, Markers: true, Color: "#ff00ff"},
	}, 640, 400))
}

// printDividedDifferences prints the triangular table with one column per
// difference order.
func printDividedDifferences(nodes []numeric.Point, table [][]float64) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "X")
	for j := range table {
		fmt.Fprintf(w, "\tORDER %d", j)
	}
	fmt.Fprintln(w)
	n := len(table)
	for i := 0; i < n && i < len(nodes); i++ {
		fmt.Fprintf(w, "%g", nodes[i].X)
		for j := 0; i+j < n; j++ {
			fmt.Fprintf(w, "\t%.6g", table[i][j])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

var palette = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow,
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Orange, asciigraph.White,
}

func basisColors(n int) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func renderIntegration(r *lab.IntegrationResult) error {
	res := r.Result
	fmt.Println(viz.KV("integrand", r.Integrand.Label))
	fmt.Println(viz.KV("interval", fmt.Sprintf("[%g, %g]", r.A, r.B)))
	fmt.Println(viz.KV("n", res.N))
	fmt.Println(viz.KV("approx", res.Approx))
	fmt.Println(viz.KV("reference", res.Reference))
	if r.HasExact {
		fmt.Println(viz.KV("exact", r.Exact))
	}
	fmt.Println(viz.KV("abs error", res.AbsError))
	fmt.Println(viz.KV("rel error", res.RelError))

	curve := sampleIntegrand(r.Integrand.F, r.A, r.B, 200)
	c := viz.NewCanvas(canvasWidth*2, canvasHeight)
	var outline []numeric.Point
	for _, p := range r.Panels {
		outline = append(outline,
			numeric.Point{X: p.X0, Y: 0},
			numeric.Point{X: p.X0, Y: p.Height(p.X0)},
			numeric.Point{X: (p.X0 + p.X1) / 2, Y: p.Height((p.X0 + p.X1) / 2)},
			numeric.Point{X: p.X1, Y: p.Height(p.X1)},
			numeric.Point{X: p.X1, Y: 0},
		)
	}
	v := viz.Fit(append(append([]numeric.Point(nil), curve...), outline...), 0.05, false)
	c.Polyline(v, outline)
	c.Polyline(v, curve)
	fmt.Println()
	fmt.Print(c.String())

	return writeSVG(export.PanelsSVG(curve, r.Panels, 640, 400))
}

func renderConvergence(r *lab.IntegrationResult) error {
	fmt.Println(viz.KV("integrand", r.Integrand.Label))
	fmt.Println(viz.KV("interval", fmt.Sprintf("[%g, %g]", r.A, r.B)))
	fmt.Println(viz.KV("rule", r.Result.Rule))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tAPPROX\tABS ERROR\tREL ERROR\tORDER")
	logErr := make([]float64, 0, len(r.Sweep))
	for i, s := range r.Sweep {
		order := "-"
		if i > 0 {
			prev := r.Sweep[i-1]
			if s.AbsError > 0 && prev.AbsError > 0 && s.N != prev.N {
				order = fmt.Sprintf("%.2f", math.Log(prev.AbsError/s.AbsError)/math.Log(float64(s.N)/float64(prev.N)))
			}
		}
		fmt.Fprintf(w, "%d\t%.10f\t%.3e\t%.3e\t%s\n", s.N, s.Approx, s.AbsError, s.RelError, order)
		logErr = append(logErr, math.Log10(math.Max(s.AbsError, 1e-300)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(logErr) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(logErr,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("log10 |error| by sweep step"),
		))
	}
	return nil
}

func renderFourier(out *lab.Outcome, r *lab.FourierResult) error {
	fmt.Println(viz.KV("shape", r.Shape.Name))
	fmt.Println(viz.KV("samples", len(r.Samples)))
	fmt.Println(viz.KV("circles", fmt.Sprintf("%d / %d", r.Circles, len(r.Spectrum))))
	fmt.Println(viz.KV("energy", fmt.Sprintf("%.2f%%", 100*out.Metrics["energy"])))
	fmt.Println(viz.KV("max error", out.Metrics["max_error"]))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tFREQ\tAMPLITUDE\tPHASE")
	for i, c := range r.Spectrum.Truncate(topTerms) {
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%+.4f\n", i+1, c.Freq, c.Amplitude, c.Phase)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	c := viz.NewCanvas(canvasWidth, canvasHeight)
	v := viz.Fit(append(append([]numeric.Point(nil), r.Samples...), r.Reconstruction...), 0.05, true)
	c.Plot(v, r.Samples)
	c.Polyline(v, r.Reconstruction)
	fmt.Println()
	fmt.Print(c.String())

	return writeSVG(export.EpicycleSVG(r.Spectrum, r.Circles, 0, 480, 480))
}

func renderMatrix(r *lab.MatrixResult) error {
	fmt.Println("A =")
	fmt.Print(r.Input.String())
	fmt.Println()

	switch {
	case r.Eigen != nil:
		e := r.Eigen
		fmt.Println(viz.KV("trace", e.Trace))
		fmt.Println(viz.KV("det", e.Det))
		fmt.Println(viz.KV("discriminant", e.Discriminant))
		if e.Valid {
			for i := range e.Values {
				fmt.Println(viz.KV(fmt.Sprintf("λ%d", i+1), e.Values[i]))
				fmt.Println(viz.KV(fmt.Sprintf("v%d", i+1), fmt.Sprintf("(%.6f, %.6f)", e.Vectors[i][0], e.Vectors[i][1])))
			}
		}
	case r.SVD != nil:
		s := r.SVD
		if s.Valid {
			fmt.Println(viz.KV("σ1", s.Sigma[0]))
			fmt.Println(viz.KV("σ2", s.Sigma[1]))
			fmt.Println(viz.KV("condition", s.Condition()))
			printFactor("U", s.U)
			printFactor("V", s.V)
		}
	case r.LU != nil:
		l := r.LU
		printFactor("L", l.L)
		printFactor("U", l.U)
		if l.Valid {
			fmt.Println(viz.KV("det", l.Det()))
		} else {
			fmt.Println(viz.KV("zero pivot", l.Pivot))
		}
	case r.QR != nil:
		q := r.QR
		printFactor("Q", q.Q)
		printFactor("R", q.R)
		if !q.Valid {
			fmt.Println(viz.KV("dependent col", q.Column))
		}
	}
	if !r.Valid {
		fmt.Println(viz.ErrorText.Render(fmt.Sprintf("decomposition unavailable: %s", r.Kind)))
	}

	if len(r.Image) > 1 {
		unit := make([]numeric.Point, len(r.Image))
		for i := range unit {
			a := 2 * math.Pi * float64(i) / float64(len(unit)-1)
			unit[i] = numeric.Point{X: math.Cos(a), Y: math.Sin(a)}
		}
		c := viz.NewCanvas(canvasWidth, canvasHeight)
		v := viz.Fit(append(append([]numeric.Point(nil), unit...), r.Image...), 0.05, true)
		c.Polyline(v, unit)
		c.Polyline(v, r.Image)
		fmt.Println("\nunit circle and its image under A:")
		fmt.Print(c.String())
		return writeSVG(export.CanvasToSVG(c, 4))
	}
	return nil
}

func printFactor(name string, m matrixkit.Matrix) {
	fmt.Printf("%s =\n%s", name, m.String())
}

func renderMonteCarlo(r *lab.MonteCarloResult) {
	fmt.Println(viz.KV("samples", r.Samples))
	fmt.Println(viz.KV("runs", r.Summary.Runs))

	switch r.Method {
	case "pi":
		if len(r.Pi) == 1 {
			e := r.Pi[0]
			fmt.Println(viz.KV("inside", fmt.Sprintf("%d / %d", e.Inside, e.N)))
			fmt.Println(viz.KV("π estimate", e.Pi))
			fmt.Println(viz.KV("abs error", e.AbsError()))

			every := e.N / plotWidth
			if every < 1 {
				every = 1
			}
			var series []float64
			for _, h := range e.History(every) {
				series = append(series, h.Pi)
			}
			if len(series) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(series,
					asciigraph.Height(plotHeight),
					asciigraph.Width(plotWidth),
					asciigraph.Caption("running π estimate"),
				))
			}
			return
		}
		printSummary("π", r)
		values := make([]float64, len(r.Pi))
		for i, e := range r.Pi {
			values[i] = e.Pi
		}
		fmt.Println(viz.KV("spread", viz.Sparkline(values, 40)))
	case "integral":
		fmt.Println(viz.KV("integrand", r.Integrand.Label))
		printSummary("value", r)
		if len(r.Integrals) > 0 {
			fmt.Println(viz.KV("std err", r.Integrals[0].StdErr))
		}
	}
}

func printSummary(name string, r *lab.MonteCarloResult) {
	s := r.Summary
	fmt.Println(viz.KV(name+" mean", s.Mean))
	fmt.Println(viz.KV("std dev", s.StdDev))
	fmt.Println(viz.KV("range", fmt.Sprintf("[%.6f, %.6f]", s.Min, s.Max)))
}

func renderODE(r *lab.ODEResult) {
	tr := r.Trajectory
	fmt.Println(viz.KV("problem", r.Problem.Label))
	fmt.Println(viz.KV("method", r.Method))
	fmt.Println(viz.KV("step", r.Step))
	fmt.Println(viz.KV("samples", tr.Len()))
	if tr.Len() > 0 {
		fmt.Println(viz.KV("t final", tr.T[tr.Len()-1]))
		fmt.Println(viz.KV("y final", fmt.Sprint(tr.Final())))
	}
	if len(tr.Err) > 0 {
		fmt.Println(viz.KV("max error", tr.MaxError()))
	}

	if y := tr.Component(0); len(y) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(y,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("y(t)"),
		))
	}
	if len(tr.Err) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(tr.Err,
			asciigraph.Height(6),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("|y - exact|"),
		))
	}
}

func renderRoots(r *lab.RootsResult) {
	tr := r.Trace
	fmt.Println(viz.KV("function", r.Problem.Label))
	fmt.Println(viz.KV("root", tr.Root))
	status := viz.StatusRunning.Render("converged")
	if !tr.Converged {
		status = viz.StatusPaused.Render("not converged")
	}
	fmt.Println(viz.KV("status", status))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tX\tF(X)\tWIDTH")
	for _, it := range tr.Iterations {
		fmt.Fprintf(w, "%d\t%.12f\t%+.3e\t%.3e\n", it.N, it.X, it.FX, it.Width)
	}
	w.Flush()

	var logErr []float64
	for _, e := range tr.Errors(tr.Root) {
		if e > 0 {
			logErr = append(logErr, math.Log10(e))
		}
	}
	if len(logErr) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(logErr,
			asciigraph.Height(8),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("log10 |x_n - root|"),
		))
	}
}

func ys(pts []numeric.Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Y
	}
	return out
}

func sampleIntegrand(f quadrature.Func, a, b float64, steps int) []numeric.Point {
	pts := make([]numeric.Point, steps+1)
	for i := range pts {
		x := a + (b-a)*float64(i)/float64(steps)
		pts[i] = numeric.Point{X: x, Y: f(x)}
	}
	return pts
}

func writeSVG(doc string) error {
	if svgPath == "" {
		return nil
	}
	if err := export.WriteFile(svgPath, doc); err != nil {
		return err
	}
	fmt.Println(viz.KeyHint.Render("svg written to " + strings.TrimSpace(svgPath)))
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/lab"
	"github.com/san-kum/numlab/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	seed       int64
	save       bool
	svgPath    string

	// interp
	interpPoints string
	interpX      float64
	interpSteps  int
	plotCurve    bool
	plotBasis    bool

	// integrate, converge, montecarlo integral
	integrand string
	lower     float64
	upper     float64
	subdivs   int
	sweep     []int

	// fourier, epicycles
	samples   int
	circles   int
	centered  bool
	frameRate int
	theme     string

	matrixEntries string

	mcSamples int
	mcRuns    int

	odeProblem string
	odeStep    float64

	rootProblem string
	rootTol     float64
	rootMaxIter int

	jsonOut string
)

// main registers the numlab commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "numlab",
		Short:         "numerical methods lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numlab", "run store directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "random seed")
	rootCmd.PersistentFlags().BoolVar(&save, "save", false, "save the run to the store")

	runCmd := &cobra.Command{
		Use:   "run [lab]",
		Short: "run the lab named by the config or preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigured,
	}

	interpCmd := &cobra.Command{
		Use:   "interp [method]",
		Short: "interpolate through sample points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Interpolation, applyInterpFlags),
	}
	interpCmd.Flags().StringVar(&interpPoints, "points", config.DefaultPoints, "sample points x:y,x:y,...")
	interpCmd.Flags().Float64Var(&interpX, "x", 1.5, "evaluation point")
	interpCmd.Flags().IntVar(&interpSteps, "steps", 60, "curve samples")
	interpCmd.Flags().BoolVar(&plotCurve, "plot", true, "plot the interpolant")
	interpCmd.Flags().BoolVar(&plotBasis, "basis", false, "plot the Lagrange basis polynomials")
	interpCmd.Flags().StringVar(&svgPath, "svg", "", "write the curve to an svg file")

	integrateCmd := &cobra.Command{
		Use:   "integrate [rule]",
		Short: "approximate a definite integral",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Integration, applyIntegrateFlags),
	}
	addIntegrandFlags(integrateCmd)
	integrateCmd.Flags().IntVar(&subdivs, "n", config.DefaultSubdivisions, "subdivisions")
	integrateCmd.Flags().StringVar(&svgPath, "svg", "", "write the panels to an svg file")

	convergeCmd := &cobra.Command{
		Use:   "converge [rule]",
		Short: "error of a rule as subdivisions grow",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Integration, applyIntegrateFlags),
	}
	addIntegrandFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&sweep, "sweep", nil, "subdivision counts (default 2,4,...,128)")

	fourierCmd := &cobra.Command{
		Use:   "fourier [shape]",
		Short: "decompose a closed curve into rotating circles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Fourier, applyFourierFlags),
	}
	addFourierFlags(fourierCmd)
	fourierCmd.Flags().StringVar(&svgPath, "svg", "", "write the epicycle frame to an svg file")

	epicyclesCmd := &cobra.Command{
		Use:   "epicycles [shape]",
		Short: "animate the epicycle chain drawing a shape",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEpicycles,
	}
	addFourierFlags(epicyclesCmd)
	epicyclesCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	epicyclesCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	matrixCmd := &cobra.Command{
		Use:   "matrix [eigen|svd|lu|qr]",
		Short: "decompose a small dense matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Matrix, applyMatrixFlags),
	}
	matrixCmd.Flags().StringVar(&matrixEntries, "m", "3,1;1,3", "matrix rows separated by ';'")
	matrixCmd.Flags().StringVar(&svgPath, "svg", "", "write the circle transform to an svg file")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [pi|integral]",
		Short: "random sampling estimates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.MonteCarlo, applyMonteCarloFlags),
	}
	monteCarloCmd.Flags().IntVar(&mcSamples, "samples", config.DefaultSamples, "samples per run")
	monteCarloCmd.Flags().IntVar(&mcRuns, "runs", config.DefaultRuns, "independent runs")
	addIntegrandFlags(monteCarloCmd)

	odeCmd := &cobra.Command{
		Use:   "ode [euler|heun|rk4|rk45|adaptive]",
		Short: "solve an initial value problem",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.ODE, applyODEFlags),
	}
	odeCmd.Flags().StringVar(&odeProblem, "problem", "gaussian", "problem name")
	odeCmd.Flags().Float64Var(&odeStep, "h", config.DefaultStep, "step size")

	rootsCmd := &cobra.Command{
		Use:   "roots [newton|secant|bisection]",
		Short: "find a root of a scalar function",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLab(lab.Roots, applyRootsFlags),
	}
	rootsCmd.Flags().StringVar(&rootProblem, "problem", "cubic", "problem name")
	rootsCmd.Flags().Float64Var(&rootTol, "tol", config.DefaultTol, "tolerance")
	rootsCmd.Flags().IntVar(&rootMaxIter, "max-iter", config.DefaultMaxIter, "iteration cap")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's table",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a run's data as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	labsCmd := &cobra.Command{
		Use:   "labs",
		Short: "list labs with their methods and inputs",
		RunE:  listLabs,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [lab]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, interpCmd, integrateCmd, convergeCmd, fourierCmd, epicyclesCmd,
		matrixCmd, monteCarloCmd, odeCmd, rootsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, labsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addIntegrandFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrand, "func", "sin", "integrand name")
	cmd.Flags().Float64Var(&lower, "a", 0, "lower bound (default: integrand's own)")
	cmd.Flags().Float64Var(&upper, "b", 0, "upper bound (default: integrand's own)")
}

func addFourierFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&samples, "n", 0, "samples along the shape (default: shape's own)")
	cmd.Flags().IntVar(&circles, "circles", config.DefaultCircles, "circles kept in the reconstruction")
	cmd.Flags().BoolVar(&centered, "centered", false, "use symmetric frequencies -K..K")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, a preset, and a config file, in that
// order. Command flags are applied on top by the caller.
func resolveConfig(cmd *cobra.Command, labName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(labName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(labName))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if labName != "" {
		// a method only carries over within the same lab
		if cfg.Lab != labName {
			cfg.Method = ""
		}
		cfg.Lab = labName
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

type applyFunc func(cmd *cobra.Command, args []string, cfg *config.Config)

// runLab builds the RunE of a lab command: resolve the config, let the
// command's flags override it, run, print, and optionally save.
func runLab(kind lab.Kind, apply applyFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, kind.String())
		if err != nil {
			return err
		}
		apply(cmd, args, cfg)
		return execute(cmd, cfg)
	}
}

func runConfigured(cmd *cobra.Command, args []string) error {
	labName := ""
	if len(args) > 0 {
		labName = args[0]
	}
	if preset != "" && labName == "" {
		return fmt.Errorf("--preset needs a lab argument")
	}
	cfg, err := resolveConfig(cmd, labName)
	if err != nil {
		return err
	}
	setMethod(cfg, nil)
	return execute(cmd, cfg)
}

func execute(cmd *cobra.Command, cfg *config.Config) error {
	logger := newLogger()
	registry := lab.NewRegistry().WithLogger(logger)

	out, err := registry.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	if err := render(cmd, out); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(out.Metadata(), out.Table)
	if err != nil {
		return err
	}
	logger.Debug("run saved", "id", runID, "dir", st.Dir())
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

var defaultMethods = map[string]string{
	"interpolation": "newton",
	"integration":   "simpson",
	"fourier":       "dft",
	"matrix":        "eigen",
	"montecarlo":    "pi",
	"ode":           "rk4",
	"roots":         "newton",
}

// setMethod takes the method from the first argument, then from the
// resolved config, then from the lab's default.
func setMethod(cfg *config.Config, args []string) {
	switch {
	case len(args) > 0:
		cfg.Method = args[0]
	case cfg.Method == "":
		cfg.Method = defaultMethods[cfg.Lab]
	}
}

func applyInterpFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("points") {
		cfg.Interp.Points = interpPoints
	}
	if cmd.Flags().Changed("x") {
		cfg.Interp.X = interpX
	}
	if cmd.Flags().Changed("steps") {
		cfg.Interp.Steps = interpSteps
	}
	if cmd.Flags().Changed("basis") {
		cfg.Interp.Basis = plotBasis
	}
}

func applyIntegrateFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("func") {
		cfg.Integrate.Func = integrand
		cfg.Integrate.A, cfg.Integrate.B = 0, 0
	}
	if cmd.Flags().Changed("a") {
		cfg.Integrate.A = lower
	}
	if cmd.Flags().Changed("b") {
		cfg.Integrate.B = upper
	}
	if cmd.Flags().Changed("n") {
		cfg.Integrate.N = subdivs
	}
	if cmd.Flags().Changed("sweep") {
		cfg.Integrate.Sweep = sweep
	}
}

func applyFourierFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Fourier.Shape = args[0]
	}
	if cmd.Flags().Changed("n") {
		cfg.Fourier.Points = samples
	}
	if cmd.Flags().Changed("circles") {
		cfg.Fourier.Circles = circles
	}
	if cmd.Flags().Changed("centered") {
		cfg.Fourier.Centered = centered
	}
	if cfg.Method == "" || cmd.Flags().Changed("centered") {
		cfg.Method = "dft"
		if cfg.Fourier.Centered {
			cfg.Method = "centered"
		}
	}
}

func applyMatrixFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("m") {
		cfg.Matrix.Entries = matrixEntries
	}
}

func applyMonteCarloFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("samples") {
		cfg.MonteCarlo.Samples = mcSamples
	}
	if cmd.Flags().Changed("runs") {
		cfg.MonteCarlo.Runs = mcRuns
	}
	if cmd.Flags().Changed("func") {
		cfg.Integrate.Func = integrand
		cfg.Integrate.A, cfg.Integrate.B = 0, 0
	}
	if cmd.Flags().Changed("a") {
		cfg.Integrate.A = lower
	}
	if cmd.Flags().Changed("b") {
		cfg.Integrate.B = upper
	}
}

func applyODEFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("problem") {
		cfg.ODE.Problem = odeProblem
	}
	if cmd.Flags().Changed("h") {
		cfg.ODE.Step = odeStep
	}
}

func applyRootsFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	setMethod(cfg, args)
	if cmd.Flags().Changed("problem") {
		cfg.Roots.Problem = rootProblem
	}
	if cmd.Flags().Changed("tol") {
		cfg.Roots.Tol = rootTol
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.Roots.MaxIter = rootMaxIter
	}
}

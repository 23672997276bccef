// Package lab dispatches a configuration to the numerical routine it names.
// Labs are keyed by Kind rather than by matching free-form scene strings;
// each Kind has one runner and a fixed list of methods.
package lab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/storage"
)

// Kind identifies a lab.
type Kind int

const (
	Interpolation Kind = iota
	Integration
	Fourier
	Matrix
	MonteCarlo
	ODE
	Roots
)

var kindNames = [...]string{
	Interpolation: "interpolation",
	Integration:   "integration",
	Fourier:       "fourier",
	Matrix:        "matrix",
	MonteCarlo:    "montecarlo",
	ODE:           "ode",
	Roots:         "roots",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("lab(%d)", int(k))
}

// Kinds lists every lab in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a lab name to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, numeric.Errorf("ParseKind", numeric.InvalidInput, "unknown lab %q", name)
}

// Outcome is what a lab run produces: scalar metrics, a table for the run
// store, and the typed result for rendering.
type Outcome struct {
	Lab     Kind
	Method  string
	Seed    int64
	Params  map[string]string
	Metrics map[string]float64
	Table   storage.Table
	// Payload is one of the *Result types in this package.
	Payload any
}

// Metadata converts the outcome into run-store metadata. Non-finite
// metrics, such as the condition number of a singular matrix, have no JSON
// encoding and are left out.
func (o *Outcome) Metadata() storage.RunMetadata {
	metrics := make(map[string]float64, len(o.Metrics))
	for name, v := range o.Metrics {
		if numeric.IsFinite(v) {
			metrics[name] = v
		}
	}
	return storage.RunMetadata{
		Lab:     o.Lab.String(),
		Method:  o.Method,
		Seed:    o.Seed,
		Params:  o.Params,
		Metrics: metrics,
	}
}

// MetricNames returns the metric keys in sorted order.
func (o *Outcome) MetricNames() []string {
	names := make([]string, 0, len(o.Metrics))
	for name := range o.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner executes one lab for a configuration.
type Runner func(ctx context.Context, cfg *config.Config) (*Outcome, error)

type entry struct {
	run     Runner
	methods func() []string
	catalog func() []string
}

type Registry struct {
	labs   map[Kind]entry
	logger *slog.Logger
}

func NewRegistry() *Registry {
	r := &Registry{
		labs:   make(map[Kind]entry),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	r.labs[Interpolation] = entry{runInterpolation, interpMethods, nil}
	r.labs[Integration] = entry{runIntegration, ruleNames, integrandNames}
	r.labs[Fourier] = entry{runFourier, fixed("dft", "centered"), shapeNames}
	r.labs[Matrix] = entry{runMatrix, fixed("eigen", "svd", "lu", "qr"), nil}
	r.labs[MonteCarlo] = entry{runMonteCarlo, fixed("pi", "integral"), integrandNames}
	r.labs[ODE] = entry{runODE, odeMethods, odeProblems}
	r.labs[Roots] = entry{runRoots, fixed("newton", "bisection", "secant"), rootProblems}

	return r
}

// WithLogger sets the logger used for run diagnostics.
func (r *Registry) WithLogger(l *slog.Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run dispatches cfg to the lab named by cfg.Lab.
func (r *Registry) Run(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	kind, err := ParseKind(cfg.Lab)
	if err != nil {
		return nil, err
	}
	e, ok := r.labs[kind]
	if !ok {
		return nil, numeric.Errorf("Run", numeric.Unsupported, "lab %s has no runner", kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("running lab", "lab", kind, "method", cfg.Method, "seed", cfg.Seed)
	out, err := e.run(ctx, cfg)
	if err != nil {
		r.logger.Debug("lab failed", "lab", kind, "kind", numeric.KindOf(err), "err", err)
		return nil, fmt.Errorf("%s lab: %w", kind, err)
	}
	out.Lab = kind
	out.Seed = cfg.Seed
	r.logger.Debug("lab finished", "lab", kind, "method", out.Method, "rows", len(out.Table.Rows))
	return out, nil
}

// Methods lists the methods a lab accepts.
func (r *Registry) Methods(k Kind) []string {
	e, ok := r.labs[k]
	if !ok {
		return nil
	}
	return e.methods()
}

// Catalog lists the named inputs (integrands, shapes, problems) a lab
// offers, or nil when it takes free-form input.
func (r *Registry) Catalog(k Kind) []string {
	e, ok := r.labs[k]
	if !ok || e.catalog == nil {
		return nil
	}
	return e.catalog()
}

func fixed(names ...string) func() []string {
	return func() []string { return append([]string(nil), names...) }
}

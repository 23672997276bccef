package ode

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// System is a first-order system y' = f(t, y).
type System interface {
	Derive(t float64, y numeric.Vector) numeric.Vector
}

// Func adapts a plain function to System.
type Func func(t float64, y numeric.Vector) numeric.Vector

func (f Func) Derive(t float64, y numeric.Vector) numeric.Vector { return f(t, y) }

// Stepper advances a state by one fixed step h.
type Stepper interface {
	Step(sys System, t, h float64, y numeric.Vector) numeric.Vector
	Order() int
}

var steppers = map[string]func() Stepper{
	"euler": func() Stepper { return NewEuler() },
	"heun":  func() Stepper { return NewHeun() },
	"rk4":   func() Stepper { return NewRK4() },
	"rk45":  func() Stepper { return NewRK45() },
}

// NewStepper builds a fresh stepper by name.
func NewStepper(name string) (Stepper, error) {
	ctor, ok := steppers[strings.ToLower(name)]
	if !ok {
		return nil, numeric.Errorf("NewStepper", numeric.InvalidInput, "unknown stepper %q", name)
	}
	return ctor(), nil
}

// StepperNames lists the registered steppers in sorted order.
func StepperNames() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trajectory is the sequence of states visited by a solver.
type Trajectory struct {
	T []float64
	Y []numeric.Vector
	// Err holds |y - exact| per sample once CompareExact has run.
	Err []float64
}

func (tr Trajectory) Len() int { return len(tr.T) }

// Final returns the last state.
func (tr Trajectory) Final() numeric.Vector {
	if len(tr.Y) == 0 {
		return nil
	}
	return tr.Y[len(tr.Y)-1]
}

// Component returns the i-th state component over time.
func (tr Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.Y))
	for j, y := range tr.Y {
		if i < len(y) {
			out[j] = y[i]
		}
	}
	return out
}

// MaxError returns the largest recorded error, or 0 before CompareExact.
func (tr Trajectory) MaxError() float64 {
	m := 0.0
	for _, e := range tr.Err {
		m = math.Max(m, e)
	}
	return m
}

// Solve integrates sys from t0 to t1 with a fixed step h. The final step is
// shortened so the trajectory ends exactly at t1.
func Solve(sys System, stepper Stepper, y0 numeric.Vector, t0, t1, h float64) (Trajectory, error) {
	if err := validate("Solve", sys, y0, t0, t1, h); err != nil {
		return Trajectory{}, err
	}
	if stepper == nil {
		return Trajectory{}, numeric.Errorf("Solve", numeric.InvalidInput, "nil stepper")
	}

	steps := int(math.Ceil((t1-t0)/h - 1e-9))
	tr := Trajectory{
		T: make([]float64, 0, steps+1),
		Y: make([]numeric.Vector, 0, steps+1),
	}
	t, y := t0, y0.Clone()
	tr.T = append(tr.T, t)
	tr.Y = append(tr.Y, y)

	for i := 0; i < steps; i++ {
		dt := h
		if i == steps-1 {
			dt = t1 - t
		}
		y = stepper.Step(sys, t, dt, y)
		t = t0 + float64(i+1)*h
		if i == steps-1 {
			t = t1
		}
		if !y.IsValid() {
			return tr, numeric.Errorf("Solve", numeric.Degenerate, "state diverged at t=%g", t)
		}
		tr.T = append(tr.T, t)
		tr.Y = append(tr.Y, y)
	}
	return tr, nil
}

// CompareExact records the Euclidean distance between every state and the
// exact solution.
func CompareExact(tr *Trajectory, exact func(t float64) numeric.Vector) {
	tr.Err = make([]float64, len(tr.T))
	for i, t := range tr.T {
		tr.Err[i] = tr.Y[i].Sub(exact(t)).Norm()
	}
}

func validate(op string, sys System, y0 numeric.Vector, t0, t1, h float64) error {
	switch {
	case sys == nil:
		return numeric.Errorf(op, numeric.InvalidInput, "nil system")
	case len(y0) == 0:
		return numeric.Errorf(op, numeric.InvalidInput, "empty initial state")
	case !y0.IsValid():
		return numeric.Errorf(op, numeric.InvalidInput, "initial state is not finite")
	case !numeric.IsFinite(t0) || !numeric.IsFinite(t1) || t1 <= t0:
		return numeric.Errorf(op, numeric.InvalidInput, "need finite t0 < t1, got [%g, %g]", t0, t1)
	case !(h > 0):
		return numeric.Errorf(op, numeric.InvalidInput, "need h > 0, got %g", h)
	}
	return nil
}

// Problem is a preset initial value problem with a known solution.
type Problem struct {
	Name   string
	Label  string
	System System
	Y0     numeric.Vector
	T0, T1 float64
	Exact  func(t float64) numeric.Vector
}

var problems = map[string]Problem{
	"gaussian": {
		Name:   "gaussian",
		Label:  "y' = -2ty, y(0) = 1",
		System: Func(func(t float64, y numeric.Vector) numeric.Vector { return numeric.Vector{-2 * t * y[0]} }),
		Y0:     numeric.Vector{1},
		T0:     0, T1: 2,
		Exact: func(t float64) numeric.Vector { return numeric.Vector{math.Exp(-t * t)} },
	},
	"oscillator": {
		Name:   "oscillator",
		Label:  "x'' = -x, x(0) = 1",
		System: Func(func(t float64, y numeric.Vector) numeric.Vector { return numeric.Vector{y[1], -y[0]} }),
		Y0:     numeric.Vector{1, 0},
		T0:     0, T1: 2 * math.Pi,
		Exact: func(t float64) numeric.Vector { return numeric.Vector{math.Cos(t), -math.Sin(t)} },
	},
	"growth": {
		Name:   "growth",
		Label:  "y' = y, y(0) = 1",
		System: Func(func(t float64, y numeric.Vector) numeric.Vector { return numeric.Vector{y[0]} }),
		Y0:     numeric.Vector{1},
		T0:     0, T1: 1,
		Exact: func(t float64) numeric.Vector { return numeric.Vector{math.Exp(t)} },
	},
}

// LookupProblem returns the preset with the given name.
func LookupProblem(name string) (Problem, bool) {
	p, ok := problems[name]
	return p, ok
}

// ProblemNames lists presets in sorted order.
func ProblemNames() []string {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run solves the preset with the named stepper and attaches its errors.
func (p Problem) Run(stepper string, h float64) (Trajectory, error) {
	st, err := NewStepper(stepper)
	if err != nil {
		return Trajectory{}, err
	}
	tr, err := Solve(p.System, st, p.Y0, p.T0, p.T1, h)
	if err != nil {
		return tr, fmt.Errorf("%s: %w", p.Name, err)
	}
	CompareExact(&tr, p.Exact)
	return tr, nil
}

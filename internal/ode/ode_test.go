package ode

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
)

func TestRK4Accuracy(t *testing.T) {
	p, _ := LookupProblem("oscillator")
	tr, err := Solve(p.System, NewRK4(), p.Y0, 0, 1, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	x := tr.Final()
	if math.Abs(x[0]-math.Cos(1)) > 1e-8 {
		t.Errorf("position: got %.10f, want %.10f", x[0], math.Cos(1))
	}
	if math.Abs(x[1]+math.Sin(1)) > 1e-8 {
		t.Errorf("velocity: got %.10f, want %.10f", x[1], -math.Sin(1))
	}
}

func TestSolve_HigherOrderIsMoreAccurate(t *testing.T) {
	p, _ := LookupProblem("gaussian")
	prev := math.Inf(1)
	for _, name := range []string{"euler", "heun", "rk4"} {
		tr, err := p.Run(name, 0.1)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got := tr.MaxError()
		if got >= prev {
			t.Errorf("%s error %g not below previous %g", name, got, prev)
		}
		prev = got
	}
}

func TestSolve_ConvergenceOrder(t *testing.T) {
	p, _ := LookupProblem("growth")
	for _, name := range []string{"euler", "heun", "rk4"} {
		st, _ := NewStepper(name)
		coarse, err := p.Run(name, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		fine, err := p.Run(name, 0.05)
		if err != nil {
			t.Fatal(err)
		}
		ratio := coarse.Err[len(coarse.Err)-1] / fine.Err[len(fine.Err)-1]
		want := math.Pow(2, float64(st.Order()))
		if ratio < 0.8*want || ratio > 1.25*want {
			t.Errorf("%s: halving h shrank error by %.2f, want about %.0f", name, ratio, want)
		}
	}
}

func TestSolve_EndsExactlyAtT1(t *testing.T) {
	p, _ := LookupProblem("growth")
	tr, err := Solve(p.System, NewEuler(), p.Y0, 0, 1, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 5 {
		t.Fatalf("got %d samples, want 5", tr.Len())
	}
	if last := tr.T[tr.Len()-1]; last != 1 {
		t.Errorf("last t = %v, want 1", last)
	}
	if tr.T[0] != 0 || tr.Y[0][0] != 1 {
		t.Errorf("first sample %v %v", tr.T[0], tr.Y[0])
	}
}

func TestSolve_DoesNotAliasInitialState(t *testing.T) {
	p, _ := LookupProblem("growth")
	y0 := numeric.Vector{1}
	if _, err := Solve(p.System, NewRK4(), y0, 0, 1, 0.1); err != nil {
		t.Fatal(err)
	}
	if y0[0] != 1 {
		t.Errorf("initial state modified: %v", y0)
	}
}

func TestSolve_Errors(t *testing.T) {
	sys := Func(func(t float64, y numeric.Vector) numeric.Vector { return y })
	tests := []struct {
		name   string
		sys    System
		st     Stepper
		y0     numeric.Vector
		t0, t1 float64
		h      float64
	}{
		{"nil system", nil, NewEuler(), numeric.Vector{1}, 0, 1, 0.1},
		{"nil stepper", sys, nil, numeric.Vector{1}, 0, 1, 0.1},
		{"empty state", sys, NewEuler(), nil, 0, 1, 0.1},
		{"nan state", sys, NewEuler(), numeric.Vector{math.NaN()}, 0, 1, 0.1},
		{"reversed span", sys, NewEuler(), numeric.Vector{1}, 1, 0, 0.1},
		{"zero step", sys, NewEuler(), numeric.Vector{1}, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.sys, tt.st, tt.y0, tt.t0, tt.t1, tt.h)
			if !errors.Is(err, numeric.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSolve_Divergence(t *testing.T) {
	blowup := Func(func(t float64, y numeric.Vector) numeric.Vector { return numeric.Vector{y[0] * y[0]} })
	tr, err := Solve(blowup, NewEuler(), numeric.Vector{1}, 0, 10, 0.5)
	if !errors.Is(err, numeric.ErrDegenerate) {
		t.Fatalf("got %v, want ErrDegenerate", err)
	}
	if tr.Len() == 0 {
		t.Error("partial trajectory should be returned")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	p, _ := LookupProblem("oscillator")
	tr, err := Solve(p.System, NewRK45(), p.Y0, 0, 100, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	x := tr.Final()
	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if drift := math.Abs(energy - 0.5); drift > 1e-7 {
		t.Errorf("energy drift too high: %e", drift)
	}
}

func TestRK45_StepAdaptive(t *testing.T) {
	p, _ := LookupProblem("oscillator")
	y, ratio, next := NewRK45().StepAdaptive(p.System, 0, 0.1, p.Y0, 1e-8)
	if !y.IsValid() {
		t.Error("invalid state")
	}
	if ratio < 0 {
		t.Errorf("negative error ratio %g", ratio)
	}
	if next <= 0 {
		t.Errorf("non-positive next step %g", next)
	}
}

func TestSolveAdaptive_MeetsTolerance(t *testing.T) {
	p, _ := LookupProblem("gaussian")
	tr, err := SolveAdaptive(p.System, p.Y0, p.T0, p.T1, 0.5, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if last := tr.T[tr.Len()-1]; last != p.T1 {
		t.Errorf("last t = %v, want %v", last, p.T1)
	}
	CompareExact(&tr, p.Exact)
	if e := tr.MaxError(); e > 1e-6 {
		t.Errorf("max error %g", e)
	}
	for i := 1; i < tr.Len(); i++ {
		if tr.T[i] <= tr.T[i-1] {
			t.Fatalf("time not increasing at %d", i)
		}
	}
}

func TestNewStepper(t *testing.T) {
	for _, name := range StepperNames() {
		if _, err := NewStepper(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := NewStepper("leapfrog"); !errors.Is(err, numeric.ErrInvalidInput) {
		t.Errorf("unknown stepper: got %v", err)
	}
}

func TestTrajectory_Component(t *testing.T) {
	p, _ := LookupProblem("oscillator")
	tr, err := p.Run("rk4", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	xs := tr.Component(0)
	if len(xs) != tr.Len() || xs[0] != 1 {
		t.Errorf("component 0 = %v", xs)
	}
	if tr.Err[0] != 0 {
		t.Errorf("error at t0 = %g, want 0", tr.Err[0])
	}
}

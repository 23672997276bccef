package ode

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Dormand–Prince 5(4) tableau.
var (
	a2, a3, a4, a5 = 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0

	b21           = 1.0 / 5.0
	b31, b32      = 3.0 / 40.0, 9.0 / 40.0
	b41, b42, b43 = 44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0
	b51, b52      = 19372.0 / 6561.0, -25360.0 / 2187.0
	b53, b54      = 64448.0 / 6561.0, -212.0 / 729.0
	b61, b62      = 9017.0 / 3168.0, -355.0 / 33.0
	b63, b64, b65 = 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0

	c1, c3, c4, c5, c6 = 35.0 / 384.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// MaxAdaptiveSteps bounds SolveAdaptive.
const MaxAdaptiveSteps = 100000

// RK45 is the Dormand–Prince embedded pair. As a fixed-step Stepper it
// returns the fifth-order solution.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{safety: 0.9, minScale: 0.2, maxScale: 10.0}
}

func (r *RK45) Order() int { return 5 }

func (r *RK45) Step(sys System, t, h float64, y numeric.Vector) numeric.Vector {
	out, _ := r.stages(sys, t, h, y)
	return out
}

// StepAdaptive takes one step and returns the new state, the scaled error
// estimate (≤ 1 means accepted at tol) and the suggested next step.
func (r *RK45) StepAdaptive(sys System, t, h float64, y numeric.Vector, tol float64) (numeric.Vector, float64, float64) {
	out, errMax := r.stages(sys, t, h, y)
	ratio := errMax / tol

	var next float64
	switch {
	case ratio > 1:
		next = h * math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25))
	case ratio > 0:
		next = h * math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2))
	default:
		next = h * r.maxScale
	}
	return out, ratio, next
}

func (r *RK45) stages(sys System, t, h float64, y numeric.Vector) (numeric.Vector, float64) {
	k1 := sys.Derive(t, y)
	k2 := sys.Derive(t+a2*h, advance(y, h, []float64{b21}, k1))
	k3 := sys.Derive(t+a3*h, advance(y, h, []float64{b31, b32}, k1, k2))
	k4 := sys.Derive(t+a4*h, advance(y, h, []float64{b41, b42, b43}, k1, k2, k3))
	k5 := sys.Derive(t+a5*h, advance(y, h, []float64{b51, b52, b53, b54}, k1, k2, k3, k4))
	k6 := sys.Derive(t+h, advance(y, h, []float64{b61, b62, b63, b64, b65}, k1, k2, k3, k4, k5))
	out := advance(y, h, []float64{c1, c3, c4, c5, c6}, k1, k3, k4, k5, k6)
	k7 := sys.Derive(t+h, out)

	errMax := 0.0
	for i := range y {
		est := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(y[i]) + math.Abs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(est)/scale)
	}
	return out, errMax
}

// advance returns y + h·Σ coef[j]·k[j].
func advance(y numeric.Vector, h float64, coef []float64, k ...numeric.Vector) numeric.Vector {
	out := y.Clone()
	for i := range out {
		s := 0.0
		for j, c := range coef {
			s += c * k[j][i]
		}
		out[i] += h * s
	}
	return out
}

// SolveAdaptive integrates from t0 to t1 starting with step h0, rejecting
// steps whose error estimate exceeds tol.
func SolveAdaptive(sys System, y0 numeric.Vector, t0, t1, h0, tol float64) (Trajectory, error) {
	if err := validate("SolveAdaptive", sys, y0, t0, t1, h0); err != nil {
		return Trajectory{}, err
	}
	if !(tol > 0) {
		return Trajectory{}, numeric.Errorf("SolveAdaptive", numeric.InvalidInput, "need tol > 0, got %g", tol)
	}

	r := NewRK45()
	t, y, h := t0, y0.Clone(), h0
	tr := Trajectory{T: []float64{t}, Y: []numeric.Vector{y}}
	for steps := 0; t < t1; steps++ {
		if steps >= MaxAdaptiveSteps {
			return tr, numeric.Errorf("SolveAdaptive", numeric.Degenerate, "step limit reached at t=%g", t)
		}
		if t+h > t1 {
			h = t1 - t
		}
		next, ratio, hNew := r.StepAdaptive(sys, t, h, y, tol)
		if ratio <= 1 {
			t += h
			if t1-t < 1e-12*math.Max(1, math.Abs(t1)) {
				t = t1
			}
			y = next
			if !y.IsValid() {
				return tr, numeric.Errorf("SolveAdaptive", numeric.Degenerate, "state diverged at t=%g", t)
			}
			tr.T = append(tr.T, t)
			tr.Y = append(tr.Y, y)
		}
		h = hNew
	}
	return tr, nil
}

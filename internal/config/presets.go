package config

import (
	"math"
	"sort"
)

// Presets are named starting configurations per lab. They reproduce the
// scenes of the interactive explorations: the small Lagrange example, the
// Runge wiggle, the convergence sweeps, the drawing shapes and so on.
var Presets = map[string]map[string]*Config{
	"interpolation": {
		"three-points": {
			Lab: "interpolation", Method: "lagrange",
			Interp: InterpConfig{Points: "0:1,1:2,2:0", X: 1, Steps: 40},
		},
		"runge": {
			Lab: "interpolation", Method: "lagrange",
			Interp: InterpConfig{Points: "-1:0.0385,-0.6:0.1,-0.2:0.5,0.2:0.5,0.6:0.1,1:0.0385", X: 0.9, Steps: 80},
		},
		"spline": {
			Lab: "interpolation", Method: "natural-cubic-spline",
			Interp: InterpConfig{Points: "0:0,1:0.8,2:0.9,3:0.1,4:-0.8,5:-1", X: 2.5, Steps: 80},
		},
	},
	"integration": {
		"sin": {
			Lab: "integration", Method: "simpson",
			Integrate: IntegrateConfig{Func: "sin", A: 0, B: math.Pi, N: 8},
		},
		"wave": {
			Lab: "integration", Method: "trapezoid",
			Integrate: IntegrateConfig{Func: "wave", A: 0, B: 2 * math.Pi, N: 12},
		},
		"gaussian-sweep": {
			Lab: "integration", Method: "midpoint",
			Integrate: IntegrateConfig{Func: "gaussian", A: -2, B: 2, N: 16, Sweep: []int{2, 4, 8, 16, 32, 64, 128}},
		},
	},
	"fourier": {
		"heart": {
			Lab: "fourier", Method: "dft",
			Fourier: FourierConfig{Shape: "heart", Points: 200, Circles: 20, FPS: 30},
		},
		"square": {
			Lab: "fourier", Method: "dft",
			Fourier: FourierConfig{Shape: "square", Points: 100, Circles: 12, FPS: 30},
		},
		"star": {
			Lab: "fourier", Method: "centered",
			Fourier: FourierConfig{Shape: "star", Points: 100, Circles: 25, Centered: true, FPS: 30},
		},
	},
	"matrix": {
		"symmetric": {
			Lab: "matrix", Method: "eigen",
			Matrix: MatrixConfig{Entries: "3,1;1,3"},
		},
		"shear": {
			Lab: "matrix", Method: "svd",
			Matrix: MatrixConfig{Entries: "1,1;0,1"},
		},
		"zero-pivot": {
			Lab: "matrix", Method: "lu",
			Matrix: MatrixConfig{Entries: "0,1;1,0"},
		},
		"tall": {
			Lab: "matrix", Method: "qr",
			Matrix: MatrixConfig{Entries: "1,1;1,0;0,1"},
		},
	},
	"montecarlo": {
		"pi": {
			Lab: "montecarlo", Method: "pi", Seed: 42,
			MonteCarlo: MonteCarloConfig{Samples: 10000, Runs: 1},
		},
		"ensemble": {
			Lab: "montecarlo", Method: "pi", Seed: 1,
			MonteCarlo: MonteCarloConfig{Samples: 5000, Runs: 16},
		},
	},
	"ode": {
		"euler": {
			Lab: "ode", Method: "euler",
			ODE: ODEConfig{Problem: "gaussian", Step: 0.1},
		},
		"rk4": {
			Lab: "ode", Method: "rk4",
			ODE: ODEConfig{Problem: "gaussian", Step: 0.1},
		},
	},
	"roots": {
		"newton": {
			Lab: "roots", Method: "newton",
			Roots: RootsConfig{Problem: "cubic", Tol: 1e-10, MaxIter: 50},
		},
		"bisection": {
			Lab: "roots", Method: "bisection",
			Roots: RootsConfig{Problem: "cubic", Tol: 1e-10, MaxIter: 100},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(lab, preset string) *Config {
	labPresets, ok := Presets[lab]
	if !ok {
		return nil
	}
	cfg, ok := labPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names for a lab in sorted order.
func ListPresets(lab string) []string {
	labPresets, ok := Presets[lab]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(labPresets))
	for name := range labPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Labs lists labs with presets in sorted order.
func Labs() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

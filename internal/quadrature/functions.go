package quadrature

import (
	"math"
	"sort"
)

// Integrand is a named preset with optional closed-form antiderivative.
type Integrand struct {
	Name  string
	Label string
	F     Func
	// Antiderivative is nil when no elementary closed form exists.
	Antiderivative Func
	A, B           float64
}

// Exact returns ∫_a^b F when a closed form exists.
func (in Integrand) Exact(a, b float64) (float64, bool) {
	if in.Antiderivative == nil {
		return 0, false
	}
	return in.Antiderivative(b) - in.Antiderivative(a), true
}

var integrands = map[string]Integrand{
	"square": {
		Name:           "square",
		Label:          "x²",
		F:              func(x float64) float64 { return x * x },
		Antiderivative: func(x float64) float64 { return x * x * x / 3 },
		A:              0, B: 2,
	},
	"sin": {
		Name:           "sin",
		Label:          "sin(x)",
		F:              math.Sin,
		Antiderivative: func(x float64) float64 { return -math.Cos(x) },
		A:              0, B: math.Pi,
	},
	"gaussian": {
		Name:  "gaussian",
		Label: "e^(-x²)",
		F:     func(x float64) float64 { return math.Exp(-x * x) },
		A:     -2, B: 2,
	},
	"runge": {
		Name:           "runge",
		Label:          "1/(1+x²)",
		F:              func(x float64) float64 { return 1 / (1 + x*x) },
		Antiderivative: math.Atan,
		A:              -1, B: 1,
	},
	"wave": {
		Name:  "wave",
		Label: "sin(x) + 0.5cos(2x) + 1",
		F: func(x float64) float64 {
			return math.Sin(x) + 0.5*math.Cos(2*x) + 1
		},
		Antiderivative: func(x float64) float64 {
			return -math.Cos(x) + 0.25*math.Sin(2*x) + x
		},
		A: 0, B: 2 * math.Pi,
	},
}

// LookupIntegrand returns the preset with the given name.
func LookupIntegrand(name string) (Integrand, bool) {
	in, ok := integrands[name]
	return in, ok
}

// IntegrandNames lists preset names in sorted order.
func IntegrandNames() []string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

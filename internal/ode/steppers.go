package ode

import "github.com/san-kum/numlab/internal/numeric"

type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Order() int { return 1 }

func (e *Euler) Step(sys System, t, h float64, y numeric.Vector) numeric.Vector {
	return y.AXPY(h, sys.Derive(t, y))
}

// Heun is the explicit trapezoid (improved Euler) method.
type Heun struct{}

func NewHeun() *Heun { return &Heun{} }

func (s *Heun) Order() int { return 2 }

func (s *Heun) Step(sys System, t, h float64, y numeric.Vector) numeric.Vector {
	k1 := sys.Derive(t, y)
	k2 := sys.Derive(t+h, y.AXPY(h, k1))
	out := make(numeric.Vector, len(y))
	for i := range y {
		out[i] = y[i] + h*0.5*(k1[i]+k2[i])
	}
	return out
}

// RK4 is the classical fourth-order Runge–Kutta method. It reuses scratch
// buffers between steps and must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 numeric.Vector
	scratch        numeric.Vector
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Order() int { return 4 }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(numeric.Vector, n)
		r.k2 = make(numeric.Vector, n)
		r.k3 = make(numeric.Vector, n)
		r.k4 = make(numeric.Vector, n)
		r.scratch = make(numeric.Vector, n)
	}
}

func (r *RK4) Step(sys System, t, h float64, y numeric.Vector) numeric.Vector {
	n := len(y)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(t, y))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*r.k3[i]
	}
	copy(r.k4, sys.Derive(t+h, r.scratch))

	out := make(numeric.Vector, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		out[i] = y[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out
}

// Package ode integrates initial value problems y' = f(t, y) with explicit
// Runge–Kutta steppers (Euler, Heun, RK4, Dormand–Prince) and measures the
// error against known solutions.
package ode

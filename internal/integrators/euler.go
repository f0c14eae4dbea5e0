package integrators

import "github.com/san-kum/chemsim/internal/dynamo"

// Euler is the explicit first-order scheme x + dt*f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

// Step evaluates the derivative on x once and writes the advanced state
// into a new vector. x is never modified.
func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

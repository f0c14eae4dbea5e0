package integrators

import (
	"testing"

	"github.com/san-kum/chemsim/internal/dynamo"
)

// chain is a linear A1 -> A2 -> ... -> An cascade with unit rates.
type chain struct{ n int }

func (c *chain) StateDim() int { return c.n }
func (c *chain) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, c.n)
	for i := 0; i < c.n-1; i++ {
		dx[i] -= x[i]
		dx[i+1] += x[i]
	}
	return dx
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &decay{k: 0.1}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &decay{k: 0.1}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkEuler_Chain20(b *testing.B) {
	integrator := NewEuler()
	dyn := &chain{n: 20}
	x := make(dynamo.State, 20)
	x[0] = 1

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.001)
	}
}

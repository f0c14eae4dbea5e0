package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/chemsim/internal/dynamo"
)

// decay is dA/dt = -k*A, dB/dt = +k*A.
type decay struct{ k float64 }

func (d *decay) StateDim() int { return 2 }
func (d *decay) Derive(x dynamo.State, t float64) dynamo.State {
	r := d.k * x[0]
	return dynamo.State{-r, r}
}

func TestEulerSingleStep(t *testing.T) {
	integ := NewEuler()
	x := dynamo.State{1.0, 0.0}

	next := integ.Step(&decay{k: 0.1}, x, 0, 0.1)

	if math.Abs(next[0]-0.99) > 1e-12 {
		t.Errorf("A after one step: got %.15f, want 0.99", next[0])
	}
	if math.Abs(next[1]-0.01) > 1e-12 {
		t.Errorf("B after one step: got %.15f, want 0.01", next[1])
	}
}

func TestEulerDoesNotMutateInput(t *testing.T) {
	integ := NewEuler()
	x := dynamo.State{1.0, 0.0}

	_ = integ.Step(&decay{k: 2}, x, 0, 0.5)

	if x[0] != 1.0 || x[1] != 0.0 {
		t.Errorf("input state modified: %v", x)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	dyn := &decay{k: 1}
	integ := NewEuler()

	errAt := func(steps int) float64 {
		dt := 1.0 / float64(steps)
		x := dynamo.State{1, 0}
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Exp(-1))
	}

	e1 := errAt(100)
	e2 := errAt(200)
	ratio := e1 / e2
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("expected error ratio ~2 for a first-order method, got %.3f", ratio)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"", "euler", "rk4"} {
		integ, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if name == "" && integ.Name() != Default {
			t.Errorf("empty name selected %s, want %s", integ.Name(), Default)
		}
	}

	if _, err := Get("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	names := Names()
	if len(names) != 2 || names[0] != "euler" || names[1] != "rk4" {
		t.Errorf("Names() = %v", names)
	}
}

package dynamo

import (
	"fmt"
	"math"
)

// State is a concentration vector indexed by compound.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean norm.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot returns the weighted sum of the entries.
func (s State) Dot(w []float64) float64 {
	sum := 0.0
	for i := range s {
		if i < len(w) {
			sum += s[i] * w[i]
		}
	}
	return sum
}

// System is the right-hand side of an autonomous ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a System by one fixed step.
type Integrator interface {
	Name() string
	Step(dyn System, x State, t float64, dt float64) State
}

// CheckDim reports ErrDimensionMismatch when x does not fit dyn.
func CheckDim(dyn System, x State) error {
	if len(x) != dyn.StateDim() {
		return fmt.Errorf("%w: state has %d entries, system expects %d", ErrDimensionMismatch, len(x), dyn.StateDim())
	}
	return nil
}

package metrics

import (
	"math"

	"github.com/san-kum/chemsim/internal/dynamo"
)

// ConservationDrift tracks the largest absolute change of w·x relative to
// its value on the first observed row.
type ConservationDrift struct {
	name     string
	weights  []float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewConservationDrift(name string, weights []float64) *ConservationDrift {
	return &ConservationDrift{
		name:    name,
		weights: append([]float64(nil), weights...),
	}
}

func (c *ConservationDrift) Name() string { return c.name }

func (c *ConservationDrift) Observe(x dynamo.State, t float64) {
	v := x.Dot(c.weights)
	if c.samples == 0 {
		c.initial = v
	}
	c.samples++
	c.maxDrift = math.Max(c.maxDrift, math.Abs(v-c.initial))
}

func (c *ConservationDrift) Value() float64 {
	return c.maxDrift
}

func (c *ConservationDrift) Reset() {
	c.initial = 0
	c.maxDrift = 0
	c.samples = 0
}

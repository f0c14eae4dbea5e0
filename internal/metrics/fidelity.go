package metrics

import (
	"math"

	"github.com/san-kum/chemsim/internal/dynamo"
)

// MinConcentration is the smallest value seen in any row. NaN entries are
// skipped; -Inf counts, so a run that diverges downward reports it.
type MinConcentration struct {
	min  float64
	seen bool
}

func NewMinConcentration() *MinConcentration {
	return &MinConcentration{}
}

func (m *MinConcentration) Name() string { return "min_concentration" }

func (m *MinConcentration) Observe(x dynamo.State, t float64) {
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if !m.seen || v < m.min {
			m.min = v
			m.seen = true
		}
	}
}

func (m *MinConcentration) Value() float64 {
	return m.min
}

func (m *MinConcentration) Reset() {
	m.min = 0
	m.seen = false
}

// NegativeSteps counts rows holding at least one negative concentration.
type NegativeSteps struct {
	count int
}

func NewNegativeSteps() *NegativeSteps {
	return &NegativeSteps{}
}

func (n *NegativeSteps) Name() string { return "negative_steps" }

func (n *NegativeSteps) Observe(x dynamo.State, t float64) {
	for _, v := range x {
		if v < 0 {
			n.count++
			return
		}
	}
}

func (n *NegativeSteps) Value() float64 { return float64(n.count) }
func (n *NegativeSteps) Reset()         { n.count = 0 }

// NonFinite counts rows holding NaN or Inf.
type NonFinite struct {
	count int
}

func NewNonFinite() *NonFinite {
	return &NonFinite{}
}

func (n *NonFinite) Name() string { return "nonfinite_steps" }

func (n *NonFinite) Observe(x dynamo.State, t float64) {
	if !x.IsValid() {
		n.count++
	}
}

func (n *NonFinite) Value() float64 { return float64(n.count) }
func (n *NonFinite) Reset()         { n.count = 0 }

// Package metrics summarises a trajectory into scalar diagnostics. None of
// them change the trajectory; they report the fidelity issues explicit
// Euler leaves in place (negative or non-finite values, drift of
// quantities that should be conserved).
package metrics

import (
	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/kinetics"
)

type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Evaluate resets each metric, feeds it every row of tr and collects the
// values by name.
func Evaluate(tr *kinetics.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for i, row := range tr.Concentrations {
		t := tr.TimePoints[i]
		for _, m := range ms {
			m.Observe(row, t)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults are the metrics recorded with every stored run.
func Defaults() []Metric {
	return []Metric{
		NewMinConcentration(),
		NewNegativeSteps(),
		NewNonFinite(),
	}
}

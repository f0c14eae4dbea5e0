package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/reaction"
)

// ConservedSeries evaluates w·c on every row.
func ConservedSeries(tr *kinetics.Trajectory, w []float64) []float64 {
	out := make([]float64, len(tr.Concentrations))
	for i, row := range tr.Concentrations {
		out[i] = row.Dot(w)
	}
	return out
}

// MaxAbsError is the largest deviation of one column from exact over all
// time points.
func MaxAbsError(tr *kinetics.Trajectory, column int, exact func(t float64) float64) float64 {
	worst := 0.0
	for i, t := range tr.TimePoints {
		worst = math.Max(worst, math.Abs(tr.Concentrations[i][column]-exact(t)))
	}
	return worst
}

// ConvergenceLevel is one row of a convergence study.
type ConvergenceLevel struct {
	Steps int
	Dt    float64
	Error float64
}

// referenceFactor is how many times finer than the finest level the
// reference run is when no exact solution is supplied.
const referenceFactor = 8

// MaxLevels bounds a convergence study. The reference run already takes
// baseSteps * 2^(MaxLevels-1) * referenceFactor steps at the limit.
const MaxLevels = 12

// ConvergenceStudy runs sys with baseSteps, 2*baseSteps, ... (levels runs)
// and reports the max error of one column. With exact nil the error is
// measured against a run referenceFactor times finer than the last level,
// sampled at the coarse time points.
func ConvergenceStudy(integ *kinetics.Integrator, sys *reaction.System, totalTime float64, baseSteps, levels, column int, exact func(t float64) float64) ([]ConvergenceLevel, error) {
	if levels < 1 || levels > MaxLevels {
		return nil, fmt.Errorf("levels must be in [1, %d], got %d", MaxLevels, levels)
	}
	if column < 0 || column >= sys.NumCompounds() {
		return nil, fmt.Errorf("column %d out of range [0, %d)", column, sys.NumCompounds())
	}

	var ref *kinetics.Trajectory
	refSteps := 0
	if exact == nil {
		refSteps = (baseSteps << (levels - 1)) * referenceFactor
		var err error
		ref, err = integ.Run(sys, totalTime, refSteps)
		if err != nil {
			return nil, err
		}
	}

	out := make([]ConvergenceLevel, 0, levels)
	steps := baseSteps
	for l := 0; l < levels; l++ {
		tr, err := integ.Run(sys, totalTime, steps)
		if err != nil {
			return nil, err
		}

		var e float64
		if exact != nil {
			e = MaxAbsError(tr, column, exact)
		} else {
			stride := refSteps / steps
			for i := range tr.TimePoints {
				e = math.Max(e, math.Abs(tr.Concentrations[i][column]-ref.Concentrations[i*stride][column]))
			}
		}

		out = append(out, ConvergenceLevel{Steps: steps, Dt: tr.Dt(), Error: e})
		steps *= 2
	}
	return out, nil
}

// ObservedOrder returns log2(e_i / e_{i+1}) for consecutive levels. A
// first-order method approaches 1.
func ObservedOrder(levels []ConvergenceLevel) []float64 {
	if len(levels) < 2 {
		return nil
	}
	out := make([]float64, len(levels)-1)
	for i := 0; i+1 < len(levels); i++ {
		if levels[i+1].Error == 0 {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = math.Log2(levels[i].Error / levels[i+1].Error)
	}
	return out
}

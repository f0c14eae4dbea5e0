package kinetics

import "github.com/san-kum/chemsim/internal/dynamo"

// Trajectory is the full output of one run: steps+1 time points and one
// concentration row per time point, columns in compound index order.
type Trajectory struct {
	TimePoints     []float64
	Concentrations []dynamo.State
	Formulas       []string
	Names          []string
}

// Steps is the number of integration steps taken.
func (tr *Trajectory) Steps() int {
	return len(tr.TimePoints) - 1
}

// Dt is the uniform step size.
func (tr *Trajectory) Dt() float64 {
	if tr.Steps() < 1 {
		return 0
	}
	return tr.TimePoints[len(tr.TimePoints)-1] / float64(tr.Steps())
}

func (tr *Trajectory) NumCompounds() int {
	return len(tr.Formulas)
}

// Row returns the state after i steps.
func (tr *Trajectory) Row(i int) dynamo.State {
	return tr.Concentrations[i]
}

// Final returns the last row.
func (tr *Trajectory) Final() dynamo.State {
	return tr.Concentrations[len(tr.Concentrations)-1]
}

// Series returns a copy of one compound's concentration over time.
func (tr *Trajectory) Series(col int) []float64 {
	out := make([]float64, len(tr.Concentrations))
	for i, row := range tr.Concentrations {
		out[i] = row[col]
	}
	return out
}

// Column looks up a compound by formula; ok is false if it is absent.
func (tr *Trajectory) Column(formula string) (int, bool) {
	for i, f := range tr.Formulas {
		if f == formula {
			return i, true
		}
	}
	return 0, false
}

// Table returns the concentrations as plain rows.
func (tr *Trajectory) Table() [][]float64 {
	out := make([][]float64, len(tr.Concentrations))
	for i, row := range tr.Concentrations {
		out[i] = row
	}
	return out
}

package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/chemsim/internal/kinetics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	pngWidth  = 10 * vg.Inch
	pngHeight = 6 * vg.Inch
)

// SavePNG writes a concentration-versus-time figure with one labelled line
// per compound. The image format follows the file extension.
func SavePNG(tr *kinetics.Trajectory, title, path string) error {
	p, err := Figure(tr, title)
	if err != nil {
		return err
	}
	return p.Save(pngWidth, pngHeight, path)
}

// Figure builds the plot without writing it.
func Figure(tr *kinetics.Trajectory, title string) (*plot.Plot, error) {
	if len(tr.TimePoints) == 0 {
		return nil, fmt.Errorf("empty trajectory")
	}
	if title == "" {
		title = "Chemical Reaction Simulation"
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Concentration (mol/L)"
	p.Add(plotter.NewGrid())

	lines := make([]any, 0, 2*tr.NumCompounds())
	for j := 0; j < tr.NumCompounds(); j++ {
		pts := make(plotter.XYs, len(tr.TimePoints))
		for i, t := range tr.TimePoints {
			v := tr.Concentrations[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s is not finite at t=%g", tr.Formulas[j], t)
			}
			pts[i].X = t
			pts[i].Y = v
		}
		lines = append(lines, legendLabel(tr, j), pts)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

func legendLabel(tr *kinetics.Trajectory, j int) string {
	if j < len(tr.Names) && tr.Names[j] != "" && tr.Names[j] != tr.Formulas[j] {
		return fmt.Sprintf("%s (%s)", tr.Names[j], tr.Formulas[j])
	}
	return tr.Formulas[j]
}

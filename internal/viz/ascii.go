package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chemsim/internal/kinetics"
)

type PlotOptions struct {
	Height  int
	Width   int
	Caption string
	// Upto limits the chart to rows [0, Upto]. Zero or negative plots every
	// row.
	Upto int
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Height: 15, Width: 80, Caption: "concentration (mol/L) vs time"}
}

// PlotASCII draws one line per compound with a legend of formulas.
// Non-finite values are left as gaps; an empty string is returned when
// nothing is finite.
func PlotASCII(tr *kinetics.Trajectory, opts PlotOptions) string {
	rows := len(tr.Concentrations)
	if opts.Upto > 0 && opts.Upto+1 < rows {
		rows = opts.Upto + 1
	}
	if rows == 0 || tr.NumCompounds() == 0 {
		return ""
	}

	data := make([][]float64, tr.NumCompounds())
	finite := false
	for j := range data {
		series := make([]float64, rows)
		for i := 0; i < rows; i++ {
			v := tr.Concentrations[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = math.NaN()
			} else {
				finite = true
			}
			series[i] = v
		}
		data[j] = series
	}
	if !finite {
		return ""
	}

	options := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.SeriesColors(CurrentTheme.seriesColors(len(data))...),
		asciigraph.SeriesLegends(tr.Formulas...),
		asciigraph.Precision(3),
	}
	if opts.Width > 0 {
		options = append(options, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}

	return asciigraph.PlotMany(data, options...)
}

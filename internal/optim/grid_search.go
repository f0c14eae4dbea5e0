// Package optim sweeps rate constants over a grid and ranks the runs by an
// objective computed from each result.
package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/chemsim/internal/experiment"
	"github.com/san-kum/chemsim/internal/reaction"
)

// Param is one swept rate constant: the reaction index and its values.
type Param struct {
	Reaction int
	Values   []float64
}

// Objective scores a run; Search keeps the lowest score unless Maximize is
// set.
type Objective func(res *experiment.Result) float64

// FinalConcentration scores a run by one compound's last value.
func FinalConcentration(column int) Objective {
	return func(res *experiment.Result) float64 {
		return res.Trajectory.Final()[column]
	}
}

// MetricValue scores a run by a named metric.
func MetricValue(name string) Objective {
	return func(res *experiment.Result) float64 {
		v, ok := res.Metrics[name]
		if !ok {
			return math.NaN()
		}
		return v
	}
}

// Point is one grid evaluation. RateConstants is aligned with the params.
type Point struct {
	RateConstants []float64
	Value         float64
	Err           error
}

type GridSearch struct {
	params   []Param
	workers  int
	Maximize bool
}

func NewGridSearch(params []Param) *GridSearch {
	return &GridSearch{params: params, workers: runtime.NumCPU()}
}

// WithWorkers caps the number of concurrent runs.
func (g *GridSearch) WithWorkers(n int) *GridSearch {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.params) == 0 {
		return 0
	}
	n := 1
	for _, p := range g.params {
		n *= len(p.Values)
	}
	return n
}

// Search evaluates every grid point and returns them in row-major order
// (last param fastest) together with the index of the best point. build
// turns rate constants into a system; a point whose build or run fails is
// kept with Err set and never chosen as best. best is -1 if no point
// succeeded.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(rateConstants []float64) (*reaction.System, error),
	exp *experiment.Experiment,
	objective Objective,
) (points []Point, best int, err error) {
	n := g.Size()
	if n == 0 {
		return nil, -1, fmt.Errorf("empty grid")
	}

	points = make([]Point, n)
	for i := range points {
		points[i].RateConstants = g.at(i)
	}

	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup
	for i := range points {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, -1, err
		}
		sem <- struct{}{}

		wg.Add(1)
		go func(p *Point) {
			defer wg.Done()
			defer func() { <-sem }()

			sys, err := build(p.RateConstants)
			if err != nil {
				p.Err = err
				return
			}
			res, err := exp.Run(sys)
			if err != nil {
				p.Err = err
				return
			}
			p.Value = objective(res)
		}(&points[i])
	}
	wg.Wait()

	best = -1
	for i, p := range points {
		if p.Err != nil || math.IsNaN(p.Value) {
			continue
		}
		if best < 0 || g.better(p.Value, points[best].Value) {
			best = i
		}
	}
	return points, best, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.Maximize {
		return a > b
	}
	return a < b
}

// at decodes a flat grid index.
func (g *GridSearch) at(idx int) []float64 {
	ks := make([]float64, len(g.params))
	for d := len(g.params) - 1; d >= 0; d-- {
		vals := g.params[d].Values
		ks[d] = vals[idx%len(vals)]
		idx /= len(vals)
	}
	return ks
}

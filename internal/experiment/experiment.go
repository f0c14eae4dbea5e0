package experiment

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/chemsim/internal/analysis"
	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/integrators"
	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/metrics"
	"github.com/san-kum/chemsim/internal/reaction"
)

type Config struct {
	Name       string
	Integrator string
	Time       float64
	Steps      int
}

type Experiment struct {
	cfg Config
	log zerolog.Logger
}

type Result struct {
	Trajectory *kinetics.Trajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
}

func New(cfg Config, log zerolog.Logger) *Experiment {
	if cfg.Integrator == "" {
		cfg.Integrator = integrators.Default
	}
	return &Experiment{cfg: cfg, log: log}
}

func (e *Experiment) Config() Config {
	return e.cfg
}

// Run simulates sys with the configured stepper and evaluates the default
// metrics plus one drift metric per conservation law of the network.
func (e *Experiment) Run(sys *reaction.System) (*Result, error) {
	if _, err := integrators.Get(e.cfg.Integrator); err != nil {
		return nil, err
	}

	integ := kinetics.New(
		kinetics.WithStepper(func() dynamo.Integrator {
			s, _ := integrators.Get(e.cfg.Integrator)
			return s
		}),
		kinetics.WithLogger(e.log.With().Str("experiment", e.cfg.Name).Logger()),
	)

	start := time.Now()
	tr, err := integ.Run(sys, e.cfg.Time, e.cfg.Steps)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	ms := metrics.Defaults()
	for i, w := range analysis.ConservationBasis(sys) {
		ms = append(ms, metrics.NewConservationDrift(fmt.Sprintf("conservation_drift_%d", i), w))
	}

	return &Result{
		Trajectory: tr,
		Metrics:    metrics.Evaluate(tr, ms...),
		Elapsed:    elapsed,
	}, nil
}

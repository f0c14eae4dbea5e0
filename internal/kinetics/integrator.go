package kinetics

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/integrators"
	"github.com/san-kum/chemsim/internal/reaction"
)

// Integrator runs fixed-step simulations of a reaction system. It keeps no
// state between runs other than its options.
type Integrator struct {
	newStepper func() dynamo.Integrator
	log        zerolog.Logger
}

type Option func(*Integrator)

// WithStepper replaces explicit Euler with another fixed-step scheme. The
// factory is called once per run.
func WithStepper(fn func() dynamo.Integrator) Option {
	return func(i *Integrator) { i.newStepper = fn }
}

func WithLogger(log zerolog.Logger) Option {
	return func(i *Integrator) { i.log = log }
}

func New(opts ...Option) *Integrator {
	i := &Integrator{
		newStepper: func() dynamo.Integrator { return integrators.NewEuler() },
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run integrates sys from t=0 to totalTime in steps equal steps and returns
// the complete trajectory. Parameters are checked before any work is done.
// A stepper that returns a state of the wrong length aborts the run with a
// *dynamo.StepError.
func (in *Integrator) Run(sys *reaction.System, totalTime float64, steps int) (*Trajectory, error) {
	if err := validate(totalTime, steps); err != nil {
		return nil, err
	}

	rhs := NewMassAction(sys)
	stepper := in.newStepper()
	dt := totalTime / float64(steps)

	in.log.Debug().
		Str("integrator", stepper.Name()).
		Int("compounds", sys.NumCompounds()).
		Int("reactions", sys.NumReactions()).
		Float64("time", totalTime).
		Int("steps", steps).
		Float64("dt", dt).
		Msg("run started")

	tr := &Trajectory{
		TimePoints:     make([]float64, steps+1),
		Concentrations: make([]dynamo.State, steps+1),
		Formulas:       sys.Formulas(),
		Names:          sys.Names(),
	}

	x := sys.InitialState()
	tr.Concentrations[0] = x.Clone()

	firstInvalid := -1
	for i := 0; i < steps; i++ {
		t := tr.TimePoints[i]
		x = stepper.Step(rhs, x, t, dt)
		if err := dynamo.CheckDim(rhs, x); err != nil {
			return nil, &dynamo.StepError{Step: i + 1, Time: t + dt, Wrapped: err}
		}

		tr.TimePoints[i+1] = float64(i+1) * totalTime / float64(steps)
		tr.Concentrations[i+1] = x

		if firstInvalid < 0 && !x.IsValid() {
			firstInvalid = i + 1
		}
	}

	if firstInvalid >= 0 {
		in.log.Warn().
			Err(&dynamo.StepError{Step: firstInvalid, Time: tr.TimePoints[firstInvalid], Wrapped: dynamo.ErrInvalidState}).
			Int("step", firstInvalid).
			Float64("t", tr.TimePoints[firstInvalid]).
			Msg("state became non-finite; consider more steps")
	}
	in.log.Debug().Floats64("final", tr.Final()).Msg("run complete")

	return tr, nil
}

func validate(totalTime float64, steps int) error {
	if !(totalTime > 0) || math.IsInf(totalTime, 0) {
		return &ParameterError{TotalTime: totalTime, Steps: steps, Reason: "total time must be a finite positive number"}
	}
	if steps < 1 {
		return &ParameterError{TotalTime: totalTime, Steps: steps, Reason: "steps must be at least 1"}
	}
	return nil
}

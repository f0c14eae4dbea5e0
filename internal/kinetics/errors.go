package kinetics

import (
	"errors"
	"fmt"
)

// ErrInvalidSimulationParameters indicates a non-positive total time or a
// step count below one.
var ErrInvalidSimulationParameters = errors.New("kinetics: invalid simulation parameters")

// ParameterError carries the rejected run parameters.
type ParameterError struct {
	TotalTime float64
	Steps     int
	Reason    string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s (time=%g, steps=%d)", ErrInvalidSimulationParameters, e.Reason, e.TotalTime, e.Steps)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidSimulationParameters
}

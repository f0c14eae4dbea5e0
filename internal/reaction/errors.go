package reaction

import (
	"errors"
	"fmt"
)

// Configuration errors raised while a System is being built.
var (
	// ErrDuplicateFormula indicates a compound formula registered twice.
	ErrDuplicateFormula = errors.New("reaction: duplicate formula")

	// ErrUnknownFormula indicates a formula that was never added as a compound.
	ErrUnknownFormula = errors.New("reaction: unknown formula")

	// ErrShapeMismatch indicates formula and coefficient lists of different length.
	ErrShapeMismatch = errors.New("reaction: formulas and coefficients differ in length")

	// ErrInvalidRateConstant indicates a negative or non-finite rate constant.
	ErrInvalidRateConstant = errors.New("reaction: rate constant must be a finite non-negative number")

	// ErrInvalidCoefficient indicates a stoichiometric coefficient that is not a positive finite number.
	ErrInvalidCoefficient = errors.New("reaction: coefficient must be a finite positive number")

	// ErrInvalidFormula indicates an empty formula.
	ErrInvalidFormula = errors.New("reaction: formula must not be empty")
)

// ConfigError wraps a configuration error with the operation and the
// formula that triggered it.
type ConfigError struct {
	Op      string
	Formula string
	Detail  string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Formula != "" {
		msg += fmt.Sprintf(" %q", e.Formula)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"negative", State{-0.5, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] != 1 {
		t.Error("Clone did not create independent copy")
	}
}

func TestState_NormDot(t *testing.T) {
	a := State{3, 4}
	if got := a.Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm() = %v, want 5", got)
	}

	if got := (State{1, 2, 3}).Dot([]float64{1, 1, 2}); got != 9 {
		t.Errorf("Dot() = %v, want 9", got)
	}
}

type flatSystem struct{ n int }

func (f flatSystem) Derive(x State, t float64) State { return make(State, len(x)) }
func (f flatSystem) StateDim() int                   { return f.n }

func TestCheckDim(t *testing.T) {
	if err := CheckDim(flatSystem{n: 2}, State{1, 2}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := CheckDim(flatSystem{n: 3}, State{1, 2})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: 3, Time: 0.3, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("StepError does not unwrap")
	}
	if err.Error() != ErrInvalidState.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}

package kinetics

import (
	"math"
	"testing"

	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/reaction"
)

func mustSystem(t *testing.T, compounds []reaction.CompoundSpec, reactions []reaction.ReactionSpec) *reaction.System {
	t.Helper()
	sys, err := reaction.Build(compounds, reactions)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return sys
}

func side(formulas []string, coeffs ...float64) reaction.Side {
	return reaction.Side{Formulas: formulas, Coefficients: coeffs}
}

func TestRatesMassActionLaw(t *testing.T) {
	sys := mustSystem(t,
		[]reaction.CompoundSpec{{Formula: "A", Concentration: 2}, {Formula: "B", Concentration: 3}, {Formula: "C"}},
		[]reaction.ReactionSpec{
			{Reactants: side([]string{"A", "B"}, 2, 1), Products: side([]string{"C"}, 1), RateConstant: 0.5},
			{Reactants: side([]string{"C"}, 1), Products: side([]string{"A"}, 1), RateConstant: 4},
			{Reactants: side([]string{"B"}, 1.5), Products: side(nil), RateConstant: 1},
		},
	)
	m := NewMassAction(sys)

	rates := m.Rates(sys.InitialState())

	expected := []float64{0.5 * 4 * 3, 0, math.Pow(3, 1.5)}
	for i := range expected {
		if math.Abs(rates[i]-expected[i]) > 1e-12 {
			t.Errorf("rate %d: got %v, want %v", i, rates[i], expected[i])
		}
	}
}

func TestDeriveStoichiometry(t *testing.T) {
	sys := mustSystem(t,
		[]reaction.CompoundSpec{{Formula: "A", Concentration: 1}, {Formula: "B", Concentration: 1}},
		[]reaction.ReactionSpec{
			// 2A -> A + B: net -1 A, +1 B.
			{Reactants: side([]string{"A"}, 2), Products: side([]string{"A", "B"}, 1, 1), RateConstant: 1},
		},
	)
	m := NewMassAction(sys)

	dx := m.Derive(dynamo.State{2, 0}, 0)

	rate := 4.0
	if math.Abs(dx[0]-(-2*rate+rate)) > 1e-12 {
		t.Errorf("dA/dt = %v, want %v", dx[0], -rate)
	}
	if math.Abs(dx[1]-rate) > 1e-12 {
		t.Errorf("dB/dt = %v, want %v", dx[1], rate)
	}
}

func TestDeriveDoesNotReadProducts(t *testing.T) {
	sys := mustSystem(t,
		[]reaction.CompoundSpec{{Formula: "A"}, {Formula: "B"}},
		[]reaction.ReactionSpec{
			{Reactants: side([]string{"A"}, 1), Products: side([]string{"B"}, 1), RateConstant: 1},
		},
	)
	m := NewMassAction(sys)

	dx := m.Derive(dynamo.State{0, 100}, 0)
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("product concentration affected rate: %v", dx)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	sys := mustSystem(t,
		[]reaction.CompoundSpec{{Formula: "A", Concentration: 1}, {Formula: "B"}},
		[]reaction.ReactionSpec{
			{Reactants: side([]string{"A"}, 1), Products: side([]string{"B"}, 1), RateConstant: 1},
		},
	)
	m := NewMassAction(sys)
	x := dynamo.State{1, 0}
	_ = m.Derive(x, 0)
	if x[0] != 1 || x[1] != 0 {
		t.Errorf("input modified: %v", x)
	}
}

func TestMassActionIgnoresLaterReactions(t *testing.T) {
	sys := mustSystem(t,
		[]reaction.CompoundSpec{{Formula: "A", Concentration: 1}, {Formula: "B"}},
		nil,
	)
	m := NewMassAction(sys)
	if err := sys.AddReaction([]string{"A"}, []float64{1}, []string{"B"}, []float64{1}, 1); err != nil {
		t.Fatal(err)
	}

	dx := m.Derive(dynamo.State{1, 0}, 0)
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("expected no reactions, got %v", dx)
	}
}

func TestPower(t *testing.T) {
	tests := []struct {
		c, coef, want float64
	}{
		{0.5, 1, 0.5},
		{0.5, 2, 0.25},
		{2, 3, 8},
		{4, 0.5, 2},
		{0, 1.5, 0},
	}
	for _, tt := range tests {
		if got := power(tt.c, tt.coef); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("power(%v, %v) = %v, want %v", tt.c, tt.coef, got, tt.want)
		}
	}
}

func TestParameterErrorMessage(t *testing.T) {
	err := validate(0, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "kinetics: invalid simulation parameters: total time must be a finite positive number (time=0, steps=10)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func BenchmarkRun(b *testing.B) {
	sys := reaction.NewSystem()
	for _, f := range []string{"A", "B", "C", "D"} {
		_ = sys.AddCompound(f, "", 1)
	}
	_ = sys.AddReaction([]string{"A", "B"}, []float64{1, 1}, []string{"C"}, []float64{1}, 0.1)
	_ = sys.AddReaction([]string{"C"}, []float64{1}, []string{"A", "B"}, []float64{1, 1}, 0.05)
	_ = sys.AddReaction([]string{"C"}, []float64{2}, []string{"D"}, []float64{1}, 0.01)
	integ := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integ.Run(sys, 100, 1000); err != nil {
			b.Fatal(err)
		}
	}
}

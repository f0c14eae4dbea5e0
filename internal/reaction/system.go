package reaction

import (
	"fmt"
	"math"

	"github.com/san-kum/chemsim/internal/dynamo"
)

// System is an append-only reaction network. Compound order defines the
// state vector layout. It is not safe to add compounds or reactions while
// another goroutine reads the system.
type System struct {
	compounds []Compound
	reactions []Reaction
	index     map[string]int
}

func NewSystem() *System {
	return &System{
		compounds: make([]Compound, 0),
		reactions: make([]Reaction, 0),
		index:     make(map[string]int),
	}
}

// AddCompound registers a compound at the next free index. An empty name
// falls back to the formula.
func (s *System) AddCompound(formula, name string, concentration float64) error {
	if formula == "" {
		return &ConfigError{Op: "add compound", Err: ErrInvalidFormula}
	}
	if _, ok := s.index[formula]; ok {
		return &ConfigError{Op: "add compound", Formula: formula, Err: ErrDuplicateFormula}
	}
	if name == "" {
		name = formula
	}

	s.index[formula] = len(s.compounds)
	s.compounds = append(s.compounds, Compound{
		Formula:       formula,
		Name:          name,
		Concentration: concentration,
	})
	return nil
}

// AddReaction validates every argument before appending, so a failed call
// leaves the reaction list untouched.
func (s *System) AddReaction(reactantFormulas []string, reactantCoeffs []float64, productFormulas []string, productCoeffs []float64, rateConstant float64) error {
	const op = "add reaction"

	if len(reactantFormulas) != len(reactantCoeffs) {
		return &ConfigError{Op: op, Err: ErrShapeMismatch,
			Detail: fmt.Sprintf("reactants: %d formulas, %d coefficients", len(reactantFormulas), len(reactantCoeffs))}
	}
	if len(productFormulas) != len(productCoeffs) {
		return &ConfigError{Op: op, Err: ErrShapeMismatch,
			Detail: fmt.Sprintf("products: %d formulas, %d coefficients", len(productFormulas), len(productCoeffs))}
	}
	if rateConstant < 0 || math.IsNaN(rateConstant) || math.IsInf(rateConstant, 0) {
		return &ConfigError{Op: op, Err: ErrInvalidRateConstant, Detail: fmt.Sprintf("k = %g", rateConstant)}
	}

	reactants, err := s.resolve(reactantFormulas, reactantCoeffs)
	if err != nil {
		return err
	}
	products, err := s.resolve(productFormulas, productCoeffs)
	if err != nil {
		return err
	}

	r := Reaction{
		Reactants:     Side{Formulas: reactantFormulas, Coefficients: reactantCoeffs}.clone(),
		Products:      Side{Formulas: productFormulas, Coefficients: productCoeffs}.clone(),
		RateConstant:  rateConstant,
		reactantTerms: reactants,
		productTerms:  products,
	}
	s.reactions = append(s.reactions, r)
	return nil
}

func (s *System) resolve(formulas []string, coeffs []float64) ([]Term, error) {
	terms := make([]Term, len(formulas))
	for i, f := range formulas {
		idx, ok := s.index[f]
		if !ok {
			return nil, &ConfigError{Op: "add reaction", Formula: f, Err: ErrUnknownFormula}
		}
		c := coeffs[i]
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, &ConfigError{Op: "add reaction", Formula: f, Err: ErrInvalidCoefficient,
				Detail: fmt.Sprintf("coefficient %g", c)}
		}
		terms[i] = Term{Index: idx, Coefficient: c}
	}
	return terms, nil
}

// IndexOf returns the state vector slot of formula.
func (s *System) IndexOf(formula string) (int, error) {
	idx, ok := s.index[formula]
	if !ok {
		return 0, &ConfigError{Op: "index of", Formula: formula, Err: ErrUnknownFormula}
	}
	return idx, nil
}

// InitialState returns a fresh vector of the recorded concentrations.
func (s *System) InitialState() dynamo.State {
	x := make(dynamo.State, len(s.compounds))
	for i, c := range s.compounds {
		x[i] = c.Concentration
	}
	return x
}

func (s *System) NumCompounds() int { return len(s.compounds) }
func (s *System) NumReactions() int { return len(s.reactions) }

func (s *System) Compound(i int) Compound { return s.compounds[i] }
func (s *System) Reaction(i int) Reaction { return s.reactions[i] }

// Compounds returns a copy of the compounds in index order.
func (s *System) Compounds() []Compound {
	return append([]Compound(nil), s.compounds...)
}

// Reactions returns a copy of the reactions in insertion order.
func (s *System) Reactions() []Reaction {
	return append([]Reaction(nil), s.reactions...)
}

func (s *System) Formulas() []string {
	out := make([]string, len(s.compounds))
	for i, c := range s.compounds {
		out[i] = c.Formula
	}
	return out
}

func (s *System) Names() []string {
	out := make([]string, len(s.compounds))
	for i, c := range s.compounds {
		out[i] = c.Name
	}
	return out
}

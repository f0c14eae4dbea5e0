package reaction

import (
	"strconv"
	"strings"
)

// Side is one side of a reaction: parallel formula and coefficient lists.
type Side struct {
	Formulas     []string  `json:"formulas" yaml:"formulas"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
}

func (s Side) clone() Side {
	return Side{
		Formulas:     append([]string(nil), s.Formulas...),
		Coefficients: append([]float64(nil), s.Coefficients...),
	}
}

// Term is a resolved side entry: compound index and stoichiometric coefficient.
type Term struct {
	Index       int
	Coefficient float64
}

// Reaction is an irreversible mass-action reaction.
type Reaction struct {
	Reactants    Side
	Products     Side
	RateConstant float64

	reactantTerms []Term
	productTerms  []Term
}

// ReactantTerms returns the resolved reactants in declaration order.
func (r Reaction) ReactantTerms() []Term {
	return append([]Term(nil), r.reactantTerms...)
}

// ProductTerms returns the resolved products in declaration order.
func (r Reaction) ProductTerms() []Term {
	return append([]Term(nil), r.productTerms...)
}

// String renders the reaction as "2A + B → C"; unit coefficients are omitted.
func (r Reaction) String() string {
	return formatSide(r.Reactants) + " → " + formatSide(r.Products)
}

func formatSide(s Side) string {
	if len(s.Formulas) == 0 {
		return "∅"
	}
	parts := make([]string, len(s.Formulas))
	for i, f := range s.Formulas {
		coef := s.Coefficients[i]
		if coef == 1 {
			parts[i] = f
			continue
		}
		parts[i] = strconv.FormatFloat(coef, 'g', -1, 64) + f
	}
	return strings.Join(parts, " + ")
}

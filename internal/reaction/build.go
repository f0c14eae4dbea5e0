package reaction

import "fmt"

// CompoundSpec is the construction record for one compound.
type CompoundSpec struct {
	Formula       string
	Name          string
	Concentration float64
}

// ReactionSpec is the construction record for one reaction.
type ReactionSpec struct {
	Reactants    Side
	Products     Side
	RateConstant float64
}

// Build populates a new System from records, compounds first, in order.
// The first failing record aborts construction.
func Build(compounds []CompoundSpec, reactions []ReactionSpec) (*System, error) {
	sys := NewSystem()
	for i, c := range compounds {
		if err := sys.AddCompound(c.Formula, c.Name, c.Concentration); err != nil {
			return nil, fmt.Errorf("compound %d: %w", i+1, err)
		}
	}
	for i, r := range reactions {
		err := sys.AddReaction(r.Reactants.Formulas, r.Reactants.Coefficients,
			r.Products.Formulas, r.Products.Coefficients, r.RateConstant)
		if err != nil {
			return nil, fmt.Errorf("reaction %d: %w", i+1, err)
		}
	}
	return sys, nil
}

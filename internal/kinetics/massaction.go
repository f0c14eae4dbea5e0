package kinetics

import (
	"math"

	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/reaction"
)

type flatReaction struct {
	k         float64
	reactants []reaction.Term
	// net holds every reactant occurrence with -coef and every product
	// occurrence with +coef; a species on both sides appears twice.
	net []reaction.Term
}

// MassAction is the mass-action ODE right-hand side of a reaction system.
// It copies the reactions at construction, so later additions to the
// system are not seen.
type MassAction struct {
	n         int
	reactions []flatReaction
}

func NewMassAction(sys *reaction.System) *MassAction {
	m := &MassAction{
		n:         sys.NumCompounds(),
		reactions: make([]flatReaction, sys.NumReactions()),
	}
	for i := 0; i < sys.NumReactions(); i++ {
		r := sys.Reaction(i)
		reactants := r.ReactantTerms()
		products := r.ProductTerms()

		net := make([]reaction.Term, 0, len(reactants)+len(products))
		for _, t := range reactants {
			net = append(net, reaction.Term{Index: t.Index, Coefficient: -t.Coefficient})
		}
		net = append(net, products...)

		m.reactions[i] = flatReaction{
			k:         r.RateConstant,
			reactants: reactants,
			net:       net,
		}
	}
	return m
}

func (m *MassAction) StateDim() int { return m.n }

// Rates returns the rate of every reaction at state x, in reaction order.
func (m *MassAction) Rates(x dynamo.State) []float64 {
	rates := make([]float64, len(m.reactions))
	for i := range m.reactions {
		rates[i] = m.rate(&m.reactions[i], x)
	}
	return rates
}

func (m *MassAction) rate(r *flatReaction, x dynamo.State) float64 {
	rate := r.k
	for _, t := range r.reactants {
		rate *= power(x[t.Index], t.Coefficient)
	}
	return rate
}

// power avoids math.Pow for integer orders up to three.
func power(c, coef float64) float64 {
	switch coef {
	case 1:
		return c
	case 2:
		return c * c
	case 3:
		return c * c * c
	}
	return math.Pow(c, coef)
}

// Derive evaluates dc/dt on a snapshot of x. x is only read.
func (m *MassAction) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, m.n)
	for i := range m.reactions {
		r := &m.reactions[i]
		rate := m.rate(r, x)
		for _, term := range r.net {
			dx[term.Index] += term.Coefficient * rate
		}
	}
	return dx
}

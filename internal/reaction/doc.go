// Package reaction holds the data model of a reaction network: an ordered,
// append-only set of compounds and the reactions between them.
//
// Compounds are addressed by their formula. The position of a compound in
// the [System] is its slot in every state vector the kinetics engine
// produces, so indices never change once assigned. Reactions store resolved
// indices rather than references to compounds.
//
// Construction errors are reported eagerly by the call that introduces the
// inconsistency and match the sentinels in errors.go via errors.Is:
//
//	sys := reaction.NewSystem()
//	_ = sys.AddCompound("A", "Reactant A", 1.0)
//	err := sys.AddReaction([]string{"X"}, []float64{1}, nil, nil, 0.1)
//	errors.Is(err, reaction.ErrUnknownFormula) // true
package reaction

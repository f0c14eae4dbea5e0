package config

import (
	"sort"

	"github.com/san-kum/chemsim/internal/reaction"
)

func side(formulas []string, coeffs ...float64) reaction.Side {
	return reaction.Side{Formulas: formulas, Coefficients: coeffs}
}

var Presets = map[string]*File{
	"decay": {
		Compounds: []CompoundConfig{
			{Formula: "A", Name: "Reactant A", Concentration: 1.0},
			{Formula: "B", Name: "Product B", Concentration: 0.0},
		},
		Reactions: []ReactionConfig{
			{Reactants: side([]string{"A"}, 1), Products: side([]string{"B"}, 1), RateConstant: 0.1},
		},
		Simulation: SimulationConfig{Time: 10, Steps: 100, Integrator: "euler"},
	},
	"bimolecular": DefaultConfig(),
	"reversible": {
		Compounds: []CompoundConfig{
			{Formula: "A", Name: "Isomer A", Concentration: 1.0},
			{Formula: "B", Name: "Isomer B", Concentration: 0.0},
		},
		Reactions: []ReactionConfig{
			{Reactants: side([]string{"A"}, 1), Products: side([]string{"B"}, 1), RateConstant: 0.3},
			{Reactants: side([]string{"B"}, 1), Products: side([]string{"A"}, 1), RateConstant: 0.1},
		},
		Simulation: SimulationConfig{Time: 30, Steps: 600, Integrator: "euler"},
	},
	"consecutive": {
		Compounds: []CompoundConfig{
			{Formula: "A", Name: "Reactant A", Concentration: 1.0},
			{Formula: "B", Name: "Intermediate B", Concentration: 0.0},
			{Formula: "C", Name: "Product C", Concentration: 0.0},
		},
		Reactions: []ReactionConfig{
			{Reactants: side([]string{"A"}, 1), Products: side([]string{"B"}, 1), RateConstant: 0.5},
			{Reactants: side([]string{"B"}, 1), Products: side([]string{"C"}, 1), RateConstant: 0.2},
		},
		Simulation: SimulationConfig{Time: 30, Steps: 600, Integrator: "euler"},
	},
	"autocatalytic": {
		Compounds: []CompoundConfig{
			{Formula: "A", Name: "Substrate A", Concentration: 1.0},
			{Formula: "B", Name: "Autocatalyst B", Concentration: 0.01},
		},
		Reactions: []ReactionConfig{
			{Reactants: side([]string{"A", "B"}, 1, 1), Products: side([]string{"B"}, 2), RateConstant: 1.0},
		},
		Simulation: SimulationConfig{Time: 15, Steps: 1500, Integrator: "euler"},
	},
	"dimerization": {
		Compounds: []CompoundConfig{
			{Formula: "NO2", Name: "Nitrogen dioxide", Concentration: 0.2},
			{Formula: "N2O4", Name: "Dinitrogen tetroxide", Concentration: 0.0},
		},
		Reactions: []ReactionConfig{
			{Reactants: side([]string{"NO2"}, 2), Products: side([]string{"N2O4"}, 1), RateConstant: 5.0},
			{Reactants: side([]string{"N2O4"}, 1), Products: side([]string{"NO2"}, 2), RateConstant: 0.2},
		},
		Simulation: SimulationConfig{Time: 20, Steps: 2000, Integrator: "euler"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *File {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	c := &File{
		Compounds:  append([]CompoundConfig(nil), f.Compounds...),
		Reactions:  make([]ReactionConfig, len(f.Reactions)),
		Simulation: f.Simulation,
	}
	for i, r := range f.Reactions {
		c.Reactions[i] = ReactionConfig{
			Reactants:    side(append([]string(nil), r.Reactants.Formulas...), append([]float64(nil), r.Reactants.Coefficients...)...),
			Products:     side(append([]string(nil), r.Products.Formulas...), append([]float64(nil), r.Products.Coefficients...)...),
			RateConstant: r.RateConstant,
		}
	}
	return c
}

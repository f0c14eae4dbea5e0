package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/chemsim/internal/integrators"
	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/reaction"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTime  = 100.0
	DefaultSteps = 1000
)

// File is the on-disk description of a reaction system and how to run it.
// JSON files with the same keys load unchanged, since JSON is valid YAML.
type File struct {
	Compounds  []CompoundConfig `yaml:"compounds"`
	Reactions  []ReactionConfig `yaml:"reactions"`
	Simulation SimulationConfig `yaml:"simulation,omitempty"`
}

type CompoundConfig struct {
	Formula       string  `yaml:"formula"`
	Name          string  `yaml:"name,omitempty"`
	Concentration float64 `yaml:"concentration"`
}

type ReactionConfig struct {
	Reactants    reaction.Side `yaml:"reactants"`
	Products     reaction.Side `yaml:"products"`
	RateConstant float64       `yaml:"rate_constant"`
}

type SimulationConfig struct {
	Time       float64 `yaml:"time,omitempty"`
	Steps      int     `yaml:"steps,omitempty"`
	Integrator string  `yaml:"integrator,omitempty"`
}

// DefaultConfig is A + B -> C with k = 0.1, A = 1.0 and B = 0.5 mol/L.
func DefaultConfig() *File {
	return &File{
		Compounds: []CompoundConfig{
			{Formula: "A", Name: "Reactant A", Concentration: 1.0},
			{Formula: "B", Name: "Reactant B", Concentration: 0.5},
			{Formula: "C", Name: "Product C", Concentration: 0.0},
		},
		Reactions: []ReactionConfig{
			{
				Reactants:    reaction.Side{Formulas: []string{"A", "B"}, Coefficients: []float64{1, 1}},
				Products:     reaction.Side{Formulas: []string{"C"}, Coefficients: []float64{1}},
				RateConstant: 0.1,
			},
		},
		Simulation: DefaultSimulation(),
	}
}

func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Time:       DefaultTime,
		Steps:      DefaultSteps,
		Integrator: integrators.Default,
	}
}

// Load reads a YAML or JSON config. Missing simulation fields take the
// defaults; fields that are present are kept as written, so an explicit
// zero time or step count fails Validate.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	cfg := &File{Simulation: DefaultSimulation()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Simulation.Integrator == "" {
		cfg.Simulation.Integrator = integrators.Default
	}
	return cfg, nil
}

func Save(path string, cfg *File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the reaction system described by the file.
func (f *File) Build() (*reaction.System, error) {
	compounds := make([]reaction.CompoundSpec, len(f.Compounds))
	for i, c := range f.Compounds {
		compounds[i] = reaction.CompoundSpec{
			Formula:       c.Formula,
			Name:          c.Name,
			Concentration: c.Concentration,
		}
	}
	reactions := make([]reaction.ReactionSpec, len(f.Reactions))
	for i, r := range f.Reactions {
		reactions[i] = reaction.ReactionSpec{
			Reactants:    r.Reactants,
			Products:     r.Products,
			RateConstant: r.RateConstant,
		}
	}
	return reaction.Build(compounds, reactions)
}

// Validate checks the simulation section. The network itself is checked
// by Build.
func (f *File) Validate() error {
	s := f.Simulation
	if !(s.Time > 0) || math.IsInf(s.Time, 0) {
		return &kinetics.ParameterError{TotalTime: s.Time, Steps: s.Steps, Reason: "simulation time must be positive and finite"}
	}
	if s.Steps < 1 {
		return &kinetics.ParameterError{TotalTime: s.Time, Steps: s.Steps, Reason: "simulation steps must be at least 1"}
	}
	if _, err := integrators.Get(s.Integrator); err != nil {
		return err
	}
	if len(f.Reactions) == 0 {
		return fmt.Errorf("no reactions defined")
	}
	return nil
}

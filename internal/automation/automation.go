// Package automation runs a scripted list of simulations from a YAML
// scenario file and optionally stores each one.
package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/san-kum/chemsim/internal/config"
	"github.com/san-kum/chemsim/internal/experiment"
	"github.com/san-kum/chemsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Exactly one of Preset and Config selects the
// system; Time, Steps and Integrator override its simulation section when
// set. Config paths are relative to the scenario file.
type ScenarioStep struct {
	Name       string  `yaml:"name,omitempty"`
	Preset     string  `yaml:"preset,omitempty"`
	Config     string  `yaml:"config,omitempty"`
	Time       float64 `yaml:"time,omitempty"`
	Steps      int     `yaml:"steps,omitempty"`
	Integrator string  `yaml:"integrator,omitempty"`
	Save       bool    `yaml:"save,omitempty"`
}

// StepResult pairs a step with its outcome. RunID is empty for unsaved runs.
type StepResult struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	base := filepath.Dir(path)
	for i := range scenario.Steps {
		c := scenario.Steps[i].Config
		if c != "" && !filepath.IsAbs(c) {
			scenario.Steps[i].Config = filepath.Join(base, c)
		}
	}

	return &scenario, nil
}

func (s ScenarioStep) file() (*config.File, string, error) {
	var (
		f    *config.File
		name string
	)
	switch {
	case s.Preset != "" && s.Config != "":
		return nil, "", fmt.Errorf("preset and config are mutually exclusive")
	case s.Preset != "":
		f = config.GetPreset(s.Preset)
		if f == nil {
			return nil, "", fmt.Errorf("unknown preset: %s", s.Preset)
		}
		name = s.Preset
	case s.Config != "":
		var err error
		if f, err = config.Load(s.Config); err != nil {
			return nil, "", err
		}
		name = strings.TrimSuffix(filepath.Base(s.Config), filepath.Ext(s.Config))
	default:
		return nil, "", fmt.Errorf("step needs a preset or a config")
	}

	if f.Simulation.Integrator == "" {
		f.Simulation.Integrator = config.DefaultSimulation().Integrator
	}
	if s.Time != 0 {
		f.Simulation.Time = s.Time
	}
	if s.Steps != 0 {
		f.Simulation.Steps = s.Steps
	}
	if s.Integrator != "" {
		f.Simulation.Integrator = s.Integrator
	}
	if s.Name != "" {
		name = s.Name
	}
	return f, name, f.Validate()
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far. st may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log zerolog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		f, name, err := step.file()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		log.Info().
			Str("scenario", scenario.Name).
			Int("step", i+1).
			Int("of", len(scenario.Steps)).
			Str("name", name).
			Msg("running step")

		sys, err := f.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(experiment.Config{
			Name:       name,
			Integrator: f.Simulation.Integrator,
			Time:       f.Simulation.Time,
			Steps:      f.Simulation.Steps,
		}, log)

		result, err := exp.Run(sys)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save into", i+1)
			}
			reactions := make([]string, sys.NumReactions())
			for j, r := range sys.Reactions() {
				reactions[j] = r.String()
			}
			sr.RunID, err = st.Save(storage.RunMetadata{
				Name:       name,
				Integrator: f.Simulation.Integrator,
				Reactions:  reactions,
				Metrics:    result.Metrics,
			}, result.Trajectory)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/chemsim/internal/analysis"
	"github.com/san-kum/chemsim/internal/config"
	"github.com/san-kum/chemsim/internal/experiment"
	"github.com/san-kum/chemsim/internal/storage"
	"github.com/san-kum/chemsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	outputPNG string
	showPlot  bool
	saveRun   bool
	force     bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a reaction system",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSystemFlags(cmd)
	cmd.Flags().StringVarP(&outputPNG, "output", "o", "", "write a concentration plot to this PNG file")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "print an ascii plot")
	cmd.Flags().BoolVar(&saveRun, "save", true, "store the run in the data directory")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ls, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	sim := ls.file.Simulation

	fmt.Println(viz.RenderSystem(ls.sys))
	fmt.Println()

	exp := experiment.New(experiment.Config{
		Name:       ls.name,
		Integrator: sim.Integrator,
		Time:       sim.Time,
		Steps:      sim.Steps,
	}, log)

	log.Info().
		Str("system", ls.name).
		Str("integrator", sim.Integrator).
		Float64("time", sim.Time).
		Int("steps", sim.Steps).
		Msg("running simulation")

	result, err := exp.Run(ls.sys)
	if err != nil {
		return err
	}
	tr := result.Trajectory

	log.Info().Dur("elapsed", result.Elapsed).Msg("simulation complete")

	fmt.Println(viz.RenderFinal(tr))
	fmt.Println(viz.RenderMetrics(result.Metrics))

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotASCII(tr, viz.DefaultPlotOptions()))
	}

	if outputPNG != "" {
		if err := viz.SavePNG(tr, "", outputPNG); err != nil {
			return fmt.Errorf("failed to write plot: %w", err)
		}
		log.Info().Str("path", outputPNG).Msg("plot saved")
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Name:       ls.name,
			Integrator: sim.Integrator,
			Reactions:  reactionStrings(ls.sys),
			Metrics:    result.Metrics,
		}, tr)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write an example configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "chemsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if preset != "" {
				cfg = config.GetPreset(preset)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a built-in system")
	return cmd
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "describe a reaction system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := loadSystem(cmd)
			if err != nil {
				return err
			}

			fmt.Println(viz.RenderSystem(ls.sys))
			fmt.Println()

			N := analysis.StoichiometryMatrix(ls.sys)
			rank := 0
			if N != nil {
				rank = analysis.Rank(N)
			}
			fmt.Printf("stoichiometric rank: %d\n", rank)
			fmt.Printf("conservation laws:   %d\n", analysis.ConservationLaws(ls.sys))
			for i, w := range analysis.ConservationBasis(ls.sys) {
				fmt.Printf("  law %d: %s\n", i, formatCombination(ls.sys.Formulas(), w))
			}
			return nil
		},
	}
	addSystemFlags(cmd)
	return cmd
}

func formatCombination(formulas []string, w []float64) string {
	parts := make([]string, 0, len(w))
	for i, c := range w {
		if math.Abs(c) < 1e-12 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%+.4g*[%s]", c, formulas[i]))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list built-in reaction systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				sys, err := config.GetPreset(name).Build()
				if err != nil {
					return fmt.Errorf("preset %s: %w", name, err)
				}
				fmt.Printf("%-14s %s\n", name, strings.Join(reactionStrings(sys), "; "))
			}
			return nil
		},
	}
}

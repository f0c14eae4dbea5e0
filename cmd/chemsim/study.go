package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/chemsim/internal/analysis"
	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/experiment"
	"github.com/san-kum/chemsim/internal/integrators"
	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	levels  int
	species string
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run several steppers on the same system",
		RunE:  compareIntegrators,
	}
	addSystemFlags(cmd)
	return cmd
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	ls, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	sim := ls.file.Simulation

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "INTEGRATOR\tELAPSED\tMIN"
	for _, f := range ls.sys.Formulas() {
		header += "\t" + f
	}
	fmt.Fprintln(w, header)

	for _, name := range names {
		exp := experiment.New(experiment.Config{
			Name:       ls.name,
			Integrator: name,
			Time:       sim.Time,
			Steps:      sim.Steps,
		}, log)

		result, err := exp.Run(ls.sys)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		line := fmt.Sprintf("%s\t%v\t%.4g", name, result.Elapsed, result.Metrics["min_concentration"])
		for _, v := range result.Trajectory.Final() {
			line += fmt.Sprintf("\t%.6g", v)
		}
		fmt.Fprintln(w, line)
	}

	return w.Flush()
}

func newConvergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "measure error against step count",
		Long: "Runs the system with --steps, 2x, 4x ... steps and reports the maximum\n" +
			"error of one compound against a much finer reference run.",
		Args: cobra.NoArgs,
		RunE: convergenceStudy,
	}
	addSystemFlags(cmd)
	cmd.Flags().IntVar(&levels, "levels", 5, fmt.Sprintf("number of step counts to try (1-%d)", analysis.MaxLevels))
	cmd.Flags().StringVar(&species, "species", "", "compound to measure (default first)")
	return cmd
}

func checkLevels(n int) error {
	if n < 1 || n > analysis.MaxLevels {
		return fmt.Errorf("--levels must be between 1 and %d, got %d", analysis.MaxLevels, n)
	}
	return nil
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	if err := checkLevels(levels); err != nil {
		return err
	}
	ls, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	sim := ls.file.Simulation

	column := 0
	if species != "" {
		column, err = ls.sys.IndexOf(species)
		if err != nil {
			return err
		}
	}

	if _, err := integrators.Get(sim.Integrator); err != nil {
		return err
	}
	integ := kinetics.New(
		kinetics.WithStepper(func() dynamo.Integrator {
			s, _ := integrators.Get(sim.Integrator)
			return s
		}),
		kinetics.WithLogger(log),
	)

	log.Info().
		Str("integrator", sim.Integrator).
		Int("base_steps", sim.Steps).
		Int("levels", levels).
		Msg("convergence study")

	study, err := analysis.ConvergenceStudy(integ, ls.sys, sim.Time, sim.Steps, levels, column, nil)
	if err != nil {
		return err
	}
	orders := analysis.ObservedOrder(study)

	fmt.Printf("%s, %s, error in [%s]\n\n", ls.name, sim.Integrator, ls.sys.Formulas()[column])

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDT\tMAX ERROR\tORDER")
	for i, l := range study {
		order := "-"
		if i > 0 && !math.IsInf(orders[i-1], 0) && !math.IsNaN(orders[i-1]) {
			order = fmt.Sprintf("%.3f", orders[i-1])
		}
		fmt.Fprintf(w, "%d\t%.4g\t%.4e\t%s\n", l.Steps, l.Dt, l.Error, order)
	}
	return w.Flush()
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "replay a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := loadSystem(cmd)
			if err != nil {
				return err
			}
			sim := ls.file.Simulation

			result, err := experiment.New(experiment.Config{
				Name:       ls.name,
				Integrator: sim.Integrator,
				Time:       sim.Time,
				Steps:      sim.Steps,
			}, log).Run(ls.sys)
			if err != nil {
				return err
			}

			return viz.RunLive(result.Trajectory, ls.name)
		},
	}
	addSystemFlags(cmd)
	return cmd
}

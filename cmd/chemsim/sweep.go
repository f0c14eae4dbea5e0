package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/chemsim/internal/experiment"
	"github.com/san-kum/chemsim/internal/optim"
	"github.com/san-kum/chemsim/internal/reaction"
	"github.com/spf13/cobra"
)

var (
	sweepParams []string
	maximize    bool
	workers     int
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep rate constants and rank the runs",
		Long: "Each --k flag takes REACTION=V1,V2,... where REACTION is the 1-based\n" +
			"reaction number shown by 'chemsim info'. Runs are scored by the final\n" +
			"concentration of --species (lowest first unless --maximize).",
		Example: "  chemsim sweep --preset consecutive --k 1=0.1,0.5,1 --k 2=0.05,0.2 --species B --maximize",
		Args:    cobra.NoArgs,
		RunE:    sweepRateConstants,
	}
	addSystemFlags(cmd)
	cmd.Flags().StringArrayVar(&sweepParams, "k", nil, "rate constants to sweep, REACTION=V1,V2,...")
	cmd.Flags().StringVar(&species, "species", "", "compound whose final concentration is scored (default first)")
	cmd.Flags().BoolVar(&maximize, "maximize", false, "prefer the highest score")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default number of CPUs)")
	_ = cmd.MarkFlagRequired("k")
	return cmd
}

func parseSweepParam(s string, numReactions int) (optim.Param, error) {
	idx, list, ok := strings.Cut(s, "=")
	if !ok {
		return optim.Param{}, fmt.Errorf("invalid --k %q: want REACTION=V1,V2,...", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || n < 1 || n > numReactions {
		return optim.Param{}, fmt.Errorf("invalid --k %q: reaction must be in 1..%d", s, numReactions)
	}

	p := optim.Param{Reaction: n - 1}
	for _, v := range strings.Split(list, ",") {
		k, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return optim.Param{}, fmt.Errorf("invalid --k %q: %w", s, err)
		}
		p.Values = append(p.Values, k)
	}
	return p, nil
}

func sweepRateConstants(cmd *cobra.Command, args []string) error {
	ls, err := loadSystem(cmd)
	if err != nil {
		return err
	}
	sim := ls.file.Simulation

	params := make([]optim.Param, 0, len(sweepParams))
	for _, s := range sweepParams {
		p, err := parseSweepParam(s, ls.sys.NumReactions())
		if err != nil {
			return err
		}
		params = append(params, p)
	}

	column := 0
	if species != "" {
		column, err = ls.sys.IndexOf(species)
		if err != nil {
			return err
		}
	}

	build := func(ks []float64) (*reaction.System, error) {
		f := ls.file.Clone()
		for i, p := range params {
			f.Reactions[p.Reaction].RateConstant = ks[i]
		}
		return f.Build()
	}

	exp := experiment.New(experiment.Config{
		Name:       ls.name,
		Integrator: sim.Integrator,
		Time:       sim.Time,
		Steps:      sim.Steps,
	}, log)

	g := optim.NewGridSearch(params).WithWorkers(workers)
	g.Maximize = maximize

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("points", g.Size()).Str("species", ls.sys.Formulas()[column]).Msg("sweep started")

	points, best, err := g.Search(ctx, build, exp, optim.FinalConcentration(column))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := ""
	for _, p := range params {
		header += fmt.Sprintf("k%d\t", p.Reaction+1)
	}
	fmt.Fprintf(w, "%sFINAL [%s]\t\n", header, ls.sys.Formulas()[column])
	for i, pt := range points {
		line := ""
		for _, k := range pt.RateConstants {
			line += fmt.Sprintf("%g\t", k)
		}
		switch {
		case pt.Err != nil:
			line += "error: " + pt.Err.Error() + "\t"
		case i == best:
			line += fmt.Sprintf("%.6g\t*", pt.Value)
		default:
			line += fmt.Sprintf("%.6g\t", pt.Value)
		}
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best < 0 {
		return fmt.Errorf("no grid point succeeded")
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/chemsim/internal/automation"
	"github.com/san-kum/chemsim/internal/storage"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			results, runErr := automation.RunScenario(ctx, scenario, st, log)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tNAME\tELAPSED\tFINAL\tRUN ID")
			for i, r := range results {
				final := make([]string, 0, len(r.Result.Trajectory.Formulas))
				for j, f := range r.Result.Trajectory.Formulas {
					final = append(final, fmt.Sprintf("%s=%.4g", f, r.Result.Trajectory.Final()[j]))
				}
				runID := r.RunID
				if runID == "" {
					runID = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%v\t%s\t%s\n", i+1, r.Name, r.Result.Elapsed, strings.Join(final, " "), runID)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return runErr
		},
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/chemsim/internal/storage"
	"github.com/san-kum/chemsim/internal/viz"
	"github.com/spf13/cobra"
)

var exportOut string

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIMESTAMP\tTIME\tSTEPS\tDT\tINTEG\tCOMPOUNDS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%gs\t%d\t%gs\t%s\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Time,
			run.Steps,
			run.Dt,
			run.Integrator,
			strings.Join(run.Formulas, ","),
		)
	}

	return w.Flush()
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().StringVarP(&outputPNG, "output", "o", "", "write a PNG instead of printing")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if outputPNG != "" {
		if err := viz.SavePNG(tr, meta.Name, outputPNG); err != nil {
			return err
		}
		log.Info().Str("run", runID).Str("path", outputPNG).Msg("plot saved")
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	for _, r := range meta.Reactions {
		fmt.Printf("  %s\n", r)
	}
	fmt.Println()
	fmt.Println(viz.PlotASCII(tr, viz.DefaultPlotOptions()))

	return nil
}

// exportTarget returns stdout or the file named by --out.
func exportTarget() (io.WriteCloser, error) {
	if exportOut == "" || exportOut == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(exportOut)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its full trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			tr, err := st.LoadTrajectory(args[0])
			if err != nil {
				return err
			}

			w, err := exportTarget()
			if err != nil {
				return err
			}
			defer w.Close()
			return storage.ExportJSON(w, meta, tr)
		},
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's concentrations as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			tr, err := st.LoadTrajectory(args[0])
			if err != nil {
				return err
			}

			w, err := exportTarget()
			if err != nil {
				return err
			}
			defer w.Close()
			return storage.ExportCSV(w, tr)
		},
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/chemsim/internal/config"
	"github.com/san-kum/chemsim/internal/logger"
	"github.com/san-kum/chemsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	theme     string

	log zerolog.Logger
)

// main registers the chemsim commands and exits with status 1 when the
// selected command fails.
func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:          "chemsim",
		Short:        "mass-action chemical kinetics simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.New(logger.Options{Level: logLevel, Format: logFormat})
			viz.SetTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", env.LogFormat, "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeLab.Name, fmt.Sprintf("terminal theme %v", viz.ThemeNames()))

	rootCmd.AddCommand(
		newRunCmd(),
		newInitCmd(),
		newInfoCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newExportCSVCmd(),
		newCompareCmd(),
		newConvergeCmd(),
		newSweepCmd(),
		newBatchCmd(),
		newLiveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

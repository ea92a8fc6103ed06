package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

var (
	// Global flags
	verbose bool
	jsonLog bool

	// logger is configured once before any subcommand runs.
	logger zerolog.Logger
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plovasp",
		Short: "PLOVASP - VASP projected localized orbital converter",
		Long: `PLOVASP converts the output of a VASP calculation together with a
projected-shell config document into a validated model for downstream
analysis.

The config document declares shells (projector subsets over ions and an
angular momentum channel) and groups (collections of shells sharing an
energy window and normalization settings). PLOVASP checks the document's
internal consistency, reads the companion VASP files, and reports any
violation with the offending section and key.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "info"
			if verbose {
				level = "debug"
			}
			format := "console"
			if jsonLog {
				format = "json"
			}
			logger = telemetry.NewLogger(telemetry.LoggingConfig{Level: level, Format: format})
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log in JSON format")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newRunsCommand())

	return rootCmd
}

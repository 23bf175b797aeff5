package cli

import (
	"github.com/spf13/cobra"

	"github.com/finbench/pixiu-adapters/pkg/logger"
)

// RootCmd builds the pixiu-adapters command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pixiu-adapters",
		Short:         "Convert PIXIU benchmark samples into task directories",
		Long:          "Adapters that download PIXIU financial NLP benchmark datasets and materialize one task directory per sample for the benchmark harness.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				return err
			}
			return logger.SetupLogger(logLevel, logJSON)
		},
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	root.AddCommand(
		HeadlinesCmd(),
		FPBCmd(),
		VersionCmd(),
	)

	return root
}

package cli

import (
	"github.com/spf13/cobra"
)

// HeadlinesCmd creates the FinBen headline-classification pipeline command.
func HeadlinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "Generate tasks from the PIXIU FinBen headlines dataset",
		Long:  "Downloads a split of the FinBen headline-classification dataset and materializes one task directory per sample.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}
	registerGenerateFlags(cmd, generateDefaults{
		OutputDir:   "dataset/pixiu-flare-headlines",
		DatasetName: "TheFinAI/flare-headlines",
		TemplateDir: "templates/headlines",
	})
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"
)

// FPBCmd creates the Financial PhraseBank sentiment pipeline command.
func FPBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fpb",
		Short: "Generate tasks from the PIXIU Financial PhraseBank dataset",
		Long:  "Downloads a split of the en-fpb sentiment dataset and materializes one task directory per sample. The dataset is gated; set HF_TOKEN after requesting access.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}
	registerGenerateFlags(cmd, generateDefaults{
		OutputDir:   "dataset/pixiu-fpb",
		DatasetName: "TheFinAI/en-fpb",
		TemplateDir: "templates/fpb",
	})
	return cmd
}

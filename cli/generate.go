package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finbench/pixiu-adapters/engine/adapter"
	"github.com/finbench/pixiu-adapters/engine/dataset"
	"github.com/finbench/pixiu-adapters/engine/task"
	"github.com/finbench/pixiu-adapters/pkg/config"
	"github.com/finbench/pixiu-adapters/pkg/logger"
)

// generateDefaults carries the per-pipeline flag defaults.
type generateDefaults struct {
	OutputDir   string
	DatasetName string
	TemplateDir string
}

// generateFlags holds the resolved generation flags.
type generateFlags struct {
	OutputDir   string
	Split       string
	Limit       int
	DatasetName string
	TemplateDir string
}

var validSplits = map[string]struct{}{
	"train":      {},
	"validation": {},
	"test":       {},
}

// registerGenerateFlags adds the flag set shared by both pipelines.
func registerGenerateFlags(cmd *cobra.Command, defaults generateDefaults) {
	cmd.Flags().String("output-dir", defaults.OutputDir, "Directory where generated tasks will be stored")
	cmd.Flags().String("split", "test", "Dataset split to convert (train, validation, test)")
	cmd.Flags().Int("limit", 0, "Maximum number of samples to convert (<= 0 means no limit)")
	cmd.Flags().String("dataset-name", defaults.DatasetName, "Hugging Face dataset identifier to load")
	cmd.Flags().String("template-dir", defaults.TemplateDir, "Directory holding the task template tree")
}

// getGenerateFlags reads and validates the shared generation flags.
func getGenerateFlags(cmd *cobra.Command) (*generateFlags, error) {
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get output-dir flag: %w", err)
	}
	split, err := cmd.Flags().GetString("split")
	if err != nil {
		return nil, fmt.Errorf("failed to get split flag: %w", err)
	}
	if _, ok := validSplits[split]; !ok {
		return nil, fmt.Errorf("invalid split %q: must be one of train, validation, test", split)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, fmt.Errorf("failed to get limit flag: %w", err)
	}
	datasetName, err := cmd.Flags().GetString("dataset-name")
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset-name flag: %w", err)
	}
	templateDir, err := cmd.Flags().GetString("template-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get template-dir flag: %w", err)
	}
	return &generateFlags{
		OutputDir:   outputDir,
		Split:       split,
		Limit:       limit,
		DatasetName: datasetName,
		TemplateDir: templateDir,
	}, nil
}

// runGenerate wires loader, normalizer and materializer for one run and
// prints the final task count.
func runGenerate(cmd *cobra.Command) error {
	flags, err := getGenerateFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, err := config.NewService().Load(ctx)
	if err != nil {
		return err
	}
	ctx = config.ContextWithConfig(ctx, cfg)
	ctx = logger.ContextWithLogger(ctx, logger.GetDefault())

	client := dataset.NewClient(config.FromContext(ctx))
	materializer := task.NewMaterializer(flags.TemplateDir, flags.OutputDir)
	a := adapter.New(client, materializer, flags.DatasetName, flags.Split, flags.Limit)

	taskIDs, err := a.GenerateAll(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d tasks under %s\n", len(taskIDs), flags.OutputDir)
	return nil
}

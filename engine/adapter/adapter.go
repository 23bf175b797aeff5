package adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/finbench/pixiu-adapters/engine/dataset"
	"github.com/finbench/pixiu-adapters/engine/record"
	"github.com/finbench/pixiu-adapters/engine/task"
	"github.com/finbench/pixiu-adapters/pkg/logger"
)

// RowLoader fetches the raw rows of a dataset split.
type RowLoader interface {
	Rows(ctx context.Context, name, split string, limit int) ([]dataset.Row, error)
}

// Adapter drives one conversion run: loader, then per-row normalizer and
// materializer, strictly in source order with no parallelism. Any failure
// aborts the remaining batch; tasks already written stay on disk.
type Adapter struct {
	loader       RowLoader
	materializer *task.Materializer
	dataset      string
	split        string
	limit        int
}

// New creates an adapter for one dataset + split.
func New(loader RowLoader, materializer *task.Materializer, datasetName, split string, limit int) *Adapter {
	return &Adapter{
		loader:       loader,
		materializer: materializer,
		dataset:      datasetName,
		split:        split,
		limit:        limit,
	}
}

// GenerateAll converts every requested row into a task directory and returns
// the ordered list of generated task ids.
func (a *Adapter) GenerateAll(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)
	if err := os.MkdirAll(a.materializer.OutputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", a.materializer.OutputRoot, err)
	}

	log.Info("loading dataset", "dataset", a.dataset, "split", a.split, "limit", a.limit)
	rows, err := a.loader.Rows(ctx, a.dataset, a.split, a.limit)
	if err != nil {
		return nil, err
	}
	log.Info("loaded rows", "count", len(rows))

	taskIDs := make([]string, 0, len(rows))
	for idx, row := range rows {
		rec, err := record.Normalize(row, idx, a.dataset, a.split)
		if err != nil {
			return nil, err
		}
		taskID, err := a.materializer.Generate(ctx, rec)
		if err != nil {
			return nil, err
		}
		log.Debug("generated task", "task_id", taskID)
		taskIDs = append(taskIDs, taskID)
	}

	log.Info("generated tasks", "count", len(taskIDs), "output_dir", a.materializer.OutputRoot)
	return taskIDs, nil
}

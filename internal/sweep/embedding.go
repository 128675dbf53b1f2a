// internal/sweep/embedding.go
package sweep

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// EmbeddingHeader is the column layout of embedding result files.
var EmbeddingHeader = []string{
	"model", "max_workers", "num_tasks", "sample_size",
	MetricDurationMean, MetricDurationPerc95, MetricRealDuration, MetricRateMean, MetricErrors,
}

// EmbeddingSweep runs `ollama-benchmark embedding` once per combination of
// models, worker counts, task counts and sample sizes.
type EmbeddingSweep struct {
	Models      []string `json:"models"`
	MaxWorkers  []int    `json:"max_workers"`
	NumTasks    []int    `json:"num_tasks"`
	SampleSizes []int    `json:"sample_sizes"`
	OutputFile  string   `json:"output_file"`
	Wrapper     Wrapper  `json:"wrapper"`

	Executor Executor    `json:"-"`
	Observer Observer    `json:"-"`
	Logger   *zap.Logger `json:"-"`
}

// Validate checks that every list is non-empty and every count is positive.
func (s *EmbeddingSweep) Validate() error {
	if err := requireModels(s.Models); err != nil {
		return err
	}
	if err := requirePositive("max_workers", s.MaxWorkers); err != nil {
		return err
	}
	if err := requirePositive("num_tasks", s.NumTasks); err != nil {
		return err
	}
	if err := requirePositive("sample_sizes", s.SampleSizes); err != nil {
		return err
	}
	if s.OutputFile == "" {
		return errors.New("output file is required")
	}
	return nil
}

// Run executes the full sweep, appending one row per combination. Missing
// metrics are written as N/A; a benchmark exiting non-zero does not stop
// the sweep.
func (s *EmbeddingSweep) Run(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d := newDeps(s.Executor, s.Observer, s.Logger)

	sink, err := OpenCSV(s.OutputFile, EmbeddingHeader)
	if err != nil {
		return err
	}
	defer sink.Close()

	combos := Product(s.Models, s.MaxWorkers, s.NumTasks, s.SampleSizes)
	d.observer.SweepStarted(len(combos))
	d.logger.Info("embedding sweep started",
		zap.Int("combinations", len(combos)),
		zap.String("output_file", s.OutputFile),
		zap.Bool("new_file", sink.WroteHeader()))

	for i, p := range combos {
		argv := s.Wrapper.Command("embedding",
			"--model", p.Model,
			"--max-workers", strconv.Itoa(p.MaxWorkers),
			"--num-tasks", strconv.Itoa(p.NumTasks),
			"--sample-sizes", strconv.Itoa(p.SampleSize),
		)
		res, err := d.runBenchmark(ctx, i, len(combos), argv)
		if err != nil {
			return err
		}

		if err := sink.Append(p.Row(ParseMetrics(res.Stdout))); err != nil {
			return err
		}
		d.observer.RowSaved(i, fmt.Sprintf("Saved results for model=%s, workers=%d, tasks=%d, size=%d",
			p.Model, p.MaxWorkers, p.NumTasks, p.SampleSize))
	}

	if err := sink.Close(); err != nil {
		return err
	}
	d.logger.Info("embedding sweep finished", zap.Int("rows", sink.Rows()))
	d.observer.SweepFinished(s.OutputFile)
	return nil
}

// Row maps scraped metrics onto the EmbeddingHeader layout.
func (p EmbeddingParams) Row(m Metrics) []string {
	return []string{
		p.Model,
		strconv.Itoa(p.MaxWorkers),
		strconv.Itoa(p.NumTasks),
		strconv.Itoa(p.SampleSize),
		m.Get(MetricDurationMean, NotAvailable),
		m.Get(MetricDurationPerc95, NotAvailable),
		m.Get(MetricRealDuration, NotAvailable),
		m.Get(MetricRateMean, NotAvailable),
		m.Get(MetricErrors, NotAvailable),
	}
}

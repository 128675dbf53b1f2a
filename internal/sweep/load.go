// internal/sweep/load.go
package sweep

import (
	"context"

	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// LoadHeader is the column layout of load result files.
var LoadHeader = []string{"model", MetricDurationMean, MetricRealDuration, MetricRateMean, MetricErrors}

var loadMetrics = []string{MetricDurationMean, MetricRealDuration, MetricRateMean, MetricErrors}

// LoadSweep runs `ollama-benchmark load <model>` once per model.
type LoadSweep struct {
	Models     []string `json:"models"`
	OutputFile string   `json:"output_file"`
	Wrapper    Wrapper  `json:"wrapper"`

	// FillMissing writes N/A for absent metrics instead of aborting.
	FillMissing bool `json:"fill_missing"`

	Executor Executor    `json:"-"`
	Observer Observer    `json:"-"`
	Logger   *zap.Logger `json:"-"`
}

// Validate checks the model list and output path.
func (s *LoadSweep) Validate() error {
	if err := requireModels(s.Models); err != nil {
		return err
	}
	if s.OutputFile == "" {
		return errors.New("output file is required")
	}
	return nil
}

// Run executes the sweep in model order. Unless FillMissing is set, a model
// whose output lacks an expected metric aborts the sweep before its row is
// written; rows already appended stay in the file.
func (s *LoadSweep) Run(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d := newDeps(s.Executor, s.Observer, s.Logger)

	sink, err := OpenCSV(s.OutputFile, LoadHeader)
	if err != nil {
		return err
	}
	defer sink.Close()

	d.observer.SweepStarted(len(s.Models))
	d.logger.Info("load sweep started",
		zap.Int("models", len(s.Models)),
		zap.String("output_file", s.OutputFile),
		zap.Bool("new_file", sink.WroteHeader()))

	for i, model := range s.Models {
		argv := s.Wrapper.Command("load", model)
		res, err := d.runBenchmark(ctx, i, len(s.Models), argv)
		if err != nil {
			return err
		}

		row, err := LoadRow(model, ParseMetrics(res.Stdout), s.FillMissing)
		if err != nil {
			d.logger.Error("load sweep aborted", zap.String("model", model), zap.Error(err))
			return errors.Annotatef(err, "model %s", model)
		}
		if err := sink.Append(row); err != nil {
			return err
		}
		d.observer.RowSaved(i, "Saved results for model="+model)
	}

	if err := sink.Close(); err != nil {
		return err
	}
	d.logger.Info("load sweep finished", zap.Int("rows", sink.Rows()))
	d.observer.SweepFinished(s.OutputFile)
	return nil
}

// LoadRow maps scraped metrics onto the LoadHeader layout. With fill set,
// absent metrics become N/A; otherwise the first absent one is returned as a
// *MissingMetricError.
func LoadRow(model string, m Metrics, fill bool) ([]string, error) {
	row := make([]string, 0, len(LoadHeader))
	row = append(row, model)
	for _, key := range loadMetrics {
		if fill {
			row = append(row, m.Get(key, NotAvailable))
			continue
		}
		v, err := m.Lookup(key)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

// internal/sweep/params.go
package sweep

import (
	"github.com/pingcap/errors"
)

// EmbeddingParams is one combination of the embedding sweep.
type EmbeddingParams struct {
	Model      string `json:"model"`
	MaxWorkers int    `json:"max_workers"`
	NumTasks   int    `json:"num_tasks"`
	SampleSize int    `json:"sample_size"`
}

// Product returns the cartesian product of the four lists with the model
// varying slowest and the sample size fastest.
func Product(models []string, maxWorkers, numTasks, sampleSizes []int) []EmbeddingParams {
	out := make([]EmbeddingParams, 0, len(models)*len(maxWorkers)*len(numTasks)*len(sampleSizes))
	for _, m := range models {
		for _, w := range maxWorkers {
			for _, t := range numTasks {
				for _, s := range sampleSizes {
					out = append(out, EmbeddingParams{Model: m, MaxWorkers: w, NumTasks: t, SampleSize: s})
				}
			}
		}
	}
	return out
}

func requireModels(models []string) error {
	if len(models) == 0 {
		return errors.New("at least one model is required")
	}
	return nil
}

func requirePositive(name string, values []int) error {
	if len(values) == 0 {
		return errors.Errorf("at least one %s value is required", name)
	}
	for _, v := range values {
		if v < 1 {
			return errors.Errorf("%s values must be >= 1, got %d", name, v)
		}
	}
	return nil
}

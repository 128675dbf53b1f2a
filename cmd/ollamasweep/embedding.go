// cmd/ollamasweep/embedding.go
package ollamasweep

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mwiater/ollamasweep/internal/appconfig"
	"github.com/mwiater/ollamasweep/internal/sweep"
)

// newEmbeddingCmd implements 'embedding', which runs the embedding benchmark
// once for every combination of models, worker counts, task counts and
// sample sizes.
func newEmbeddingCmd(a *app) *cobra.Command {
	var (
		models      []string
		maxWorkers  []int
		numTasks    []int
		sampleSizes []int
	)

	cmd := &cobra.Command{
		Use:   "embedding",
		Short: "Benchmark Ollama embeddings over a parameter sweep",
		Long: `The 'embedding' command runs 'ollama-benchmark embedding' inside the Apptainer
image once per combination of --models, --max_workers, --num_tasks and
--sample_sizes (model varies slowest) and appends one row per run to the output
file. Metrics missing from the benchmark output are recorded as N/A.`,
		Example: `  ollamasweep embedding --models nomic-embed-text all-minilm --max_workers 1 4 --num_tasks 100 --sample_sizes 8 16`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.wrapper()
			if err != nil {
				return err
			}
			s := &sweep.EmbeddingSweep{
				Models:      models,
				MaxWorkers:  maxWorkers,
				NumTasks:    numTasks,
				SampleSizes: sampleSizes,
				OutputFile:  appconfig.OutputFile(a.v, appconfig.KeyEmbeddingOutput, appconfig.DefaultEmbeddingOutput),
				Wrapper:     w,
				Executor:    a.newExecutor(),
				Logger:      a.logger,
			}
			if err := s.Validate(); err != nil {
				return err
			}

			plan := sweepPlan{
				Command:    "embedding",
				OutputFile: s.OutputFile,
				Wrapper:    w,
				Params: struct {
					Models      []string
					MaxWorkers  []int
					NumTasks    []int
					SampleSizes []int
				}{models, maxWorkers, numTasks, sampleSizes},
				Runs: len(models) * len(maxWorkers) * len(numTasks) * len(sampleSizes),
			}
			return a.runSweep(cmd, plan, func(ctx context.Context, obs sweep.Observer) error {
				s.Observer = obs
				return s.Run(ctx)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&models, "models", nil, "models to test")
	flags.IntSliceVar(&maxWorkers, "max_workers", nil, "max workers values")
	flags.IntSliceVar(&numTasks, "num_tasks", nil, "num tasks values")
	flags.IntSliceVar(&sampleSizes, "sample_sizes", nil, "sample size values")
	flags.String("output_file", appconfig.DefaultEmbeddingOutput, "CSV file to store results")
	for _, name := range []string{"models", "max_workers", "num_tasks", "sample_sizes"} {
		_ = cmd.MarkFlagRequired(name)
	}
	_ = a.v.BindPFlag(appconfig.KeyEmbeddingOutput, flags.Lookup("output_file"))

	return cmd
}

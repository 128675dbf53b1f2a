// cmd/ollamasweep/load.go
package ollamasweep

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mwiater/ollamasweep/internal/appconfig"
	"github.com/mwiater/ollamasweep/internal/sweep"
)

// newLoadCmd implements 'load', which runs the model loading benchmark once
// per model.
func newLoadCmd(a *app) *cobra.Command {
	var models []string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Benchmark Ollama model loading for each model",
		Long: `The 'load' command runs 'ollama-benchmark load <model>' inside the Apptainer
image for each model in order and appends one row per model to the output file.
If the benchmark output lacks an expected metric the sweep stops before writing
that model's row, unless --fill_missing is set.`,
		Example: `  ollamasweep load --models llama3.2:1b gemma3n:e2b`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.wrapper()
			if err != nil {
				return err
			}
			s := &sweep.LoadSweep{
				Models:      models,
				OutputFile:  appconfig.OutputFile(a.v, appconfig.KeyLoadOutput, appconfig.DefaultLoadOutput),
				FillMissing: a.v.GetBool(appconfig.KeyLoadFillMissing),
				Wrapper:     w,
				Executor:    a.newExecutor(),
				Logger:      a.logger,
			}
			if err := s.Validate(); err != nil {
				return err
			}

			plan := sweepPlan{
				Command:    "load",
				OutputFile: s.OutputFile,
				Wrapper:    w,
				Params: struct {
					Models      []string
					FillMissing bool
				}{models, s.FillMissing},
				Runs: len(models),
			}
			return a.runSweep(cmd, plan, func(ctx context.Context, obs sweep.Observer) error {
				s.Observer = obs
				return s.Run(ctx)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&models, "models", nil, "models to test")
	flags.String("output_file", appconfig.DefaultLoadOutput, "CSV file to store results")
	flags.Bool("fill_missing", false, "record missing metrics as N/A instead of stopping the sweep")
	_ = cmd.MarkFlagRequired("models")
	_ = a.v.BindPFlag(appconfig.KeyLoadOutput, flags.Lookup("output_file"))
	_ = a.v.BindPFlag(appconfig.KeyLoadFillMissing, flags.Lookup("fill_missing"))

	return cmd
}

// cmd/ollamasweep/run.go
package ollamasweep

import (
	"context"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/ollamasweep/internal/appconfig"
	"github.com/mwiater/ollamasweep/internal/progress"
	"github.com/mwiater/ollamasweep/internal/sweep"
)

// sweepPlan is what --debug prints before a sweep starts.
type sweepPlan struct {
	Command    string
	Config     appconfig.Config
	OutputFile string
	Wrapper    sweep.Wrapper
	Params     any
	Runs       int
}

// wrapper builds the apptainer command template from the resolved config.
func (a *app) wrapper() (sweep.Wrapper, error) {
	cfg := appconfig.FromViper(a.v)
	return sweep.NewWrapper(cfg.ApptainerBinary, cfg.ApptainerImage, cfg.ApptainerFlags, cfg.BenchmarkBinary)
}

// runSweep prints the plan when --debug is set and runs fn with either the
// console observer or, with --progress, the live progress view.
func (a *app) runSweep(cmd *cobra.Command, plan sweepPlan, fn func(ctx context.Context, obs sweep.Observer) error) error {
	cfg := appconfig.FromViper(a.v)
	out := cmd.OutOrStdout()
	plan.Config = cfg

	if cfg.Debug {
		pp.Fprintln(out, plan)
	}
	if cfg.Progress {
		return progress.Run(cmd.Context(), fn)
	}
	return fn(cmd.Context(), sweep.NewConsoleObserver(out))
}

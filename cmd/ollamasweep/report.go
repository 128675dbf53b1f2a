// cmd/ollamasweep/report.go
package ollamasweep

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwiater/ollamasweep/internal/report"
)

// newReportCmd implements 'report', which summarizes a results file per model.
func newReportCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report <results.csv>",
		Short: "Summarize a results file per model",
		Long:  `The 'report' command reads a CSV written by 'embedding' or 'load' and prints, per model, the number of runs, mean and standard deviation of rate_mean, p50/p95 of duration_mean and the total error count. N/A cells are skipped.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := report.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("report built", zap.String("path", args[0]), zap.Int("models", len(summaries)))
			if asJSON {
				return report.RenderJSON(cmd.OutOrStdout(), summaries)
			}
			return report.Render(cmd.OutOrStdout(), summaries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the summary as JSON instead of a table")
	return cmd
}

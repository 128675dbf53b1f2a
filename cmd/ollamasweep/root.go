// cmd/ollamasweep/root.go
package ollamasweep

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mwiater/ollamasweep/internal/appconfig"
	"github.com/mwiater/ollamasweep/internal/logging"
	"github.com/mwiater/ollamasweep/internal/sweep"
)

// app holds the state shared by one command tree: its viper instance, the
// logger built from it, and the executor used to launch benchmarks.
type app struct {
	v           *viper.Viper
	cfgFile     string
	logger      *zap.Logger
	newExecutor func() sweep.Executor
}

func newApp() *app {
	return &app{
		v:           viper.New(),
		logger:      zap.NewNop(),
		newExecutor: func() sweep.Executor { return sweep.ExecExecutor{} },
	}
}

// newRootCmd builds the full ollamasweep command tree bound to a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ollamasweep",
		Short: "Sweep ollama-benchmark runs inside Apptainer and collect the results as CSV",
		Long: `ollamasweep runs the ollama-benchmark tool inside an Apptainer image once per
parameter combination, scrapes the "key: value" metrics it prints and appends
one row per run to a CSV file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (toml, yaml or json)")
	pf.String(appconfig.KeyApptainerImage, appconfig.DefaultApptainerImage, "Apptainer image name")
	pf.String(appconfig.KeyApptainerBinary, appconfig.DefaultApptainerBinary, "Apptainer executable")
	pf.String(appconfig.KeyApptainerFlags, "", `extra flags for 'apptainer exec', shell-quoted (e.g. "--nv --bind /data:/data")`)
	pf.String(appconfig.KeyBenchmarkBinary, appconfig.DefaultBenchmarkBinary, "benchmark executable inside the image")
	pf.String(appconfig.KeyLogLevel, appconfig.DefaultLogLevel, "diagnostic log level: debug, info, warn, error")
	pf.String(appconfig.KeyLogFormat, appconfig.DefaultLogFormat, "diagnostic log format: console or json")
	pf.Bool(appconfig.KeyDebug, false, "print the resolved sweep before running it")
	pf.Bool(appconfig.KeyProgress, false, "show a live progress view while the sweep runs")
	for _, key := range []string{
		appconfig.KeyApptainerImage,
		appconfig.KeyApptainerBinary,
		appconfig.KeyApptainerFlags,
		appconfig.KeyBenchmarkBinary,
		appconfig.KeyLogLevel,
		appconfig.KeyLogFormat,
		appconfig.KeyDebug,
		appconfig.KeyProgress,
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(newEmbeddingCmd(a))
	root.AddCommand(newLoadCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newListCmd())

	return root
}

// setup reads the config file and environment and builds the logger.
func (a *app) setup() error {
	if err := appconfig.Setup(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg := appconfig.FromViper(a.v)
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	if a.cfgFile != "" {
		a.logger.Debug("config loaded", zap.String("path", a.cfgFile))
	}
	return nil
}

// Execute runs the root command and all registered subcommands. It prints
// any returned error and exits with a non-zero status on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp()
	root := newRootCmd(a)
	root.SetArgs(expandListFlags(root, os.Args[1:]))

	err := root.ExecuteContext(ctx)
	_ = a.logger.Sync()
	stop()
	if err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

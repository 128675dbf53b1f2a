// internal/sweep/run.go
package sweep

import (
	"context"

	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// deps carries the collaborators shared by both runners.
type deps struct {
	executor Executor
	observer Observer
	logger   *zap.Logger
}

func newDeps(e Executor, o Observer, l *zap.Logger) deps {
	if e == nil {
		e = ExecExecutor{}
	}
	if o == nil {
		o = nopObserver{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return deps{executor: e, observer: o, logger: l}
}

// runBenchmark executes one combination and reports it to the observer.
// Only launch failures are returned; a non-zero exit is logged and the
// captured output is still handed back for scraping.
func (d deps) runBenchmark(ctx context.Context, index, total int, argv []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Trace(err)
	}

	d.observer.RunStarted(index, total, argv)
	d.logger.Debug("starting benchmark",
		zap.Int("index", index),
		zap.Int("total", total),
		zap.Strings("argv", argv))

	res, err := d.executor.Execute(ctx, argv)
	if err != nil {
		return res, errors.Annotatef(err, "benchmark %d/%d", index+1, total)
	}
	d.observer.RunFinished(index, res)

	fields := []zap.Field{
		zap.Int("index", index),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("elapsed", res.Elapsed),
	}
	if res.ExitCode != 0 {
		d.logger.Warn("benchmark exited with non-zero status", fields...)
	} else {
		d.logger.Info("benchmark finished", fields...)
	}
	return res, nil
}

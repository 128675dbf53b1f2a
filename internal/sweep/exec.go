// internal/sweep/exec.go
package sweep

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	perrors "github.com/pingcap/errors"
)

// Result holds the captured streams of one finished benchmark process.
type Result struct {
	Argv     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// Executor runs a command to completion and captures its output.
// A non-zero exit status is reported through Result.ExitCode, not as an error;
// the error return is reserved for failures to launch or wait on the process.
type Executor interface {
	Execute(ctx context.Context, argv []string) (Result, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Execute implements Executor.
func (ExecExecutor) Execute(ctx context.Context, argv []string) (Result, error) {
	res := Result{Argv: argv}
	if len(argv) == 0 {
		return res, perrors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res.Elapsed = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, perrors.Annotatef(err, "run %s", argv[0])
	}
	return res, nil
}

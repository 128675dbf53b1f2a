// cmd/ollamasweep/helpers_test.go
package ollamasweep

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"testing"

	"github.com/mwiater/ollamasweep/internal/sweep"
)

// stubExecutor returns canned stdout for every command and records argv.
type stubExecutor struct {
	stdout string
	calls  [][]string
}

func (s *stubExecutor) Execute(_ context.Context, argv []string) (sweep.Result, error) {
	s.calls = append(s.calls, argv)
	return sweep.Result{Argv: argv, Stdout: s.stdout}, nil
}

func newTestApp(exec *stubExecutor) *app {
	a := newApp()
	a.newExecutor = func() sweep.Executor { return exec }
	return a
}

// runCLI executes a fresh command tree with args and returns its output.
func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(expandListFlags(root, args))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

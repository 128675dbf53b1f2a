package sweep

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeExecutor answers each command through respond and records every argv.
type fakeExecutor struct {
	respond func(argv []string) (Result, error)
	calls   [][]string
}

func (f *fakeExecutor) Execute(_ context.Context, argv []string) (Result, error) {
	f.calls = append(f.calls, argv)
	res, err := f.respond(argv)
	res.Argv = argv
	return res, err
}

func staticOutput(stdout string) *fakeExecutor {
	return &fakeExecutor{respond: func([]string) (Result, error) {
		return Result{Stdout: stdout}, nil
	}}
}

// recordingObserver keeps the messages it was handed.
type recordingObserver struct {
	total    int
	started  int
	finished []Result
	saved    []string
	done     string
}

func (r *recordingObserver) SweepStarted(total int) { r.total = total }
func (r *recordingObserver) RunStarted(int, int, []string) { r.started++ }
func (r *recordingObserver) RunFinished(_ int, res Result) { r.finished = append(r.finished, res) }
func (r *recordingObserver) RowSaved(_ int, msg string) { r.saved = append(r.saved, msg) }
func (r *recordingObserver) SweepFinished(outputFile string) { r.done = outputFile }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func argValue(argv []string, flag string) string {
	for i := 0; i < len(argv)-1; i++ {
		if argv[i] == flag {
			return argv[i+1]
		}
	}
	return ""
}

const fullEmbeddingOutput = `Benchmark finished
duration_mean: 0.5
duration_perc95: 0.9
real_duration: 1.0
rate_mean: 20
errors: 0
`

const fullLoadOutput = `duration_mean: 2.5
real_duration: 3.1
rate_mean: 0.4
errors: 0
`

var errLaunch = errors.New("exec: \"apptainer\": executable file not found in $PATH")

func withoutLine(output, key string) string {
	var kept []string
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, key+":") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

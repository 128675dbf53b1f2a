// cmd/ollamasweep/embedding_test.go
package ollamasweep

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddingCmd_MissingPerc95(t *testing.T) {
	exec := &stubExecutor{stdout: "duration_mean: 0.5\nreal_duration: 1.0\nrate_mean: 20\nerrors: 0"}
	outFile := filepath.Join(t.TempDir(), "embedding.csv")

	out, err := runCLI(t, newTestApp(exec),
		"embedding", "--models", "m1", "--max_workers", "1", "2", "--num_tasks", "5", "--sample_sizes", "10",
		"--output_file", outFile)
	if err != nil {
		t.Fatalf("embedding: %v\n%s", err, out)
	}

	want := [][]string{
		{"model", "max_workers", "num_tasks", "sample_size", "duration_mean", "duration_perc95", "real_duration", "rate_mean", "errors"},
		{"m1", "1", "5", "10", "0.5", "N/A", "1.0", "20", "0"},
		{"m1", "2", "5", "10", "0.5", "N/A", "1.0", "20", "0"},
	}
	if got := readCSV(t, outFile); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n got  %v\n want %v", got, want)
	}

	wantArgv := []string{"apptainer", "exec", "ollama_benchmark.sif", "ollama-benchmark", "embedding",
		"--model", "m1", "--max-workers", "2", "--num-tasks", "5", "--sample-sizes", "10"}
	if len(exec.calls) != 2 || !reflect.DeepEqual(exec.calls[1], wantArgv) {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if !strings.Contains(out, "Saved results for model=m1, workers=2, tasks=5, size=10") {
		t.Fatalf("missing confirmation in output: %s", out)
	}
	if !strings.Contains(out, "Benchmarking complete. Results saved to "+outFile) {
		t.Fatalf("missing completion line in output: %s", out)
	}
}

func TestEmbeddingCmd_RequiresLists(t *testing.T) {
	exec := &stubExecutor{}
	_, err := runCLI(t, newTestApp(exec), "embedding", "--models", "m1", "--max_workers", "1")
	if err == nil {
		t.Fatal("expected an error for missing required flags")
	}
	if !strings.Contains(err.Error(), "num_tasks") || !strings.Contains(err.Error(), "sample_sizes") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("no benchmark should run, got %d", len(exec.calls))
	}
}

func TestEmbeddingCmd_RejectsNonPositive(t *testing.T) {
	exec := &stubExecutor{}
	outFile := filepath.Join(t.TempDir(), "embedding.csv")
	_, err := runCLI(t, newTestApp(exec),
		"embedding", "--models", "m1", "--max_workers", "0", "--num_tasks", "5", "--sample_sizes", "10",
		"--output_file", outFile)
	if err == nil {
		t.Fatal("expected an error for max_workers 0")
	}
	if _, statErr := os.Stat(outFile); !os.IsNotExist(statErr) {
		t.Fatalf("output file should not be created, stat err: %v", statErr)
	}
}

func TestEmbeddingCmd_ApptainerSettings(t *testing.T) {
	exec := &stubExecutor{stdout: "duration_mean: 1"}
	outFile := filepath.Join(t.TempDir(), "embedding.csv")

	_, err := runCLI(t, newTestApp(exec),
		"embedding", "--models", "m1", "--max_workers", "1", "--num_tasks", "5", "--sample_sizes", "10",
		"--output_file", outFile,
		"--apptainer_image", "/images/bench.sif",
		"--apptainer_flags", "--nv --bind /scratch:/data")
	if err != nil {
		t.Fatalf("embedding: %v", err)
	}
	want := []string{"apptainer", "exec", "--nv", "--bind", "/scratch:/data", "/images/bench.sif", "ollama-benchmark", "embedding"}
	if len(exec.calls) != 1 || !reflect.DeepEqual(exec.calls[0][:len(want)], want) {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestEmbeddingCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "from-config.csv")
	cfgPath := filepath.Join(dir, "sweep.yaml")
	cfg := "apptainer_image: cfg.sif\nembedding:\n  output_file: " + outFile + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	exec := &stubExecutor{stdout: "duration_mean: 1"}
	_, err := runCLI(t, newTestApp(exec),
		"--config", cfgPath,
		"embedding", "--models", "m1", "--max_workers", "1", "--num_tasks", "1", "--sample_sizes", "1")
	if err != nil {
		t.Fatalf("embedding: %v", err)
	}
	if got := readCSV(t, outFile); len(got) != 2 {
		t.Fatalf("expected header and one row in %s, got %v", outFile, got)
	}
	if exec.calls[0][2] != "cfg.sif" {
		t.Fatalf("expected image from config, got %v", exec.calls[0])
	}
}

func TestEmbeddingCmd_DebugPrintsPlan(t *testing.T) {
	exec := &stubExecutor{stdout: "duration_mean: 1"}
	outFile := filepath.Join(t.TempDir(), "embedding.csv")

	out, err := runCLI(t, newTestApp(exec),
		"embedding", "--debug", "--models", "m1", "--max_workers", "1", "--num_tasks", "1", "--sample_sizes", "1",
		"--output_file", outFile)
	if err != nil {
		t.Fatalf("embedding: %v", err)
	}
	if !strings.Contains(out, "MaxWorkers") || !strings.Contains(out, "Runs") {
		t.Fatalf("expected plan dump in output: %s", out)
	}
}

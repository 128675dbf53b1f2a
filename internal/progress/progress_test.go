package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/ollamasweep/internal/sweep"
)

func TestModel_TracksSweep(t *testing.T) {
	canceled := false
	m := newModel(func() { canceled = true })

	next, _ := m.Update(startedMsg{total: 4})
	m = next.(model)
	if m.total != 4 {
		t.Fatalf("expected total 4, got %d", m.total)
	}

	next, _ = m.Update(runningMsg{index: 0, argv: []string{"apptainer", "exec", "img.sif"}})
	m = next.(model)
	next, _ = m.Update(savedMsg{index: 0})
	m = next.(model)
	next, _ = m.Update(savedMsg{index: 1})
	m = next.(model)

	if m.saved != 2 || m.percent() != 0.5 {
		t.Fatalf("expected 2 saved at 50%%, got %d at %v", m.saved, m.percent())
	}
	view := m.View()
	if !strings.Contains(view, "2/4 runs saved") {
		t.Fatalf("unexpected view: %q", view)
	}
	if !strings.Contains(view, "apptainer exec img.sif") {
		t.Fatalf("expected current command in view: %q", view)
	}

	next, cmd := m.Update(printMsg("Raw output:"))
	m = next.(model)
	if cmd == nil {
		t.Fatal("expected print command")
	}

	next, _ = m.Update(finishedMsg{outputFile: "out.csv"})
	m = next.(model)
	next, cmd = m.Update(doneMsg{})
	m = next.(model)
	if cmd == nil || !m.done {
		t.Fatal("expected quit after done")
	}
	if got := m.View(); got != "Benchmarking complete. Results saved to out.csv\n" {
		t.Fatalf("unexpected final view: %q", got)
	}
	if canceled {
		t.Fatal("sweep should not be canceled on normal completion")
	}
}

func TestModel_QuitCancelsSweep(t *testing.T) {
	canceled := false
	m := newModel(func() { canceled = true })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(model)
	if !canceled || !m.canceled || cmd == nil {
		t.Fatalf("expected cancel and quit; canceled=%v model=%v", canceled, m.canceled)
	}
}

func TestModel_PercentWithoutTotal(t *testing.T) {
	m := newModel(nil)
	if m.percent() != 0 {
		t.Fatalf("expected 0, got %v", m.percent())
	}
}

func TestRun_ReturnsSweepError(t *testing.T) {
	wantErr := errors.New("metric missing")
	var out bytes.Buffer

	err := Run(context.Background(), func(ctx context.Context, obs sweep.Observer) error {
		obs.SweepStarted(1)
		obs.RunStarted(0, 1, []string{"apptainer"})
		obs.RunFinished(0, sweep.Result{Stdout: "duration_mean: 1"})
		return wantErr
	}, tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer(), tea.WithoutSignalHandler())

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
